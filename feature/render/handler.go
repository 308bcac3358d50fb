package render

import (
	"errors"

	"tree-reconciler/core/logger"
	"tree-reconciler/core/reconcile"
	"tree-reconciler/core/storage"
	"tree-reconciler/core/vnode"
	"tree-reconciler/feature/render/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for render passes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the render routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/render")
	group.Post("/diff", h.HandleDiff)
	group.Get("/scenarios", h.HandleListScenarios)
	group.Get("/scenarios/:name", h.HandleRunScenario)
	group.Put("/scenarios/:name", h.HandleSaveScenario)
	group.Get("/runs", h.HandleListRuns)
}

// HandleDiff reconciles a submitted pair of trees.
// @Summary Diff Two Trees
// @Description Mounts prev in an in-memory host, reconciles it into next and returns the queued effects with the resulting markup.
// @Tags render
// @Accept json
// @Produce json
// @Param request body models.DiffRequest true "Trees to reconcile"
// @Success 200 {object} models.DiffResult "Diff Result"
// @Failure 400 {object} map[string]string "Invalid Tree"
// @Failure 422 {object} map[string]string "Patch List Out Of Range"
// @Router /render/diff [post]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.DiffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	result, err := h.service.DiffDocuments(c.Context(), req.Prev, req.Next, "")
	if err != nil {
		return h.fail(c, l, "Diff failed", err)
	}
	return c.JSON(result)
}

// HandleListScenarios lists stored scenarios.
// @Summary List Scenarios
// @Description Lists the scenario documents stored in the scenario bucket.
// @Tags render
// @Produce json
// @Success 200 {object} models.ScenarioList "Scenario Names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /render/scenarios [get]
func (h *Handler) HandleListScenarios(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.ListScenarios(c.Context())
	if err != nil {
		return h.fail(c, l, "Listing scenarios failed", err)
	}
	return c.JSON(models.ScenarioList{Scenarios: names})
}

// HandleRunScenario runs a stored scenario.
// @Summary Run Scenario
// @Description Loads scenarios/{name}.yaml from storage and reconciles its prev tree into its next tree.
// @Tags render
// @Produce json
// @Param name path string true "Scenario Name (e.g. 'keyed-swap')"
// @Success 200 {object} models.DiffResult "Diff Result"
// @Failure 404 {object} map[string]string "Scenario Not Found"
// @Router /render/scenarios/{name} [get]
func (h *Handler) HandleRunScenario(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("scenario", name))

	result, err := h.service.RunScenario(c.Context(), name)
	if err != nil {
		return h.fail(c, l, "Scenario run failed", err)
	}
	return c.JSON(result)
}

// HandleSaveScenario stores a scenario document.
// @Summary Save Scenario
// @Description Validates a YAML scenario and stores it as scenarios/{name}.yaml.
// @Tags render
// @Accept plain
// @Produce json
// @Param name path string true "Scenario Name"
// @Success 201 {object} map[string]string "Stored"
// @Failure 400 {object} map[string]string "Invalid Scenario"
// @Router /render/scenarios/{name} [put]
func (h *Handler) HandleSaveScenario(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c).With(zap.String("scenario", name))

	if err := h.service.SaveScenario(c.Context(), name, c.Body()); err != nil {
		return h.fail(c, l, "Saving scenario failed", err)
	}
	l.Info("Scenario stored")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"scenario": name})
}

// HandleListRuns lists journaled runs.
// @Summary List Runs
// @Description Returns the most recent render runs from the journal, newest first.
// @Tags render
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} models.RenderRun "Runs"
// @Failure 503 {object} map[string]string "Journal Disabled"
// @Router /render/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return h.fail(c, l, "Listing runs failed", err)
	}
	return c.JSON(runs)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, vnode.ErrInvalidDescription), errors.Is(err, ErrInvalidScenarioName):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrObjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrPatchOutOfRange):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrJournalDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
