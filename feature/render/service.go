package render

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"tree-reconciler/core/host"
	"tree-reconciler/core/logger"
	"tree-reconciler/core/reconcile"
	"tree-reconciler/core/storage"
	"tree-reconciler/core/vnode"
	"tree-reconciler/feature/render/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// ScenarioPrefix is the storage prefix holding scenario documents.
	ScenarioPrefix = "scenarios/"
	// ScenarioExt is the extension of scenario documents.
	ScenarioExt = ".yaml"

	rootTag = "root"
)

var (
	// ErrJournalDisabled is returned by run queries when no database is configured.
	ErrJournalDisabled = errors.New("run journal is disabled")
	// ErrInvalidScenarioName is returned for names that cannot map to a storage key.
	ErrInvalidScenarioName = errors.New("invalid scenario name")

	scenarioName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)
)

// Service runs reconciliation passes against in-memory host trees.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	engine reconcile.Config
}

// NewService creates a new render service. A nil db disables the run journal.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, engine reconcile.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		engine: engine,
	}
}

// Migrate creates the journal table when the journal is enabled.
func (s *Service) Migrate() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.AutoMigrate(&models.RenderRun{}); err != nil {
		return fmt.Errorf("failed to migrate run journal: %w", err)
	}
	return nil
}

// Diff mounts prev, reconciles it into next, replays the queued effects and
// reports what happened. prev may be nil.
func (s *Service) Diff(ctx context.Context, prev, next *vnode.Node, scenario string) (*models.DiffResult, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: next tree is required", vnode.ErrInvalidDescription)
	}

	start := time.Now()
	runID := uuid.NewString()
	l := logger.WithRun(s.logger, runID)

	factory := host.NewMemoryFactory()
	factory.SVGTag = s.engine.SVGTag
	eng := reconcile.NewEngine(factory, s.engine.Options(l)...)

	// The trees are reconciled as the only child of a synthetic container so
	// a change of root tag becomes an ordinary replace.
	container := host.NewElement(rootTag)
	var prevRoot *vnode.Node
	if prev != nil {
		prevRoot = vnode.List(rootTag, vnode.FlagDefault, prev)
		if _, err := eng.Mount(container, prev); err != nil {
			return nil, err
		}
	}
	before := renderChildren(container)

	rc, err := eng.Reconcile(container, vnode.List(rootTag, vnode.FlagDefault, next), prevRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}

	effects := rc.Effects.Effects()
	batches := reconcile.Batch(effects, s.engine.BatchSize)
	for i, batch := range batches {
		if _, err := reconcile.Replay(batch); err != nil {
			return nil, fmt.Errorf("failed to replay batch %d: %w", i, err)
		}
		l.Debug("Replayed batch", zap.Int("batch", i), zap.Int("effects", len(batch)))
	}

	after := renderChildren(container)
	result := &models.DiffResult{
		RunID:     runID,
		Scenario:  scenario,
		Summary:   reconcile.Summarize(effects),
		Effects:   models.ViewEffects(effects),
		Batches:   len(batches),
		Before:    before,
		After:     after,
		Tree:      snapChildren(container),
		Converged: after == host.Render(factory.Materialize(next, false)),
	}
	took := time.Since(start)
	result.ExecutionTime = took.String()

	if !result.Converged {
		l.Warn("Patched tree diverges from a fresh render", zap.String("after", after))
	}
	s.record(ctx, l, result, took)
	return result, nil
}

// DiffDocuments builds both trees from their wire form and diffs them.
func (s *Service) DiffDocuments(ctx context.Context, prev, next *vnode.Document, scenario string) (*models.DiffResult, error) {
	prevNode, err := prev.Build()
	if err != nil {
		return nil, fmt.Errorf("prev: %w", err)
	}
	nextNode, err := next.Build()
	if err != nil {
		return nil, fmt.Errorf("next: %w", err)
	}
	return s.Diff(ctx, prevNode, nextNode, scenario)
}

// LoadScenario downloads and decodes a stored scenario.
func (s *Service) LoadScenario(ctx context.Context, name string) (*vnode.Scenario, error) {
	key, err := ScenarioKey(name)
	if err != nil {
		return nil, err
	}
	data, err := storage.ReadObject(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, err
	}
	sc, err := vnode.DecodeScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	return sc, nil
}

// RunScenario loads a stored scenario and diffs it.
func (s *Service) RunScenario(ctx context.Context, name string) (*models.DiffResult, error) {
	sc, err := s.LoadScenario(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.DiffDocuments(ctx, sc.Prev, sc.Next, sc.Name)
}

// SaveScenario validates and stores a scenario document.
func (s *Service) SaveScenario(ctx context.Context, name string, data []byte) error {
	key, err := ScenarioKey(name)
	if err != nil {
		return err
	}
	sc, err := vnode.DecodeScenario(data)
	if err != nil {
		return err
	}
	if _, err := sc.Prev.Build(); err != nil {
		return fmt.Errorf("prev: %w", err)
	}
	if _, err := sc.Next.Build(); err != nil {
		return fmt.Errorf("next: %w", err)
	}
	return storage.WriteObject(ctx, s.client, s.bucket, key, data, "application/yaml")
}

// ListScenarios returns the names of all stored scenarios.
func (s *Service) ListScenarios(ctx context.Context) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, ScenarioPrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if !strings.HasSuffix(k, ScenarioExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(path.Base(k), ScenarioExt))
	}
	return names, nil
}

// ListRuns returns the most recent journal rows, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.RenderRun, error) {
	if s.db == nil {
		return nil, ErrJournalDisabled
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var runs []models.RenderRun
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ScenarioKey maps a scenario name to its storage key.
func ScenarioKey(name string) (string, error) {
	if !scenarioName.MatchString(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidScenarioName, name)
	}
	return ScenarioPrefix + name + ScenarioExt, nil
}

// record journals a run. Failures are logged and never fail the request.
func (s *Service) record(ctx context.Context, l *zap.Logger, r *models.DiffResult, took time.Duration) {
	if s.db == nil {
		return
	}
	run := models.NewRenderRun(r, took)
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		l.Warn("Failed to record render run", zap.Error(err))
	}
}

func renderChildren(el *host.Element) string {
	var b strings.Builder
	for _, c := range el.Children() {
		b.WriteString(host.Render(c))
	}
	return b.String()
}

func snapChildren(el *host.Element) []host.Snapshot {
	out := make([]host.Snapshot, 0, el.ChildCount())
	for _, c := range el.Children() {
		out = append(out, host.Snap(c))
	}
	return out
}
