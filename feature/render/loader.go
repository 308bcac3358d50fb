package render

import (
	"tree-reconciler/core/reconcile"
	"tree-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Render feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, engine reconcile.Config) *Feature {
	svc := NewService(client, bucket, logger, db, engine)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "render"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Service exposes the feature's service for CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Load migrates the run journal and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
