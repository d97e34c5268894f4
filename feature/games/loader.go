package games

import (
	"site-manager/core/steam"
	"site-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options collects the dependencies of the games feature. Library, Catalog and Storage
// are optional.
type Options struct {
	DB      *gorm.DB
	Library LibrarySource
	Catalog CatalogSource
	Storage storage.Client
	Bucket  string
	Steam   steam.Config
	Logger  *zap.Logger
}

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature wires the games feature. It is disabled without a database.
func NewFeature(opts Options) *Feature {
	svc := NewServiceFromOptions(opts)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: opts.DB != nil}
}

// NewServiceFromOptions builds the service graph shared by the HTTP feature and the CLI.
func NewServiceFromOptions(opts Options) *Service {
	repo := NewRepository(opts.DB)

	var importer *Importer
	if opts.Library != nil {
		reconciler := NewReconciler(repo, opts.Logger, opts.Steam.Concurrency, opts.Steam.ImageStyle)
		importer = NewImporter(opts.Library, reconciler, opts.Storage, opts.Bucket, opts.Steam.SnapshotRetention, opts.Logger)
	}

	return NewService(repo, importer, opts.Catalog, opts.Logger)
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "games"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
