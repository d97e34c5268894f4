package system

import (
	"context"

	"site-manager/core/storage"
	"site-manager/feature/games/models"
	"site-manager/feature/system/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthReport is the liveness summary of the service dependencies.
type HealthReport struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// Service runs system checks.
type Service struct {
	client storage.Client
	bucket string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new system service. db may be nil.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		db:     db,
		logger: logger,
	}
}

// Health pings the database and checks the bucket.
func (s *Service) Health(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Database: "ok", Storage: "ok"}

	switch {
	case s.db == nil:
		report.Database = "disabled"
		report.Status = "degraded"
	default:
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			s.logger.Warn("Database health check failed", zap.Error(err))
			report.Database = "error"
			report.Status = "degraded"
		}
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil || !exists {
		s.logger.Warn("Storage health check failed", zap.Bool("exists", exists), zap.Error(err))
		report.Storage = "error"
		report.Status = "degraded"
	}

	return report
}

// CheckStructure returns the required folders missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the library tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}
