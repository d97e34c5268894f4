package cmd

import (
	"fmt"

	"site-manager/core/cache"
	"site-manager/core/config"
	"site-manager/core/database"
	"site-manager/core/logger"
	"site-manager/core/steam"
	"site-manager/core/storage"
	"site-manager/feature/games"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the shared dependency graph of the commands.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	storage storage.Client
	cache   cache.Store
}

// bootstrap loads configuration and the logger. Connections are opened on demand.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	return &runtime{cfg: cfg, logger: logg}, nil
}

func (r *runtime) openDatabase() error {
	db, err := database.Connect(r.cfg.Database, r.logger)
	if err != nil {
		return err
	}
	r.db = db
	r.logger.Info("Connected to database", zap.String("driver", r.cfg.Database.Driver))
	return nil
}

func (r *runtime) openStorage() error {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}
	r.storage = client
	return nil
}

func (r *runtime) openCache() error {
	c, err := cache.New(r.cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	r.cache = c
	return nil
}

// gamesOptions wires the games feature. A missing API key leaves the sync disabled.
func (r *runtime) gamesOptions() games.Options {
	opts := games.Options{
		DB:      r.db,
		Catalog: steam.NewStore(r.cfg.Steam, r.cache, r.logger),
		Storage: r.storage,
		Bucket:  r.cfg.Storage.Bucket,
		Steam:   r.cfg.Steam,
		Logger:  r.logger,
	}

	api, err := steam.NewWebAPI(r.cfg.Steam)
	if err != nil {
		r.logger.Warn("Steam integration disabled", zap.Error(err))
	} else {
		opts.Library = api
	}

	return opts
}

func (r *runtime) close() {
	if r.cache != nil {
		_ = r.cache.Close()
	}
	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = r.logger.Sync()
}
