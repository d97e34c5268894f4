package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"site-manager/feature/games/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists games and play sessions.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertSteamGame inserts g or, when (user_id, steam_app_id) already exists, overwrites
// its mutable fields in the same statement. It returns the stored row.
func (r *Repository) UpsertSteamGame(ctx context.Context, g *models.Game) (*models.Game, error) {
	if g.SteamAppID == nil {
		return nil, fmt.Errorf("%w: steam app id is required for upsert", ErrInvalidInput)
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "steam_app_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "icon_url", "playtime_minutes", "is_shared", "updated_at"}),
		}).
		Create(g).Error
	if err != nil {
		return nil, fmt.Errorf("upsert game %d: %w", *g.SteamAppID, err)
	}

	stored, err := r.FindBySteamApp(ctx, g.UserID, *g.SteamAppID)
	if err != nil {
		return nil, fmt.Errorf("read back game %d: %w", *g.SteamAppID, err)
	}
	return stored, nil
}

// FindBySteamApp returns the user's game for a catalog app id.
func (r *Repository) FindBySteamApp(ctx context.Context, userID string, appID int64) (*models.Game, error) {
	var g models.Game
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND steam_app_id = ?", userID, appID).
		Take(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindSessions returns the game's sessions from source, most recently created first.
func (r *Repository) FindSessions(ctx context.Context, gameID string, source models.SessionSource) ([]models.PlaySession, error) {
	var sessions []models.PlaySession
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND source = ?", gameID, source).
		Order("created_at DESC").
		Order("id DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("find sessions for game %s: %w", gameID, err)
	}
	return sessions, nil
}

// CreateSession inserts a new session.
func (r *Repository) CreateSession(ctx context.Context, s *models.PlaySession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create session for game %s: %w", s.GameID, err)
	}
	return nil
}

// UpdateSessionTotals sets the duration and end time of an existing session. started_at is
// left untouched.
func (r *Repository) UpdateSessionTotals(ctx context.Context, id string, durationSeconds int64, endedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.PlaySession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"duration_seconds": durationSeconds,
			"ended_at":         endedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update session %s: %w", id, err)
	}
	return nil
}

// CreateGame inserts a new game. A clash on (user_id, steam_app_id) is ErrDuplicateGame.
func (r *Repository) CreateGame(ctx context.Context, g *models.Game) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateGame
	}
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// ListFilter narrows ListGames.
type ListFilter struct {
	Platform models.Platform
	Page     int
	Limit    int
}

// ListGames returns one page of the user's games ordered by name, and the total count.
func (r *Repository) ListGames(ctx context.Context, userID string, f ListFilter) ([]models.Game, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Game{}).Where("user_id = ?", userID)
		if f.Platform != "" {
			q = q.Where("platform = ?", f.Platform)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	games := make([]models.Game, 0, f.Limit)
	err := scope().
		Order("name ASC").
		Order("id ASC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&games).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	return games, total, nil
}

// GetGame returns one of the user's games with its sessions, newest first.
func (r *Repository) GetGame(ctx context.Context, userID, id string) (*models.Game, error) {
	var g models.Game
	err := r.db.WithContext(ctx).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("started_at DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	return &g, nil
}

// Migrate creates or updates the library tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
