package games

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"site-manager/core/steam"
	"site-manager/feature/games/models"

	"go.uber.org/zap"
)

// CatalogSource looks up descriptive metadata for a catalog app id.
type CatalogSource interface {
	AppDetails(ctx context.Context, appID int64) (*steam.AppDetails, error)
}

// ManualGameInput is a user supplied local title.
type ManualGameInput struct {
	Name           string `json:"name"`
	ExecutableName string `json:"executable_name"`
	SteamAppID     *int64 `json:"steam_app_id,omitempty"`
	SteamURL       string `json:"steam_url,omitempty"`
}

// Page is one page of a library listing.
type Page struct {
	Items []models.Game `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var storeAppPattern = regexp.MustCompile(`/app/(\d+)`)

// Service handles game library operations.
type Service struct {
	repo     *Repository
	importer *Importer
	catalog  CatalogSource
	logger   *zap.Logger
}

// NewService creates a new games service. A nil catalog disables enrichment.
func NewService(repo *Repository, importer *Importer, catalog CatalogSource, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		importer: importer,
		catalog:  catalog,
		logger:   logger,
	}
}

// SyncSteam imports the remote library behind handle into userID's library.
func (s *Service) SyncSteam(ctx context.Context, userID, handle string) (*SyncResult, error) {
	if s.importer == nil {
		return nil, ErrNotConfigured
	}
	return s.importer.Sync(ctx, userID, handle)
}

// AddManualGame registers a local title. When a catalog id is given the row is enriched
// with store metadata; a failed lookup still creates the row.
func (s *Service) AddManualGame(ctx context.Context, userID string, in ManualGameInput) (*models.Game, error) {
	name := strings.TrimSpace(in.Name)
	executable := strings.TrimSpace(in.ExecutableName)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if executable == "" {
		return nil, fmt.Errorf("%w: executable_name is required", ErrInvalidInput)
	}

	appID, err := manualAppID(in)
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		UserID:         userID,
		Name:           name,
		Platform:       models.PlatformLocal,
		SteamAppID:     appID,
		ExecutableName: &executable,
	}

	if appID != nil {
		if _, err := s.repo.FindBySteamApp(ctx, userID, *appID); err == nil {
			return nil, ErrDuplicateGame
		} else if !errors.Is(err, ErrGameNotFound) {
			return nil, err
		}
		s.enrich(ctx, game, *appID)
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Service) enrich(ctx context.Context, game *models.Game, appID int64) {
	if s.catalog == nil {
		return
	}

	details, err := s.catalog.AppDetails(ctx, appID)
	if err != nil {
		s.logger.Warn("Catalog enrichment failed, saving without details",
			zap.Int64("app_id", appID),
			zap.Error(err),
		)
		return
	}

	game.Description = details.ShortDescription
	game.ReleaseDate = details.ReleaseDate
	game.Developers = details.Developers
	game.Publishers = details.Publishers
	if details.HeaderImage != "" {
		header := details.HeaderImage
		game.HeaderImage = &header
	}
	cover := steam.CoverURL(appID)
	game.IconURL = &cover
}

func manualAppID(in ManualGameInput) (*int64, error) {
	if in.SteamAppID != nil {
		if *in.SteamAppID <= 0 {
			return nil, fmt.Errorf("%w: steam_app_id must be positive", ErrInvalidInput)
		}
		id := *in.SteamAppID
		return &id, nil
	}

	raw := strings.TrimSpace(in.SteamURL)
	if raw == "" {
		return nil, nil
	}

	m := storeAppPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("%w: steam_url does not contain an app id", ErrInvalidInput)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: steam_url does not contain an app id", ErrInvalidInput)
	}
	return &id, nil
}

// ListGames returns a page of the user's games.
func (s *Service) ListGames(ctx context.Context, userID string, platform string, page, limit int) (*Page, error) {
	switch models.Platform(platform) {
	case "", models.PlatformSteam, models.PlatformLocal:
	default:
		return nil, fmt.Errorf("%w: unknown platform %q", ErrInvalidInput, platform)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.ListGames(ctx, userID, ListFilter{
		Platform: models.Platform(platform),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// GetGame returns one of the user's games with its sessions.
func (s *Service) GetGame(ctx context.Context, userID, id string) (*models.Game, error) {
	return s.repo.GetGame(ctx, userID, id)
}
