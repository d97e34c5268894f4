package games

import (
	"context"
	"sort"
	"sync"
	"time"

	"site-manager/core/steam"
	"site-manager/feature/games/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TitleFailure describes a title that could not be reconciled. Error names the failed
// stage; the cause is logged.
type TitleFailure struct {
	AppID int64  `json:"app_id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// SyncResult summarizes one library sync. Count is the number of titles reconciled.
type SyncResult struct {
	Attempted int            `json:"attempted"`
	Count     int            `json:"count"`
	Failed    []TitleFailure `json:"failed"`
}

// Reconciler merges a remote owned-games list into the local library.
type Reconciler struct {
	repo        *Repository
	logger      *zap.Logger
	concurrency int
	imageStyle  string
	now         func() time.Time
}

// NewReconciler creates a reconciler running up to concurrency titles at once.
func NewReconciler(repo *Repository, logger *zap.Logger, concurrency int, imageStyle string) *Reconciler {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Reconciler{
		repo:        repo,
		logger:      logger,
		concurrency: concurrency,
		imageStyle:  imageStyle,
		now:         time.Now,
	}
}

// Reconcile upserts every owned title and refreshes its aggregate steam_api session.
// A failing title is recorded in the result and does not stop the others.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, owned []steam.OwnedGame) *SyncResult {
	result := &SyncResult{Attempted: len(owned), Failed: []TitleFailure{}}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, title := range owned {
		g.Go(func() error {
			stage, err := r.reconcileTitle(gctx, userID, title)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Error("Failed to reconcile title",
					zap.String("user_id", userID),
					zap.Int64("app_id", title.AppID),
					zap.String("name", title.Name),
					zap.String("stage", stage),
					zap.Error(err),
				)
				result.Failed = append(result.Failed, TitleFailure{AppID: title.AppID, Name: title.Name, Error: stage + " failed"})
				return nil
			}
			result.Count++
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].AppID < result.Failed[j].AppID
	})

	return result
}

const (
	stageUpsert  = "upsert"
	stageSession = "session"
)

func (r *Reconciler) reconcileTitle(ctx context.Context, userID string, title steam.OwnedGame) (string, error) {
	appID := title.AppID
	iconURL := steam.ImageURL(r.imageStyle, title)

	stored, err := r.repo.UpsertSteamGame(ctx, &models.Game{
		UserID:          userID,
		Name:            title.Name,
		Platform:        models.PlatformSteam,
		SteamAppID:      &appID,
		IconURL:         &iconURL,
		PlaytimeMinutes: title.PlaytimeForever,
	})
	if err != nil {
		return stageUpsert, err
	}

	sessions, err := r.repo.FindSessions(ctx, stored.ID, models.SourceSteamAPI)
	if err != nil {
		return stageSession, err
	}

	now := r.now().UTC()
	duration := title.PlaytimeForever * 60

	if len(sessions) == 0 {
		return stageSession, r.repo.CreateSession(ctx, &models.PlaySession{
			GameID:          stored.ID,
			UserID:          userID,
			StartedAt:       now,
			EndedAt:         &now,
			DurationSeconds: duration,
			Source:          models.SourceSteamAPI,
		})
	}

	if len(sessions) > 1 {
		r.logger.Warn("Multiple aggregate sessions found, updating the newest",
			zap.String("game_id", stored.ID),
			zap.Int("sessions", len(sessions)),
		)
	}

	return stageSession, r.repo.UpdateSessionTotals(ctx, sessions[0].ID, duration, now)
}
