package games

import (
	"context"
	"fmt"
	"time"

	"site-manager/core/metrics"
	"site-manager/core/steam"
	"site-manager/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LibrarySource resolves handles and lists owned titles.
type LibrarySource interface {
	ResolveSteamID(ctx context.Context, handle string) (string, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
}

// Snapshot is the raw owned-games list archived after each successful fetch.
type Snapshot struct {
	UserID    string            `json:"user_id"`
	SteamID   string            `json:"steam_id"`
	FetchedAt time.Time         `json:"fetched_at"`
	Games     []steam.OwnedGame `json:"games"`
}

// Importer runs library syncs. Concurrent syncs for the same user and profile share a run.
type Importer struct {
	source     LibrarySource
	reconciler *Reconciler
	storage    storage.Client
	bucket     string
	retention  int
	logger     *zap.Logger
	group      singleflight.Group
	now        func() time.Time
}

// NewImporter creates an importer. A nil storage client disables snapshots.
func NewImporter(source LibrarySource, reconciler *Reconciler, client storage.Client, bucket string, retention int, logger *zap.Logger) *Importer {
	return &Importer{
		source:     source,
		reconciler: reconciler,
		storage:    client,
		bucket:     bucket,
		retention:  retention,
		logger:     logger,
		now:        time.Now,
	}
}

// Sync resolves handle, fetches the owned titles and reconciles them for userID.
func (i *Importer) Sync(ctx context.Context, userID, handle string) (*SyncResult, error) {
	if i.source == nil {
		return nil, ErrNotConfigured
	}

	handle = steam.NormalizeHandle(handle)
	if handle == "" {
		return nil, fmt.Errorf("%w: steam_id is required", ErrInvalidInput)
	}

	steamID, err := i.source.ResolveSteamID(ctx, handle)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("resolve_failed").Inc()
		return nil, fmt.Errorf("resolve %q: %w", handle, err)
	}

	v, err, shared := i.group.Do(userID+"|"+steamID, func() (any, error) {
		return i.run(ctx, userID, steamID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		i.logger.Debug("Joined in-flight library sync", zap.String("user_id", userID), zap.String("steam_id", steamID))
	}

	res := *v.(*SyncResult)
	return &res, nil
}

func (i *Importer) run(ctx context.Context, userID, steamID string) (*SyncResult, error) {
	start := time.Now()

	owned, err := i.source.GetOwnedGames(ctx, steamID)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("fetch library: %w", err)
	}

	i.snapshot(ctx, userID, steamID, owned)

	result := i.reconciler.Reconcile(ctx, userID, owned)

	metrics.SyncRunsTotal.WithLabelValues("success").Inc()
	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	metrics.SyncTitlesTotal.WithLabelValues("reconciled").Add(float64(result.Count))
	metrics.SyncTitlesTotal.WithLabelValues("failed").Add(float64(len(result.Failed)))

	i.logger.Info("Library sync finished",
		zap.String("user_id", userID),
		zap.String("steam_id", steamID),
		zap.Int("attempted", result.Attempted),
		zap.Int("count", result.Count),
		zap.Int("failed", len(result.Failed)),
		zap.Duration("took", time.Since(start)),
	)

	return result, nil
}

// snapshot archives the fetched list and prunes old archives. Failures are only logged.
func (i *Importer) snapshot(ctx context.Context, userID, steamID string, owned []steam.OwnedGame) {
	if i.storage == nil || i.retention <= 0 {
		return
	}

	now := i.now().UTC()
	prefix := fmt.Sprintf("snapshots/steam/%s/", userID)
	key := fmt.Sprintf("%s%d.json", prefix, now.UnixNano())

	if owned == nil {
		owned = []steam.OwnedGame{}
	}

	err := storage.PutJSON(ctx, i.storage, i.bucket, key, Snapshot{
		UserID:    userID,
		SteamID:   steamID,
		FetchedAt: now,
		Games:     owned,
	})
	if err != nil {
		metrics.SnapshotsTotal.WithLabelValues("failed").Inc()
		i.logger.Warn("Failed to write library snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	metrics.SnapshotsTotal.WithLabelValues("written").Inc()

	keys, err := storage.ListKeys(ctx, i.storage, i.bucket, prefix)
	if err != nil {
		i.logger.Warn("Failed to list library snapshots", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if len(keys) <= i.retention {
		return
	}

	// Keys are fixed-width nanosecond timestamps, so sorted order is chronological.
	stale := keys[:len(keys)-i.retention]
	if err := storage.RemoveKeys(ctx, i.storage, i.bucket, stale); err != nil {
		i.logger.Warn("Failed to prune library snapshots", zap.Int("stale", len(stale)), zap.Error(err))
	}
}
