package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"site-manager/core/cache"
	"site-manager/core/metrics"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Store reads public catalog details. It needs no API key.
type Store struct {
	client *resty.Client
	cache  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore builds a catalog client. A nil cache disables caching.
func NewStore(cfg Config, c cache.Store, logger *zap.Logger) *Store {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.StoreBaseURL, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json")

	return &Store{client: client, cache: c, ttl: cfg.DetailsTTL(), logger: logger}
}

// AppDetails returns the catalog details for appID, or ErrNotFound.
func (s *Store) AppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	id := strconv.FormatInt(appID, 10)
	key := "steam:appdetails:" + id

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var cached AppDetails
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.CatalogLookupsTotal.WithLabelValues("cache").Inc()
				return &cached, nil
			}
		}
	}

	metrics.CatalogLookupsTotal.WithLabelValues("remote").Inc()

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("appids", id).
		Get("/api/appdetails")
	if err != nil {
		return nil, fmt.Errorf("%w: app details %s: %v", ErrUpstream, id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: app details %s: unexpected status %d", ErrUpstream, id, resp.StatusCode())
	}

	var envelope map[string]appDetailsEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: app details %s: decode response: %v", ErrUpstream, id, err)
	}

	entry, ok := envelope[id]
	if !ok || !entry.Success {
		return nil, ErrNotFound
	}

	details := &AppDetails{
		Name:             entry.Data.Name,
		ShortDescription: entry.Data.ShortDescription,
		HeaderImage:      entry.Data.HeaderImage,
		ReleaseDate:      entry.Data.ReleaseDate.Date,
		Developers:       entry.Data.Developers,
		Publishers:       entry.Data.Publishers,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(details); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return details, nil
}
