package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
)

var steamIDPattern = regexp.MustCompile(`^\d{17}$`)

// IsSteamID reports whether s is already a canonical 64-bit Steam ID.
func IsSteamID(s string) bool {
	return steamIDPattern.MatchString(s)
}

// WebAPI calls the authenticated Steam Web API.
type WebAPI struct {
	client *resty.Client
	apiKey string
}

// NewWebAPI builds a Web API client. It fails with ErrMissingAPIKey when no key is set.
func NewWebAPI(cfg Config) (*WebAPI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json")

	return &WebAPI{client: client, apiKey: cfg.APIKey}, nil
}

// ResolveSteamID maps a handle to a canonical Steam ID. 17-digit input is returned as-is
// without a remote call.
func (w *WebAPI) ResolveSteamID(ctx context.Context, handle string) (string, error) {
	if handle == "" {
		return "", ErrNotFound
	}
	if IsSteamID(handle) {
		return handle, nil
	}

	var out resolveVanityResponse
	if err := w.get(ctx, "/ISteamUser/ResolveVanityURL/v0001/", map[string]string{
		"key":       w.apiKey,
		"vanityurl": handle,
	}, &out); err != nil {
		return "", fmt.Errorf("resolve vanity url: %w", err)
	}

	if out.Response.Success != 1 || out.Response.SteamID == "" {
		return "", ErrNotFound
	}

	return out.Response.SteamID, nil
}

// GetOwnedGames returns every title owned by steamID, including free titles that were played.
func (w *WebAPI) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	var out ownedGamesResponse
	if err := w.get(ctx, "/IPlayerService/GetOwnedGames/v0001/", map[string]string{
		"key":                       w.apiKey,
		"steamid":                   steamID,
		"include_appinfo":           "1",
		"include_played_free_games": "1",
		"format":                    "json",
	}, &out); err != nil {
		return nil, fmt.Errorf("get owned games: %w", err)
	}

	return out.Response.Games, nil
}

func (w *WebAPI) get(ctx context.Context, path string, params map[string]string, v any) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	return nil
}
