package steam_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"site-manager/core/steam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	calls   atomic.Int32
	handler http.HandlerFunc
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) (*fakeAPI, *steam.WebAPI) {
	t.Helper()

	fake := &fakeAPI{handler: handler}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.calls.Add(1)
		fake.handler(w, r)
	}))
	t.Cleanup(server.Close)

	api, err := steam.NewWebAPI(steam.Config{APIKey: "key", APIBaseURL: server.URL, TimeoutSeconds: 2})
	require.NoError(t, err)

	return fake, api
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestNewWebAPI_MissingKey(t *testing.T) {
	_, err := steam.NewWebAPI(steam.Config{APIKey: "  "})
	assert.ErrorIs(t, err, steam.ErrMissingAPIKey)
}

func TestResolveSteamID_CanonicalShortCircuits(t *testing.T) {
	fake, api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected remote call to %s", r.URL.Path)
	})

	id, err := api.ResolveSteamID(context.Background(), "76561197960287930")
	require.NoError(t, err)
	assert.Equal(t, "76561197960287930", id)
	assert.Zero(t, fake.calls.Load())
}

func TestResolveSteamID_Vanity(t *testing.T) {
	fake, api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamUser/ResolveVanityURL/v0001/", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		assert.Equal(t, "gabelogannewell", r.URL.Query().Get("vanityurl"))
		writeJSON(w, `{"response":{"steamid":"76561197960287930","success":1}}`)
	})

	id, err := api.ResolveSteamID(context.Background(), "gabelogannewell")
	require.NoError(t, err)
	assert.Equal(t, "76561197960287930", id)
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestResolveSteamID_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handle  string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:   "Empty",
			handle: "",
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("unexpected remote call")
			},
			want: steam.ErrNotFound,
		},
		{
			name:   "NoMatch",
			handle: "nobody-here",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, `{"response":{"success":42,"message":"No match"}}`)
			},
			want: steam.ErrNotFound,
		},
		{
			name:   "ServerError",
			handle: "someone",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: steam.ErrUpstream,
		},
		{
			name:   "BadJSON",
			handle: "someone",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, `<html>`)
			},
			want: steam.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := newFakeAPI(t, tt.handler)
			_, err := api.ResolveSteamID(context.Background(), tt.handle)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetOwnedGames(t *testing.T) {
	_, api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v0001/", r.URL.Path)
		assert.Equal(t, "76561197960287930", q.Get("steamid"))
		assert.Equal(t, "1", q.Get("include_appinfo"))
		assert.Equal(t, "1", q.Get("include_played_free_games"))
		writeJSON(w, `{"response":{"game_count":2,"games":[
			{"appid":10,"name":"Counter-Strike","playtime_forever":120,"img_icon_url":"abc"},
			{"appid":20,"name":"Team Fortress Classic","playtime_forever":0,"img_icon_url":""}
		]}}`)
	})

	games, err := api.GetOwnedGames(context.Background(), "76561197960287930")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, steam.OwnedGame{AppID: 10, Name: "Counter-Strike", PlaytimeForever: 120, ImgIconURL: "abc"}, games[0])
}

func TestGetOwnedGames_EmptyLibrary(t *testing.T) {
	_, api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response":{}}`)
	})

	games, err := api.GetOwnedGames(context.Background(), "76561197960287930")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGetOwnedGames_Timeout(t *testing.T) {
	_, api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := api.GetOwnedGames(ctx, "76561197960287930")
	assert.ErrorIs(t, err, steam.ErrUpstream)
}
