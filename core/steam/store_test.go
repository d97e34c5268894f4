package steam_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"site-manager/core/cache"
	"site-manager/core/steam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const portalDetails = `{"400":{"success":true,"data":{
	"name":"Portal",
	"short_description":"A puzzle game.",
	"header_image":"https://cdn.example/400/header.jpg",
	"release_date":{"coming_soon":false,"date":"10 Oct, 2007"},
	"developers":["Valve"],
	"publishers":["Valve"]
}}}`

func newStore(t *testing.T, handler http.HandlerFunc) (*steam.Store, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	mem, err := cache.NewMemory(16)
	require.NoError(t, err)

	store := steam.NewStore(steam.Config{StoreBaseURL: server.URL, TimeoutSeconds: 2}, mem, zap.NewNop())
	return store, &calls
}

func TestStore_AppDetails(t *testing.T) {
	store, calls := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appdetails", r.URL.Path)
		assert.Equal(t, "400", r.URL.Query().Get("appids"))
		writeJSON(w, portalDetails)
	})

	details, err := store.AppDetails(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, &steam.AppDetails{
		Name:             "Portal",
		ShortDescription: "A puzzle game.",
		HeaderImage:      "https://cdn.example/400/header.jpg",
		ReleaseDate:      "10 Oct, 2007",
		Developers:       []string{"Valve"},
		Publishers:       []string{"Valve"},
	}, details)

	again, err := store.AppDetails(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, details, again)
	assert.EqualValues(t, 1, calls.Load(), "second lookup is served from cache")
}

func TestStore_AppDetails_NotFound(t *testing.T) {
	store, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"999":{"success":false}}`)
	})

	_, err := store.AppDetails(context.Background(), 999)
	assert.ErrorIs(t, err, steam.ErrNotFound)
}

func TestStore_AppDetails_Upstream(t *testing.T) {
	store, _ := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := store.AppDetails(context.Background(), 400)
	assert.ErrorIs(t, err, steam.ErrUpstream)
}
