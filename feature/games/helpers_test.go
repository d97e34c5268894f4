package games

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"site-manager/core/database"
	"site-manager/core/steam"
	"site-manager/feature/games/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// fakeSteam serves the two Web API endpoints used by a sync.
type fakeSteam struct {
	mu          sync.Mutex
	vanity      map[string]string
	owned       []steam.OwnedGame
	ownedStatus int

	resolveCalls atomic.Int32
	ownedCalls   atomic.Int32
}

func (f *fakeSteam) setOwned(games ...steam.OwnedGame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owned = games
}

func (f *fakeSteam) addVanity(name, steamID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vanity[name] = steamID
}

func (f *fakeSteam) failOwned(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownedStatus = status
}

func (f *fakeSteam) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/ISteamUser/ResolveVanityURL/v0001/":
		f.resolveCalls.Add(1)
		if id, ok := f.vanity[r.URL.Query().Get("vanityurl")]; ok {
			fmt.Fprintf(w, `{"response":{"steamid":%q,"success":1}}`, id)
			return
		}
		_, _ = w.Write([]byte(`{"response":{"success":42,"message":"No match"}}`))
	case "/IPlayerService/GetOwnedGames/v0001/":
		f.ownedCalls.Add(1)
		if f.ownedStatus != 0 {
			w.WriteHeader(f.ownedStatus)
			return
		}
		var body struct {
			Response struct {
				GameCount int               `json:"game_count"`
				Games     []steam.OwnedGame `json:"games"`
			} `json:"response"`
		}
		body.Response.GameCount = len(f.owned)
		body.Response.Games = f.owned
		_ = json.NewEncoder(w).Encode(body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newFakeSteam(t *testing.T) (*fakeSteam, *steam.WebAPI) {
	t.Helper()

	fake := &fakeSteam{vanity: map[string]string{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	api, err := steam.NewWebAPI(steam.Config{APIKey: "test-key", APIBaseURL: server.URL, TimeoutSeconds: 2})
	require.NoError(t, err)
	return fake, api
}

// fixedClock returns a clock that can be advanced by tests.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fixedClock {
	return &fixedClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func steamSessions(t *testing.T, db *gorm.DB, gameID string) []models.PlaySession {
	t.Helper()

	var sessions []models.PlaySession
	require.NoError(t, db.Where("game_id = ? AND source = ?", gameID, models.SourceSteamAPI).Find(&sessions).Error)
	return sessions
}
