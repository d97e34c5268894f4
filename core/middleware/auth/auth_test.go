package auth_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"site-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = auth.Config{JWTSecret: "test-secret", Issuer: "site-manager"}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(auth.New(testCfg))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(auth.UserID(c))
	})
	return app
}

func request(t *testing.T, header string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.NewString()
	token, err := auth.NewToken(testCfg, userID, time.Hour)
	require.NoError(t, err)

	status, body := request(t, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, userID, body)
}

func TestAuth_Rejected(t *testing.T) {
	userID := uuid.NewString()

	expired, err := auth.NewToken(testCfg, userID, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := auth.NewToken(auth.Config{JWTSecret: "other", Issuer: "site-manager"}, userID, time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := auth.NewToken(auth.Config{JWTSecret: "test-secret", Issuer: "elsewhere"}, userID, time.Hour)
	require.NoError(t, err)

	notUUID, err := auth.NewToken(testCfg, "42", time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: userID, Issuer: "site-manager"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"Missing", ""},
		{"WrongScheme", "Basic " + expired},
		{"Garbage", "Bearer not-a-token"},
		{"Expired", "Bearer " + expired},
		{"OtherSecret", "Bearer " + otherSecret},
		{"WrongIssuer", "Bearer " + wrongIssuer},
		{"SubjectNotUserID", "Bearer " + notUUID},
		{"AlgNone", "Bearer " + unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := request(t, tt.header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.JSONEq(t, `{"error":"unauthorized"}`, body)
		})
	}
}

func TestNewToken_NoSecret(t *testing.T) {
	_, err := auth.NewToken(auth.Config{}, uuid.NewString(), time.Hour)
	assert.Error(t, err)

	_, err = auth.Verify(auth.Config{}, "anything")
	assert.Error(t, err)
}
