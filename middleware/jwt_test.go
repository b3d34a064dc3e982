package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"campus/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTKey: "test-secret", TokenDays: 7}
}

// newTokenApp builds a one-route app that echoes the student ID the
// middleware resolved from the token.
func newTokenApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", JWTAuth(cfg), func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%d", c.Locals("studentId").(uint)))
	})
	return app
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	app := newTokenApp(cfg)

	token, err := GenerateJWT(cfg, 42, "Alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMissingToken(t *testing.T) {
	app := newTokenApp(testConfig())

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	app := newTokenApp(testConfig())

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Token abcdef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTokenSignedWithWrongKey(t *testing.T) {
	cfg := testConfig()
	app := newTokenApp(cfg)

	other := &config.Config{JWTKey: "other-secret", TokenDays: 7}
	token, err := GenerateJWT(other, 42, "Alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// A well-signed token whose studentId claim is not a number must be
// rejected like any other bad payload, not crash the handler.
func TestNonNumericStudentIdClaim(t *testing.T) {
	cfg := testConfig()
	app := newTokenApp(cfg)

	claims := jwt.MapClaims{
		"studentId": "forty-two",
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTKey))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredToken(t *testing.T) {
	cfg := testConfig()
	app := newTokenApp(cfg)

	// Negative TTL produces an exp in the past
	expired := &config.Config{JWTKey: cfg.JWTKey, TokenDays: -1}
	token, err := GenerateJWT(expired, 42, "Alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
