package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skincare-backend/config"
	"skincare-backend/internal/auth"
	"skincare-backend/internal/middleware"
	"skincare-backend/internal/models"
	"skincare-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.InvalidatedToken{}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenDuration: 1,
		},
	}

	userRepo := repository.NewUserRepository(db)
	blocklist := auth.NewBlocklistService(repository.NewTokenRepository(db))
	authService := auth.NewAuthService(userRepo, blocklist, cfg)
	authHandler := NewAuthHandler(authService)

	app := fiber.New()
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	authGroup.Post("/refresh", middleware.Protected(authService), authHandler.RefreshToken)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.GetMe)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := postJSON(t, app, "/api/v1/auth/register", RegisterRequest{
		Name:     "Jo",
		Email:    "jo@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/login", LoginRequest{
		Email:    "jo@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginBody struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginBody))
	require.NotEmpty(t, loginBody.Token)
	return loginBody.Token
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", RegisterRequest{
		Name:     "Jo",
		Email:    "jo@example.com",
		Password: "short",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMeRequiresToken(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "jo@example.com", user.Email)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)

	resp := postJSON(t, app, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The revoked token no longer passes the middleware anywhere
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp2, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestRefreshReturnsUsableTokenAndKillsOld(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app)

	resp := postJSON(t, app, "/api/v1/auth/refresh", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshBody TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshBody))
	require.NotEmpty(t, refreshBody.Token)
	require.NotEqual(t, token, refreshBody.Token)

	// Old token is dead
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	oldResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, oldResp.StatusCode)

	// New token works
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+refreshBody.Token)
	newResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, newResp.StatusCode)
}
