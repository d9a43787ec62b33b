package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/task-manager-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-manager-api/internal/api/middleware"
	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/mocks"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOrigin = "https://tasks.example.com"

// newTestApplication wires the real services over in-memory stores and a
// sqlmock database. It seeds the user "alice" with password "correct horse".
func newTestApplication(t *testing.T, protectTasks bool) *application {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	authCfg := auth.TestAuthConfig()
	authCfg.ProtectTasks = protectTasks

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "debug", CORSOrigins: []string{testOrigin}},
			Auth:   authCfg,
		},
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		db:     db,
	}

	users := mocks.NewMockUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: string(hash),
		Role:           domain.DefaultRole,
	}))

	require.NoError(t, app.initServices(mocks.NewMockTaskStore(), users, nil))
	return app
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := serve(h, http.MethodPost, "/login", `{"username": "alice", "password": "correct horse"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp api.LoginResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestApplication(t, true).setupRouter()

	rr := serve(router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(apiMiddleware.TraceIDHeader))
}

func TestProtectedTaskRoutes(t *testing.T) {
	router := newTestApplication(t, true).setupRouter()

	rr := serve(router, http.MethodGet, "/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(router, http.MethodGet, "/tasks", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := login(t, router)

	rr = serve(router, http.MethodPost, "/task", `{"title": "test", "status": "OPEN", "priority": "LOW"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(router, http.MethodGet, "/task/1", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	var task domain.Task
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&task))
	assert.Equal(t, "test", task.Title)

	rr = serve(router, http.MethodGet, "/tasks", "", token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUnprotectedTaskRoutes(t *testing.T) {
	router := newTestApplication(t, false).setupRouter()

	rr := serve(router, http.MethodGet, "/tasks", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestApplication(t, true).setupRouter()

	rr := serve(router, http.MethodPost, "/login", `{"username": "alice", "password": "wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(router, http.MethodPost, "/login", `{"username": "nobody", "password": "wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserRoutesArePublic(t *testing.T) {
	router := newTestApplication(t, true).setupRouter()

	rr := serve(router, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"alice"`)

	rr = serve(router, http.MethodGet, "/user?username=alice", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAliasRoutesNotServed(t *testing.T) {
	router := newTestApplication(t, false).setupRouter()

	rr := serve(router, http.MethodPost, "/createtask", `{"title": "x"}`, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestApplication(t, true).setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, testOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestEnsureSigningSecret(t *testing.T) {
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg := config.AuthConfig{}
	require.NoError(t, ensureSigningSecret(&cfg, l))
	assert.Len(t, cfg.JWTSecret, 2*auth.MinSecretLength)

	configured := config.AuthConfig{JWTSecret: "kept-as-is-0123456789-0123456789-abc"}
	require.NoError(t, ensureSigningSecret(&configured, l))
	assert.Equal(t, "kept-as-is-0123456789-0123456789-abc", configured.JWTSecret)
}
