package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/mocks"
	"github.com/phrazzld/task-manager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		authHeader       string
		validateErr      error
		claims           *auth.Claims
		expectedStatus   int
		expectedUsername string
	}{
		{
			name:             "valid token",
			authHeader:       "Bearer valid-token",
			claims:           &auth.Claims{Username: "alice"},
			expectedStatus:   http.StatusOK,
			expectedUsername: "alice",
		},
		{
			name:             "scheme is case insensitive",
			authHeader:       "bearer valid-token",
			claims:           &auth.Claims{Username: "alice"},
			expectedStatus:   http.StatusOK,
			expectedUsername: "alice",
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid auth format",
			authHeader:     "InvalidFormat",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic YWxpY2U6cHc=",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty token",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			validateErr:    auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			validateErr:    auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token not yet valid",
			authHeader:     "Bearer future-token",
			validateErr:    auth.ErrTokenNotYetValid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unexpected validation error",
			authHeader:     "Bearer token",
			validateErr:    errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			signer := &mocks.MockTokenSigner{
				ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
					return tc.claims, tc.validateErr
				},
			}
			m := NewAuthMiddleware(signer)

			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername, _ = shared.GetUsername(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedUsername, gotUsername)
		})
	}
}

func TestAuthMiddlewareWithRealSigner(t *testing.T) {
	t.Parallel()

	signer := auth.MustNewTestTokenSigner()
	token, _, err := signer.GenerateToken(context.Background(), "alice")
	assert.NoError(t, err)

	var gotUsername string
	handler := NewAuthMiddleware(signer).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername, _ = shared.GetUsername(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", gotUsername)
}
