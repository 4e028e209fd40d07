package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageut/scheduler-backend/internal/auth/domain"
	"github.com/savageut/scheduler-backend/internal/auth/middleware"
	"github.com/savageut/scheduler-backend/internal/auth/repository"
	"github.com/savageut/scheduler-backend/internal/auth/service"
)

func setupRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(repository.NewInMemUserStore(), "test-secret", time.Hour)
	handler := New(auth)

	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterPublic(api.Group("/auth"), func(c *gin.Context) { c.Next() })

	protected := api.Group("/auth")
	protected.Use(middleware.JWTAuthMiddleware(auth))
	handler.Register(protected)

	return r, auth
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func adminToken(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	ctx := context.Background()
	_, err := auth.CreateUser(ctx, "boss", "boss@example.com", "longenoughpw", domain.RoleAdmin)
	require.NoError(t, err)
	token, _, err := auth.Login(ctx, "boss", "longenoughpw")
	require.NoError(t, err)
	return token
}

func TestLoginEndpoint(t *testing.T) {
	r, auth := setupRouter(t)
	_, err := auth.CreateUser(context.Background(), "dispatch", "d@example.com", "longenoughpw", domain.RoleViewer)
	require.NoError(t, err)

	t.Run("success returns token", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/api/v1/auth/login", "", map[string]string{
			"username": "dispatch", "password": "longenoughpw",
		})
		require.Equal(t, nethttp.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "token")
		assert.NotContains(t, rr.Body.String(), "password_hash")
	})

	t.Run("bad password", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/api/v1/auth/login", "", map[string]string{
			"username": "dispatch", "password": "wrong",
		})
		assert.Equal(t, nethttp.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/api/v1/auth/login", "", map[string]string{"username": "dispatch"})
		assert.Equal(t, nethttp.StatusBadRequest, rr.Code)
	})
}

func TestUserAdminEndpoints(t *testing.T) {
	r, auth := setupRouter(t)
	token := adminToken(t, auth)

	t.Run("invite and register flow", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/api/v1/auth/users/invitations", token, map[string]string{
			"email": "new@example.com", "role": domain.RoleProjectManager,
		})
		require.Equal(t, nethttp.StatusCreated, rr.Code)

		var resp struct {
			Invitation domain.Invitation `json:"invitation"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Invitation.Code)

		rr = doJSON(t, r, "POST", "/api/v1/auth/register", "", map[string]string{
			"code": resp.Invitation.Code, "username": "newhire", "password": "longenoughpw",
		})
		assert.Equal(t, nethttp.StatusCreated, rr.Code)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/api/v1/auth/users/invitations", token, map[string]string{
			"email": "x@example.com", "role": "superuser",
		})
		assert.Equal(t, nethttp.StatusBadRequest, rr.Code)
	})

	t.Run("non-admin cannot manage users", func(t *testing.T) {
		_, err := auth.CreateUser(context.Background(), "pm", "pm@example.com", "longenoughpw", domain.RoleProjectManager)
		require.NoError(t, err)
		pmToken, _, err := auth.Login(context.Background(), "pm", "longenoughpw")
		require.NoError(t, err)

		rr := doJSON(t, r, "GET", "/api/v1/auth/users", pmToken, nil)
		assert.Equal(t, nethttp.StatusForbidden, rr.Code)
	})

	t.Run("list users", func(t *testing.T) {
		rr := doJSON(t, r, "GET", "/api/v1/auth/users", token, nil)
		require.Equal(t, nethttp.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "boss")
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		users, err := auth.ListUsers(context.Background())
		require.NoError(t, err)

		var target int64
		for _, u := range users {
			if u.Username == "pm" {
				target = u.ID
			}
		}
		require.NotZero(t, target)

		rr := doJSON(t, r, "PATCH",
			"/api/v1/auth/users/"+itoa(target)+"/active", token, map[string]bool{"active": false})
		assert.Equal(t, nethttp.StatusOK, rr.Code)

		_, _, err = auth.Login(context.Background(), "pm", "longenoughpw")
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})

	t.Run("admin cannot deactivate itself", func(t *testing.T) {
		users, err := auth.ListUsers(context.Background())
		require.NoError(t, err)

		var self int64
		for _, u := range users {
			if u.Username == "boss" {
				self = u.ID
			}
		}

		rr := doJSON(t, r, "PATCH",
			"/api/v1/auth/users/"+itoa(self)+"/active", token, map[string]bool{"active": false})
		assert.Equal(t, nethttp.StatusBadRequest, rr.Code)
	})
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
