package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/metrics"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/services"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *models.User, string) {
	t.Helper()
	store := database.NewMemoryStore()
	tokens := services.NewTokenService(store, []byte("secret"))
	users := services.NewUserService(store, tokens, services.UserServiceConfig{
		BcryptCost:        bcrypt.MinCost,
		PasswordMinLength: 6,
	})
	user, token, err := users.SignUp(context.Background(), "mw@example.com", "password1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email": CurrentUser(c).Email,
			"token": CurrentToken(c),
		})
	})
	return r, user, token
}

func TestAuthMiddleware(t *testing.T) {
	r, user, token := newAuthRouter(t)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeader, token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"email":%q,"token":%q}`, user.Email, token), w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.AuthFailures.WithLabelValues(metrics.StageToken))

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeader, token+"x")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuthFailures.WithLabelValues(metrics.StageToken)))
	})
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", fmt.Errorf("%w: text must not be empty", services.ErrValidation), http.StatusBadRequest, `{"error":"validation failed: text must not be empty"}`},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized, `{}`},
		{"not found", services.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { RespondError(c, tt.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/todos/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/todos/:id", "204")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/todos/1", "/todos/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}
