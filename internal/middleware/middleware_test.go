package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"user_id": c.GetUint("user_id"),
			"email":   c.GetString("email"),
		})
	})
	return router
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	router := authTestRouter()

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			"valid token passes",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": float64(42), "email": "user@example.com", "exp": exp,
			}),
			http.StatusOK,
		},
		{
			"missing header",
			"",
			http.StatusUnauthorized,
		},
		{
			"malformed header",
			"Token abc",
			http.StatusUnauthorized,
		},
		{
			"wrong signing key",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"user_id": float64(42), "email": "user@example.com", "exp": exp,
			}),
			http.StatusUnauthorized,
		},
		{
			// Validly signed but without user_id; must reject, not panic.
			"missing user_id claim",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"email": "user@example.com", "exp": exp,
			}),
			http.StatusUnauthorized,
		},
		{
			"missing email claim",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": float64(42), "exp": exp,
			}),
			http.StatusUnauthorized,
		},
		{
			"user_id of the wrong type",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": "42", "email": "user@example.com", "exp": exp,
			}),
			http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":42`)
				assert.Contains(t, w.Body.String(), "user@example.com")
			}
		})
	}
}

func TestCronAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/jobs/rotate", CronAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	t.Run("unconfigured secret", func(t *testing.T) {
		t.Setenv("CRON_BEARER_TOKEN", "")
		req, _ := http.NewRequest(http.MethodPost, "/jobs/rotate", nil)
		req.Header.Set("Authorization", "Bearer anything")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("wrong credential", func(t *testing.T) {
		t.Setenv("CRON_BEARER_TOKEN", "cron-secret")
		req, _ := http.NewRequest(http.MethodPost, "/jobs/rotate", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("matching credential", func(t *testing.T) {
		t.Setenv("CRON_BEARER_TOKEN", "cron-secret")
		req, _ := http.NewRequest(http.MethodPost, "/jobs/rotate", nil)
		req.Header.Set("Authorization", "Bearer cron-secret")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
