package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-restaurant-ordering/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *helpers.TokenHelper, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/admin", Authentication(tokens), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	return r
}

func TestAuthentication(t *testing.T) {
	tokens := helpers.NewTokenHelper("secret", time.Hour)
	admin, _, err := tokens.GenerateAllTokens("a@b.c", "A", "u1", "ADMIN")
	require.NoError(t, err)
	staff, _, err := tokens.GenerateAllTokens("s@b.c", "S", "u2", "STAFF")
	require.NoError(t, err)

	r := newRouter(tokens, "ADMIN")

	cases := []struct {
		name   string
		header string
		value  string
		query  string
		want   int
	}{
		{"missing", "", "", "", http.StatusUnauthorized},
		{"token header", "token", admin, "", http.StatusOK},
		{"bearer", "Authorization", "Bearer " + admin, "", http.StatusOK},
		{"query", "", "", "?token=" + admin, http.StatusOK},
		{"bad token", "token", "garbage", "", http.StatusUnauthorized},
		{"wrong role", "token", staff, "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestOptionalAuthentication(t *testing.T) {
	tokens := helpers.NewTokenHelper("secret", time.Hour)
	admin, _, err := tokens.GenerateAllTokens("a@b.c", "A", "u1", "ADMIN")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", OptionalAuthentication(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_role"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("token", admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "ADMIN", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}
