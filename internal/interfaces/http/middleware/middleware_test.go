package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hala-ashour/Restaurant98/internal/domain/access"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

var secret = []byte("test-secret")

func newEngine(capability access.Capability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AuthRequired(secret, logger.Nop{}))
	r.GET("/write", Require(capability), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user": p.UserID, "role": p.Role})
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/write", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, p access.Principal, extra jwt.MapClaims) string {
	t.Helper()
	tok, err := SignToken(secret, p, extra)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthRequired(t *testing.T) {
	r := newEngine(access.WriteOrders)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid staff", token(t, access.Principal{UserID: "u1", Role: access.RoleStaff}, nil), http.StatusOK},
		{"unknown role", token(t, access.Principal{UserID: "u1", Role: "chef"}, nil), http.StatusUnauthorized},
		{"expired", token(t, access.Principal{UserID: "u1", Role: access.RoleAdmin}, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(r, tt.header).Code)
		})
	}
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	tok, err := SignToken([]byte("other"), access.Principal{UserID: "u1", Role: access.RoleAdmin}, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(newEngine(access.WriteOrders), "Bearer "+tok).Code)
}

func TestAuthRequired_SubjectFallback(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u9", "role": "manager"}).SignedString(secret)
	require.NoError(t, err)

	w := call(newEngine(access.WriteCatalog), "Bearer "+tok)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"u9"`)
}

func TestRequire_Forbidden(t *testing.T) {
	r := newEngine(access.WriteCatalog)

	w := call(r, token(t, access.Principal{UserID: "u1", Role: access.RoleStaff}, nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "catalog.write")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
