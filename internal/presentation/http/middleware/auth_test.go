package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"github.com/kevmogita/duka-pos/internal/presentation/http/middleware"
	"github.com/kevmogita/duka-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TEST HELPERS =====

func newAuthRouter(jwtManager *utils.JWTManager, roles ...enum.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("", middleware.AuthMiddleware(jwtManager))
	if len(roles) > 0 {
		group.Use(middleware.RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString("username"),
		})
	})

	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ===== AUTHENTICATION =====

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	// GIVEN: a valid bearer token
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.GenerateToken(uuid.New(), "clerk1", "John Clerk", "clerk")
	require.NoError(t, err)

	router := newAuthRouter(jwtManager)

	// WHEN: the protected endpoint is called with it
	rec := doRequest(router, "Bearer "+token)

	// THEN: the request passes and the handler sees the identity
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clerk1")
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	router := newAuthRouter(jwtManager)

	otherManager := utils.NewJWTManager("other-secret", time.Hour)
	forged, err := otherManager.GenerateToken(uuid.New(), "clerk1", "John Clerk", "clerk")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic abc123"},
		{name: "bearer with no token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "token signed with another key", header: "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN: the protected endpoint is called
			rec := doRequest(router, tt.header)

			// THEN: the request is rejected as unauthorized
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

// ===== ROLE GATES =====

func TestRequireRole(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	tests := []struct {
		name     string
		role     string
		allowed  []enum.Role
		wantCode int
	}{
		{
			name:     "manager passes manager gate",
			role:     "manager",
			allowed:  []enum.Role{enum.RoleManager},
			wantCode: http.StatusOK,
		},
		{
			name:     "clerk blocked by manager gate",
			role:     "clerk",
			allowed:  []enum.Role{enum.RoleManager},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "employee passes stock gate",
			role:     "employee",
			allowed:  []enum.Role{enum.RoleManager, enum.RoleEmployee},
			wantCode: http.StatusOK,
		},
		{
			name:     "clerk blocked by stock gate",
			role:     "clerk",
			allowed:  []enum.Role{enum.RoleManager, enum.RoleEmployee},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN: a token carrying the role under test
			token, err := jwtManager.GenerateToken(uuid.New(), "someone", "Some One", tt.role)
			require.NoError(t, err)

			router := newAuthRouter(jwtManager, tt.allowed...)

			// WHEN: the gated endpoint is called
			rec := doRequest(router, "Bearer "+token)

			// THEN: the gate admits or blocks by role
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
