package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"leaddesk/internal/pkg/jwt"
)

func newProtectedRouter(svc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(svc), AdminOnly())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email"), "role": c.GetString("role")})
	})
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidAdminToken(t *testing.T) {
	svc := jwt.New("test-secret-123", time.Hour)
	token, _ := svc.GenerateToken("owner@books.test", RoleAdmin)

	w := doGet(newProtectedRouter(svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "owner@books.test")
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := jwt.New("test-secret-123", time.Hour)
	router := newProtectedRouter(svc)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer   ").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer invalid-jwt-here").Code)
}

func TestAdminOnly_WrongRole(t *testing.T) {
	svc := jwt.New("test-secret-123", time.Hour)
	token, _ := svc.GenerateToken("visitor@books.test", "viewer")

	w := doGet(newProtectedRouter(svc), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://books.example"}))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://books.example")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://books.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
