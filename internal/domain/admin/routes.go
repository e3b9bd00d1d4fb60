package admin

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the login endpoint, which must stay outside
// the authenticated admin group.
func RegisterPublicRoutes(r *gin.RouterGroup, h *AuthHandler) {
	r.POST("/admin/auth/login", h.Login)
}

// RegisterRoutes registers routes for an authenticated admin group.
func RegisterRoutes(r *gin.RouterGroup, h *AuthHandler) {
	r.GET("/auth/me", h.GetMe)
}
