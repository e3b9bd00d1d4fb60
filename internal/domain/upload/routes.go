package upload

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers attachment routes under the admin group.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/uploads/:id", h.GetByID)
	r.GET("/files/*path", h.Download)
}
