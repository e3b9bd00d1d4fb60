package notification

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the notification edge endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/notify-lead", h.NotifyLead)
}

// RegisterFeedRoutes registers the websocket lead feed. The handler checks
// the token itself, so the group must not require an Authorization header.
func RegisterFeedRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/admin/ws", h.LeadFeed)
}
