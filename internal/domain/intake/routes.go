package intake

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the visitor-facing wizard routes.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	intake := r.Group("/intake")
	{
		intake.GET("/catalog", h.GetCatalog)
		intake.POST("/sessions", h.StartSession)
		intake.GET("/sessions/:id", h.GetSession)
		intake.PATCH("/sessions/:id/fields", h.UpdateFields)
		intake.POST("/sessions/:id/services/:code", h.ToggleService)
		intake.POST("/sessions/:id/advance", h.Advance)
		intake.POST("/sessions/:id/retreat", h.Retreat)
		intake.POST("/sessions/:id/files", h.AddFiles)
		intake.DELETE("/sessions/:id/files/:index", h.RemoveFile)
		intake.POST("/sessions/:id/submit", h.Submit)
	}
}

// RegisterAdminRoutes registers intake review routes under the admin group.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/intakes", h.ListIntakes)
	r.GET("/intakes/:id", h.GetIntake)
}
