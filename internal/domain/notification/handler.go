package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	jwtsvc "leaddesk/internal/pkg/jwt"
	"leaddesk/internal/pkg/sanitize"
	"leaddesk/internal/pkg/validator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards authenticate with a token, so any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler exposes the notification edge endpoint and the live lead feed.
type Handler struct {
	notifier Notifier
	hub      *Hub
	jwt      *jwtsvc.Service
	timeout  time.Duration
	log      *zap.Logger
}

func NewHandler(notifier Notifier, hub *Hub, jwt *jwtsvc.Service, timeout time.Duration, log *zap.Logger) *Handler {
	return &Handler{notifier: notifier, hub: hub, jwt: jwt, timeout: timeout, log: log}
}

// NotifyLead handles POST /api/v1/notify-lead
func (h *Handler) NotifyLead(c *gin.Context) {
	var req NotifyLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid notification payload", "details": errs})
		return
	}

	notice := Notice{
		LeadType:     req.LeadType,
		Name:         sanitize.Text(req.Name),
		Email:        req.Email,
		BusinessName: sanitize.Text(req.BusinessName),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.notifier.Notify(ctx, notice); err != nil {
		h.log.Error("process notification", zap.String("lead_type", string(req.LeadType)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification logged"})
}

// LeadFeed handles GET /api/v1/admin/ws?token=JWT
//
// Browsers cannot set headers on websocket requests, so the admin token
// travels in the query string.
func (h *Handler) LeadFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Token is required"}})
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil || claims.Role != "admin" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Invalid token"}})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.log.Info("lead feed connected", zap.String("email", claims.Email))
	h.hub.ServeWS(conn)
	h.log.Info("lead feed disconnected", zap.String("email", claims.Email))
}
