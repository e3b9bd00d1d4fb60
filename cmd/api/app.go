package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"leaddesk/internal/config"
	"leaddesk/internal/domain/admin"
	"leaddesk/internal/domain/intake"
	"leaddesk/internal/domain/lead"
	"leaddesk/internal/domain/notification"
	"leaddesk/internal/domain/upload"
	"leaddesk/internal/middleware"
	jwtsvc "leaddesk/internal/pkg/jwt"
)

// app holds the wired HTTP surface and the background pieces main must run
// and stop.
type app struct {
	router   *gin.Engine
	sessions *intake.SessionStore
	hub      *notification.Hub
	jwt      *jwtsvc.Service
}

func newApp(cfg *config.Config, log *zap.Logger, db *gorm.DB) *app {
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	// Notifications: log every lead, push to dashboards, and email when configured.
	hub := notification.NewHub()
	notifiers := notification.Fanout{
		notification.NewMailLog(cfg.NotifyTo, log),
		hub,
	}
	if cfg.EmailJSEnabled() {
		notifiers = append(notifiers, notification.NewEmailJS(notification.EmailJSConfig{
			Endpoint:   cfg.EmailJSEndpoint,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		}, nil))
		log.Info("emailjs notifications enabled")
	}

	uploadService := upload.NewService(upload.NewRepository(db), cfg.UploadsDir, cfg.MaxUploadBytes)
	uploadHandler := upload.NewHandler(uploadService)

	intakeRepo := intake.NewRepository(db)
	sessions := intake.NewSessionStore(cfg.IntakeSessionTTL, intake.SessionLimits{
		MaxSessions:    cfg.MaxIntakeSessions,
		MaxStagedBytes: cfg.MaxStagedBytes,
	})
	pipeline := intake.NewPipeline(uploadService, intakeRepo, notifiers, cfg.NotifyTimeout, log)
	intakeService := intake.NewService(sessions, pipeline, intakeRepo, intake.DefaultCatalog())
	intakeHandler := intake.NewHandler(intakeService, cfg.MaxUploadBytes, log)

	leadService := lead.NewService(lead.NewRepository(db), notifiers, cfg.NotifyTimeout, log)
	leadHandler := lead.NewHandler(leadService)

	notificationHandler := notification.NewHandler(notifiers, hub, j, cfg.NotifyTimeout, log)

	adminService := admin.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, j)
	adminHandler := admin.NewAuthHandler(adminService, log)
	if !adminService.Enabled() {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set; admin login disabled")
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		intake.RegisterPublicRoutes(v1, intakeHandler)
		lead.RegisterPublicRoutes(v1, leadHandler)
		notification.RegisterPublicRoutes(v1, notificationHandler)
		notification.RegisterFeedRoutes(v1, notificationHandler)
		admin.RegisterPublicRoutes(v1, adminHandler)

		// admin
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			admin.RegisterRoutes(adminGroup, adminHandler)
			intake.RegisterAdminRoutes(adminGroup, intakeHandler)
			lead.RegisterAdminRoutes(adminGroup, leadHandler)
			upload.RegisterAdminRoutes(adminGroup, uploadHandler)
		}
	}

	return &app{router: r, sessions: sessions, hub: hub, jwt: j}
}
