package server

import (
	"log"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/audit"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/auth"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/mailer"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/role"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/store"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/subscription"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/token"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/usage"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/user"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	st := store.New(db)
	tokens := token.New(cfg.JWTSecret, cfg.SessionTokenTTL)
	authSvc := auth.NewService(st, tokens, mailer.FromConfig(cfg), cfg)
	authH := auth.NewHandler(authSvc)

	userH := user.NewHandler(db, cfg.BcryptCost)
	roleH := role.NewHandler(db)
	subH := subscription.NewHandler(db)
	usageH := usage.NewHandler(db)

	archiver := utils.NewLocalArchiver(cfg.ExportDir)
	if cfg.UseS3 && cfg.S3Bucket != "" && cfg.S3Region != "" {
		if s3Archiver, err := utils.NewS3Archiver(cfg.S3Bucket, cfg.S3Region); err != nil {
			log.Println("⚠️  S3 initialization failed, archiving exports locally:", err)
		} else {
			archiver = s3Archiver
		}
	}
	auditH := audit.NewHandler(db, archiver)

	// Health check; reports the caller's name when a valid token is sent.
	app.Get("/health", auth.OptionalAuth(tokens), func(c *fiber.Ctx) error {
		payload := fiber.Map{
			"status":  "ok",
			"message": "Xtreme Panel API is running",
		}
		if identity := auth.IdentityFromCtx(c); identity != nil {
			payload["user"] = identity.Username
		}
		return c.JSON(payload)
	})

	api := app.Group("/api")

	// ==========================================
	// AUTH
	// ==========================================
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authH.Register)
	authGroup.Post("/login", authH.Login)
	// Logout only logs the event; the token stays valid until expiry.
	authGroup.Post("/logout", auth.Authenticated(tokens), authH.Logout)
	authGroup.Get("/me", auth.Authenticated(tokens), authH.Me)
	authGroup.Post("/forgot-password", authH.ForgotPassword)
	authGroup.Post("/reset-password", authH.ResetPassword)

	// ==========================================
	// USER MANAGEMENT (Admin only)
	// ==========================================
	userGroup := api.Group("/users")
	userGroup.Use(auth.Authenticated(tokens))
	userGroup.Use(auth.RequireRoles(models.RoleAdmin))
	userGroup.Get("/", userH.List)
	userGroup.Get("/:id", userH.Get)
	userGroup.Post("/", userH.Create)
	userGroup.Put("/:id", userH.Update)
	userGroup.Delete("/:id", userH.Delete)

	// ==========================================
	// ROLES
	// ==========================================
	api.Get("/roles", auth.Authenticated(tokens), roleH.List)

	// ==========================================
	// SUBSCRIPTIONS
	// ==========================================
	subGroup := api.Group("/subscriptions")
	subGroup.Use(auth.Authenticated(tokens))
	subGroup.Get("/", subH.List)
	subGroup.Get("/expiring", auth.RequireRoles(models.RoleAdmin), subH.Expiring)
	subGroup.Get("/user/:userId", subH.ByUser)
	subGroup.Post("/", auth.RequireRoles(models.RoleAdmin, models.RoleReseller), subH.Create)
	subGroup.Put("/:id", auth.RequireRoles(models.RoleAdmin, models.RoleReseller), subH.Update)

	// ==========================================
	// USAGE TRACKING
	// ==========================================
	usageGroup := api.Group("/usage")
	usageGroup.Use(auth.Authenticated(tokens))
	usageGroup.Post("/", usageH.Log)
	usageGroup.Get("/statistics", auth.RequireRoles(models.RoleAdmin), usageH.Statistics)
	usageGroup.Get("/user/:userId", usageH.UserLogs)

	// ==========================================
	// AUDIT TRAIL (Admin only)
	// ==========================================
	auditGroup := api.Group("/audit")
	auditGroup.Use(auth.Authenticated(tokens))
	auditGroup.Use(auth.RequireRoles(models.RoleAdmin))
	auditGroup.Get("/", auditH.List)
	auditGroup.Post("/", auditH.Append)
	auditGroup.Get("/export", auditH.Export)
}
