package main

import (
	"log"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/database"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/role"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/server"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}
	log.Println("✅ Configuration validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed: ", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== SEED DEFAULT DATA ==========
	if err := role.SeedDefaultRoles(db); err != nil {
		log.Println("⚠️  Failed to seed roles:", err)
	} else {
		log.Println("✅ Default roles seeded")
	}

	// ========== BACKGROUND JOBS ==========
	// Stale reset tokens are already unusable past their stored expiry;
	// this sweep just keeps the columns clean.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			result := db.Model(&models.User{}).
				Where("reset_token <> '' AND reset_token_expires < ?", time.Now()).
				Updates(map[string]interface{}{
					"reset_token":         "",
					"reset_token_expires": nil,
				})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleared %d expired reset tokens", result.RowsAffected)
			}
		}
	}()

	// ========== START SERVER ==========
	app := server.New(db, cfg)

	log.Printf("🚀 Xtreme Panel API starting on %s", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled (session TTL %s)", cfg.SessionTokenTTL)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server: ", err)
	}
}
