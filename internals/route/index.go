// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/configs"
	paymentRoutes "akademiku_backend/internals/features/enrollment/payments/routes"
	settingRoutes "akademiku_backend/internals/features/enrollment/settings/routes"
	studentRoutes "akademiku_backend/internals/features/enrollment/students/routes"
	ossHelper "akademiku_backend/internals/helpers/oss"
	authMiddleware "akademiku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// OSS dipakai foto siswa + bukti bayar; tanpa ini upload mustahil
	oss, err := ossHelper.NewOSSServiceFromEnv("akademiku")
	if err != nil {
		log.Fatalf("❌ OSS init gagal: %v", err)
	}

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	studentRoutes.PublicStudentRoutes(public, db, oss)
	paymentRoutes.PaymentRoutes(public, db, oss)
	settingRoutes.PublicSettingRoutes(public, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.IsAdmin(),
	)

	studentRoutes.AdminStudentRoutes(admin, db)
	settingRoutes.AdminSettingRoutes(admin, db)
}
