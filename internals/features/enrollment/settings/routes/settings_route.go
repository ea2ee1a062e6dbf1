package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingController "akademiku_backend/internals/features/enrollment/settings/controller"
)

// PublicSettingRoutes subset settings untuk form & halaman pembayaran.
func PublicSettingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := settingController.NewWebsiteSettingController(db)

	api.Get("/settings", ctrl.GetPublicSettings)
}

// AdminSettingRoutes kelola settings dari dashboard.
func AdminSettingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := settingController.NewWebsiteSettingController(db)

	api.Get("/settings", ctrl.GetSettings)
	api.Put("/settings", ctrl.UpdateSettings)
}
