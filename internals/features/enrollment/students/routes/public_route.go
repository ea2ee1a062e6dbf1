package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "akademiku_backend/internals/features/enrollment/students/controller"
	ossHelper "akademiku_backend/internals/helpers/oss"
	"akademiku_backend/internals/middlewares"
)

// PublicStudentRoutes endpoint pendaftaran publik.
func PublicStudentRoutes(api fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := studentController.NewStudentController(db, oss)

	api.Post("/enrollments", middlewares.EnrollmentRateLimiter(), ctrl.CreateStudent) // submit form + foto
	api.Get("/enrollments/:id", ctrl.GetStudent)                                      // dipakai halaman pembayaran & konfirmasi
}
