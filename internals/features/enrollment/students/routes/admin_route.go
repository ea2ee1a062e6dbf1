package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "akademiku_backend/internals/features/enrollment/students/controller"
)

// AdminStudentRoutes endpoint dashboard admin (group sudah dijaga JWT+role).
func AdminStudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentAdminController(db)
	dashCtrl := studentController.NewDashboardController(db)

	api.Get("/students", ctrl.ListStudents)
	api.Get("/students/:id", ctrl.GetStudentByID)
	api.Get("/dashboard", dashCtrl.GetStats)
}
