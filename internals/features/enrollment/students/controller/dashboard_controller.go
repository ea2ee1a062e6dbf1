package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/enrollment/students/dto"
	"akademiku_backend/internals/features/enrollment/students/model"
	helper "akademiku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type classCount struct {
	ClassGrade string `json:"class_grade" gorm:"column:student_class_grade"`
	Total      int64  `json:"total"`
}

// GET /api/a/dashboard
// Ringkasan untuk halaman dashboard admin.
func (ctrl *DashboardController) GetStats(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.UserContext())

	var total, pending, completed int64
	if err := db.Model(&model.StudentModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}
	if err := db.Model(&model.StudentModel{}).
		Where("student_payment_status = ?", model.PaymentStatusPending).
		Count(&pending).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung siswa pending")
	}
	completed = total - pending

	var perClass []classCount
	if err := db.Model(&model.StudentModel{}).
		Select("student_class_grade, COUNT(*) AS total").
		Group("student_class_grade").
		Order("student_class_grade").
		Scan(&perClass).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung per kelas")
	}

	var recent []model.StudentModel
	if err := db.
		Order("student_enrollment_date DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil pendaftar terbaru")
	}

	return helper.Success(c, "OK", fiber.Map{
		"total_students":     total,
		"pending_payments":   pending,
		"completed_payments": completed,
		"per_class":          perClass,
		"recent_enrollments": dto.ToStudentResponses(recent),
	})
}
