package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/constants"
	"akademiku_backend/internals/features/enrollment/students/dto"
	"akademiku_backend/internals/features/enrollment/students/model"
	helper "akademiku_backend/internals/helpers"
)

/*
	========================================================
	  Controller (admin)

========================================================
*/
type StudentAdminController struct {
	DB *gorm.DB
}

func NewStudentAdminController(db *gorm.DB) *StudentAdminController {
	return &StudentAdminController{DB: db}
}

// GET /api/a/students?class_grade=&payment_status=&page=&per_page=
// Daftar siswa untuk dashboard admin, urut roll number.
func (ctrl *StudentAdminController) ListStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})

	if grade := strings.TrimSpace(c.Query("class_grade")); grade != "" {
		if !constants.IsValidClassGrade(grade) {
			return fiber.NewError(fiber.StatusBadRequest, "class_grade tidak valid")
		}
		q = q.Where("student_class_grade = ?", grade)
	}
	if status := strings.TrimSpace(c.Query("payment_status")); status != "" {
		if status != model.PaymentStatusPending && status != model.PaymentStatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "payment_status tidak valid")
		}
		q = q.Where("student_payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var students []model.StudentModel
	if err := q.
		Order("student_roll_number ASC NULLS LAST").
		Order("student_enrollment_date ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	return helper.Success(c, "OK", fiber.Map{
		"students":   dto.ToStudentResponses(students),
		"pagination": helper.BuildPagination(paging, total, len(students)),
	})
}

// GET /api/a/students/:id
func (ctrl *StudentAdminController) GetStudentByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var student model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Success(c, "OK", dto.ToStudentResponse(&student))
}
