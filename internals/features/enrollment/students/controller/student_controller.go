package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/enrollment/students/dto"
	"akademiku_backend/internals/features/enrollment/students/model"
	helper "akademiku_backend/internals/helpers"
	ossHelper "akademiku_backend/internals/helpers/oss"
)

/*
	========================================================
	  Controller (public)

========================================================
*/
type StudentController struct {
	DB       *gorm.DB
	OSS      *ossHelper.OSSService
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB, oss *ossHelper.OSSService) *StudentController {
	return &StudentController{
		DB:       db,
		OSS:      oss,
		Validate: validator.New(),
	}
}

// POST /api/public/enrollments
// Terima form pendaftaran + foto siswa, buat record berstatus pending.
// Roll number BELUM dibuat di sini — baru saat konfirmasi pembayaran.
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var body dto.CreateStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	fh, err := c.FormFile("student_photo")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Foto siswa wajib diunggah")
	}
	if fh.Size > ossHelper.MaxUploadSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran foto melebihi 5MB")
	}

	// 1) Upload foto dulu — kalau gagal, tidak ada record yang dibuat
	photoURL, err := ctrl.OSS.UploadAsWebP(c.UserContext(), fh, "students/photos")
	if err != nil {
		log.Println("[ERROR] Upload foto siswa gagal:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Gagal mengunggah foto siswa")
	}
	photoKey := ctrl.OSS.KeyFromPublicURL(photoURL)

	// 2) Insert record pending
	student := body.ToModel()
	student.StudentPhotoURL = &photoURL
	student.StudentPhotoKey = &photoKey

	if err := ctrl.DB.WithContext(c.UserContext()).Create(student).Error; err != nil {
		log.Println("[ERROR] Gagal menyimpan pendaftaran:", err)
		// best-effort: hapus foto yang sudah terlanjur naik
		_ = ctrl.OSS.DeleteByKey(c.UserContext(), photoKey)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan pendaftaran")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pendaftaran diterima, lanjut ke pembayaran", dto.ToStudentResponse(student))
}

// GET /api/public/enrollments/:id
// Dipakai halaman pembayaran & konfirmasi.
func (ctrl *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var student model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Success(c, "OK", dto.ToStudentResponse(&student))
}
