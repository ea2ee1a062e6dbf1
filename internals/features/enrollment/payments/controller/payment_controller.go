package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/enrollment/mail"
	paymentService "akademiku_backend/internals/features/enrollment/payments/service"
	rollService "akademiku_backend/internals/features/enrollment/rollnumber/service"
	settingModel "akademiku_backend/internals/features/enrollment/settings/model"
	"akademiku_backend/internals/features/enrollment/students/dto"
	studentModel "akademiku_backend/internals/features/enrollment/students/model"
	helper "akademiku_backend/internals/helpers"
	ossHelper "akademiku_backend/internals/helpers/oss"
)

/*
	========================================================
	  Controller

========================================================
*/
type PaymentController struct {
	DB    *gorm.DB
	OSS   *ossHelper.OSSService
	Alloc *rollService.Allocator
	Store *paymentService.GormStudentStore
}

func NewPaymentController(db *gorm.DB, oss *ossHelper.OSSService) *PaymentController {
	return &PaymentController{
		DB:    db,
		OSS:   oss,
		Alloc: rollService.NewAllocator(rollService.NewGormCounterStore(db)),
		Store: paymentService.NewGormStudentStore(db),
	}
}

// POST /api/public/enrollments/:id/payment
// Upload bukti transfer (screenshot), lalu jalankan konfirmasi:
// alokasi roll number + tandai completed dalam satu operasi logis.
func (ctrl *PaymentController) ConfirmPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	fh, err := c.FormFile("payment_screenshot")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Screenshot pembayaran wajib diunggah")
	}
	if fh.Size > ossHelper.MaxUploadSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file melebihi 5MB")
	}

	// 1) Bukti bayar harus durable dulu, baru alokasi roll number
	screenshotURL, err := ctrl.OSS.UploadAsWebP(c.UserContext(), fh, "students/payments")
	if err != nil {
		log.Println("[ERROR] Upload bukti bayar gagal:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Gagal mengunggah bukti pembayaran")
	}
	screenshotKey := ctrl.OSS.KeyFromPublicURL(screenshotURL)

	// 2) Jalur konfirmasi bersama (idempotent)
	result, err := paymentService.ConfirmPayment(c.UserContext(), ctrl.Store, ctrl.Alloc, id, paymentService.PaymentProof{
		ScreenshotURL: &screenshotURL,
		ScreenshotKey: &screenshotKey,
		Method:        studentModel.PaymentMethodManual,
	})
	if err != nil {
		_ = ctrl.OSS.DeleteByKey(c.UserContext(), screenshotKey)
		switch {
		case errors.Is(err, paymentService.ErrStudentNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
		case errors.Is(err, rollService.ErrAllocationConflict):
			// siswa tetap pending, bukti bayar aman — silakan coba lagi
			return fiber.NewError(fiber.StatusConflict, "Gagal menerbitkan roll number, silakan coba lagi")
		default:
			log.Println("[ERROR] Konfirmasi pembayaran gagal:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan, silakan coba lagi")
		}
	}

	if result.AlreadyCompleted {
		// double-submit: jangan ubah apa pun, screenshot baru tidak dipakai
		_ = ctrl.OSS.DeleteByKey(c.UserContext(), screenshotKey)
		return helper.Success(c, "Pembayaran sudah terkonfirmasi sebelumnya", dto.ToStudentResponse(result.Student))
	}

	student := result.Student
	go mail.SendEnrollmentConfirmation(student)

	return helper.Success(c, "Pembayaran terkonfirmasi", dto.ToStudentResponse(student))
}

// POST /api/public/enrollments/:id/snap
// Buat Snap token Midtrans untuk bayar online (alternatif QR manual).
func (ctrl *PaymentController) CreateSnapToken(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	student, err := ctrl.Store.GetStudent(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, paymentService.ErrStudentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if student.HasRollNumber() {
		return fiber.NewError(fiber.StatusConflict, "Pembayaran sudah terkonfirmasi")
	}

	// harga dari settings (fallback default)
	amount := 150
	var setting settingModel.WebsiteSettingModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&setting, "website_setting_key = ?", settingModel.WebsiteSettingKey).Error; err == nil {
		amount = setting.WebsiteSettingPaymentPrice
	}

	orderID := paymentService.BuildOrderID(student)
	token, redirectURL, err := paymentService.GenerateSnapToken(student, orderID, amount)
	if err != nil {
		log.Println("[ERROR] GenerateSnapToken failed:", err)
		return fiber.NewError(fiber.StatusBadGateway, "Gagal membuat token pembayaran")
	}

	if err := ctrl.Store.AttachOrderID(c.UserContext(), id, orderID); err != nil {
		log.Println("[ERROR] Gagal menyimpan order id:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan order pembayaran")
	}

	return helper.Success(c, "OK", fiber.Map{
		"order_id":     orderID,
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// POST /api/public/payments/midtrans/webhook
func (ctrl *PaymentController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	if err := paymentService.HandleEnrollmentStatusWebhook(c.UserContext(), ctrl.DB, ctrl.Alloc, body); err != nil {
		log.Println("[ERROR] Webhook gagal diproses:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Webhook gagal diproses")
	}

	return c.SendStatus(fiber.StatusOK)
}

// MidtransWebhookPing untuk cek konfigurasi notifikasi di dashboard Midtrans.
func (ctrl *PaymentController) MidtransWebhookPing(c *fiber.Ctx) error {
	log.Println("✅ Midtrans ping (GET) received")
	return c.Status(fiber.StatusOK).SendString("OK")
}
