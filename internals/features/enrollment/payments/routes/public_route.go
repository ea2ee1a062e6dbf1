package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "akademiku_backend/internals/features/enrollment/payments/controller"
	ossHelper "akademiku_backend/internals/helpers/oss"
)

// PaymentRoutes endpoint pembayaran publik: upload bukti manual,
// Snap token, dan webhook Midtrans.
func PaymentRoutes(api fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	ctrl := paymentController.NewPaymentController(db, oss)

	api.Post("/enrollments/:id/payment", ctrl.ConfirmPayment) // upload bukti + konfirmasi
	api.Post("/enrollments/:id/snap", ctrl.CreateSnapToken)   // bayar online via Snap

	api.Post("/payments/midtrans/webhook", ctrl.HandleMidtransNotification)
	api.Get("/payments/midtrans/webhook", ctrl.MidtransWebhookPing)
}
