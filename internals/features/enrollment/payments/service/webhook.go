package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"akademiku_backend/internals/features/enrollment/mail"
	"akademiku_backend/internals/features/enrollment/students/model"
)

// HandleEnrollmentStatusWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Settlement menjalankan jalur konfirmasi yang sama dengan upload bukti manual
// (guard idempotensi berlaku — notifikasi ulang tidak alokasi roll number lagi).
func HandleEnrollmentStatusWebhook(ctx context.Context, db *gorm.DB, alloc RollAllocator, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)

	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	store := NewGormStudentStore(db)

	student, err := store.FindByOrderID(ctx, orderID)
	if err != nil {
		log.Println("[ERROR] Siswa untuk order tidak ditemukan:", err)
		return fmt.Errorf("student with order_id %s not found", orderID)
	}

	switch status {
	case "capture", "settlement":
		result, err := ConfirmPayment(ctx, store, alloc, student.StudentID, PaymentProof{
			Method:  model.PaymentMethodMidtrans,
			OrderID: &orderID,
		})
		if err != nil {
			log.Println("[ERROR] Konfirmasi via webhook gagal:", err)
			return err
		}
		if result.AlreadyCompleted {
			log.Println("[INFO] Notifikasi ulang, siswa sudah completed:", orderID)
		} else {
			go mail.SendEnrollmentConfirmation(result.Student)
		}

	case "expire", "cancel", "deny":
		// siswa tetap pending, aman dicoba bayar ulang
		log.Println("[INFO] Pembayaran tidak selesai:", status)

	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	return nil
}
