package mail

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"akademiku_backend/internals/configs"
	"akademiku_backend/internals/features/enrollment/students/model"
)

// SendEnrollmentConfirmation kirim email berisi roll number setelah
// pembayaran terkonfirmasi. Best effort: dipanggil dari goroutine,
// kegagalan hanya dicatat — pendaftaran sudah selesai secara durable.
func SendEnrollmentConfirmation(student *model.StudentModel) {
	if configs.SendgridAPIKey == "" {
		log.Println("[INFO] SENDGRID_API_KEY kosong, lewati email konfirmasi")
		return
	}
	if !student.HasRollNumber() {
		log.Println("[ERROR] Email konfirmasi dipanggil tanpa roll number, lewati")
		return
	}

	siteName := configs.GetEnv("SITE_NAME", "Akademiku")
	fromEmail := configs.GetEnv("MAIL_FROM", "noreply@akademiku.id")

	from := sgmail.NewEmail(siteName, fromEmail)
	to := sgmail.NewEmail(student.StudentFullName, student.StudentEmail)
	subject := fmt.Sprintf("%s — Pendaftaran Berhasil", siteName)

	plain := fmt.Sprintf(
		"Halo %s,\n\nPendaftaran kamu sudah lengkap.\n\nRoll Number: %s\nKelas: %s\n\nSimpan informasi ini untuk keperluan selanjutnya.\n\nSalam,\nTim %s",
		student.StudentFullName, *student.StudentRollNumber, student.StudentClassGrade, siteName,
	)
	html := fmt.Sprintf(
		"<p>Halo %s,</p><p>Pendaftaran kamu sudah lengkap.</p><p><b>Roll Number: %s</b><br>Kelas: %s</p><p>Simpan informasi ini untuk keperluan selanjutnya.</p><p>Salam,<br>Tim %s</p>",
		student.StudentFullName, *student.StudentRollNumber, student.StudentClassGrade, siteName,
	)

	message := sgmail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(configs.SendgridAPIKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Println("[ERROR] Gagal kirim email konfirmasi:", err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("[ERROR] Sendgrid status %d: %s", resp.StatusCode, resp.Body)
		return
	}
	log.Println("✅ Email konfirmasi terkirim ke", student.StudentEmail)
}
