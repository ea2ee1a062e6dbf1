package service

import (
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"akademiku_backend/internals/features/enrollment/students/model"
)

var SnapClient snap.Client

// Panggil saat bootstrap app (sandbox)
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// BuildOrderID order id unik per percobaan pembayaran siswa.
func BuildOrderID(student *model.StudentModel) string {
	return fmt.Sprintf("ENROLL-%s-%d", student.StudentID.String()[:8], time.Now().UnixNano())
}

// Buat Snap token + redirect_url untuk biaya pendaftaran.
func GenerateSnapToken(student *model.StudentModel, orderID string, amount int) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: student.StudentFullName,
			Email: student.StudentEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}

	return resp.Token, resp.RedirectURL, nil
}
