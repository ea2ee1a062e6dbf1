package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	rollService "akademiku_backend/internals/features/enrollment/rollnumber/service"
	"akademiku_backend/internals/features/enrollment/students/model"
)

/* ===================== Errors ===================== */

var ErrStudentNotFound = errors.New("payment: siswa tidak ditemukan")

/* ===================== Contracts ===================== */

// RollAllocator: dipenuhi oleh rollnumber service.Allocator.
type RollAllocator interface {
	Allocate(ctx context.Context, classGrade string) (string, error)
}

// PaymentProof metadata bukti bayar yang menempel ke siswa saat konfirmasi.
type PaymentProof struct {
	ScreenshotURL *string
	ScreenshotKey *string
	Method        string // manual | midtrans
	OrderID       *string
}

// CompletedUpdate field yang ditulis ke siswa dalam SATU operasi logis:
// status completed + roll number + bukti bayar. Roll number hanya boleh
// terisi lewat jalur ini.
type CompletedUpdate struct {
	RollNumber string
	Proof      PaymentProof
	PaidAt     time.Time
}

// StudentStore akses siswa yang dibutuhkan workflow konfirmasi.
type StudentStore interface {
	GetStudent(ctx context.Context, id uuid.UUID) (*model.StudentModel, error)

	// MarkCompleted conditional: hanya berhasil kalau siswa masih pending
	// dan roll number masih kosong. ok=false berarti request lain sudah
	// menyelesaikan konfirmasi lebih dulu.
	MarkCompleted(ctx context.Context, id uuid.UUID, upd CompletedUpdate) (ok bool, err error)
}

/* ===================== Workflow ===================== */

type ConfirmResult struct {
	Student *model.StudentModel
	// AlreadyCompleted true kalau konfirmasi ini tidak mengubah apa pun
	// (double-submit). Roll number yang sudah ada tidak pernah diganti.
	AlreadyCompleted bool
}

// ConfirmPayment jalur tunggal konfirmasi pembayaran — dipakai baik oleh
// upload bukti manual maupun webhook gateway. Kontrak dengan allocator:
// tepat satu kali Allocate per siswa, hanya saat roll number masih kosong,
// dan siswa hanya ditandai completed kalau alokasi sukses.
func ConfirmPayment(ctx context.Context, store StudentStore, alloc RollAllocator, studentID uuid.UUID, proof PaymentProof) (*ConfirmResult, error) {
	student, err := store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// Guard idempotensi: submit kedua tidak boleh alokasi lagi.
	if student.HasRollNumber() {
		return &ConfirmResult{Student: student, AlreadyCompleted: true}, nil
	}

	roll, err := alloc.Allocate(ctx, student.StudentClassGrade)
	if err != nil {
		// siswa tetap pending; bukti bayar sudah durable, retry aman
		return nil, err
	}

	ok, err := store.MarkCompleted(ctx, studentID, CompletedUpdate{
		RollNumber: roll,
		Proof:      proof,
		PaidAt:     time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Request lain keburu menyelesaikan siswa yang sama. Counter sudah
		// terlanjur naik untuk roll yang tidak terpakai → gap yang ditoleransi.
		latest, err := store.GetStudent(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if latest.HasRollNumber() {
			return &ConfirmResult{Student: latest, AlreadyCompleted: true}, nil
		}
		return nil, rollService.ErrAllocationConflict
	}

	latest, err := store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{Student: latest}, nil
}
