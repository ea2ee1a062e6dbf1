package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	rollService "akademiku_backend/internals/features/enrollment/rollnumber/service"
	"akademiku_backend/internals/features/enrollment/students/model"
)

/* ===================== GORM Implementation ===================== */

type GormStudentStore struct {
	DB *gorm.DB
}

func NewGormStudentStore(db *gorm.DB) *GormStudentStore {
	return &GormStudentStore{DB: db}
}

func (s *GormStudentStore) GetStudent(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var student model.StudentModel
	err := s.DB.WithContext(ctx).First(&student, "student_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *GormStudentStore) MarkCompleted(ctx context.Context, id uuid.UUID, upd CompletedUpdate) (bool, error) {
	values := map[string]interface{}{
		"student_payment_status": model.PaymentStatusCompleted,
		"student_roll_number":    upd.RollNumber,
		"student_payment_method": upd.Proof.Method,
		"student_payment_date":   upd.PaidAt,
	}
	if upd.Proof.ScreenshotURL != nil {
		values["student_payment_screenshot_url"] = upd.Proof.ScreenshotURL
		values["student_payment_screenshot_key"] = upd.Proof.ScreenshotKey
	}
	if upd.Proof.OrderID != nil {
		values["student_payment_order_id"] = upd.Proof.OrderID
	}

	res := s.DB.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_id = ? AND student_payment_status = ? AND student_roll_number IS NULL",
			id, model.PaymentStatusPending).
		Updates(values)
	if res.Error != nil {
		// unique index student_roll_number: duplikat yang lolos re-check
		// allocator ditangkap di sini sebagai benteng terakhir
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23505" {
			return false, rollService.ErrAllocationConflict
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByOrderID untuk webhook gateway: cari siswa dari order id Snap.
func (s *GormStudentStore) FindByOrderID(ctx context.Context, orderID string) (*model.StudentModel, error) {
	var student model.StudentModel
	err := s.DB.WithContext(ctx).
		First(&student, "student_payment_order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// AttachOrderID simpan order id Snap ke siswa (sebelum redirect pembayaran).
func (s *GormStudentStore) AttachOrderID(ctx context.Context, id uuid.UUID, orderID string) error {
	return s.DB.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_id = ?", id).
		Update("student_payment_order_id", orderID).Error
}
