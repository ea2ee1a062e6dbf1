package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	counterModel "akademiku_backend/internals/features/enrollment/rollnumber/model"
	studentModel "akademiku_backend/internals/features/enrollment/students/model"
)

/* ===================== Store Contract ===================== */

// CounterStore: kontrak penyimpanan yang dikonsumsi allocator.
// Write counter bersifat conditional (optimistic) supaya dua request
// yang baca nilai sama tidak saling menimpa increment.
type CounterStore interface {
	// GetCounter baca sequence terakhir. found=false jika counter belum ada.
	GetCounter(ctx context.Context, key string) (last int, found bool, err error)

	// InsertCounter buat counter baru. ok=false jika key keburu dibuat request lain.
	InsertCounter(ctx context.Context, key string, last int) (ok bool, err error)

	// UpdateCounter tulis conditional: hanya jika nilai tersimpan masih prevLast.
	// ok=false artinya ada alokasi lain yang menang (lost update terdeteksi).
	UpdateCounter(ctx context.Context, key string, prevLast, newLast int) (ok bool, err error)

	// ListRollNumbersByPrefix untuk bootstrap: semua roll number siswa
	// yang diawali prefix kelas.
	ListRollNumbersByPrefix(ctx context.Context, prefix string) ([]string, error)

	// RollNumberExists cek exact-match, guard drift counter vs data.
	RollNumberExists(ctx context.Context, roll string) (bool, error)
}

/* ===================== GORM Implementation ===================== */

type GormCounterStore struct {
	DB *gorm.DB
}

func NewGormCounterStore(db *gorm.DB) *GormCounterStore {
	return &GormCounterStore{DB: db}
}

func (s *GormCounterStore) GetCounter(ctx context.Context, key string) (int, bool, error) {
	var m counterModel.RollNumberCounterModel
	err := s.DB.WithContext(ctx).
		Where("roll_number_counter_key = ?", key).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return m.RollNumberCounterLast, true, nil
}

func (s *GormCounterStore) InsertCounter(ctx context.Context, key string, last int) (bool, error) {
	m := counterModel.RollNumberCounterModel{
		RollNumberCounterKey:       key,
		RollNumberCounterLast:      last,
		RollNumberCounterUpdatedAt: time.Now(),
	}
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormCounterStore) UpdateCounter(ctx context.Context, key string, prevLast, newLast int) (bool, error) {
	res := s.DB.WithContext(ctx).
		Model(&counterModel.RollNumberCounterModel{}).
		Where("roll_number_counter_key = ? AND roll_number_counter_last = ?", key, prevLast).
		Updates(map[string]interface{}{
			"roll_number_counter_last":       newLast,
			"roll_number_counter_updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormCounterStore) ListRollNumbersByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var rolls []string
	err := s.DB.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_roll_number LIKE ?", prefix+"%").
		Pluck("student_roll_number", &rolls).Error
	if err != nil {
		return nil, err
	}
	return rolls, nil
}

func (s *GormCounterStore) RollNumberExists(ctx context.Context, roll string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_roll_number = ?", roll).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
