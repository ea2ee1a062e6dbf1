package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rollService "akademiku_backend/internals/features/enrollment/rollnumber/service"
	"akademiku_backend/internals/features/enrollment/students/model"
)

/* ===================== Fakes ===================== */

type fakeAllocator struct {
	calls int
	roll  string
	err   error
}

func (f *fakeAllocator) Allocate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.roll, nil
}

type fakeStudentStore struct {
	students map[uuid.UUID]*model.StudentModel

	// dipanggil sebelum MarkCompleted, untuk simulasi request lain menang
	beforeMark func()
	markErr    error
}

func newFakeStudentStore(students ...*model.StudentModel) *fakeStudentStore {
	m := make(map[uuid.UUID]*model.StudentModel)
	for _, s := range students {
		m[s.StudentID] = s
	}
	return &fakeStudentStore{students: m}
}

func (f *fakeStudentStore) GetStudent(_ context.Context, id uuid.UUID) (*model.StudentModel, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) MarkCompleted(_ context.Context, id uuid.UUID, upd CompletedUpdate) (bool, error) {
	if f.beforeMark != nil {
		f.beforeMark()
		f.beforeMark = nil
	}
	if f.markErr != nil {
		return false, f.markErr
	}
	s, ok := f.students[id]
	if !ok {
		return false, nil
	}
	// semantik conditional sama dengan implementasi gorm
	if s.StudentPaymentStatus != model.PaymentStatusPending || s.HasRollNumber() {
		return false, nil
	}
	s.StudentPaymentStatus = model.PaymentStatusCompleted
	s.StudentRollNumber = &upd.RollNumber
	s.StudentPaymentScreenshotURL = upd.Proof.ScreenshotURL
	s.StudentPaymentOrderID = upd.Proof.OrderID
	method := upd.Proof.Method
	s.StudentPaymentMethod = &method
	paidAt := upd.PaidAt
	s.StudentPaymentDate = &paidAt
	return true, nil
}

func pendingStudent(grade string) *model.StudentModel {
	return &model.StudentModel{
		StudentID:            uuid.New(),
		StudentFullName:      "Siswa Uji",
		StudentEmail:         "siswa@test.test",
		StudentClassGrade:    grade,
		StudentPaymentStatus: model.PaymentStatusPending,
	}
}

/* ===================== Tests ===================== */

func TestConfirmPayment_HappyPath(t *testing.T) {
	student := pendingStudent("7")
	store := newFakeStudentStore(student)
	alloc := &fakeAllocator{roll: "17001"}

	url := "https://cdn.test/bukti.webp"
	result, err := ConfirmPayment(context.Background(), store, alloc, student.StudentID, PaymentProof{
		ScreenshotURL: &url,
		Method:        model.PaymentMethodManual,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, alloc.calls)
	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, model.PaymentStatusCompleted, result.Student.StudentPaymentStatus)
	require.NotNil(t, result.Student.StudentRollNumber)
	assert.Equal(t, "17001", *result.Student.StudentRollNumber)
	require.NotNil(t, result.Student.StudentPaymentDate)
}

func TestConfirmPayment_IdempotentSecondCall(t *testing.T) {
	// Konfirmasi kedua untuk siswa yang sama: allocator TIDAK boleh
	// dipanggil lagi dan roll number tidak boleh berubah.
	student := pendingStudent("7")
	roll := "17042"
	student.StudentRollNumber = &roll
	student.StudentPaymentStatus = model.PaymentStatusCompleted

	store := newFakeStudentStore(student)
	alloc := &fakeAllocator{roll: "17043"}

	result, err := ConfirmPayment(context.Background(), store, alloc, student.StudentID, PaymentProof{
		Method: model.PaymentMethodManual,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, alloc.calls)
	assert.True(t, result.AlreadyCompleted)
	assert.Equal(t, "17042", *result.Student.StudentRollNumber)
}

func TestConfirmPayment_StudentNotFound(t *testing.T) {
	store := newFakeStudentStore()
	alloc := &fakeAllocator{roll: "17001"}

	_, err := ConfirmPayment(context.Background(), store, alloc, uuid.New(), PaymentProof{})
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Equal(t, 0, alloc.calls)
}

func TestConfirmPayment_AllocatorFailureKeepsPending(t *testing.T) {
	student := pendingStudent("7")
	store := newFakeStudentStore(student)
	alloc := &fakeAllocator{err: rollService.ErrAllocationConflict}

	_, err := ConfirmPayment(context.Background(), store, alloc, student.StudentID, PaymentProof{})
	assert.ErrorIs(t, err, rollService.ErrAllocationConflict)

	// siswa tidak boleh completed kalau alokasi gagal
	latest, _ := store.GetStudent(context.Background(), student.StudentID)
	assert.Equal(t, model.PaymentStatusPending, latest.StudentPaymentStatus)
	assert.Nil(t, latest.StudentRollNumber)
}

func TestConfirmPayment_TransientStoreErrorPropagates(t *testing.T) {
	student := pendingStudent("7")
	store := newFakeStudentStore(student)
	storeErr := errors.New("db down")
	store.markErr = storeErr
	alloc := &fakeAllocator{roll: "17001"}

	_, err := ConfirmPayment(context.Background(), store, alloc, student.StudentID, PaymentProof{})
	assert.ErrorIs(t, err, storeErr)
}

func TestConfirmPayment_RaceLoserReturnsWinnerResult(t *testing.T) {
	// Dua konfirmasi paralel (mis. upload manual + webhook): yang kalah
	// conditional update harus mengembalikan hasil pemenang, bukan error,
	// dan tidak menimpa roll number pemenang.
	student := pendingStudent("7")
	store := newFakeStudentStore(student)
	alloc := &fakeAllocator{roll: "17002"}

	store.beforeMark = func() {
		winner := "17001"
		s := store.students[student.StudentID]
		s.StudentPaymentStatus = model.PaymentStatusCompleted
		s.StudentRollNumber = &winner
	}

	result, err := ConfirmPayment(context.Background(), store, alloc, student.StudentID, PaymentProof{
		Method: model.PaymentMethodManual,
	})
	require.NoError(t, err)

	assert.True(t, result.AlreadyCompleted)
	assert.Equal(t, "17001", *result.Student.StudentRollNumber)
	assert.Equal(t, 1, alloc.calls) // alokasi terjadi, nomornya jadi gap yang ditoleransi
}
