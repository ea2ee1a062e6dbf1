package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ===================== Fake Store ===================== */

// fakeStore: CounterStore in-memory dengan semantik conditional write
// yang sama seperti implementasi gorm. afterGet dipanggil setelah
// GetCounter (di luar lock) untuk mensimulasikan interleaving.
type fakeStore struct {
	mu       sync.Mutex
	counters map[string]int
	rolls    map[string]bool

	afterGet func(key string)

	getErr    error
	insertErr error
	updateErr error
	listErr   error
	existsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counters: make(map[string]int),
		rolls:    make(map[string]bool),
	}
}

func (f *fakeStore) GetCounter(_ context.Context, key string) (int, bool, error) {
	if f.getErr != nil {
		return 0, false, f.getErr
	}
	f.mu.Lock()
	last, found := f.counters[key]
	f.mu.Unlock()

	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil // sekali saja, hindari rekursi tak terbatas
		hook(key)
	}
	return last, found, nil
}

func (f *fakeStore) InsertCounter(_ context.Context, key string, last int) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.counters[key]; exists {
		return false, nil
	}
	f.counters[key] = last
	return true, nil
}

func (f *fakeStore) UpdateCounter(_ context.Context, key string, prevLast, newLast int) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, exists := f.counters[key]
	if !exists || cur != prevLast {
		return false, nil
	}
	f.counters[key] = newLast
	return true, nil
}

func (f *fakeStore) ListRollNumbersByPrefix(_ context.Context, prefix string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for roll := range f.rolls {
		if strings.HasPrefix(roll, prefix) {
			out = append(out, roll)
		}
	}
	return out, nil
}

func (f *fakeStore) RollNumberExists(_ context.Context, roll string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rolls[roll], nil
}

func (f *fakeStore) addRoll(roll string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rolls[roll] = true
}

/* ===================== Format ===================== */

func TestFormatRollNumber(t *testing.T) {
	tests := []struct {
		classGrade string
		sequence   int
		want       string
	}{
		{"3", 7, "13007"},
		{"3", 1042, "131042"}, // lebar 3 digit itu minimum, bukan cap
		{"9", 1, "19001"},
		{"12", 45, "112045"},
		{"7", 1000, "171000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRollNumber(tt.classGrade, tt.sequence))
		})
	}
}

/* ===================== Allocate ===================== */

func TestAllocate_FirstOfClass(t *testing.T) {
	store := newFakeStore()
	alloc := NewAllocator(store)

	roll, err := alloc.Allocate(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "19001", roll)
	assert.Equal(t, 1, store.counters["class9"])
}

func TestAllocate_SequentialMonotonicNoGaps(t *testing.T) {
	store := newFakeStore()
	alloc := NewAllocator(store)

	for i := 1; i <= 5; i++ {
		roll, err := alloc.Allocate(context.Background(), "7")
		require.NoError(t, err)
		assert.Equal(t, FormatRollNumber("7", i), roll)
		store.addRoll(roll) // workflow menulis roll ke siswa setelah alokasi
	}
	assert.Equal(t, 5, store.counters["class7"])
}

func TestAllocate_BootstrapFromExistingRollNumbers(t *testing.T) {
	store := newFakeStore()
	store.addRoll("17003")
	store.addRoll("17007")
	store.addRoll("17001")
	alloc := NewAllocator(store)

	roll, err := alloc.Allocate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "17008", roll)
	assert.Equal(t, 8, store.counters["class7"])
}

func TestAllocate_BootstrapIgnoresUnparseableSuffix(t *testing.T) {
	store := newFakeStore()
	store.addRoll("17002")
	store.addRoll("17XYZ") // suffix rusak → diabaikan, bukan error
	alloc := NewAllocator(store)

	roll, err := alloc.Allocate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "17003", roll)
}

func TestAllocate_WidthOverflowAfter999(t *testing.T) {
	store := newFakeStore()
	store.counters["class7"] = 999
	alloc := NewAllocator(store)

	roll, err := alloc.Allocate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "171000", roll)
	assert.Equal(t, 1000, store.counters["class7"])
}

func TestAllocate_ExistenceRecheckSkipsDriftedCounter(t *testing.T) {
	// Counter ketinggalan dari data (drift): re-check harus loncati
	// roll number yang sudah terpakai.
	store := newFakeStore()
	store.counters["class7"] = 0
	store.addRoll("17001")
	store.addRoll("17002")
	alloc := NewAllocator(store)

	roll, err := alloc.Allocate(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "17003", roll)
	assert.Equal(t, 3, store.counters["class7"])
}

func TestAllocate_ConflictAfterRetryBudget(t *testing.T) {
	store := newFakeStore()
	store.counters["class7"] = 0
	for i := 1; i <= 5; i++ {
		store.addRoll(FormatRollNumber("7", i))
	}
	alloc := NewAllocator(store)

	_, err := alloc.Allocate(context.Background(), "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllocationConflict)
	// counter tidak boleh berubah saat alokasi gagal
	assert.Equal(t, 0, store.counters["class7"])
}

func TestAllocate_EmptyClassGrade(t *testing.T) {
	alloc := NewAllocator(newFakeStore())
	_, err := alloc.Allocate(context.Background(), "")
	require.Error(t, err)
}

func TestAllocate_TransientStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("store unavailable")

	t.Run("read", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = storeErr
		_, err := NewAllocator(store).Allocate(context.Background(), "7")
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("write", func(t *testing.T) {
		store := newFakeStore()
		store.counters["class7"] = 3
		store.updateErr = storeErr
		_, err := NewAllocator(store).Allocate(context.Background(), "7")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestAllocate_LostUpdateRetries(t *testing.T) {
	// Dua alokasi baca counter yang sama: yang kedua menang menulis duluan
	// lewat hook, yang pertama harus mendeteksi lost update, baca ulang,
	// dan menghasilkan nomor berbeda — bukan duplikat.
	store := newFakeStore()
	store.counters["class7"] = 0
	alloc := NewAllocator(store)

	var competingRoll string
	store.afterGet = func(string) {
		roll, err := alloc.Allocate(context.Background(), "7")
		require.NoError(t, err)
		store.addRoll(roll)
		competingRoll = roll
	}

	roll, err := alloc.Allocate(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "17001", competingRoll)
	assert.Equal(t, "17002", roll)
	assert.NotEqual(t, competingRoll, roll)
	assert.Equal(t, 2, store.counters["class7"])
}

func TestAllocate_ConcurrentStress_NoDuplicates(t *testing.T) {
	// Stress antar-request: semua alokasi yang berhasil harus unik.
	// Kalah rebutan berkali-kali boleh berakhir ErrAllocationConflict
	// (budget retry), tapi tidak boleh ada duplikat.
	store := newFakeStore()
	alloc := NewAllocator(store)

	const workers = 8
	results := make(chan string, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			roll, err := alloc.Allocate(context.Background(), "7")
			if err != nil {
				errs <- err
				return
			}
			store.addRoll(roll)
			results <- roll
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	seen := make(map[string]bool)
	for roll := range results {
		require.Falsef(t, seen[roll], "roll number duplikat: %s", roll)
		seen[roll] = true
	}
	for err := range errs {
		assert.ErrorIs(t, err, ErrAllocationConflict)
	}

	require.NotEmpty(t, seen)
	// counter harus persis jumlah alokasi yang berhasil (tanpa gap)
	assert.Equal(t, len(seen), store.counters["class7"])
	for i := 1; i <= len(seen); i++ {
		assert.Truef(t, seen[FormatRollNumber("7", i)], "sequence %d hilang (gap)", i)
	}
}

func TestRollNumberPrefix(t *testing.T) {
	assert.Equal(t, "17", RollNumberPrefix("7"))
	assert.Equal(t, "112", RollNumberPrefix("12"))
}

func ExampleFormatRollNumber() {
	fmt.Println(FormatRollNumber("3", 7))
	fmt.Println(FormatRollNumber("3", 1042))
	// Output:
	// 13007
	// 131042
}
