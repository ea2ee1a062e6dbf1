package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	counterModel "akademiku_backend/internals/features/enrollment/rollnumber/model"
)

/* ===================== Errors & Constants ===================== */

// ErrAllocationConflict: gagal menemukan roll number bebas setelah batas
// percobaan. Dibedakan dari error infrastruktur supaya caller bisa kasih
// respons "coba lagi" — siswa tetap pending dan aman di-retry.
var ErrAllocationConflict = errors.New("rollnumber: allocation conflict, retry limit exceeded")

const (
	// Batas retry untuk re-check eksistensi maupun lost-update pada counter.
	maxAllocationAttempts = 5

	// Digit pembuka roll number, di depan label kelas.
	rollNumberLeadDigit = "1"

	// Lebar minimum bagian sequence. Lebar minimum, bukan maksimum:
	// sequence ke-1000 untuk kelas 7 menghasilkan "171000", tidak dipotong.
	sequenceWidth = 3
)

/* ===================== Format ===================== */

// RollNumberPrefix prefix roll number untuk satu kelas, mis. kelas "7" → "17".
func RollNumberPrefix(classGrade string) string {
	return rollNumberLeadDigit + classGrade
}

// FormatRollNumber susun roll number: "1" + kelas + sequence (pad 3 digit).
// Contoh: kelas "3", sequence 7 → "13007"; sequence 1042 → "131042".
func FormatRollNumber(classGrade string, sequence int) string {
	return fmt.Sprintf("%s%0*d", RollNumberPrefix(classGrade), sequenceWidth, sequence)
}

/* ===================== Allocator ===================== */

// Allocator menerbitkan roll number unik dan monoton naik per kelas.
//
// Counter per kelas adalah satu-satunya shared state; tidak ada lock
// in-process. Konsistensi antar request dijaga lewat conditional write
// di store: kalau dua alokasi baca nilai counter yang sama, hanya satu
// yang berhasil menulis, yang lain baca ulang dan mengulang alokasi.
// Allocator TIDAK menyentuh record siswa — menulis roll number ke siswa
// adalah tanggung jawab caller, tepat satu kali per siswa.
type Allocator struct {
	store CounterStore
}

func NewAllocator(store CounterStore) *Allocator {
	return &Allocator{store: store}
}

// Allocate terbitkan roll number berikutnya untuk satu kelas dan catat
// counter-nya secara durable.
func (a *Allocator) Allocate(ctx context.Context, classGrade string) (string, error) {
	if strings.TrimSpace(classGrade) == "" {
		return "", errors.New("rollnumber: classGrade kosong")
	}

	key := counterModel.CounterKey(classGrade)

	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		last, found, err := a.store.GetCounter(ctx, key)
		if err != nil {
			return "", err
		}

		if !found {
			// Bootstrap: counter belum ada → derive dari data siswa yang sudah ada.
			last, err = a.bootstrapLast(ctx, classGrade)
			if err != nil {
				return "", err
			}
		}

		// Cari kandidat bebas, mulai dari last+1. Re-check eksistensi adalah
		// guard untuk counter yang drift terhadap data (mis. counter lama hilang).
		sequence, roll, err := a.findFreeSequence(ctx, classGrade, last+1)
		if err != nil {
			return "", err
		}

		if !found {
			ok, err := a.store.InsertCounter(ctx, key, sequence)
			if err != nil {
				return "", err
			}
			if ok {
				return roll, nil
			}
			// Counter keburu dibuat request lain → baca ulang dan ulang alokasi.
			continue
		}

		ok, err := a.store.UpdateCounter(ctx, key, last, sequence)
		if err != nil {
			return "", err
		}
		if ok {
			return roll, nil
		}
		// Lost update terdeteksi (alokasi lain menang) → ulang dari awal.
	}

	return "", ErrAllocationConflict
}

// findFreeSequence naikkan kandidat sampai ketemu roll number yang belum
// dipakai. Loop dibatasi: kalau 5 kandidat berturut-turut terpakai berarti
// counter dan data sudah tidak sinkron parah → surface error, jangan loop.
func (a *Allocator) findFreeSequence(ctx context.Context, classGrade string, start int) (int, string, error) {
	sequence := start
	for i := 0; i < maxAllocationAttempts; i++ {
		roll := FormatRollNumber(classGrade, sequence)
		exists, err := a.store.RollNumberExists(ctx, roll)
		if err != nil {
			return 0, "", err
		}
		if !exists {
			return sequence, roll, nil
		}
		sequence++
	}
	return 0, "", ErrAllocationConflict
}

// bootstrapLast scan roll number siswa dengan prefix kelas dan ambil
// sequence tertinggi. Suffix yang tidak bisa di-parse diabaikan, bukan
// error. 0 kalau belum ada siswa sama sekali.
func (a *Allocator) bootstrapLast(ctx context.Context, classGrade string) (int, error) {
	prefix := RollNumberPrefix(classGrade)
	rolls, err := a.store.ListRollNumbersByPrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, roll := range rolls {
		if !strings.HasPrefix(roll, prefix) {
			continue
		}
		n, err := strconv.Atoi(roll[len(prefix):])
		if err != nil || n <= 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest, nil
}
