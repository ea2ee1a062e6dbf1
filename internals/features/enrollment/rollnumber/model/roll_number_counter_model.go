package model

import (
	"time"
)

/* ===================== Model ===================== */

// RollNumberCounterModel menyimpan sequence tertinggi yang sudah
// diterbitkan per kelas. Satu baris per kelas, dibuat lazy saat
// alokasi pertama, tidak pernah dihapus.
type RollNumberCounterModel struct {
	RollNumberCounterKey  string `gorm:"column:roll_number_counter_key;type:varchar(16);primaryKey" json:"roll_number_counter_key"`
	RollNumberCounterLast int    `gorm:"column:roll_number_counter_last;not null;default:0" json:"roll_number_counter_last"`

	RollNumberCounterUpdatedAt time.Time `gorm:"column:roll_number_counter_updated_at;autoUpdateTime" json:"roll_number_counter_updated_at"`
}

func (RollNumberCounterModel) TableName() string { return "roll_number_counters" }

// CounterKey kunci deterministik per kelas, mis. "class7".
func CounterKey(classGrade string) string { return "class" + classGrade }
