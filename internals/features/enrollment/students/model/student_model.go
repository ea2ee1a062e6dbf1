package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Constants ===================== */

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

const (
	PaymentMethodManual   = "manual"   // QR + upload bukti transfer
	PaymentMethodMidtrans = "midtrans" // via Snap
)

/* ===================== Model ===================== */

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	// Data siswa
	StudentFullName    string `gorm:"column:student_full_name;type:varchar(120);not null" json:"student_full_name"`
	StudentEmail       string `gorm:"column:student_email;type:varchar(120);not null" json:"student_email"`
	StudentClassGrade  string `gorm:"column:student_class_grade;type:varchar(4);not null;index" json:"student_class_grade"` // immutable setelah create
	StudentMedium      string `gorm:"column:student_medium;type:varchar(30);not null" json:"student_medium"`
	StudentSchoolName  string `gorm:"column:student_school_name;type:varchar(120);not null" json:"student_school_name"`
	StudentDateOfBirth string `gorm:"column:student_date_of_birth;type:varchar(10);not null" json:"student_date_of_birth"` // YYYY-MM-DD
	StudentGender      string `gorm:"column:student_gender;type:varchar(10);not null" json:"student_gender"`

	// Data ibu
	StudentMotherName       string  `gorm:"column:student_mother_name;type:varchar(120);not null" json:"student_mother_name"`
	StudentMotherOccupation *string `gorm:"column:student_mother_occupation;type:varchar(120)" json:"student_mother_occupation,omitempty"`
	StudentMotherMobile     string  `gorm:"column:student_mother_mobile;type:varchar(15);not null" json:"student_mother_mobile"`
	StudentMotherEmail      *string `gorm:"column:student_mother_email;type:varchar(120)" json:"student_mother_email,omitempty"`

	// Data ayah
	StudentFatherName       string  `gorm:"column:student_father_name;type:varchar(120);not null" json:"student_father_name"`
	StudentFatherOccupation *string `gorm:"column:student_father_occupation;type:varchar(120)" json:"student_father_occupation,omitempty"`
	StudentFatherMobile     string  `gorm:"column:student_father_mobile;type:varchar(15);not null" json:"student_father_mobile"`
	StudentFatherEmail      *string `gorm:"column:student_father_email;type:varchar(120)" json:"student_father_email,omitempty"`

	// Alamat
	StudentAddressLine string `gorm:"column:student_address_line;type:text;not null" json:"student_address_line"`
	StudentCity        string `gorm:"column:student_city;type:varchar(60);not null" json:"student_city"`
	StudentState       string `gorm:"column:student_state;type:varchar(60);not null" json:"student_state"`
	StudentPincode     string `gorm:"column:student_pincode;type:varchar(10);not null" json:"student_pincode"`

	// Saudara kandung
	StudentNumberOfBrothers int `gorm:"column:student_number_of_brothers;default:0" json:"student_number_of_brothers"`
	StudentNumberOfSisters  int `gorm:"column:student_number_of_sisters;default:0" json:"student_number_of_sisters"`

	// Tahu dari mana
	StudentHearAboutUs      *string `gorm:"column:student_hear_about_us;type:varchar(60)" json:"student_hear_about_us,omitempty"`
	StudentHearAboutUsOther *string `gorm:"column:student_hear_about_us_other;type:varchar(120)" json:"student_hear_about_us_other,omitempty"`

	// Foto siswa (OSS)
	StudentPhotoURL *string `gorm:"column:student_photo_url;type:text" json:"student_photo_url,omitempty"`
	StudentPhotoKey *string `gorm:"column:student_photo_key;type:text" json:"-"`

	// Status pembayaran & roll number.
	// Roll number baru terisi saat status pindah ke completed, dan
	// setelah terisi tidak pernah berubah atau dipakai ulang.
	StudentPaymentStatus string  `gorm:"column:student_payment_status;type:varchar(20);not null;default:'pending';index" json:"student_payment_status"`
	StudentRollNumber    *string `gorm:"column:student_roll_number;type:varchar(20);uniqueIndex" json:"student_roll_number,omitempty"`

	// Bukti pembayaran
	StudentPaymentScreenshotURL *string    `gorm:"column:student_payment_screenshot_url;type:text" json:"student_payment_screenshot_url,omitempty"`
	StudentPaymentScreenshotKey *string    `gorm:"column:student_payment_screenshot_key;type:text" json:"-"`
	StudentPaymentMethod        *string    `gorm:"column:student_payment_method;type:varchar(20)" json:"student_payment_method,omitempty"`
	StudentPaymentOrderID       *string    `gorm:"column:student_payment_order_id;type:varchar(100);uniqueIndex" json:"student_payment_order_id,omitempty"`
	StudentPaymentDate          *time.Time `gorm:"column:student_payment_date" json:"student_payment_date,omitempty"`

	StudentEnrollmentDate time.Time `gorm:"column:student_enrollment_date;autoCreateTime" json:"student_enrollment_date"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

/* ===================== Helpers ===================== */

// IsCompleted true jika pembayaran sudah dikonfirmasi
func (s *StudentModel) IsCompleted() bool {
	return s.StudentPaymentStatus == PaymentStatusCompleted
}

// HasRollNumber true jika roll number sudah pernah diterbitkan
func (s *StudentModel) HasRollNumber() bool {
	return s.StudentRollNumber != nil && *s.StudentRollNumber != ""
}
