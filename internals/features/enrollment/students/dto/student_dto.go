package dto

import (
	"time"

	"akademiku_backend/internals/features/enrollment/students/model"
)

/* ===================== Request DTO ===================== */

// CreateStudentRequest payload form pendaftaran publik (multipart,
// field foto diambil terpisah via FormFile). Aturan kelas: himpunan
// tetap 1..12 — divalidasi di boundary, allocator hanya terima label.
type CreateStudentRequest struct {
	StudentFullName    string `form:"student_full_name" json:"student_full_name" validate:"required,max=120"`
	StudentEmail       string `form:"student_email" json:"student_email" validate:"required,email"`
	StudentClassGrade  string `form:"student_class_grade" json:"student_class_grade" validate:"required,oneof=1 2 3 4 5 6 7 8 9 10 11 12"`
	StudentMedium      string `form:"student_medium" json:"student_medium" validate:"required,max=30"`
	StudentSchoolName  string `form:"student_school_name" json:"student_school_name" validate:"required,max=120"`
	StudentDateOfBirth string `form:"student_date_of_birth" json:"student_date_of_birth" validate:"required,datetime=2006-01-02"`
	StudentGender      string `form:"student_gender" json:"student_gender" validate:"required,oneof=male female"`

	StudentMotherName       string  `form:"student_mother_name" json:"student_mother_name" validate:"required,max=120"`
	StudentMotherOccupation *string `form:"student_mother_occupation" json:"student_mother_occupation" validate:"omitempty,max=120"`
	StudentMotherMobile     string  `form:"student_mother_mobile" json:"student_mother_mobile" validate:"required,numeric,len=10"`
	StudentMotherEmail      *string `form:"student_mother_email" json:"student_mother_email" validate:"omitempty,email"`

	StudentFatherName       string  `form:"student_father_name" json:"student_father_name" validate:"required,max=120"`
	StudentFatherOccupation *string `form:"student_father_occupation" json:"student_father_occupation" validate:"omitempty,max=120"`
	StudentFatherMobile     string  `form:"student_father_mobile" json:"student_father_mobile" validate:"required,numeric,len=10"`
	StudentFatherEmail      *string `form:"student_father_email" json:"student_father_email" validate:"omitempty,email"`

	StudentAddressLine string `form:"student_address_line" json:"student_address_line" validate:"required"`
	StudentCity        string `form:"student_city" json:"student_city" validate:"required,max=60"`
	StudentState       string `form:"student_state" json:"student_state" validate:"required,max=60"`
	StudentPincode     string `form:"student_pincode" json:"student_pincode" validate:"required,numeric,len=6"`

	StudentNumberOfBrothers int `form:"student_number_of_brothers" json:"student_number_of_brothers" validate:"gte=0,lte=20"`
	StudentNumberOfSisters  int `form:"student_number_of_sisters" json:"student_number_of_sisters" validate:"gte=0,lte=20"`

	StudentHearAboutUs      *string `form:"student_hear_about_us" json:"student_hear_about_us" validate:"omitempty,max=60"`
	StudentHearAboutUsOther *string `form:"student_hear_about_us_other" json:"student_hear_about_us_other" validate:"omitempty,max=120"`
}

// ToModel buat record siswa baru berstatus pending (roll number belum ada).
func (r *CreateStudentRequest) ToModel() *model.StudentModel {
	return &model.StudentModel{
		StudentFullName:    r.StudentFullName,
		StudentEmail:       r.StudentEmail,
		StudentClassGrade:  r.StudentClassGrade,
		StudentMedium:      r.StudentMedium,
		StudentSchoolName:  r.StudentSchoolName,
		StudentDateOfBirth: r.StudentDateOfBirth,
		StudentGender:      r.StudentGender,

		StudentMotherName:       r.StudentMotherName,
		StudentMotherOccupation: r.StudentMotherOccupation,
		StudentMotherMobile:     r.StudentMotherMobile,
		StudentMotherEmail:      r.StudentMotherEmail,

		StudentFatherName:       r.StudentFatherName,
		StudentFatherOccupation: r.StudentFatherOccupation,
		StudentFatherMobile:     r.StudentFatherMobile,
		StudentFatherEmail:      r.StudentFatherEmail,

		StudentAddressLine: r.StudentAddressLine,
		StudentCity:        r.StudentCity,
		StudentState:       r.StudentState,
		StudentPincode:     r.StudentPincode,

		StudentNumberOfBrothers: r.StudentNumberOfBrothers,
		StudentNumberOfSisters:  r.StudentNumberOfSisters,

		StudentHearAboutUs:      r.StudentHearAboutUs,
		StudentHearAboutUsOther: r.StudentHearAboutUsOther,

		StudentPaymentStatus: model.PaymentStatusPending,
	}
}

/* ===================== Response DTO ===================== */

type StudentResponse struct {
	StudentID          string `json:"student_id"`
	StudentFullName    string `json:"student_full_name"`
	StudentEmail       string `json:"student_email"`
	StudentClassGrade  string `json:"student_class_grade"`
	StudentMedium      string `json:"student_medium"`
	StudentSchoolName  string `json:"student_school_name"`
	StudentDateOfBirth string `json:"student_date_of_birth"`
	StudentGender      string `json:"student_gender"`

	StudentMotherName   string  `json:"student_mother_name"`
	StudentMotherMobile string  `json:"student_mother_mobile"`
	StudentFatherName   string  `json:"student_father_name"`
	StudentFatherMobile string  `json:"student_father_mobile"`
	StudentCity         string  `json:"student_city"`
	StudentState        string  `json:"student_state"`
	StudentPhotoURL     *string `json:"student_photo_url,omitempty"`

	StudentPaymentStatus        string     `json:"student_payment_status"`
	StudentRollNumber           *string    `json:"student_roll_number,omitempty"`
	StudentPaymentScreenshotURL *string    `json:"student_payment_screenshot_url,omitempty"`
	StudentPaymentMethod        *string    `json:"student_payment_method,omitempty"`
	StudentPaymentDate          *time.Time `json:"student_payment_date,omitempty"`

	StudentEnrollmentDate time.Time `json:"student_enrollment_date"`
}

func ToStudentResponse(m *model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:          m.StudentID.String(),
		StudentFullName:    m.StudentFullName,
		StudentEmail:       m.StudentEmail,
		StudentClassGrade:  m.StudentClassGrade,
		StudentMedium:      m.StudentMedium,
		StudentSchoolName:  m.StudentSchoolName,
		StudentDateOfBirth: m.StudentDateOfBirth,
		StudentGender:      m.StudentGender,

		StudentMotherName:   m.StudentMotherName,
		StudentMotherMobile: m.StudentMotherMobile,
		StudentFatherName:   m.StudentFatherName,
		StudentFatherMobile: m.StudentFatherMobile,
		StudentCity:         m.StudentCity,
		StudentState:        m.StudentState,
		StudentPhotoURL:     m.StudentPhotoURL,

		StudentPaymentStatus:        m.StudentPaymentStatus,
		StudentRollNumber:           m.StudentRollNumber,
		StudentPaymentScreenshotURL: m.StudentPaymentScreenshotURL,
		StudentPaymentMethod:        m.StudentPaymentMethod,
		StudentPaymentDate:          m.StudentPaymentDate,

		StudentEnrollmentDate: m.StudentEnrollmentDate,
	}
}

func ToStudentResponses(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToStudentResponse(&ms[i]))
	}
	return out
}
