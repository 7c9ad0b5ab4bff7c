// file: internals/features/students/model/student_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
)

type StudentModel struct {
	// ============ PK & Tenant ============
	StudentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_school_id" json:"student_school_id"`

	// FK → classes (current placement)
	StudentClassID uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_id" json:"student_class_id"`

	StudentAdmissionNo string `gorm:"type:varchar(40);not null;column:student_admission_no" json:"student_admission_no"`
	StudentFirstName   string `gorm:"type:varchar(80);not null;column:student_first_name" json:"student_first_name"`
	StudentLastName    string `gorm:"type:varchar(80);not null;column:student_last_name" json:"student_last_name"`

	StudentStatus   StudentStatus `gorm:"type:varchar(20);not null;default:'active';index;column:student_status" json:"student_status"`
	StudentIsActive bool          `gorm:"not null;default:true;index;column:student_is_active" json:"student_is_active"`

	// Join point: charges and payments before it never hit the ledger. Year
	// and term references are preferred; the raw date is the fallback when
	// the student predates term bookkeeping.
	StudentJoinedAt           time.Time  `gorm:"type:timestamptz;not null;column:student_joined_at" json:"student_joined_at"`
	StudentJoinAcademicYearID *uuid.UUID `gorm:"type:uuid;column:student_join_academic_year_id" json:"student_join_academic_year_id,omitempty"`
	StudentJoinTermID         *uuid.UUID `gorm:"type:uuid;column:student_join_term_id" json:"student_join_term_id,omitempty"`

	// ============ Audit / Soft delete ============
	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`

	// Relationships
	Class *ClassModel `gorm:"foreignKey:StudentClassID;references:ClassID" json:"class,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentFirstName = strings.TrimSpace(m.StudentFirstName)
	m.StudentLastName = strings.TrimSpace(m.StudentLastName)
	m.StudentAdmissionNo = strings.TrimSpace(m.StudentAdmissionNo)
	if m.StudentAdmissionNo == "" {
		return errors.New("student_admission_no is required")
	}
	return nil
}

func (m *StudentModel) FullName() string {
	return strings.TrimSpace(m.StudentFirstName + " " + m.StudentLastName)
}
