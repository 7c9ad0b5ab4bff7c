// file: internals/features/students/model/alumni_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AlumniModel is the terminal record of a graduation. Immutable; no soft
// delete. The (student, graduation_year) pair is unique so re-running a
// graduation stays idempotent.
type AlumniModel struct {
	// ============ PK & Tenant ============
	AlumniID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:alumni_id" json:"alumni_id"`
	AlumniSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:alumni_school_id" json:"alumni_school_id"`

	// FK → students
	AlumniStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_alumni_student_year,priority:1;column:alumni_student_id" json:"alumni_student_id"`

	// Name of the academic year the student graduated in, e.g. "2025".
	AlumniGraduationYear string `gorm:"type:varchar(16);not null;uniqueIndex:uniq_alumni_student_year,priority:2;column:alumni_graduation_year" json:"alumni_graduation_year"`

	// Supplied by the AcademicPerformanceProvider at graduation time; nil when
	// no performance source is wired.
	AlumniFinalGrade *float64 `gorm:"type:numeric(5,2);column:alumni_final_grade" json:"alumni_final_grade,omitempty"`

	AlumniCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:alumni_created_at" json:"alumni_created_at"`
}

func (AlumniModel) TableName() string { return "alumni" }
