// file: internals/features/academics/years/model/academic_term_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Canonical term names; AcademicTermSortOrder mirrors this ordering so the
// ledger can compare terms within one academic year.
const (
	TermFirst  = "Term 1"
	TermSecond = "Term 2"
	TermThird  = "Term 3"
)

// TermOrder maps a term name to its position within the year (1-based).
// Unknown names map to 0 and are ordered by date instead.
var TermOrder = map[string]int{
	TermFirst:  1,
	TermSecond: 2,
	TermThird:  3,
}

type AcademicTermModel struct {
	// ============ PK & Tenant ============
	AcademicTermID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_term_id" json:"academic_term_id"`
	AcademicTermSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_term_school_id" json:"academic_term_school_id"`

	// FK → academic_years
	AcademicTermAcademicYearID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_term_academic_year_id" json:"academic_term_academic_year_id"`

	AcademicTermName      string `gorm:"type:varchar(24);not null;column:academic_term_name" json:"academic_term_name"`
	AcademicTermSortOrder int    `gorm:"type:integer;not null;default:1;column:academic_term_sort_order" json:"academic_term_sort_order"`

	AcademicTermStartDate time.Time `gorm:"type:timestamptz;not null;column:academic_term_start_date" json:"academic_term_start_date"`
	AcademicTermEndDate   time.Time `gorm:"type:timestamptz;not null;column:academic_term_end_date" json:"academic_term_end_date"`

	// Exactly one current term within the current year per school.
	AcademicTermIsCurrent bool `gorm:"not null;default:false;index;column:academic_term_is_current" json:"academic_term_is_current"`

	// ============ Audit / Soft delete ============
	AcademicTermCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_term_created_at" json:"academic_term_created_at"`
	AcademicTermUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_term_updated_at" json:"academic_term_updated_at"`
	AcademicTermDeletedAt gorm.DeletedAt `gorm:"column:academic_term_deleted_at;index" json:"academic_term_deleted_at,omitempty"`

	// Relationships
	AcademicYear *AcademicYearModel `gorm:"foreignKey:AcademicTermAcademicYearID;references:AcademicYearID" json:"academic_year,omitempty"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicTermName = strings.TrimSpace(m.AcademicTermName)
	if m.AcademicTermName == "" {
		return errors.New("academic_term_name is required")
	}
	if ord, ok := TermOrder[m.AcademicTermName]; ok {
		m.AcademicTermSortOrder = ord
	}
	if m.AcademicTermEndDate.Before(m.AcademicTermStartDate) {
		return errors.New("academic_term_end_date must be >= academic_term_start_date")
	}
	return nil
}
