// file: internals/features/academics/years/model/academic_year_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYearModel struct {
	// ============ PK & Tenant ============
	AcademicYearID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_year_school_id" json:"academic_year_school_id"`

	// Example name: "2025"
	AcademicYearName string `gorm:"type:varchar(16);not null;column:academic_year_name" json:"academic_year_name"`

	AcademicYearStartDate time.Time `gorm:"type:timestamptz;not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"type:timestamptz;not null;column:academic_year_end_date" json:"academic_year_end_date"`

	// Exactly one current year per school; flipped clear-all-then-set-one
	// inside a single transaction by the rollover service.
	AcademicYearIsCurrent bool `gorm:"not null;default:false;index;column:academic_year_is_current" json:"academic_year_is_current"`

	// ============ Audit / Soft delete ============
	AcademicYearCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_year_updated_at" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicYearName = strings.TrimSpace(m.AcademicYearName)
	if m.AcademicYearName == "" {
		return errors.New("academic_year_name is required")
	}
	if m.AcademicYearEndDate.Before(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date must be >= academic_year_start_date")
	}
	return nil
}
