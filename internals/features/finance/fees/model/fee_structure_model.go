// file: internals/features/finance/fees/model/fee_structure_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeeStructureModel is the charge schedule for a (grade, term, year). Once a
// payment references it the row is treated as immutable; edits go through a
// new structure for the next window.
type FeeStructureModel struct {
	// ============ PK & Tenant ============
	FeeStructureID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:fee_structure_id" json:"fee_structure_id"`
	FeeStructureSchoolID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_fee_structure_scope,priority:1;column:fee_structure_school_id" json:"fee_structure_school_id"`

	// Scope: one structure per (school, grade, year, term)
	FeeStructureGradeID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_fee_structure_scope,priority:2;column:fee_structure_grade_id" json:"fee_structure_grade_id"`
	FeeStructureAcademicYearID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_fee_structure_scope,priority:3;column:fee_structure_academic_year_id" json:"fee_structure_academic_year_id"`
	FeeStructureTermID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_fee_structure_scope,priority:4;column:fee_structure_term_id" json:"fee_structure_term_id"`

	FeeStructureTotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;column:fee_structure_total_amount" json:"fee_structure_total_amount"`

	// Per-item breakdown, e.g. {"tuition": 6000, "transport": 2000}
	FeeStructureBreakdown datatypes.JSON `gorm:"type:jsonb;column:fee_structure_breakdown" json:"fee_structure_breakdown,omitempty"`

	// ============ Audit / Soft delete ============
	FeeStructureCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:fee_structure_created_at" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:fee_structure_updated_at" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"fee_structure_deleted_at,omitempty"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }

func (m *FeeStructureModel) BeforeSave(tx *gorm.DB) error {
	if m.FeeStructureTotalAmount.IsNegative() {
		return errors.New("fee_structure_total_amount must be >= 0")
	}
	return nil
}
