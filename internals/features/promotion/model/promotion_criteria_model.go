// file: internals/features/promotion/model/promotion_criteria_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PromotionType string

const (
	PromotionTypeEndOfYear  PromotionType = "end_of_year"
	PromotionTypeMidYear    PromotionType = "mid_year"
	PromotionTypeGraduation PromotionType = "graduation"
)

// PromotionCriteriaModel holds the thresholds gating promotion. Exactly one
// row is active per (school, promotion_type); activating a criteria flips its
// siblings off inside the same transaction.
type PromotionCriteriaModel struct {
	PromotionCriteriaID       uuid.UUID `gorm:"column:promotion_criteria_id;type:uuid;default:gen_random_uuid();primaryKey" json:"promotion_criteria_id"`
	PromotionCriteriaSchoolID uuid.UUID `gorm:"column:promotion_criteria_school_id;type:uuid;not null;index:ix_promotion_criteria_school_type" json:"promotion_criteria_school_id"`

	PromotionCriteriaType PromotionType `gorm:"column:promotion_criteria_type;type:varchar(20);not null;index:ix_promotion_criteria_school_type" json:"promotion_criteria_type"`

	PromotionCriteriaName string `gorm:"column:promotion_criteria_name;type:varchar(80);not null" json:"promotion_criteria_name"`

	// Thresholds: average grade must be >= min, fee balance <= max,
	// disciplinary cases <= max.
	PromotionCriteriaMinGrade             float64         `gorm:"column:promotion_criteria_min_grade;type:numeric(5,2);not null;default:0" json:"promotion_criteria_min_grade"`
	PromotionCriteriaMaxFeeBalance        decimal.Decimal `gorm:"column:promotion_criteria_max_fee_balance;type:numeric(14,2);not null;default:0" json:"promotion_criteria_max_fee_balance"`
	PromotionCriteriaMaxDisciplinaryCases int             `gorm:"column:promotion_criteria_max_disciplinary_cases;type:integer;not null;default:0" json:"promotion_criteria_max_disciplinary_cases"`

	PromotionCriteriaIsActive bool `gorm:"column:promotion_criteria_is_active;not null;default:false" json:"promotion_criteria_is_active"`

	// ============ Audit / Soft delete ============
	PromotionCriteriaCreatedAt time.Time      `gorm:"column:promotion_criteria_created_at;type:timestamptz;not null;autoCreateTime" json:"promotion_criteria_created_at"`
	PromotionCriteriaUpdatedAt time.Time      `gorm:"column:promotion_criteria_updated_at;type:timestamptz;not null;autoUpdateTime" json:"promotion_criteria_updated_at"`
	PromotionCriteriaDeletedAt gorm.DeletedAt `gorm:"column:promotion_criteria_deleted_at;index" json:"promotion_criteria_deleted_at,omitempty"`
}

func (PromotionCriteriaModel) TableName() string { return "promotion_criteria" }

func (m *PromotionCriteriaModel) BeforeSave(tx *gorm.DB) error {
	m.PromotionCriteriaName = strings.TrimSpace(m.PromotionCriteriaName)
	if m.PromotionCriteriaName == "" {
		return errors.New("promotion_criteria_name is required")
	}
	if m.PromotionCriteriaMaxFeeBalance.IsNegative() {
		return errors.New("promotion_criteria_max_fee_balance must be >= 0")
	}
	if m.PromotionCriteriaMaxDisciplinaryCases < 0 {
		return errors.New("promotion_criteria_max_disciplinary_cases must be >= 0")
	}
	return nil
}
