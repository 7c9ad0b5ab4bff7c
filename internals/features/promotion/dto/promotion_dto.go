// file: internals/features/promotion/dto/promotion_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skuli_backend/internals/features/promotion/model"
	"skuli_backend/internals/features/promotion/service"
)

/* =======================
   Criteria DTOs
======================= */

type CriteriaCreateDTO struct {
	PromotionCriteriaType                 string          `json:"promotion_criteria_type"                   validate:"required,oneof=end_of_year mid_year graduation"`
	PromotionCriteriaName                 string          `json:"promotion_criteria_name"                   validate:"required,min=3,max=80"`
	PromotionCriteriaMinGrade             float64         `json:"promotion_criteria_min_grade"              validate:"gte=0,lte=100"`
	PromotionCriteriaMaxFeeBalance        decimal.Decimal `json:"promotion_criteria_max_fee_balance"`
	PromotionCriteriaMaxDisciplinaryCases int             `json:"promotion_criteria_max_disciplinary_cases" validate:"gte=0"`
	ActivateImmediately                   bool            `json:"activate_immediately"`
}

func (p *CriteriaCreateDTO) Normalize() {
	p.PromotionCriteriaName = strings.TrimSpace(p.PromotionCriteriaName)
}

func (p *CriteriaCreateDTO) ToCommand(schoolID uuid.UUID) service.CriteriaCommand {
	return service.CriteriaCommand{
		SchoolID:            schoolID,
		Type:                model.PromotionType(p.PromotionCriteriaType),
		Name:                p.PromotionCriteriaName,
		MinGrade:            p.PromotionCriteriaMinGrade,
		MaxFeeBalance:       p.PromotionCriteriaMaxFeeBalance,
		MaxDisciplinary:     p.PromotionCriteriaMaxDisciplinaryCases,
		ActivateImmediately: p.ActivateImmediately,
	}
}

type CriteriaResponseDTO struct {
	PromotionCriteriaID                   uuid.UUID       `json:"promotion_criteria_id"`
	PromotionCriteriaSchoolID             uuid.UUID       `json:"promotion_criteria_school_id"`
	PromotionCriteriaType                 string          `json:"promotion_criteria_type"`
	PromotionCriteriaName                 string          `json:"promotion_criteria_name"`
	PromotionCriteriaMinGrade             float64         `json:"promotion_criteria_min_grade"`
	PromotionCriteriaMaxFeeBalance        decimal.Decimal `json:"promotion_criteria_max_fee_balance"`
	PromotionCriteriaMaxDisciplinaryCases int             `json:"promotion_criteria_max_disciplinary_cases"`
	PromotionCriteriaIsActive             bool            `json:"promotion_criteria_is_active"`
	PromotionCriteriaCreatedAt            time.Time       `json:"promotion_criteria_created_at"`
}

func FromCriteriaModel(ent model.PromotionCriteriaModel) CriteriaResponseDTO {
	return CriteriaResponseDTO{
		PromotionCriteriaID:                   ent.PromotionCriteriaID,
		PromotionCriteriaSchoolID:             ent.PromotionCriteriaSchoolID,
		PromotionCriteriaType:                 string(ent.PromotionCriteriaType),
		PromotionCriteriaName:                 ent.PromotionCriteriaName,
		PromotionCriteriaMinGrade:             ent.PromotionCriteriaMinGrade,
		PromotionCriteriaMaxFeeBalance:        ent.PromotionCriteriaMaxFeeBalance,
		PromotionCriteriaMaxDisciplinaryCases: ent.PromotionCriteriaMaxDisciplinaryCases,
		PromotionCriteriaIsActive:             ent.PromotionCriteriaIsActive,
		PromotionCriteriaCreatedAt:            ent.PromotionCriteriaCreatedAt,
	}
}

func FromCriteriaModels(list []model.PromotionCriteriaModel) []CriteriaResponseDTO {
	out := make([]CriteriaResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromCriteriaModel(it))
	}
	return out
}

/* =======================
   Evaluation & execution DTOs
======================= */

type EligibleQueryDTO struct {
	Type string `query:"type" validate:"required,oneof=end_of_year mid_year graduation"`
}

type BulkPromoteDTO struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
	CriteriaID *uuid.UUID  `json:"criteria_id,omitempty"`
	RollYear   bool        `json:"roll_year"`
}

func (p *BulkPromoteDTO) ToCommand(schoolID, promotedBy uuid.UUID) service.BulkPromotionCommand {
	return service.BulkPromotionCommand{
		SchoolID:   schoolID,
		StudentIDs: p.StudentIDs,
		PromotedBy: promotedBy,
		CriteriaID: p.CriteriaID,
		RollYear:   p.RollYear,
	}
}

type LogsQueryDTO struct {
	BatchID   *uuid.UUID `query:"batch_id"   validate:"omitempty"`
	StudentID *uuid.UUID `query:"student_id" validate:"omitempty"`
	Page      int        `query:"page"       validate:"omitempty,min=1"`
	PageSize  int        `query:"page_size"  validate:"omitempty,min=1,max=200"`
}
