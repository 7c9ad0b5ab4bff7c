// file: internals/features/finance/fees/dto/fee_structure_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"skuli_backend/internals/features/finance/fees/model"
)

/* =======================
   Request DTOs
======================= */

type FeeStructureCreateDTO struct {
	FeeStructureGradeID        uuid.UUID       `json:"fee_structure_grade_id"         validate:"required"`
	FeeStructureAcademicYearID uuid.UUID       `json:"fee_structure_academic_year_id" validate:"required"`
	FeeStructureTermID         uuid.UUID       `json:"fee_structure_term_id"          validate:"required"`
	FeeStructureTotalAmount    decimal.Decimal `json:"fee_structure_total_amount"     validate:"required"`
	FeeStructureBreakdown      datatypes.JSON  `json:"fee_structure_breakdown,omitempty"`
}

type FeeStructureUpdateDTO struct {
	FeeStructureTotalAmount *decimal.Decimal `json:"fee_structure_total_amount,omitempty"`
	FeeStructureBreakdown   datatypes.JSON   `json:"fee_structure_breakdown,omitempty"`
}

type FeeStructureFilterDTO struct {
	GradeID  *uuid.UUID `query:"grade_id"  validate:"omitempty"`
	YearID   *uuid.UUID `query:"year_id"   validate:"omitempty"`
	TermID   *uuid.UUID `query:"term_id"   validate:"omitempty"`
	Page     int        `query:"page"      validate:"omitempty,min=1"`
	PageSize int        `query:"page_size" validate:"omitempty,min=1,max=200"`
}

/* =======================
   Response DTO
======================= */

type FeeStructureResponseDTO struct {
	FeeStructureID             uuid.UUID       `json:"fee_structure_id"`
	FeeStructureSchoolID       uuid.UUID       `json:"fee_structure_school_id"`
	FeeStructureGradeID        uuid.UUID       `json:"fee_structure_grade_id"`
	FeeStructureAcademicYearID uuid.UUID       `json:"fee_structure_academic_year_id"`
	FeeStructureTermID         uuid.UUID       `json:"fee_structure_term_id"`
	FeeStructureTotalAmount    decimal.Decimal `json:"fee_structure_total_amount"`
	FeeStructureBreakdown      datatypes.JSON  `json:"fee_structure_breakdown,omitempty"`
	FeeStructureCreatedAt      time.Time       `json:"fee_structure_created_at"`
	FeeStructureUpdatedAt      time.Time       `json:"fee_structure_updated_at"`
}

/* =======================
   Mappers
======================= */

func (p *FeeStructureCreateDTO) ToModel(schoolID uuid.UUID) model.FeeStructureModel {
	return model.FeeStructureModel{
		FeeStructureSchoolID:       schoolID,
		FeeStructureGradeID:        p.FeeStructureGradeID,
		FeeStructureAcademicYearID: p.FeeStructureAcademicYearID,
		FeeStructureTermID:         p.FeeStructureTermID,
		FeeStructureTotalAmount:    p.FeeStructureTotalAmount,
		FeeStructureBreakdown:      p.FeeStructureBreakdown,
	}
}

func (u *FeeStructureUpdateDTO) ApplyUpdates(ent *model.FeeStructureModel) {
	if u.FeeStructureTotalAmount != nil {
		ent.FeeStructureTotalAmount = *u.FeeStructureTotalAmount
	}
	if u.FeeStructureBreakdown != nil {
		ent.FeeStructureBreakdown = u.FeeStructureBreakdown
	}
}

func FromModel(ent model.FeeStructureModel) FeeStructureResponseDTO {
	return FeeStructureResponseDTO{
		FeeStructureID:             ent.FeeStructureID,
		FeeStructureSchoolID:       ent.FeeStructureSchoolID,
		FeeStructureGradeID:        ent.FeeStructureGradeID,
		FeeStructureAcademicYearID: ent.FeeStructureAcademicYearID,
		FeeStructureTermID:         ent.FeeStructureTermID,
		FeeStructureTotalAmount:    ent.FeeStructureTotalAmount,
		FeeStructureBreakdown:      ent.FeeStructureBreakdown,
		FeeStructureCreatedAt:      ent.FeeStructureCreatedAt,
		FeeStructureUpdatedAt:      ent.FeeStructureUpdatedAt,
	}
}

func FromModels(list []model.FeeStructureModel) []FeeStructureResponseDTO {
	out := make([]FeeStructureResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
