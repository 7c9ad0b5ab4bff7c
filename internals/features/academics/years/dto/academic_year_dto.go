// file: internals/features/academics/years/dto/academic_year_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"skuli_backend/internals/features/academics/years/model"
)

/* =======================
   Request DTOs
======================= */

type AcademicYearCreateDTO struct {
	AcademicYearName      string    `json:"academic_year_name"       validate:"required,min=4,max=16"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" validate:"required"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date"   validate:"required,gtfield=AcademicYearStartDate"`
}

func (p *AcademicYearCreateDTO) Normalize() {
	p.AcademicYearName = strings.TrimSpace(p.AcademicYearName)
}

func (p *AcademicYearCreateDTO) ToModel(schoolID uuid.UUID) model.AcademicYearModel {
	return model.AcademicYearModel{
		AcademicYearSchoolID:  schoolID,
		AcademicYearName:      p.AcademicYearName,
		AcademicYearStartDate: p.AcademicYearStartDate,
		AcademicYearEndDate:   p.AcademicYearEndDate,
	}
}

type AcademicTermCreateDTO struct {
	AcademicTermAcademicYearID uuid.UUID `json:"academic_term_academic_year_id" validate:"required"`
	AcademicTermName           string    `json:"academic_term_name"             validate:"required,oneof='Term 1' 'Term 2' 'Term 3'"`
	AcademicTermStartDate      time.Time `json:"academic_term_start_date"       validate:"required"`
	AcademicTermEndDate        time.Time `json:"academic_term_end_date"         validate:"required,gtfield=AcademicTermStartDate"`
}

func (p *AcademicTermCreateDTO) ToModel(schoolID uuid.UUID) model.AcademicTermModel {
	return model.AcademicTermModel{
		AcademicTermSchoolID:       schoolID,
		AcademicTermAcademicYearID: p.AcademicTermAcademicYearID,
		AcademicTermName:           strings.TrimSpace(p.AcademicTermName),
		AcademicTermStartDate:      p.AcademicTermStartDate,
		AcademicTermEndDate:        p.AcademicTermEndDate,
	}
}

/* =======================
   Response DTOs
======================= */

type AcademicYearResponseDTO struct {
	AcademicYearID        uuid.UUID `json:"academic_year_id"`
	AcademicYearName      string    `json:"academic_year_name"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `json:"academic_year_end_date"`
	AcademicYearIsCurrent bool      `json:"academic_year_is_current"`
}

func FromYearModel(ent model.AcademicYearModel) AcademicYearResponseDTO {
	return AcademicYearResponseDTO{
		AcademicYearID:        ent.AcademicYearID,
		AcademicYearName:      ent.AcademicYearName,
		AcademicYearStartDate: ent.AcademicYearStartDate,
		AcademicYearEndDate:   ent.AcademicYearEndDate,
		AcademicYearIsCurrent: ent.AcademicYearIsCurrent,
	}
}

func FromYearModels(list []model.AcademicYearModel) []AcademicYearResponseDTO {
	out := make([]AcademicYearResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromYearModel(it))
	}
	return out
}

type AcademicTermResponseDTO struct {
	AcademicTermID             uuid.UUID `json:"academic_term_id"`
	AcademicTermAcademicYearID uuid.UUID `json:"academic_term_academic_year_id"`
	AcademicTermName           string    `json:"academic_term_name"`
	AcademicTermSortOrder      int       `json:"academic_term_sort_order"`
	AcademicTermStartDate      time.Time `json:"academic_term_start_date"`
	AcademicTermEndDate        time.Time `json:"academic_term_end_date"`
	AcademicTermIsCurrent      bool      `json:"academic_term_is_current"`
}

func FromTermModel(ent model.AcademicTermModel) AcademicTermResponseDTO {
	return AcademicTermResponseDTO{
		AcademicTermID:             ent.AcademicTermID,
		AcademicTermAcademicYearID: ent.AcademicTermAcademicYearID,
		AcademicTermName:           ent.AcademicTermName,
		AcademicTermSortOrder:      ent.AcademicTermSortOrder,
		AcademicTermStartDate:      ent.AcademicTermStartDate,
		AcademicTermEndDate:        ent.AcademicTermEndDate,
		AcademicTermIsCurrent:      ent.AcademicTermIsCurrent,
	}
}

func FromTermModels(list []model.AcademicTermModel) []AcademicTermResponseDTO {
	out := make([]AcademicTermResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromTermModel(it))
	}
	return out
}
