// file: internals/features/academics/years/service/gorm_store.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	yearModel "skuli_backend/internals/features/academics/years/model"
	"skuli_backend/internals/helpers/errs"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ Store = (*GormStore)(nil)

func (g *GormStore) CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	var year yearModel.AcademicYearModel
	err := g.DB.WithContext(ctx).
		Where("academic_year_school_id = ? AND academic_year_is_current = TRUE", schoolID).
		First(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Configuration("no current academic year configured")
	}
	if err != nil {
		return nil, errs.Internal("loading current year", err)
	}
	return &year, nil
}

func (g *GormStore) CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	var term yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_is_current = TRUE", schoolID).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Configuration("no current term configured")
	}
	if err != nil {
		return nil, errs.Internal("loading current term", err)
	}
	return &term, nil
}

func (g *GormStore) YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error) {
	var year yearModel.AcademicYearModel
	err := g.DB.WithContext(ctx).
		Where("academic_year_school_id = ? AND academic_year_name = ?", schoolID, name).
		First(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading academic year", err)
	}
	return &year, nil
}

func (g *GormStore) CreateYear(ctx context.Context, m *yearModel.AcademicYearModel) error {
	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		return errs.Internal("creating academic year", err)
	}
	return nil
}

func (g *GormStore) TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error) {
	var term yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_academic_year_id = ? AND academic_term_name = ?", schoolID, yearID, name).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading term", err)
	}
	return &term, nil
}

func (g *GormStore) TermsForYear(ctx context.Context, schoolID, yearID uuid.UUID) ([]yearModel.AcademicTermModel, error) {
	var terms []yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_academic_year_id = ?", schoolID, yearID).
		Order("academic_term_sort_order ASC, academic_term_start_date ASC").
		Find(&terms).Error
	if err != nil {
		return nil, errs.Internal("listing terms", err)
	}
	return terms, nil
}

func (g *GormStore) CreateTerm(ctx context.Context, m *yearModel.AcademicTermModel) error {
	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		return errs.Internal("creating term", err)
	}
	return nil
}

// SetCurrentYear flips the flag clear-all-then-set-one in one transaction so
// the school never has zero or two current years.
func (g *GormStore) SetCurrentYear(ctx context.Context, schoolID, yearID uuid.UUID) error {
	return g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&yearModel.AcademicYearModel{}).
			Where("academic_year_school_id = ? AND academic_year_is_current = TRUE", schoolID).
			Update("academic_year_is_current", false).Error; err != nil {
			return errs.Internal("clearing current year flags", err)
		}
		res := tx.Model(&yearModel.AcademicYearModel{}).
			Where("academic_year_school_id = ? AND academic_year_id = ?", schoolID, yearID).
			Update("academic_year_is_current", true)
		if res.Error != nil {
			return errs.Internal("setting current year", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("academic year %s not found", yearID)
		}
		return nil
	})
}

func (g *GormStore) SetCurrentTerm(ctx context.Context, schoolID, termID uuid.UUID) error {
	return g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&yearModel.AcademicTermModel{}).
			Where("academic_term_school_id = ? AND academic_term_is_current = TRUE", schoolID).
			Update("academic_term_is_current", false).Error; err != nil {
			return errs.Internal("clearing current term flags", err)
		}
		res := tx.Model(&yearModel.AcademicTermModel{}).
			Where("academic_term_school_id = ? AND academic_term_id = ?", schoolID, termID).
			Update("academic_term_is_current", true)
		if res.Error != nil {
			return errs.Internal("setting current term", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("term %s not found", termID)
		}
		return nil
	})
}
