// file: internals/features/academics/years/service/rollover_service.go
package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	yearModel "skuli_backend/internals/features/academics/years/model"
	"skuli_backend/internals/helpers/errs"
)

/* =======================================================
   Year/Term Roller
   Advances the school's current year and term. The
   current flags are flipped clear-all-then-set-one so
   exactly one year and one term stay current.
======================================================= */

type RolloverService struct {
	Store Store
}

func NewRolloverService(store Store) *RolloverService {
	return &RolloverService{Store: store}
}

type RolloverResult struct {
	FromYear    string `json:"from_year"`
	ToYear      string `json:"to_year"`
	YearCreated bool   `json:"year_created"`
	CurrentTerm string `json:"current_term"`
	TermCreated bool   `json:"term_created"`
}

type TermAdvanceResult struct {
	Year     string `json:"year"`
	FromTerm string `json:"from_term"`
	ToTerm   string `json:"to_term"`
}

// AdvanceAcademicYear moves the school to the successor of its current year,
// creating the year and its first term when they do not exist yet. Fee
// structures of the new year are configured separately; rolling without them
// just means students owe nothing until they are.
func (s *RolloverService) AdvanceAcademicYear(ctx context.Context, schoolID uuid.UUID) (*RolloverResult, error) {
	current, err := s.Store.CurrentYear(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(current.AcademicYearName)
	if err != nil {
		return nil, errs.Configuration("current year name %q is not numeric; cannot derive a successor", current.AcademicYearName)
	}
	nextName := strconv.Itoa(n + 1)

	result := &RolloverResult{FromYear: current.AcademicYearName, ToYear: nextName}

	next, err := s.Store.YearByName(ctx, schoolID, nextName)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = &yearModel.AcademicYearModel{
			AcademicYearSchoolID:  schoolID,
			AcademicYearName:      nextName,
			AcademicYearStartDate: current.AcademicYearStartDate.AddDate(1, 0, 0),
			AcademicYearEndDate:   current.AcademicYearEndDate.AddDate(1, 0, 0),
		}
		if err := s.Store.CreateYear(ctx, next); err != nil {
			return nil, err
		}
		result.YearCreated = true
	}

	if err := s.Store.SetCurrentYear(ctx, schoolID, next.AcademicYearID); err != nil {
		return nil, err
	}

	term, err := s.Store.TermByName(ctx, schoolID, next.AcademicYearID, yearModel.TermFirst)
	if err != nil {
		return nil, err
	}
	if term == nil {
		term = &yearModel.AcademicTermModel{
			AcademicTermSchoolID:       schoolID,
			AcademicTermAcademicYearID: next.AcademicYearID,
			AcademicTermName:           yearModel.TermFirst,
			AcademicTermStartDate:      next.AcademicYearStartDate,
			AcademicTermEndDate:        next.AcademicYearStartDate.AddDate(0, 4, 0),
		}
		if err := s.Store.CreateTerm(ctx, term); err != nil {
			return nil, err
		}
		result.TermCreated = true
	}

	if err := s.Store.SetCurrentTerm(ctx, schoolID, term.AcademicTermID); err != nil {
		return nil, err
	}
	result.CurrentTerm = term.AcademicTermName

	return result, nil
}

// AdvanceTerm moves to the next term within the current year. Advancing past
// the last term is refused; that transition belongs to AdvanceAcademicYear.
func (s *RolloverService) AdvanceTerm(ctx context.Context, schoolID uuid.UUID) (*TermAdvanceResult, error) {
	year, err := s.Store.CurrentYear(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	current, err := s.Store.CurrentTerm(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if current.AcademicTermAcademicYearID != year.AcademicYearID {
		return nil, errs.Configuration("current term does not belong to the current year")
	}

	terms, err := s.Store.TermsForYear(ctx, schoolID, year.AcademicYearID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range terms {
		if terms[i].AcademicTermID == current.AcademicTermID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.Internal("current term missing from year term list", nil)
	}
	if idx == len(terms)-1 {
		return nil, errs.State("%s is the last term of %s; advance the academic year instead",
			current.AcademicTermName, year.AcademicYearName)
	}

	next := terms[idx+1]
	if err := s.Store.SetCurrentTerm(ctx, schoolID, next.AcademicTermID); err != nil {
		return nil, err
	}

	return &TermAdvanceResult{
		Year:     year.AcademicYearName,
		FromTerm: current.AcademicTermName,
		ToTerm:   next.AcademicTermName,
	}, nil
}
