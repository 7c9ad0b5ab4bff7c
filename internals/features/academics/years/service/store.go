// file: internals/features/academics/years/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"

	yearModel "skuli_backend/internals/features/academics/years/model"
)

// Store is the persistence surface of the year/term roller. The GORM
// implementation lives in gorm_store.go; tests substitute an in-memory fake.
type Store interface {
	CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error)
	CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error)

	// YearByName returns nil (no error) when no year carries the name.
	YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error)
	CreateYear(ctx context.Context, m *yearModel.AcademicYearModel) error

	// TermByName returns nil (no error) when the year has no such term.
	TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error)
	// TermsForYear lists the year's terms ordered by sort order ascending.
	TermsForYear(ctx context.Context, schoolID, yearID uuid.UUID) ([]yearModel.AcademicTermModel, error)
	CreateTerm(ctx context.Context, m *yearModel.AcademicTermModel) error

	// SetCurrentYear clears every current flag of the school and sets the
	// given year inside one transaction.
	SetCurrentYear(ctx context.Context, schoolID, yearID uuid.UUID) error
	// SetCurrentTerm does the same for terms.
	SetCurrentTerm(ctx context.Context, schoolID, termID uuid.UUID) error
}
