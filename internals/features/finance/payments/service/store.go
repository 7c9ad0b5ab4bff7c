// file: internals/features/finance/payments/service/store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	yearModel "skuli_backend/internals/features/academics/years/model"
	paymentModel "skuli_backend/internals/features/finance/payments/model"
	studentModel "skuli_backend/internals/features/students/model"
)

// FeeWindow is a charge window: the fee structure that applies to one
// (grade, year, term), denormalized with the window's ordering keys.
type FeeWindow struct {
	FeeStructureID uuid.UUID
	YearID         uuid.UUID
	YearName       string
	TermID         uuid.UUID
	TermName       string
	TermSortOrder  int
	TermStartDate  time.Time
	TotalAmount    decimal.Decimal
	Breakdown      datatypes.JSON
}

// Store is the persistence surface the balance service needs. The GORM
// implementation lives in gorm_store.go; tests substitute an in-memory fake.
type Store interface {
	StudentByID(ctx context.Context, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error)
	StudentsBySchool(ctx context.Context, schoolID uuid.UUID, gradeID *uuid.UUID) ([]studentModel.StudentModel, error)

	YearByID(ctx context.Context, schoolID, yearID uuid.UUID) (*yearModel.AcademicYearModel, error)
	YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error)
	TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error)
	TermByID(ctx context.Context, schoolID, termID uuid.UUID) (*yearModel.AcademicTermModel, error)

	// FeeWindowFor returns nil (no error) when no structure is configured.
	FeeWindowFor(ctx context.Context, schoolID, gradeID, yearID, termID uuid.UUID) (*FeeWindow, error)
	// FeeWindowsForGrade returns every charge window for a grade ordered by
	// (year, term sort order) ascending.
	FeeWindowsForGrade(ctx context.Context, schoolID, gradeID uuid.UUID) ([]FeeWindow, error)

	// AllocatedTotal sums payment allocations of one student into one window.
	AllocatedTotal(ctx context.Context, schoolID, studentID, yearID, termID uuid.UUID) (decimal.Decimal, error)

	// PaymentsForStudent returns payments most-recent-first; year/term filters
	// are optional.
	PaymentsForStudent(ctx context.Context, schoolID, studentID uuid.UUID, yearID, termID *uuid.UUID) ([]paymentModel.PaymentModel, error)

	PaymentExistsByReference(ctx context.Context, schoolID uuid.UUID, reference string) (bool, error)

	// CreatePaymentBundle writes payment, allocations, and receipt in a single
	// transaction. A unique-key race on the reference surfaces as a conflict.
	CreatePaymentBundle(ctx context.Context, p *paymentModel.PaymentModel, allocs []paymentModel.PaymentAllocationModel, r *paymentModel.ReceiptModel) error
}
