// file: internals/features/finance/payments/model/payment_allocation_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentAllocationModel splits one payment across the terms it settles. The
// first allocation targets the term the payment was made against; any excess
// rolls into later outstanding terms as carry-forward. Balance arithmetic
// sums allocations, never raw payment amounts, so an overpayment is counted
// exactly once.
type PaymentAllocationModel struct {
	PaymentAllocationID       uuid.UUID `gorm:"column:payment_allocation_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_allocation_id"`
	PaymentAllocationSchoolID uuid.UUID `gorm:"column:payment_allocation_school_id;type:uuid;not null;index" json:"payment_allocation_school_id"`

	// FK → payments
	PaymentAllocationPaymentID uuid.UUID `gorm:"column:payment_allocation_payment_id;type:uuid;not null;index" json:"payment_allocation_payment_id"`

	// Target window the slice settles.
	PaymentAllocationStudentID      uuid.UUID `gorm:"column:payment_allocation_student_id;type:uuid;not null;index:ix_payment_allocation_window" json:"payment_allocation_student_id"`
	PaymentAllocationAcademicYearID uuid.UUID `gorm:"column:payment_allocation_academic_year_id;type:uuid;not null;index:ix_payment_allocation_window" json:"payment_allocation_academic_year_id"`
	PaymentAllocationTermID         uuid.UUID `gorm:"column:payment_allocation_term_id;type:uuid;not null;index:ix_payment_allocation_window" json:"payment_allocation_term_id"`

	PaymentAllocationAmount decimal.Decimal `gorm:"column:payment_allocation_amount;type:numeric(14,2);not null" json:"payment_allocation_amount"`

	// True for slices beyond the term the payment was made against.
	PaymentAllocationIsCarryForward bool `gorm:"column:payment_allocation_is_carry_forward;not null;default:false" json:"payment_allocation_is_carry_forward"`

	PaymentAllocationCreatedAt time.Time `gorm:"column:payment_allocation_created_at;type:timestamptz;not null;autoCreateTime" json:"payment_allocation_created_at"`
}

func (PaymentAllocationModel) TableName() string { return "payment_allocations" }

func (m *PaymentAllocationModel) BeforeCreate(tx *gorm.DB) error {
	if !m.PaymentAllocationAmount.IsPositive() {
		return errors.New("payment_allocation_amount must be > 0")
	}
	return nil
}
