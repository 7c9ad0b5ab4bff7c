// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodBank        PaymentMethod = "bank_transfer"
	PaymentMethodCheque      PaymentMethod = "cheque"
)

/* ===================== Model ===================== */

// PaymentModel is an immutable record of money received. The reference number
// is the idempotency key: unique per school, checked before insert and backed
// by a unique index for concurrent submitters.
type PaymentModel struct {
	PaymentID       uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentSchoolID uuid.UUID `gorm:"column:payment_school_id;type:uuid;not null;index;uniqueIndex:uniq_payment_reference,priority:1" json:"payment_school_id"`

	// FK → students, academic_years, academic_terms
	PaymentStudentID      uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index" json:"payment_student_id"`
	PaymentAcademicYearID uuid.UUID `gorm:"column:payment_academic_year_id;type:uuid;not null;index" json:"payment_academic_year_id"`
	PaymentTermID         uuid.UUID `gorm:"column:payment_term_id;type:uuid;not null;index" json:"payment_term_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentMethod PaymentMethod   `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`

	PaymentReference   string    `gorm:"column:payment_reference;type:varchar(60);not null;uniqueIndex:uniq_payment_reference,priority:2" json:"payment_reference"`
	PaymentReceivedBy  uuid.UUID `gorm:"column:payment_received_by;type:uuid;not null" json:"payment_received_by"`
	PaymentDescription *string   `gorm:"column:payment_description;type:text" json:"payment_description,omitempty"`

	PaymentPaidAt    time.Time `gorm:"column:payment_paid_at;type:timestamptz;not null;index" json:"payment_paid_at"`
	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;type:timestamptz;not null;autoCreateTime" json:"payment_created_at"`

	// Relationships
	Receipt *ReceiptModel `gorm:"foreignKey:ReceiptPaymentID;references:PaymentID" json:"receipt,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	m.PaymentReference = strings.TrimSpace(m.PaymentReference)
	if m.PaymentReference == "" {
		return errors.New("payment_reference is required")
	}
	if !m.PaymentAmount.IsPositive() {
		return errors.New("payment_amount must be > 0")
	}
	if m.PaymentPaidAt.IsZero() {
		m.PaymentPaidAt = time.Now()
	}
	return nil
}
