// file: internals/features/finance/payments/model/receipt_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptModel is the balance snapshot written in the same transaction as its
// payment. A payment without a receipt is a partial write and treated as a
// fatal error, so the pair shares one insert scope.
type ReceiptModel struct {
	ReceiptID       uuid.UUID `gorm:"column:receipt_id;type:uuid;default:gen_random_uuid();primaryKey" json:"receipt_id"`
	ReceiptSchoolID uuid.UUID `gorm:"column:receipt_school_id;type:uuid;not null;index" json:"receipt_school_id"`

	// FK → payments; one receipt per payment
	ReceiptPaymentID uuid.UUID `gorm:"column:receipt_payment_id;type:uuid;not null;uniqueIndex" json:"receipt_payment_id"`

	ReceiptNo string `gorm:"column:receipt_no;type:varchar(40);not null;uniqueIndex" json:"receipt_no"`

	// Outstanding balance for the paid term, clamped at zero, before and after
	// this payment was applied.
	ReceiptBalanceBefore decimal.Decimal `gorm:"column:receipt_balance_before;type:numeric(14,2);not null" json:"receipt_balance_before"`
	ReceiptBalanceAfter  decimal.Decimal `gorm:"column:receipt_balance_after;type:numeric(14,2);not null" json:"receipt_balance_after"`

	// Portion of the amount that exceeded the term's outstanding balance and
	// was rolled into the next outstanding term.
	ReceiptCarryForward decimal.Decimal `gorm:"column:receipt_carry_forward;type:numeric(14,2);not null;default:0" json:"receipt_carry_forward"`

	ReceiptIssuedAt  time.Time `gorm:"column:receipt_issued_at;type:timestamptz;not null" json:"receipt_issued_at"`
	ReceiptCreatedAt time.Time `gorm:"column:receipt_created_at;type:timestamptz;not null;autoCreateTime" json:"receipt_created_at"`
}

func (ReceiptModel) TableName() string { return "receipts" }

func (m *ReceiptModel) BeforeCreate(tx *gorm.DB) error {
	m.ReceiptNo = strings.TrimSpace(m.ReceiptNo)
	if m.ReceiptNo == "" {
		return errors.New("receipt_no is required")
	}
	if m.ReceiptIssuedAt.IsZero() {
		m.ReceiptIssuedAt = time.Now()
	}
	return nil
}
