// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skuli_backend/internals/features/finance/payments/model"
	"skuli_backend/internals/features/finance/payments/service"
)

/* =======================
   Request DTOs
======================= */

type RecordPaymentDTO struct {
	PaymentStudentID   uuid.UUID       `json:"payment_student_id"  validate:"required"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"      validate:"required"`
	PaymentYearName    string          `json:"payment_year_name"   validate:"required,min=4"`
	PaymentTermName    string          `json:"payment_term_name"   validate:"required,oneof='Term 1' 'Term 2' 'Term 3'"`
	PaymentMethod      string          `json:"payment_method"      validate:"required,oneof=cash mobile_money bank_transfer cheque"`
	PaymentReference   string          `json:"payment_reference,omitempty"   validate:"omitempty,max=60"`
	PaymentDescription *string         `json:"payment_description,omitempty" validate:"omitempty,max=500"`
}

func (p *RecordPaymentDTO) Normalize() {
	p.PaymentYearName = strings.TrimSpace(p.PaymentYearName)
	p.PaymentTermName = strings.TrimSpace(p.PaymentTermName)
	p.PaymentReference = strings.TrimSpace(p.PaymentReference)
}

func (p *RecordPaymentDTO) ToCommand(schoolID, receivedBy uuid.UUID) service.RecordPaymentCommand {
	return service.RecordPaymentCommand{
		SchoolID:    schoolID,
		StudentID:   p.PaymentStudentID,
		Amount:      p.PaymentAmount,
		YearName:    p.PaymentYearName,
		TermName:    p.PaymentTermName,
		Method:      model.PaymentMethod(p.PaymentMethod),
		ReceivedBy:  receivedBy,
		Description: p.PaymentDescription,
		Reference:   p.PaymentReference,
	}
}

type BalanceQueryDTO struct {
	Year string `query:"year" validate:"required,min=4"`
	Term string `query:"term" validate:"required,oneof='Term 1' 'Term 2' 'Term 3'"`
}

type HistoryQueryDTO struct {
	Year string `query:"year" validate:"omitempty,min=4"`
	Term string `query:"term" validate:"omitempty,oneof='Term 1' 'Term 2' 'Term 3'"`
}

type LedgerQueryDTO struct {
	Year string `query:"year" validate:"omitempty,min=4"`
}

type SchoolBalancesQueryDTO struct {
	Year    string     `query:"year"     validate:"required,min=4"`
	Term    string     `query:"term"     validate:"required,oneof='Term 1' 'Term 2' 'Term 3'"`
	GradeID *uuid.UUID `query:"grade_id" validate:"omitempty"`
}

/* =======================
   Response DTOs
======================= */

type PaymentResponseDTO struct {
	PaymentID          uuid.UUID       `json:"payment_id"`
	PaymentStudentID   uuid.UUID       `json:"payment_student_id"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentReference   string          `json:"payment_reference"`
	PaymentDescription *string         `json:"payment_description,omitempty"`
	PaymentPaidAt      time.Time       `json:"payment_paid_at"`
	ReceiptNo          *string         `json:"receipt_no,omitempty"`
}

func FromPaymentModel(ent model.PaymentModel) PaymentResponseDTO {
	out := PaymentResponseDTO{
		PaymentID:          ent.PaymentID,
		PaymentStudentID:   ent.PaymentStudentID,
		PaymentAmount:      ent.PaymentAmount,
		PaymentMethod:      string(ent.PaymentMethod),
		PaymentReference:   ent.PaymentReference,
		PaymentDescription: ent.PaymentDescription,
		PaymentPaidAt:      ent.PaymentPaidAt,
	}
	if ent.Receipt != nil {
		out.ReceiptNo = &ent.Receipt.ReceiptNo
	}
	return out
}

func FromPaymentModels(list []model.PaymentModel) []PaymentResponseDTO {
	out := make([]PaymentResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromPaymentModel(it))
	}
	return out
}
