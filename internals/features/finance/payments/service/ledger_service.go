// file: internals/features/finance/payments/service/ledger_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"skuli_backend/internals/helpers/errs"
)

// StudentLedger assembles the full transaction history for one student: every
// fee window of their grade as a charge, every payment as a credit, filtered
// to their join point and annotated with a running balance.
func (s *BalanceService) StudentLedger(ctx context.Context, schoolID, studentID uuid.UUID, restrictYear string) (*Ledger, error) {
	student, err := s.Store.StudentByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	if student.Class == nil {
		return nil, errs.NotFound("student %s has no class placement", studentID)
	}

	windows, err := s.Store.FeeWindowsForGrade(ctx, schoolID, student.Class.ClassGradeID)
	if err != nil {
		return nil, err
	}

	payments, err := s.Store.PaymentsForStudent(ctx, schoolID, studentID, nil, nil)
	if err != nil {
		return nil, err
	}

	items := make([]LedgerItem, 0, len(windows)+len(payments))
	for _, w := range windows {
		items = append(items, LedgerItem{
			Type:        LedgerEntryCharge,
			Ref:         fmt.Sprintf("FEE-%s-%s", w.YearName, w.TermName),
			Description: fmt.Sprintf("School fees %s, %s", w.TermName, w.YearName),
			Amount:      w.TotalAmount,
			Date:        w.TermStartDate,
			YearName:    w.YearName,
			TermName:    w.TermName,
		})
	}

	// Window names for payments, resolved once per distinct term.
	termNames := map[uuid.UUID][2]string{}
	for i := range payments {
		p := &payments[i]
		names, ok := termNames[p.PaymentTermID]
		if !ok {
			term, err := s.Store.TermByID(ctx, schoolID, p.PaymentTermID)
			if err != nil {
				return nil, err
			}
			year, err := s.Store.YearByID(ctx, schoolID, p.PaymentAcademicYearID)
			if err != nil {
				return nil, err
			}
			names = [2]string{year.AcademicYearName, term.AcademicTermName}
			termNames[p.PaymentTermID] = names
		}

		desc := fmt.Sprintf("Payment (%s)", p.PaymentMethod)
		if p.PaymentDescription != nil && *p.PaymentDescription != "" {
			desc = *p.PaymentDescription
		}
		items = append(items, LedgerItem{
			Type:        LedgerEntryPayment,
			Ref:         p.PaymentReference,
			Description: desc,
			Amount:      p.PaymentAmount,
			Date:        p.PaymentPaidAt,
			YearName:    names[0],
			TermName:    names[1],
		})
	}

	join := JoinPoint{JoinedAt: student.StudentJoinedAt}
	if student.StudentJoinAcademicYearID != nil && student.StudentJoinTermID != nil {
		year, err := s.Store.YearByID(ctx, schoolID, *student.StudentJoinAcademicYearID)
		if err != nil {
			return nil, err
		}
		term, err := s.Store.TermByID(ctx, schoolID, *student.StudentJoinTermID)
		if err != nil {
			return nil, err
		}
		join.YearName = year.AcademicYearName
		join.TermName = term.AcademicTermName
	}

	ledger := BuildLedger(join, items, LedgerOptions{RestrictToYear: restrictYear})
	return &ledger, nil
}
