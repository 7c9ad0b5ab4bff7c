// file: internals/features/finance/payments/service/balance_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	paymentModel "skuli_backend/internals/features/finance/payments/model"
	"skuli_backend/internals/helpers/errs"
)

/* =======================================================
   Balance Service
   Computes per-student balances, records payments with
   receipts atomically, and aggregates school-wide totals.
======================================================= */

// CarryForwardOrder picks which future outstanding window absorbs an
// overpayment first.
type CarryForwardOrder string

const (
	CarryForwardEarliestFirst CarryForwardOrder = "earliest_first"
	CarryForwardLatestFirst   CarryForwardOrder = "latest_first"
)

type BalanceService struct {
	Store        Store
	CarryForward CarryForwardOrder
}

func NewBalanceService(store Store) *BalanceService {
	return &BalanceService{
		Store:        store,
		CarryForward: CarryForwardEarliestFirst,
	}
}

/* ===================== Results ===================== */

type StudentBalance struct {
	StudentID     uuid.UUID       `json:"student_id"`
	YearName      string          `json:"year_name"`
	TermName      string          `json:"term_name"`
	TotalRequired decimal.Decimal `json:"total_required"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	// TotalRequired − TotalPaid clamped at zero.
	Balance      decimal.Decimal `json:"balance"`
	FeeBreakdown datatypes.JSON  `json:"fee_breakdown,omitempty"`
}

type SchoolBalanceRow struct {
	StudentID   uuid.UUID       `json:"student_id"`
	AdmissionNo string          `json:"admission_no"`
	FullName    string          `json:"full_name"`
	ClassName   string          `json:"class_name"`
	Required    decimal.Decimal `json:"required"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
}

type SchoolBalanceSummary struct {
	StudentCount     int             `json:"student_count"`
	WithOutstanding  int             `json:"with_outstanding"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

type SchoolBalances struct {
	Rows    []SchoolBalanceRow   `json:"rows"`
	Summary SchoolBalanceSummary `json:"summary"`
}

type RecordPaymentCommand struct {
	SchoolID    uuid.UUID
	StudentID   uuid.UUID
	Amount      decimal.Decimal
	YearName    string
	TermName    string
	Method      paymentModel.PaymentMethod
	ReceivedBy  uuid.UUID
	Description *string
	Reference   string
}

type PaymentResult struct {
	Payment        *paymentModel.PaymentModel `json:"payment"`
	Receipt        *paymentModel.ReceiptModel `json:"receipt"`
	UpdatedBalance *StudentBalance            `json:"updated_balance"`
}

/* ===================== Queries ===================== */

// CalculateStudentBalance resolves the fee structure for the student's grade
// in (year, term) and nets it against payment allocations into that window.
func (s *BalanceService) CalculateStudentBalance(ctx context.Context, schoolID, studentID uuid.UUID, yearName, termName string) (*StudentBalance, error) {
	student, err := s.Store.StudentByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	if student.Class == nil {
		return nil, errs.NotFound("student %s has no class placement", studentID)
	}

	year, err := s.Store.YearByName(ctx, schoolID, yearName)
	if err != nil {
		return nil, err
	}
	term, err := s.Store.TermByName(ctx, schoolID, year.AcademicYearID, termName)
	if err != nil {
		return nil, err
	}

	window, err := s.Store.FeeWindowFor(ctx, schoolID, student.Class.ClassGradeID, year.AcademicYearID, term.AcademicTermID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, errs.NotFound("no fee structure for grade in %s %s", yearName, termName)
	}

	paid, err := s.Store.AllocatedTotal(ctx, schoolID, studentID, year.AcademicYearID, term.AcademicTermID)
	if err != nil {
		return nil, err
	}

	return &StudentBalance{
		StudentID:     studentID,
		YearName:      yearName,
		TermName:      termName,
		TotalRequired: window.TotalAmount,
		TotalPaid:     paid,
		Balance:       clampZero(window.TotalAmount.Sub(paid)),
		FeeBreakdown:  window.Breakdown,
	}, nil
}

// SchoolStudentBalances computes a balance row per student, optionally
// filtered to one grade, plus an outstanding summary. Students whose grade has
// no fee structure in the window carry no charge and are listed at zero.
func (s *BalanceService) SchoolStudentBalances(ctx context.Context, schoolID uuid.UUID, yearName, termName string, gradeID *uuid.UUID) (*SchoolBalances, error) {
	year, err := s.Store.YearByName(ctx, schoolID, yearName)
	if err != nil {
		return nil, err
	}
	term, err := s.Store.TermByName(ctx, schoolID, year.AcademicYearID, termName)
	if err != nil {
		return nil, err
	}

	students, err := s.Store.StudentsBySchool(ctx, schoolID, gradeID)
	if err != nil {
		return nil, err
	}

	out := &SchoolBalances{
		Rows:    make([]SchoolBalanceRow, 0, len(students)),
		Summary: SchoolBalanceSummary{TotalOutstanding: decimal.Zero},
	}

	// One fee window per grade; cached so N students cost one lookup each.
	windows := map[uuid.UUID]*FeeWindow{}
	for i := range students {
		st := &students[i]
		if st.Class == nil {
			continue
		}
		gid := st.Class.ClassGradeID
		window, ok := windows[gid]
		if !ok {
			window, err = s.Store.FeeWindowFor(ctx, schoolID, gid, year.AcademicYearID, term.AcademicTermID)
			if err != nil {
				return nil, err
			}
			windows[gid] = window
		}

		row := SchoolBalanceRow{
			StudentID:   st.StudentID,
			AdmissionNo: st.StudentAdmissionNo,
			FullName:    st.FullName(),
			ClassName:   st.Class.ClassName,
			Required:    decimal.Zero,
			Paid:        decimal.Zero,
			Balance:     decimal.Zero,
		}
		if window != nil {
			paid, err := s.Store.AllocatedTotal(ctx, schoolID, st.StudentID, year.AcademicYearID, term.AcademicTermID)
			if err != nil {
				return nil, err
			}
			row.Required = window.TotalAmount
			row.Paid = paid
			row.Balance = clampZero(window.TotalAmount.Sub(paid))
		}

		out.Rows = append(out.Rows, row)
		out.Summary.StudentCount++
		if row.Balance.IsPositive() {
			out.Summary.WithOutstanding++
			out.Summary.TotalOutstanding = out.Summary.TotalOutstanding.Add(row.Balance)
		}
	}

	return out, nil
}

// PaymentHistory lists a student's payments most-recent-first; year and term
// narrow the window when given.
func (s *BalanceService) PaymentHistory(ctx context.Context, schoolID, studentID uuid.UUID, yearName, termName string) ([]paymentModel.PaymentModel, error) {
	if _, err := s.Store.StudentByID(ctx, schoolID, studentID); err != nil {
		return nil, err
	}

	var yearID, termID *uuid.UUID
	if yearName != "" {
		year, err := s.Store.YearByName(ctx, schoolID, yearName)
		if err != nil {
			return nil, err
		}
		yearID = &year.AcademicYearID
		if termName != "" {
			term, err := s.Store.TermByName(ctx, schoolID, year.AcademicYearID, termName)
			if err != nil {
				return nil, err
			}
			termID = &term.AcademicTermID
		}
	}

	return s.Store.PaymentsForStudent(ctx, schoolID, studentID, yearID, termID)
}

/* ===================== Recording ===================== */

// RecordPayment applies a payment to the student's (year, term) window and
// writes Payment + allocations + Receipt as one atomic unit. Overpayment is
// never discarded: the excess rolls into future outstanding windows per the
// configured carry-forward order, and whatever cannot be placed stays on the
// paid term as credit.
func (s *BalanceService) RecordPayment(ctx context.Context, cmd RecordPaymentCommand) (*PaymentResult, error) {
	if !cmd.Amount.IsPositive() {
		return nil, errs.Validation("amount must be greater than zero")
	}
	if cmd.ReceivedBy == uuid.Nil {
		return nil, errs.Validation("received_by is required")
	}

	student, err := s.Store.StudentByID(ctx, cmd.SchoolID, cmd.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Class == nil {
		return nil, errs.NotFound("student %s has no class placement", cmd.StudentID)
	}
	gradeID := student.Class.ClassGradeID

	year, err := s.Store.YearByName(ctx, cmd.SchoolID, cmd.YearName)
	if err != nil {
		return nil, err
	}
	term, err := s.Store.TermByName(ctx, cmd.SchoolID, year.AcademicYearID, cmd.TermName)
	if err != nil {
		return nil, err
	}

	window, err := s.Store.FeeWindowFor(ctx, cmd.SchoolID, gradeID, year.AcademicYearID, term.AcademicTermID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, errs.Configuration("no fee structure configured for the student's grade in %s %s", cmd.YearName, cmd.TermName)
	}

	reference := strings.TrimSpace(cmd.Reference)
	if reference == "" {
		reference = generateReference(cmd.YearName)
	} else {
		exists, err := s.Store.PaymentExistsByReference(ctx, cmd.SchoolID, reference)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflict("payment reference %s already recorded", reference)
		}
	}

	paidSoFar, err := s.Store.AllocatedTotal(ctx, cmd.SchoolID, cmd.StudentID, year.AcademicYearID, term.AcademicTermID)
	if err != nil {
		return nil, err
	}
	balanceBefore := clampZero(window.TotalAmount.Sub(paidSoFar))

	// Future windows and their outstanding amounts, for carry-forward.
	future, err := s.futureOutstanding(ctx, cmd.SchoolID, gradeID, cmd.StudentID, *window)
	if err != nil {
		return nil, err
	}

	plan := planAllocations(cmd.Amount, *window, balanceBefore, future, s.carryForwardOrder())

	payment := &paymentModel.PaymentModel{
		PaymentSchoolID:       cmd.SchoolID,
		PaymentStudentID:      cmd.StudentID,
		PaymentAcademicYearID: year.AcademicYearID,
		PaymentTermID:         term.AcademicTermID,
		PaymentAmount:         cmd.Amount,
		PaymentMethod:         cmd.Method,
		PaymentReference:      reference,
		PaymentReceivedBy:     cmd.ReceivedBy,
		PaymentDescription:    cmd.Description,
		PaymentPaidAt:         time.Now(),
	}

	allocs := make([]paymentModel.PaymentAllocationModel, 0, len(plan.Slices))
	for _, sl := range plan.Slices {
		allocs = append(allocs, paymentModel.PaymentAllocationModel{
			PaymentAllocationSchoolID:       cmd.SchoolID,
			PaymentAllocationStudentID:      cmd.StudentID,
			PaymentAllocationAcademicYearID: sl.YearID,
			PaymentAllocationTermID:         sl.TermID,
			PaymentAllocationAmount:         sl.Amount,
			PaymentAllocationIsCarryForward: sl.CarryForward,
		})
	}

	receipt := &paymentModel.ReceiptModel{
		ReceiptSchoolID:      cmd.SchoolID,
		ReceiptNo:            generateReceiptNo(cmd.YearName),
		ReceiptBalanceBefore: balanceBefore,
		ReceiptBalanceAfter:  clampZero(balanceBefore.Sub(cmd.Amount)),
		ReceiptCarryForward:  plan.CarriedForward,
		ReceiptIssuedAt:      time.Now(),
	}

	if err := s.Store.CreatePaymentBundle(ctx, payment, allocs, receipt); err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.Conflict("payment reference %s already recorded", reference)
		}
		return nil, errs.Internal(
			fmt.Sprintf("recording payment failed (student=%s amount=%s term=%s ref=%s)",
				cmd.StudentID, cmd.Amount.String(), cmd.TermName, reference),
			err,
		)
	}

	updated := &StudentBalance{
		StudentID:     cmd.StudentID,
		YearName:      cmd.YearName,
		TermName:      cmd.TermName,
		TotalRequired: window.TotalAmount,
		TotalPaid:     paidSoFar.Add(plan.AppliedToTerm),
		Balance:       receipt.ReceiptBalanceAfter,
		FeeBreakdown:  window.Breakdown,
	}

	return &PaymentResult{Payment: payment, Receipt: receipt, UpdatedBalance: updated}, nil
}

func (s *BalanceService) carryForwardOrder() CarryForwardOrder {
	if s.CarryForward == "" {
		return CarryForwardEarliestFirst
	}
	return s.CarryForward
}

// futureOutstanding lists the windows strictly after the paid one, each with
// the student's remaining outstanding amount, ordered earliest-first.
func (s *BalanceService) futureOutstanding(ctx context.Context, schoolID, gradeID, studentID uuid.UUID, current FeeWindow) ([]windowOutstanding, error) {
	windows, err := s.Store.FeeWindowsForGrade(ctx, schoolID, gradeID)
	if err != nil {
		return nil, err
	}

	var out []windowOutstanding
	for _, w := range windows {
		if !windowAfter(w, current) {
			continue
		}
		paid, err := s.Store.AllocatedTotal(ctx, schoolID, studentID, w.YearID, w.TermID)
		if err != nil {
			return nil, err
		}
		outstanding := clampZero(w.TotalAmount.Sub(paid))
		if outstanding.IsPositive() {
			out = append(out, windowOutstanding{Window: w, Outstanding: outstanding})
		}
	}
	return out, nil
}

// windowAfter orders windows by (year, term sort order).
func windowAfter(w, ref FeeWindow) bool {
	cmp := compareYearNames(w.YearName, ref.YearName)
	if cmp != 0 {
		return cmp > 0
	}
	return w.TermSortOrder > ref.TermSortOrder
}

/* ===================== Allocation plan ===================== */

type windowOutstanding struct {
	Window      FeeWindow
	Outstanding decimal.Decimal
}

type allocationSlice struct {
	YearID       uuid.UUID
	TermID       uuid.UUID
	Amount       decimal.Decimal
	CarryForward bool
}

type allocationPlan struct {
	Slices         []allocationSlice
	AppliedToTerm  decimal.Decimal
	CarriedForward decimal.Decimal
}

// planAllocations splits amount into the paid window first, then future
// outstanding windows in the requested order. An unplaceable remainder stays
// on the paid window as credit so money is never discarded.
func planAllocations(amount decimal.Decimal, window FeeWindow, outstanding decimal.Decimal, future []windowOutstanding, order CarryForwardOrder) allocationPlan {
	plan := allocationPlan{
		AppliedToTerm:  decimal.Zero,
		CarriedForward: decimal.Zero,
	}

	applied := decimal.Min(amount, outstanding)
	excess := amount.Sub(applied)

	if order == CarryForwardLatestFirst {
		reversed := make([]windowOutstanding, len(future))
		for i, w := range future {
			reversed[len(future)-1-i] = w
		}
		future = reversed
	}

	for _, fw := range future {
		if !excess.IsPositive() {
			break
		}
		slice := decimal.Min(excess, fw.Outstanding)
		plan.Slices = append(plan.Slices, allocationSlice{
			YearID:       fw.Window.YearID,
			TermID:       fw.Window.TermID,
			Amount:       slice,
			CarryForward: true,
		})
		plan.CarriedForward = plan.CarriedForward.Add(slice)
		excess = excess.Sub(slice)
	}

	// Remainder nothing could absorb stays on the paid term as credit.
	applied = applied.Add(excess)

	if applied.IsPositive() {
		head := allocationSlice{
			YearID: window.YearID,
			TermID: window.TermID,
			Amount: applied,
		}
		plan.Slices = append([]allocationSlice{head}, plan.Slices...)
	}
	plan.AppliedToTerm = applied

	return plan
}

/* ===================== Reference generation ===================== */

func generateReference(yearName string) string {
	return fmt.Sprintf("PMT-%s-%s", yearName, shortID())
}

func generateReceiptNo(yearName string) string {
	return fmt.Sprintf("RCP-%s-%s", yearName, shortID())
}

func shortID() string {
	id := uuid.New().String()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10])
}
