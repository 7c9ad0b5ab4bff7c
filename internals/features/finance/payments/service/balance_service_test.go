// file: internals/features/finance/payments/service/balance_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearModel "skuli_backend/internals/features/academics/years/model"
	paymentModel "skuli_backend/internals/features/finance/payments/model"
	"skuli_backend/internals/helpers/errs"
)

type balanceFixture struct {
	store   *fakeStore
	svc     *BalanceService
	school  uuid.UUID
	grade   uuid.UUID
	student uuid.UUID
	year    *yearModel.AcademicYearModel
}

// threeTermFixture: 2025 with Term 1/2/3 fee windows of 8000 each.
func threeTermFixture(t *testing.T) *balanceFixture {
	t.Helper()
	store := newFakeStore()
	school := uuid.New()
	grade := uuid.New()

	year := store.addYear("2025")
	t1 := store.addTerm(year, yearModel.TermFirst)
	t2 := store.addTerm(year, yearModel.TermSecond)
	t3 := store.addTerm(year, yearModel.TermThird)
	store.addWindow(grade, year, t1, 8000)
	store.addWindow(grade, year, t2, 8000)
	store.addWindow(grade, year, t3, 8000)

	st := store.addStudent(school, grade)

	return &balanceFixture{
		store:   store,
		svc:     NewBalanceService(store),
		school:  school,
		grade:   grade,
		student: st.StudentID,
		year:    year,
	}
}

func (fx *balanceFixture) pay(t *testing.T, amount int64, term string) *PaymentResult {
	t.Helper()
	res, err := fx.svc.RecordPayment(context.Background(), RecordPaymentCommand{
		SchoolID:   fx.school,
		StudentID:  fx.student,
		Amount:     decimal.NewFromInt(amount),
		YearName:   "2025",
		TermName:   term,
		Method:     paymentModel.PaymentMethodCash,
		ReceivedBy: uuid.New(),
	})
	require.NoError(t, err)
	return res
}

func (fx *balanceFixture) balance(t *testing.T, term string) *StudentBalance {
	t.Helper()
	b, err := fx.svc.CalculateStudentBalance(context.Background(), fx.school, fx.student, "2025", term)
	require.NoError(t, err)
	return b
}

/* ===================== Balance arithmetic ===================== */

// The walkthrough: fee 8000; pay 5000 -> 3000; pay 3000 -> 0; pay 1000 -> the
// term stays 0 and the 1000 lands on Term 2.
func TestRecordPaymentCarryForwardScenario(t *testing.T) {
	fx := threeTermFixture(t)

	fx.pay(t, 5000, yearModel.TermFirst)
	assert.Equal(t, "3000", fx.balance(t, yearModel.TermFirst).Balance.String())

	fx.pay(t, 3000, yearModel.TermFirst)
	assert.Equal(t, "0", fx.balance(t, yearModel.TermFirst).Balance.String())

	res := fx.pay(t, 1000, yearModel.TermFirst)
	assert.Equal(t, "0", fx.balance(t, yearModel.TermFirst).Balance.String())
	assert.Equal(t, "1000", res.Receipt.ReceiptCarryForward.String())

	// The excess reduced Term 2, not Term 1.
	assert.Equal(t, "7000", fx.balance(t, yearModel.TermSecond).Balance.String())
}

func TestRecordPaymentOverpaymentSpansMultipleTerms(t *testing.T) {
	fx := threeTermFixture(t)

	// 20000 against Term 1: 8000 + 8000 carried + 4000 carried.
	res := fx.pay(t, 20000, yearModel.TermFirst)

	assert.Equal(t, "0", fx.balance(t, yearModel.TermFirst).Balance.String())
	assert.Equal(t, "0", fx.balance(t, yearModel.TermSecond).Balance.String())
	assert.Equal(t, "4000", fx.balance(t, yearModel.TermThird).Balance.String())
	assert.Equal(t, "12000", res.Receipt.ReceiptCarryForward.String())
}

func TestRecordPaymentLatestFirstCarryForward(t *testing.T) {
	fx := threeTermFixture(t)
	fx.svc.CarryForward = CarryForwardLatestFirst

	fx.pay(t, 9000, yearModel.TermFirst)

	// Excess 1000 lands on the latest outstanding window, Term 3.
	assert.Equal(t, "8000", fx.balance(t, yearModel.TermSecond).Balance.String())
	assert.Equal(t, "7000", fx.balance(t, yearModel.TermThird).Balance.String())
}

// When every future window is settled, the remainder stays on the paid term as
// credit; money is never discarded.
func TestRecordPaymentUnplaceableExcessStaysAsCredit(t *testing.T) {
	fx := threeTermFixture(t)

	fx.pay(t, 24000, yearModel.TermFirst) // settles the whole year
	res := fx.pay(t, 500, yearModel.TermFirst)

	assert.Equal(t, "500", res.Payment.PaymentAmount.String())
	var total decimal.Decimal
	for _, a := range fx.store.allocations {
		total = total.Add(a.PaymentAllocationAmount)
	}
	assert.Equal(t, "24500", total.String(), "every shilling is allocated somewhere")
	assert.Equal(t, "0", res.Receipt.ReceiptCarryForward.String())
}

func TestReceiptBalanceSnapshot(t *testing.T) {
	fx := threeTermFixture(t)

	res := fx.pay(t, 5000, yearModel.TermFirst)

	assert.Equal(t, "8000", res.Receipt.ReceiptBalanceBefore.String())
	assert.Equal(t, "3000", res.Receipt.ReceiptBalanceAfter.String())
	assert.NotEmpty(t, res.Receipt.ReceiptNo)
	assert.NotEmpty(t, res.Payment.PaymentReference)
}

/* ===================== Validation & errors ===================== */

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	fx := threeTermFixture(t)

	_, err := fx.svc.RecordPayment(context.Background(), RecordPaymentCommand{
		SchoolID:   fx.school,
		StudentID:  fx.student,
		Amount:     decimal.Zero,
		YearName:   "2025",
		TermName:   yearModel.TermFirst,
		Method:     paymentModel.PaymentMethodCash,
		ReceivedBy: uuid.New(),
	})
	assert.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestRecordPaymentDuplicateReferenceConflicts(t *testing.T) {
	fx := threeTermFixture(t)

	cmd := RecordPaymentCommand{
		SchoolID:   fx.school,
		StudentID:  fx.student,
		Amount:     decimal.NewFromInt(1000),
		YearName:   "2025",
		TermName:   yearModel.TermFirst,
		Method:     paymentModel.PaymentMethodMobileMoney,
		ReceivedBy: uuid.New(),
		Reference:  "MM-12345",
	}
	_, err := fx.svc.RecordPayment(context.Background(), cmd)
	require.NoError(t, err)

	_, err = fx.svc.RecordPayment(context.Background(), cmd)
	assert.True(t, errs.IsKind(err, errs.KindConflict))

	// Only the first one landed.
	assert.Len(t, fx.store.payments, 1)
}

func TestRecordPaymentNoFeeStructureIsConfiguration(t *testing.T) {
	fx := threeTermFixture(t)
	otherGrade := uuid.New()
	orphan := fx.store.addStudent(fx.school, otherGrade)

	_, err := fx.svc.RecordPayment(context.Background(), RecordPaymentCommand{
		SchoolID:   fx.school,
		StudentID:  orphan.StudentID,
		Amount:     decimal.NewFromInt(1000),
		YearName:   "2025",
		TermName:   yearModel.TermFirst,
		Method:     paymentModel.PaymentMethodCash,
		ReceivedBy: uuid.New(),
	})
	assert.True(t, errs.IsKind(err, errs.KindConfiguration))
}

func TestRecordPaymentStoreFailureIsInternal(t *testing.T) {
	fx := threeTermFixture(t)
	fx.store.failCreate = errors.New("connection reset")

	_, err := fx.svc.RecordPayment(context.Background(), RecordPaymentCommand{
		SchoolID:   fx.school,
		StudentID:  fx.student,
		Amount:     decimal.NewFromInt(1000),
		YearName:   "2025",
		TermName:   yearModel.TermFirst,
		Method:     paymentModel.PaymentMethodCash,
		ReceivedBy: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, errs.Fatal(err))
	// Retry context survives in the message.
	assert.Contains(t, err.Error(), fx.student.String())
}

func TestCalculateStudentBalanceUnknownStudent(t *testing.T) {
	fx := threeTermFixture(t)

	_, err := fx.svc.CalculateStudentBalance(context.Background(), fx.school, uuid.New(), "2025", yearModel.TermFirst)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

/* ===================== School-wide report ===================== */

func TestSchoolStudentBalancesSummary(t *testing.T) {
	fx := threeTermFixture(t)
	second := fx.store.addStudent(fx.school, fx.grade) // nothing paid

	fx.pay(t, 8000, yearModel.TermFirst) // first student settled

	out, err := fx.svc.SchoolStudentBalances(context.Background(), fx.school, "2025", yearModel.TermFirst, nil)
	require.NoError(t, err)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, 2, out.Summary.StudentCount)
	assert.Equal(t, 1, out.Summary.WithOutstanding)
	assert.Equal(t, "8000", out.Summary.TotalOutstanding.String())

	// The outstanding row is the student who paid nothing.
	for _, row := range out.Rows {
		if row.StudentID == second.StudentID {
			assert.Equal(t, "8000", row.Balance.String())
		} else {
			assert.True(t, row.Balance.IsZero())
		}
	}
}

func TestSchoolStudentBalancesUnconfiguredGradeListsZero(t *testing.T) {
	fx := threeTermFixture(t)
	orphan := fx.store.addStudent(fx.school, uuid.New()) // grade without fee windows

	out, err := fx.svc.SchoolStudentBalances(context.Background(), fx.school, "2025", yearModel.TermFirst, nil)
	require.NoError(t, err)

	found := false
	for _, row := range out.Rows {
		if row.StudentID == orphan.StudentID {
			found = true
			assert.True(t, row.Required.IsZero())
			assert.True(t, row.Balance.IsZero())
		}
	}
	assert.True(t, found)
}

/* ===================== History & ledger ===================== */

func TestPaymentHistoryMostRecentFirst(t *testing.T) {
	fx := threeTermFixture(t)

	fx.pay(t, 1000, yearModel.TermFirst)
	fx.pay(t, 2000, yearModel.TermFirst)

	history, err := fx.svc.PaymentHistory(context.Background(), fx.school, fx.student, "", "")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2000", history[0].PaymentAmount.String())
	assert.Equal(t, "1000", history[1].PaymentAmount.String())
}

func TestStudentLedgerChargesAndPayments(t *testing.T) {
	fx := threeTermFixture(t)

	fx.pay(t, 5000, yearModel.TermFirst)

	ledger, err := fx.svc.StudentLedger(context.Background(), fx.school, fx.student, "")
	require.NoError(t, err)

	// 3 charges + 1 payment
	require.Len(t, ledger.Entries, 4)
	assert.Equal(t, "19000", ledger.RawBalance.String())
	assert.Equal(t, "19000", ledger.OutstandingBalance.String())
}
