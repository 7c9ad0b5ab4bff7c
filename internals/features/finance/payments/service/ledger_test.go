// file: internals/features/finance/payments/service/ledger_test.go
package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearModel "skuli_backend/internals/features/academics/years/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func charge(amount int64, date time.Time, year, term string) LedgerItem {
	return LedgerItem{
		Type:     LedgerEntryCharge,
		Ref:      "FEE-" + year + "-" + term,
		Amount:   decimal.NewFromInt(amount),
		Date:     date,
		YearName: year,
		TermName: term,
	}
}

func payment(amount int64, date time.Time, year, term string) LedgerItem {
	return LedgerItem{
		Type:     LedgerEntryPayment,
		Ref:      "PMT",
		Amount:   decimal.NewFromInt(amount),
		Date:     date,
		YearName: year,
		TermName: term,
	}
}

func TestBuildLedgerOrdersByDateAscending(t *testing.T) {
	items := []LedgerItem{
		payment(3000, day(2025, 5, 10), "2025", yearModel.TermSecond),
		charge(8000, day(2025, 1, 6), "2025", yearModel.TermFirst),
		payment(5000, day(2025, 2, 1), "2025", yearModel.TermFirst),
		charge(8000, day(2025, 5, 5), "2025", yearModel.TermSecond),
	}

	ledger := BuildLedger(JoinPoint{}, items, LedgerOptions{})

	require.Len(t, ledger.Entries, 4)
	for i := 1; i < len(ledger.Entries); i++ {
		assert.False(t, ledger.Entries[i].Date.Before(ledger.Entries[i-1].Date))
	}
	assert.Equal(t, "8000", ledger.Entries[0].Balance.String())
	assert.Equal(t, "3000", ledger.Entries[1].Balance.String())
	assert.Equal(t, "11000", ledger.Entries[2].Balance.String())
	assert.Equal(t, "8000", ledger.Entries[3].Balance.String())
	assert.Equal(t, "8000", ledger.RawBalance.String())
	assert.Equal(t, "8000", ledger.OutstandingBalance.String())
}

func TestBuildLedgerChargeBeforePaymentOnSameDay(t *testing.T) {
	d := day(2025, 1, 6)
	items := []LedgerItem{
		payment(8000, d, "2025", yearModel.TermFirst),
		charge(8000, d, "2025", yearModel.TermFirst),
	}

	ledger := BuildLedger(JoinPoint{}, items, LedgerOptions{})

	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, LedgerEntryCharge, ledger.Entries[0].Type)
	assert.Equal(t, LedgerEntryPayment, ledger.Entries[1].Type)
	assert.True(t, ledger.RawBalance.IsZero())
}

// Final balance must equal sum(charges) - sum(payments) of the kept items, no
// matter how the input is shuffled.
func TestBuildLedgerRunningBalanceEqualsNetOfItems(t *testing.T) {
	items := []LedgerItem{
		charge(8000, day(2025, 1, 6), "2025", yearModel.TermFirst),
		charge(8000, day(2025, 5, 5), "2025", yearModel.TermSecond),
		charge(9000, day(2025, 9, 1), "2025", yearModel.TermThird),
		payment(5000, day(2025, 2, 1), "2025", yearModel.TermFirst),
		payment(4000, day(2025, 6, 1), "2025", yearModel.TermSecond),
		payment(7000, day(2025, 10, 1), "2025", yearModel.TermThird),
	}

	ledger := BuildLedger(JoinPoint{}, items, LedgerOptions{})

	want := decimal.Zero
	for _, it := range items {
		if it.Type == LedgerEntryCharge {
			want = want.Add(it.Amount)
		} else {
			want = want.Sub(it.Amount)
		}
	}
	assert.True(t, ledger.RawBalance.Equal(want), "raw=%s want=%s", ledger.RawBalance, want)
}

func TestBuildLedgerFiltersBeforeJoinTerm(t *testing.T) {
	join := JoinPoint{YearName: "2025", TermName: yearModel.TermSecond, JoinedAt: day(2025, 5, 1)}
	items := []LedgerItem{
		charge(8000, day(2025, 1, 6), "2025", yearModel.TermFirst),
		charge(8000, day(2025, 5, 5), "2025", yearModel.TermSecond),
		charge(9000, day(2026, 1, 7), "2026", yearModel.TermFirst),
	}

	ledger := BuildLedger(join, items, LedgerOptions{})

	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "FEE-2025-Term 2", ledger.Entries[0].Ref)
	assert.Equal(t, "FEE-2026-Term 1", ledger.Entries[1].Ref)
}

func TestBuildLedgerJoinFallsBackToDateWhenUnlabelled(t *testing.T) {
	join := JoinPoint{JoinedAt: day(2025, 5, 1)}
	items := []LedgerItem{
		{Type: LedgerEntryCharge, Amount: decimal.NewFromInt(100), Date: day(2025, 1, 6)},
		{Type: LedgerEntryCharge, Amount: decimal.NewFromInt(200), Date: day(2025, 6, 1)},
	}

	ledger := BuildLedger(join, items, LedgerOptions{})

	require.Len(t, ledger.Entries, 1)
	assert.Equal(t, "200", ledger.Entries[0].Debit.String())
}

func TestBuildLedgerRestrictToYear(t *testing.T) {
	items := []LedgerItem{
		charge(8000, day(2025, 1, 6), "2025", yearModel.TermFirst),
		payment(8000, day(2025, 2, 1), "2025", yearModel.TermFirst),
		charge(9000, day(2026, 1, 7), "2026", yearModel.TermFirst),
	}

	ledger := BuildLedger(JoinPoint{}, items, LedgerOptions{RestrictToYear: "2025"})

	require.Len(t, ledger.Entries, 2)
	assert.True(t, ledger.RawBalance.IsZero())
}

func TestBuildLedgerOverpaymentShowsRawCredit(t *testing.T) {
	items := []LedgerItem{
		charge(8000, day(2025, 1, 6), "2025", yearModel.TermFirst),
		payment(9000, day(2025, 2, 1), "2025", yearModel.TermFirst),
	}

	ledger := BuildLedger(JoinPoint{}, items, LedgerOptions{})

	assert.Equal(t, "-1000", ledger.RawBalance.String())
	assert.True(t, ledger.OutstandingBalance.IsZero())
}

func TestCompareYearNamesNumeric(t *testing.T) {
	assert.Equal(t, -1, compareYearNames("2025", "2026"))
	assert.Equal(t, 1, compareYearNames("2026", "2025"))
	assert.Equal(t, 0, compareYearNames("2025", "2025"))
	// "9" < "10" numerically even though "9" > "10" as strings
	assert.Equal(t, -1, compareYearNames("9", "10"))
}
