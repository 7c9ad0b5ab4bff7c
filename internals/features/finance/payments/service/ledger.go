// file: internals/features/finance/payments/service/ledger.go
package service

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	yearModel "skuli_backend/internals/features/academics/years/model"
)

/* =======================================================
   Ledger Builder
   Assembles the ordered charge/payment history for one
   student and annotates it with a running balance.
======================================================= */

type LedgerEntryType string

const (
	LedgerEntryCharge  LedgerEntryType = "charge"
	LedgerEntryPayment LedgerEntryType = "payment"
)

// LedgerItem is one candidate transaction: a fee structure charge (debit) or
// a payment (credit). Year/term names are optional; when absent the join
// filter falls back to comparing dates.
type LedgerItem struct {
	Type        LedgerEntryType
	Ref         string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	YearName    string
	TermName    string
}

// JoinPoint is where a student's financial history starts. Charges and
// payments before it are someone else's problem (previous school, previous
// owner of the admission number) and never hit the ledger.
type JoinPoint struct {
	YearName string
	TermName string
	JoinedAt time.Time
}

type LedgerEntry struct {
	Date        time.Time       `json:"date"`
	Type        LedgerEntryType `json:"type"`
	Description string          `json:"description"`
	Ref         string          `json:"ref"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type Ledger struct {
	Entries []LedgerEntry `json:"entries"`
	// Raw running balance of the final entry; negative means credit.
	RawBalance decimal.Decimal `json:"raw_balance"`
	// RawBalance clamped at zero — the reported outstanding figure.
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

type LedgerOptions struct {
	// Restrict entries to a single academic year (by name); empty = all.
	RestrictToYear string
}

// BuildLedger filters the candidate items to those on or after the student's
// join point, orders them by date ascending (charges before payments on the
// same day), and annotates each with the cumulative running balance.
func BuildLedger(join JoinPoint, items []LedgerItem, opts LedgerOptions) Ledger {
	kept := make([]LedgerItem, 0, len(items))
	for _, it := range items {
		if opts.RestrictToYear != "" && it.YearName != opts.RestrictToYear {
			continue
		}
		if onOrAfterJoin(join, it) {
			kept = append(kept, it)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Date.Equal(kept[j].Date) {
			return kept[i].Type == LedgerEntryCharge && kept[j].Type == LedgerEntryPayment
		}
		return kept[i].Date.Before(kept[j].Date)
	})

	ledger := Ledger{Entries: make([]LedgerEntry, 0, len(kept))}
	running := decimal.Zero
	for _, it := range kept {
		entry := LedgerEntry{
			Date:        it.Date,
			Type:        it.Type,
			Description: it.Description,
			Ref:         it.Ref,
		}
		if it.Type == LedgerEntryCharge {
			entry.Debit = it.Amount
			running = running.Add(it.Amount)
		} else {
			entry.Credit = it.Amount
			running = running.Sub(it.Amount)
		}
		entry.Balance = running
		ledger.Entries = append(ledger.Entries, entry)
	}

	ledger.RawBalance = running
	ledger.OutstandingBalance = clampZero(running)
	return ledger
}

// onOrAfterJoin decides whether an item belongs to the student's history.
// With a known join year+term, years compare numerically and terms within the
// same year compare through the fixed Term 1 < Term 2 < Term 3 ordering.
// Anything unlabelled falls back to the join date.
func onOrAfterJoin(join JoinPoint, it LedgerItem) bool {
	if join.YearName != "" && join.TermName != "" && it.YearName != "" && it.TermName != "" {
		cmp := compareYearNames(it.YearName, join.YearName)
		if cmp != 0 {
			return cmp > 0
		}
		itOrd, okIt := yearModel.TermOrder[it.TermName]
		joinOrd, okJoin := yearModel.TermOrder[join.TermName]
		if okIt && okJoin {
			return itOrd >= joinOrd
		}
	}
	if join.JoinedAt.IsZero() {
		return true
	}
	return !it.Date.Before(join.JoinedAt)
}

// compareYearNames orders "2025" < "2026" numerically, falling back to string
// comparison for non-numeric names.
func compareYearNames(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
