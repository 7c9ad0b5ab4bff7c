// file: internals/features/academics/years/service/rollover_service_test.go
package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearModel "skuli_backend/internals/features/academics/years/model"
	"skuli_backend/internals/helpers/errs"
)

// fakeStore is the in-memory Store used by the roller tests.
type fakeStore struct {
	years []*yearModel.AcademicYearModel
	terms []*yearModel.AcademicTermModel
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) addYear(name string, start time.Time, current bool) *yearModel.AcademicYearModel {
	y := &yearModel.AcademicYearModel{
		AcademicYearID:        uuid.New(),
		AcademicYearName:      name,
		AcademicYearStartDate: start,
		AcademicYearEndDate:   start.AddDate(0, 11, 0),
		AcademicYearIsCurrent: current,
	}
	f.years = append(f.years, y)
	return y
}

func (f *fakeStore) addTerm(year *yearModel.AcademicYearModel, name string, current bool) *yearModel.AcademicTermModel {
	t := &yearModel.AcademicTermModel{
		AcademicTermID:             uuid.New(),
		AcademicTermAcademicYearID: year.AcademicYearID,
		AcademicTermName:           name,
		AcademicTermSortOrder:      yearModel.TermOrder[name],
		AcademicTermIsCurrent:      current,
	}
	f.terms = append(f.terms, t)
	return t
}

func (f *fakeStore) CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	for _, y := range f.years {
		if y.AcademicYearIsCurrent {
			return y, nil
		}
	}
	return nil, errs.Configuration("no current academic year")
}

func (f *fakeStore) CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	for _, t := range f.terms {
		if t.AcademicTermIsCurrent {
			return t, nil
		}
	}
	return nil, errs.Configuration("no current term")
}

func (f *fakeStore) YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error) {
	for _, y := range f.years {
		if y.AcademicYearName == name {
			return y, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateYear(ctx context.Context, m *yearModel.AcademicYearModel) error {
	m.AcademicYearID = uuid.New()
	f.years = append(f.years, m)
	return nil
}

func (f *fakeStore) TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error) {
	for _, t := range f.terms {
		if t.AcademicTermAcademicYearID == yearID && t.AcademicTermName == name {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) TermsForYear(ctx context.Context, schoolID, yearID uuid.UUID) ([]yearModel.AcademicTermModel, error) {
	var out []yearModel.AcademicTermModel
	for _, t := range f.terms {
		if t.AcademicTermAcademicYearID == yearID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AcademicTermSortOrder < out[j].AcademicTermSortOrder })
	return out, nil
}

func (f *fakeStore) CreateTerm(ctx context.Context, m *yearModel.AcademicTermModel) error {
	m.AcademicTermID = uuid.New()
	if ord, ok := yearModel.TermOrder[m.AcademicTermName]; ok {
		m.AcademicTermSortOrder = ord
	}
	f.terms = append(f.terms, m)
	return nil
}

func (f *fakeStore) SetCurrentYear(ctx context.Context, schoolID, yearID uuid.UUID) error {
	for _, y := range f.years {
		y.AcademicYearIsCurrent = y.AcademicYearID == yearID
	}
	return nil
}

func (f *fakeStore) SetCurrentTerm(ctx context.Context, schoolID, termID uuid.UUID) error {
	for _, t := range f.terms {
		t.AcademicTermIsCurrent = t.AcademicTermID == termID
	}
	return nil
}

func (f *fakeStore) currentYearCount() int {
	n := 0
	for _, y := range f.years {
		if y.AcademicYearIsCurrent {
			n++
		}
	}
	return n
}

func (f *fakeStore) currentTermCount() int {
	n := 0
	for _, t := range f.terms {
		if t.AcademicTermIsCurrent {
			n++
		}
	}
	return n
}

func jan6(year int) time.Time {
	return time.Date(year, 1, 6, 0, 0, 0, 0, time.UTC)
}

/* ===================== Year advance ===================== */

func TestAdvanceAcademicYearCreatesSuccessor(t *testing.T) {
	store := &fakeStore{}
	y2025 := store.addYear("2025", jan6(2025), true)
	store.addTerm(y2025, yearModel.TermThird, true)
	svc := NewRolloverService(store)

	res, err := svc.AdvanceAcademicYear(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "2025", res.FromYear)
	assert.Equal(t, "2026", res.ToYear)
	assert.True(t, res.YearCreated)
	assert.True(t, res.TermCreated)
	assert.Equal(t, yearModel.TermFirst, res.CurrentTerm)

	next, err := store.CurrentYear(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "2026", next.AcademicYearName)
	// Dates shift by exactly one year.
	assert.Equal(t, jan6(2026), next.AcademicYearStartDate)

	term, err := store.CurrentTerm(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, yearModel.TermFirst, term.AcademicTermName)
	assert.Equal(t, jan6(2026), term.AcademicTermStartDate)
	assert.Equal(t, jan6(2026).AddDate(0, 4, 0), term.AcademicTermEndDate)
}

// Advancing into a year that already exists reuses it instead of duplicating.
func TestAdvanceAcademicYearReusesExistingYear(t *testing.T) {
	store := &fakeStore{}
	y2025 := store.addYear("2025", jan6(2025), true)
	store.addTerm(y2025, yearModel.TermThird, true)
	y2026 := store.addYear("2026", jan6(2026), false)
	store.addTerm(y2026, yearModel.TermFirst, false)
	svc := NewRolloverService(store)

	res, err := svc.AdvanceAcademicYear(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.False(t, res.YearCreated)
	assert.False(t, res.TermCreated)
	assert.Len(t, store.years, 2)

	current, err := store.CurrentYear(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, y2026.AcademicYearID, current.AcademicYearID)
}

func TestAdvanceAcademicYearKeepsSingleCurrent(t *testing.T) {
	store := &fakeStore{}
	y2025 := store.addYear("2025", jan6(2025), true)
	store.addTerm(y2025, yearModel.TermFirst, false)
	store.addTerm(y2025, yearModel.TermSecond, false)
	store.addTerm(y2025, yearModel.TermThird, true)
	svc := NewRolloverService(store)

	_, err := svc.AdvanceAcademicYear(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 1, store.currentYearCount())
	assert.Equal(t, 1, store.currentTermCount())
}

func TestAdvanceAcademicYearNonNumericName(t *testing.T) {
	store := &fakeStore{}
	year := store.addYear("2025/2026", jan6(2025), true)
	store.addTerm(year, yearModel.TermThird, true)
	svc := NewRolloverService(store)

	_, err := svc.AdvanceAcademicYear(context.Background(), uuid.New())
	assert.True(t, errs.IsKind(err, errs.KindConfiguration))
}

/* ===================== Term advance ===================== */

func TestAdvanceTermMovesToNext(t *testing.T) {
	store := &fakeStore{}
	year := store.addYear("2025", jan6(2025), true)
	store.addTerm(year, yearModel.TermFirst, true)
	second := store.addTerm(year, yearModel.TermSecond, false)
	store.addTerm(year, yearModel.TermThird, false)
	svc := NewRolloverService(store)

	res, err := svc.AdvanceTerm(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, yearModel.TermFirst, res.FromTerm)
	assert.Equal(t, yearModel.TermSecond, res.ToTerm)
	assert.Equal(t, "2025", res.Year)

	current, err := store.CurrentTerm(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, second.AcademicTermID, current.AcademicTermID)
	assert.Equal(t, 1, store.currentTermCount())
}

func TestAdvanceTermRefusesPastLastTerm(t *testing.T) {
	store := &fakeStore{}
	year := store.addYear("2025", jan6(2025), true)
	store.addTerm(year, yearModel.TermFirst, false)
	store.addTerm(year, yearModel.TermSecond, false)
	last := store.addTerm(year, yearModel.TermThird, true)
	svc := NewRolloverService(store)

	_, err := svc.AdvanceTerm(context.Background(), uuid.New())
	assert.True(t, errs.IsKind(err, errs.KindState))

	// Nothing moved.
	current, cerr := store.CurrentTerm(context.Background(), uuid.Nil)
	require.NoError(t, cerr)
	assert.Equal(t, last.AcademicTermID, current.AcademicTermID)
}

func TestAdvanceTermCurrentTermOutsideCurrentYear(t *testing.T) {
	store := &fakeStore{}
	old := store.addYear("2024", jan6(2024), false)
	store.addTerm(old, yearModel.TermSecond, true) // stale current term
	year := store.addYear("2025", jan6(2025), true)
	store.addTerm(year, yearModel.TermFirst, false)
	svc := NewRolloverService(store)

	_, err := svc.AdvanceTerm(context.Background(), uuid.New())
	assert.True(t, errs.IsKind(err, errs.KindConfiguration))
}
