// file: internals/features/finance/payments/service/store_fake_test.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	yearModel "skuli_backend/internals/features/academics/years/model"
	paymentModel "skuli_backend/internals/features/finance/payments/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

// fakeStore is the in-memory Store used by the balance service tests.
type fakeStore struct {
	students    map[uuid.UUID]*studentModel.StudentModel
	years       map[uuid.UUID]*yearModel.AcademicYearModel
	terms       map[uuid.UUID]*yearModel.AcademicTermModel
	windows     []FeeWindow
	windowGrade map[uuid.UUID]uuid.UUID // fee structure id -> grade id
	payments    []paymentModel.PaymentModel
	allocations []paymentModel.PaymentAllocationModel
	receipts    []paymentModel.ReceiptModel

	failCreate error // injected bundle failure
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students:    map[uuid.UUID]*studentModel.StudentModel{},
		years:       map[uuid.UUID]*yearModel.AcademicYearModel{},
		terms:       map[uuid.UUID]*yearModel.AcademicTermModel{},
		windowGrade: map[uuid.UUID]uuid.UUID{},
	}
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) addYear(name string) *yearModel.AcademicYearModel {
	y := &yearModel.AcademicYearModel{AcademicYearID: uuid.New(), AcademicYearName: name}
	f.years[y.AcademicYearID] = y
	return y
}

func (f *fakeStore) addTerm(year *yearModel.AcademicYearModel, name string) *yearModel.AcademicTermModel {
	t := &yearModel.AcademicTermModel{
		AcademicTermID:             uuid.New(),
		AcademicTermAcademicYearID: year.AcademicYearID,
		AcademicTermName:           name,
		AcademicTermSortOrder:      yearModel.TermOrder[name],
	}
	f.terms[t.AcademicTermID] = t
	return t
}

func (f *fakeStore) addWindow(gradeID uuid.UUID, year *yearModel.AcademicYearModel, term *yearModel.AcademicTermModel, amount int64) FeeWindow {
	w := FeeWindow{
		FeeStructureID: uuid.New(),
		YearID:         year.AcademicYearID,
		YearName:       year.AcademicYearName,
		TermID:         term.AcademicTermID,
		TermName:       term.AcademicTermName,
		TermSortOrder:  term.AcademicTermSortOrder,
		TotalAmount:    decimal.NewFromInt(amount),
	}
	f.windows = append(f.windows, w)
	f.windowGrade[w.FeeStructureID] = gradeID
	return w
}

func (f *fakeStore) addStudent(schoolID, gradeID uuid.UUID) *studentModel.StudentModel {
	classID := uuid.New()
	st := &studentModel.StudentModel{
		StudentID:       uuid.New(),
		StudentSchoolID: schoolID,
		StudentClassID:  classID,
		StudentIsActive: true,
		StudentStatus:   studentModel.StudentStatusActive,
		Class: &studentModel.ClassModel{
			ClassID:      classID,
			ClassGradeID: gradeID,
			ClassName:    "Grade 6A",
		},
	}
	f.students[st.StudentID] = st
	return st
}

func (f *fakeStore) StudentByID(ctx context.Context, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	st, ok := f.students[studentID]
	if !ok || st.StudentSchoolID != schoolID {
		return nil, errs.NotFound("student %s not found", studentID)
	}
	return st, nil
}

func (f *fakeStore) StudentsBySchool(ctx context.Context, schoolID uuid.UUID, gradeID *uuid.UUID) ([]studentModel.StudentModel, error) {
	var out []studentModel.StudentModel
	for _, st := range f.students {
		if st.StudentSchoolID != schoolID || !st.StudentIsActive {
			continue
		}
		if gradeID != nil && (st.Class == nil || st.Class.ClassGradeID != *gradeID) {
			continue
		}
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeStore) YearByID(ctx context.Context, schoolID, yearID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	if y, ok := f.years[yearID]; ok {
		return y, nil
	}
	return nil, errs.NotFound("academic year %s not found", yearID)
}

func (f *fakeStore) YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error) {
	for _, y := range f.years {
		if y.AcademicYearName == name {
			return y, nil
		}
	}
	return nil, errs.NotFound("academic year %q not found", name)
}

func (f *fakeStore) TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error) {
	for _, t := range f.terms {
		if t.AcademicTermAcademicYearID == yearID && t.AcademicTermName == name {
			return t, nil
		}
	}
	return nil, errs.NotFound("term %q not found in year", name)
}

func (f *fakeStore) TermByID(ctx context.Context, schoolID, termID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	if t, ok := f.terms[termID]; ok {
		return t, nil
	}
	return nil, errs.NotFound("term %s not found", termID)
}

func (f *fakeStore) FeeWindowFor(ctx context.Context, schoolID, gradeID, yearID, termID uuid.UUID) (*FeeWindow, error) {
	for i := range f.windows {
		w := f.windows[i]
		if f.windowGrade[w.FeeStructureID] == gradeID && w.YearID == yearID && w.TermID == termID {
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FeeWindowsForGrade(ctx context.Context, schoolID, gradeID uuid.UUID) ([]FeeWindow, error) {
	var out []FeeWindow
	for _, w := range f.windows {
		if f.windowGrade[w.FeeStructureID] == gradeID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) AllocatedTotal(ctx context.Context, schoolID, studentID, yearID, termID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range f.allocations {
		if a.PaymentAllocationStudentID == studentID &&
			a.PaymentAllocationAcademicYearID == yearID &&
			a.PaymentAllocationTermID == termID {
			total = total.Add(a.PaymentAllocationAmount)
		}
	}
	return total, nil
}

func (f *fakeStore) PaymentsForStudent(ctx context.Context, schoolID, studentID uuid.UUID, yearID, termID *uuid.UUID) ([]paymentModel.PaymentModel, error) {
	var out []paymentModel.PaymentModel
	for _, p := range f.payments {
		if p.PaymentStudentID != studentID {
			continue
		}
		if yearID != nil && p.PaymentAcademicYearID != *yearID {
			continue
		}
		if termID != nil && p.PaymentTermID != *termID {
			continue
		}
		out = append(out, p)
	}
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (f *fakeStore) PaymentExistsByReference(ctx context.Context, schoolID uuid.UUID, reference string) (bool, error) {
	for _, p := range f.payments {
		if p.PaymentSchoolID == schoolID && p.PaymentReference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreatePaymentBundle(ctx context.Context, p *paymentModel.PaymentModel, allocs []paymentModel.PaymentAllocationModel, r *paymentModel.ReceiptModel) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	p.PaymentID = uuid.New()
	f.payments = append(f.payments, *p)
	for i := range allocs {
		allocs[i].PaymentAllocationPaymentID = p.PaymentID
		f.allocations = append(f.allocations, allocs[i])
	}
	r.ReceiptPaymentID = p.PaymentID
	f.receipts = append(f.receipts, *r)
	return nil
}
