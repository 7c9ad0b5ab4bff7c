// file: internals/features/promotion/service/store_fake_test.go
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	yearModel "skuli_backend/internals/features/academics/years/model"
	promoModel "skuli_backend/internals/features/promotion/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

type alumniKey struct {
	student uuid.UUID
	year    string
}

// fakeStore is the in-memory promotion Store used by the evaluator and
// executor tests.
type fakeStore struct {
	students     map[uuid.UUID]*studentModel.StudentModel
	classes      map[uuid.UUID]*studentModel.ClassModel
	progressions map[uuid.UUID]*studentModel.ClassProgressionModel // by from-class id
	criteria     map[uuid.UUID]*promoModel.PromotionCriteriaModel
	alumni       map[alumniKey]bool
	logs         []promoModel.PromotionLogModel

	currentYear *yearModel.AcademicYearModel
	currentTerm *yearModel.AcademicTermModel

	failLog error // injected CreatePromotionLog failure
}

func newFakeStore() *fakeStore {
	year := &yearModel.AcademicYearModel{
		AcademicYearID:        uuid.New(),
		AcademicYearName:      "2025",
		AcademicYearIsCurrent: true,
	}
	term := &yearModel.AcademicTermModel{
		AcademicTermID:             uuid.New(),
		AcademicTermAcademicYearID: year.AcademicYearID,
		AcademicTermName:           yearModel.TermThird,
		AcademicTermSortOrder:      3,
		AcademicTermIsCurrent:      true,
	}
	return &fakeStore{
		students:     map[uuid.UUID]*studentModel.StudentModel{},
		classes:      map[uuid.UUID]*studentModel.ClassModel{},
		progressions: map[uuid.UUID]*studentModel.ClassProgressionModel{},
		criteria:     map[uuid.UUID]*promoModel.PromotionCriteriaModel{},
		alumni:       map[alumniKey]bool{},
		currentYear:  year,
		currentTerm:  term,
	}
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) addClass(schoolID uuid.UUID, name string) *studentModel.ClassModel {
	cls := &studentModel.ClassModel{
		ClassID:       uuid.New(),
		ClassSchoolID: schoolID,
		ClassGradeID:  uuid.New(),
		ClassName:     name,
		ClassIsActive: true,
	}
	f.classes[cls.ClassID] = cls
	return cls
}

func (f *fakeStore) addStudent(schoolID uuid.UUID, cls *studentModel.ClassModel, admissionNo string) *studentModel.StudentModel {
	st := &studentModel.StudentModel{
		StudentID:          uuid.New(),
		StudentSchoolID:    schoolID,
		StudentClassID:     cls.ClassID,
		StudentAdmissionNo: admissionNo,
		StudentFirstName:   "Test",
		StudentLastName:    admissionNo,
		StudentStatus:      studentModel.StudentStatusActive,
		StudentIsActive:    true,
		Class:              cls,
	}
	f.students[st.StudentID] = st
	return st
}

func (f *fakeStore) addProgression(schoolID uuid.UUID, from *studentModel.ClassModel, toName string) {
	f.progressions[from.ClassID] = &studentModel.ClassProgressionModel{
		ClassProgressionID:          uuid.New(),
		ClassProgressionSchoolID:    schoolID,
		ClassProgressionFromClassID: from.ClassID,
		ClassProgressionToClassName: toName,
		ClassProgressionIsActive:    true,
	}
}

func (f *fakeStore) StudentByID(ctx context.Context, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	st, ok := f.students[studentID]
	if !ok || st.StudentSchoolID != schoolID {
		return nil, errs.NotFound("student %s not found", studentID)
	}
	return st, nil
}

func (f *fakeStore) ActiveStudentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]studentModel.StudentModel, error) {
	var out []studentModel.StudentModel
	for _, st := range f.students {
		if st.StudentSchoolID == schoolID && st.StudentIsActive {
			out = append(out, *st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentAdmissionNo < out[j].StudentAdmissionNo })
	return out, nil
}

func (f *fakeStore) ClassByName(ctx context.Context, schoolID uuid.UUID, name string) (*studentModel.ClassModel, error) {
	for _, cls := range f.classes {
		if cls.ClassSchoolID == schoolID && cls.ClassName == name && cls.ClassIsActive {
			return cls, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ProgressionForClass(ctx context.Context, schoolID, fromClassID uuid.UUID) (*studentModel.ClassProgressionModel, error) {
	if rule, ok := f.progressions[fromClassID]; ok {
		return rule, nil
	}
	return nil, nil
}

func (f *fakeStore) CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	return f.currentYear, nil
}

func (f *fakeStore) CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	return f.currentTerm, nil
}

func (f *fakeStore) CriteriaByID(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error) {
	if c, ok := f.criteria[criteriaID]; ok {
		return c, nil
	}
	return nil, errs.NotFound("promotion criteria %s not found", criteriaID)
}

func (f *fakeStore) ActiveCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (*promoModel.PromotionCriteriaModel, error) {
	for _, c := range f.criteria {
		if c.PromotionCriteriaType == ptype && c.PromotionCriteriaIsActive {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateCriteria(ctx context.Context, m *promoModel.PromotionCriteriaModel) error {
	if m.PromotionCriteriaID == uuid.Nil {
		m.PromotionCriteriaID = uuid.New()
	}
	cp := *m
	f.criteria[m.PromotionCriteriaID] = &cp
	return nil
}

func (f *fakeStore) ActivateCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error) {
	target, ok := f.criteria[criteriaID]
	if !ok {
		return nil, errs.NotFound("promotion criteria %s not found", criteriaID)
	}
	for _, c := range f.criteria {
		if c.PromotionCriteriaType == target.PromotionCriteriaType {
			c.PromotionCriteriaIsActive = false
		}
	}
	target.PromotionCriteriaIsActive = true
	return target, nil
}

func (f *fakeStore) DeleteCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) error {
	if _, ok := f.criteria[criteriaID]; !ok {
		return errs.NotFound("promotion criteria %s not found", criteriaID)
	}
	delete(f.criteria, criteriaID)
	return nil
}

func (f *fakeStore) CountCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (int64, int64, error) {
	var total, active int64
	for _, c := range f.criteria {
		if c.PromotionCriteriaType != ptype {
			continue
		}
		total++
		if c.PromotionCriteriaIsActive {
			active++
		}
	}
	return total, active, nil
}

func (f *fakeStore) CreateAlumniIfAbsent(ctx context.Context, m *studentModel.AlumniModel) (bool, error) {
	key := alumniKey{student: m.AlumniStudentID, year: m.AlumniGraduationYear}
	if f.alumni[key] {
		return false, nil
	}
	f.alumni[key] = true
	return true, nil
}

func (f *fakeStore) GraduateStudent(ctx context.Context, schoolID, studentID uuid.UUID) error {
	st, ok := f.students[studentID]
	if !ok {
		return errs.NotFound("student %s not found", studentID)
	}
	st.StudentStatus = studentModel.StudentStatusGraduated
	st.StudentIsActive = false
	return nil
}

func (f *fakeStore) ReassignStudentClass(ctx context.Context, schoolID, studentID, toClassID uuid.UUID) error {
	st, ok := f.students[studentID]
	if !ok {
		return errs.NotFound("student %s not found", studentID)
	}
	st.StudentClassID = toClassID
	if cls, ok := f.classes[toClassID]; ok {
		st.Class = cls
	}
	return nil
}

func (f *fakeStore) CreatePromotionLog(ctx context.Context, m *promoModel.PromotionLogModel) error {
	if f.failLog != nil {
		return f.failLog
	}
	f.logs = append(f.logs, *m)
	return nil
}
