// file: internals/features/promotion/service/eligibility_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentService "skuli_backend/internals/features/finance/payments/service"
	promoModel "skuli_backend/internals/features/promotion/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

/* =======================================================
   Eligibility Evaluator
   Applies the active promotion criteria to candidates.
   Ineligibility is a normal result with reasons, never
   an error.
======================================================= */

// BalanceCalculator is the slice of the balance service the evaluator needs.
type BalanceCalculator interface {
	CalculateStudentBalance(ctx context.Context, schoolID, studentID uuid.UUID, yearName, termName string) (*paymentService.StudentBalance, error)
}

type EligibilityService struct {
	Store       Store
	Balance     BalanceCalculator
	Performance AcademicPerformanceProvider
}

func NewEligibilityService(store Store, balance BalanceCalculator, perf AcademicPerformanceProvider) *EligibilityService {
	return &EligibilityService{Store: store, Balance: balance, Performance: perf}
}

type EligibilityResult struct {
	StudentID         uuid.UUID       `json:"student_id"`
	AdmissionNo       string          `json:"admission_no"`
	FullName          string          `json:"full_name"`
	ClassName         string          `json:"class_name"`
	IsEligible        bool            `json:"is_eligible"`
	Reasons           []string        `json:"reasons,omitempty"`
	FeeBalance        decimal.Decimal `json:"fee_balance"`
	AverageGrade      float64         `json:"average_grade"`
	DisciplinaryCases int             `json:"disciplinary_cases"`
}

// EvaluateStudent checks one candidate against the criteria thresholds. The
// fee balance is the current-year, current-term outstanding figure; a student
// whose grade has no fee structure configured owes nothing.
func (s *EligibilityService) EvaluateStudent(ctx context.Context, criteria *promoModel.PromotionCriteriaModel, student *studentModel.StudentModel) (*EligibilityResult, error) {
	schoolID := student.StudentSchoolID

	year, err := s.Store.CurrentYear(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	term, err := s.Store.CurrentTerm(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	feeBalance := decimal.Zero
	balance, err := s.Balance.CalculateStudentBalance(ctx, schoolID, student.StudentID, year.AcademicYearName, term.AcademicTermName)
	switch {
	case err == nil:
		feeBalance = balance.Balance
	case errs.IsKind(err, errs.KindNotFound):
		// no fee structure for the grade: nothing owed
	default:
		return nil, err
	}

	perf, err := s.Performance.PerformanceFor(ctx, schoolID, student.StudentID, year.AcademicYearID)
	if err != nil {
		return nil, err
	}

	result := &EligibilityResult{
		StudentID:         student.StudentID,
		AdmissionNo:       student.StudentAdmissionNo,
		FullName:          student.FullName(),
		FeeBalance:        feeBalance,
		AverageGrade:      perf.AverageGrade,
		DisciplinaryCases: perf.DisciplinaryCases,
	}
	if student.Class != nil {
		result.ClassName = student.Class.ClassName
	}

	if feeBalance.GreaterThan(criteria.PromotionCriteriaMaxFeeBalance) {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("fee balance %s exceeds the allowed %s",
				feeBalance.String(), criteria.PromotionCriteriaMaxFeeBalance.String()))
	}
	if perf.AverageGrade < criteria.PromotionCriteriaMinGrade {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("average grade %.2f is below the required %.2f",
				perf.AverageGrade, criteria.PromotionCriteriaMinGrade))
	}
	if perf.DisciplinaryCases > criteria.PromotionCriteriaMaxDisciplinaryCases {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("%d disciplinary cases exceed the allowed %d",
				perf.DisciplinaryCases, criteria.PromotionCriteriaMaxDisciplinaryCases))
	}

	result.IsEligible = len(result.Reasons) == 0
	return result, nil
}

// EligibleStudents evaluates every active student of the school against the
// active criteria for the promotion type. Each result is tagged; callers
// filter on IsEligible if they only want the pass list.
func (s *EligibilityService) EligibleStudents(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) ([]EligibilityResult, error) {
	criteria, err := s.Store.ActiveCriteria(ctx, schoolID, ptype)
	if err != nil {
		return nil, err
	}
	if criteria == nil {
		return nil, errs.Configuration("no active promotion criteria for type %s", ptype)
	}

	students, err := s.Store.ActiveStudentsBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	results := make([]EligibilityResult, 0, len(students))
	for i := range students {
		res, err := s.EvaluateStudent(ctx, criteria, &students[i])
		if err != nil {
			if errs.Fatal(err) {
				return nil, err
			}
			// per-item lookup failures tag the student ineligible with the cause
			results = append(results, EligibilityResult{
				StudentID:   students[i].StudentID,
				AdmissionNo: students[i].StudentAdmissionNo,
				FullName:    students[i].FullName(),
				IsEligible:  false,
				Reasons:     []string{err.Error()},
			})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

/* ===================== Criteria management ===================== */

type CriteriaCommand struct {
	SchoolID            uuid.UUID
	Type                promoModel.PromotionType
	Name                string
	MinGrade            float64
	MaxFeeBalance       decimal.Decimal
	MaxDisciplinary     int
	ActivateImmediately bool
}

// CreateCriteria stores new thresholds; with ActivateImmediately the new row
// becomes the single active criteria of its (school, type) in one operation.
func (s *EligibilityService) CreateCriteria(ctx context.Context, cmd CriteriaCommand) (*promoModel.PromotionCriteriaModel, error) {
	if cmd.MaxFeeBalance.IsNegative() {
		return nil, errs.Validation("max_fee_balance must be >= 0")
	}
	if cmd.MaxDisciplinary < 0 {
		return nil, errs.Validation("max_disciplinary_cases must be >= 0")
	}

	m := &promoModel.PromotionCriteriaModel{
		PromotionCriteriaSchoolID:             cmd.SchoolID,
		PromotionCriteriaType:                 cmd.Type,
		PromotionCriteriaName:                 cmd.Name,
		PromotionCriteriaMinGrade:             cmd.MinGrade,
		PromotionCriteriaMaxFeeBalance:        cmd.MaxFeeBalance,
		PromotionCriteriaMaxDisciplinaryCases: cmd.MaxDisciplinary,
	}
	if err := s.Store.CreateCriteria(ctx, m); err != nil {
		return nil, err
	}

	if cmd.ActivateImmediately {
		return s.Store.ActivateCriteria(ctx, cmd.SchoolID, m.PromotionCriteriaID)
	}
	return m, nil
}

func (s *EligibilityService) ActivateCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error) {
	return s.Store.ActivateCriteria(ctx, schoolID, criteriaID)
}

// DeleteCriteria refuses to remove the only active criteria of its type;
// promotion would be left without a gate.
func (s *EligibilityService) DeleteCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) error {
	criteria, err := s.Store.CriteriaByID(ctx, schoolID, criteriaID)
	if err != nil {
		return err
	}
	if criteria.PromotionCriteriaIsActive {
		_, active, err := s.Store.CountCriteria(ctx, schoolID, criteria.PromotionCriteriaType)
		if err != nil {
			return err
		}
		if active <= 1 {
			return errs.State("cannot delete the only active criteria for type %s", criteria.PromotionCriteriaType)
		}
	}
	return s.Store.DeleteCriteria(ctx, schoolID, criteriaID)
}
