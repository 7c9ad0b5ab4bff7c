// file: internals/features/promotion/service/promotion_service.go
package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	yearModel "skuli_backend/internals/features/academics/years/model"
	yearService "skuli_backend/internals/features/academics/years/service"
	promoModel "skuli_backend/internals/features/promotion/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

/* =======================================================
   Promotion Executor
   Per student: Active(ClassA) → Active(ClassB), or
   Active(ClassA) → Graduated + Alumni (terminal).
======================================================= */

const reasonNoNextClass = "No next class configured"

// ProgressionTarget is the resolved destination of a progression rule: either
// a concrete class or graduation. The rule stores its target by name; "Alumni"
// and names with no matching active class both resolve to graduation.
type ProgressionTarget struct {
	Graduate bool
	Class    *studentModel.ClassModel
}

type PromotionService struct {
	Store    Store
	Rollover *yearService.RolloverService // nil disables the year roll after a bulk run
}

func NewPromotionService(store Store, rollover *yearService.RolloverService) *PromotionService {
	return &PromotionService{Store: store, Rollover: rollover}
}

/* ===================== Commands & results ===================== */

type BulkPromotionCommand struct {
	SchoolID   uuid.UUID
	StudentIDs []uuid.UUID
	PromotedBy uuid.UUID
	// Criteria values snapshotted into each log row; optional.
	CriteriaID *uuid.UUID
	// RollYear advances the current academic year and term once the batch
	// completes, independent of per-student outcomes.
	RollYear bool
}

type StudentPromotionResult struct {
	StudentID uuid.UUID                   `json:"student_id"`
	Outcome   promoModel.PromotionOutcome `json:"outcome"`
	FromClass string                      `json:"from_class"`
	ToClass   *string                     `json:"to_class,omitempty"`
	Reason    *string                     `json:"reason,omitempty"`
}

type BulkPromotionResult struct {
	BatchID        uuid.UUID                   `json:"batch_id"`
	PromotedCount  int                         `json:"promoted_count"`
	GraduatedCount int                         `json:"graduated_count"`
	ExcludedCount  int                         `json:"excluded_count"`
	Results        []StudentPromotionResult    `json:"results"`
	Rollover       *yearService.RolloverResult `json:"rollover,omitempty"`
}

/* ===================== Execution ===================== */

// BulkPromote processes the batch sequentially so PromotionLog rows get a
// deterministic sequence. A student without a progression rule is excluded
// and the batch continues; only store-level failures abort the whole run.
func (s *PromotionService) BulkPromote(ctx context.Context, cmd BulkPromotionCommand) (*BulkPromotionResult, error) {
	if len(cmd.StudentIDs) == 0 {
		return nil, errs.Validation("no students selected")
	}
	if cmd.PromotedBy == uuid.Nil {
		return nil, errs.Validation("promoted_by is required")
	}

	year, err := s.Store.CurrentYear(ctx, cmd.SchoolID)
	if err != nil {
		return nil, err
	}
	criteriaSnapshot, err := s.criteriaSnapshot(ctx, cmd)
	if err != nil {
		return nil, err
	}

	result := &BulkPromotionResult{
		BatchID: uuid.New(),
		Results: make([]StudentPromotionResult, 0, len(cmd.StudentIDs)),
	}

	for i, studentID := range cmd.StudentIDs {
		res, err := s.promoteOne(ctx, cmd, studentID, year, result.BatchID, i+1, criteriaSnapshot)
		if err != nil {
			if errs.Fatal(err) {
				return nil, err
			}
			reason := err.Error()
			res = &StudentPromotionResult{
				StudentID: studentID,
				Outcome:   promoModel.PromotionOutcomeExcluded,
				Reason:    &reason,
			}
		}

		switch res.Outcome {
		case promoModel.PromotionOutcomePromoted:
			result.PromotedCount++
		case promoModel.PromotionOutcomeGraduated:
			result.GraduatedCount++
			result.PromotedCount++
		default:
			result.ExcludedCount++
		}
		result.Results = append(result.Results, *res)
	}

	if cmd.RollYear && s.Rollover != nil {
		roll, err := s.Rollover.AdvanceAcademicYear(ctx, cmd.SchoolID)
		if err != nil {
			return nil, err
		}
		result.Rollover = roll
	}

	return result, nil
}

// promoteOne runs the per-student state machine and writes the audit row.
func (s *PromotionService) promoteOne(
	ctx context.Context,
	cmd BulkPromotionCommand,
	studentID uuid.UUID,
	year *yearModel.AcademicYearModel,
	batchID uuid.UUID,
	seq int,
	criteriaSnapshot datatypes.JSON,
) (*StudentPromotionResult, error) {
	student, err := s.Store.StudentByID(ctx, cmd.SchoolID, studentID)
	if err != nil {
		return nil, err
	}
	if student.Class == nil {
		return nil, errs.Configuration("student %s has no class placement", studentID)
	}
	fromClass := student.Class.ClassName

	log := &promoModel.PromotionLogModel{
		PromotionLogSchoolID:   cmd.SchoolID,
		PromotionLogStudentID:  studentID,
		PromotionLogBatchID:    batchID,
		PromotionLogSequenceNo: seq,
		PromotionLogFromClass:  fromClass,
		PromotionLogFromYear:   year.AcademicYearName,
		PromotionLogToYear:     nextYearName(year.AcademicYearName),
		PromotionLogPromotedBy: cmd.PromotedBy,
		PromotionLogCriteria:   criteriaSnapshot,
	}

	rule, err := s.Store.ProgressionForClass(ctx, cmd.SchoolID, student.StudentClassID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		reason := reasonNoNextClass
		log.PromotionLogOutcome = promoModel.PromotionOutcomeExcluded
		log.PromotionLogReason = &reason
		if err := s.Store.CreatePromotionLog(ctx, log); err != nil {
			return nil, err
		}
		return &StudentPromotionResult{
			StudentID: studentID,
			Outcome:   promoModel.PromotionOutcomeExcluded,
			FromClass: fromClass,
			Reason:    &reason,
		}, nil
	}

	target, err := s.resolveTarget(ctx, cmd.SchoolID, rule.ClassProgressionToClassName)
	if err != nil {
		return nil, err
	}

	if target.Graduate {
		// Idempotent: the (student, graduation year) unique key means a re-run
		// finds the existing row and changes nothing.
		if _, err := s.Store.CreateAlumniIfAbsent(ctx, &studentModel.AlumniModel{
			AlumniSchoolID:       cmd.SchoolID,
			AlumniStudentID:      studentID,
			AlumniGraduationYear: year.AcademicYearName,
		}); err != nil {
			return nil, err
		}
		if err := s.Store.GraduateStudent(ctx, cmd.SchoolID, studentID); err != nil {
			return nil, err
		}

		toClass := studentModel.ProgressionTargetAlumni
		log.PromotionLogOutcome = promoModel.PromotionOutcomeGraduated
		log.PromotionLogToClass = &toClass
		log.PromotionLogToYear = year.AcademicYearName
		if err := s.Store.CreatePromotionLog(ctx, log); err != nil {
			return nil, err
		}
		return &StudentPromotionResult{
			StudentID: studentID,
			Outcome:   promoModel.PromotionOutcomeGraduated,
			FromClass: fromClass,
			ToClass:   &toClass,
		}, nil
	}

	// Plain class move; only the class FK changes.
	if err := s.Store.ReassignStudentClass(ctx, cmd.SchoolID, studentID, target.Class.ClassID); err != nil {
		return nil, err
	}

	toClass := target.Class.ClassName
	log.PromotionLogOutcome = promoModel.PromotionOutcomePromoted
	log.PromotionLogToClass = &toClass
	if err := s.Store.CreatePromotionLog(ctx, log); err != nil {
		return nil, err
	}
	return &StudentPromotionResult{
		StudentID: studentID,
		Outcome:   promoModel.PromotionOutcomePromoted,
		FromClass: fromClass,
		ToClass:   &toClass,
	}, nil
}

// resolveTarget turns the rule's target name into its tagged form.
func (s *PromotionService) resolveTarget(ctx context.Context, schoolID uuid.UUID, toClassName string) (ProgressionTarget, error) {
	if toClassName == studentModel.ProgressionTargetAlumni {
		return ProgressionTarget{Graduate: true}, nil
	}
	class, err := s.Store.ClassByName(ctx, schoolID, toClassName)
	if err != nil {
		return ProgressionTarget{}, err
	}
	if class == nil {
		return ProgressionTarget{Graduate: true}, nil
	}
	return ProgressionTarget{Class: class}, nil
}

func (s *PromotionService) criteriaSnapshot(ctx context.Context, cmd BulkPromotionCommand) (datatypes.JSON, error) {
	if cmd.CriteriaID == nil {
		return nil, nil
	}
	criteria, err := s.Store.CriteriaByID(ctx, cmd.SchoolID, *cmd.CriteriaID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(map[string]any{
		"criteria_id":            criteria.PromotionCriteriaID,
		"name":                   criteria.PromotionCriteriaName,
		"min_grade":              criteria.PromotionCriteriaMinGrade,
		"max_fee_balance":        criteria.PromotionCriteriaMaxFeeBalance,
		"max_disciplinary_cases": criteria.PromotionCriteriaMaxDisciplinaryCases,
	})
	if err != nil {
		return nil, errs.Internal("marshalling criteria snapshot", err)
	}
	return raw, nil
}

// nextYearName increments numeric year names: "2025" → "2026". Non-numeric
// names stay unchanged; the roller creates the real successor.
func nextYearName(name string) string {
	if n, err := strconv.Atoi(name); err == nil {
		return strconv.Itoa(n + 1)
	}
	return name
}
