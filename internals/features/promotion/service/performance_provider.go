// file: internals/features/promotion/service/performance_provider.go
package service

import (
	"context"

	"github.com/google/uuid"
)

// AcademicPerformance is the externally-sourced academic record used by the
// eligibility evaluator. Grading and discipline bookkeeping live outside this
// subsystem; we only consume the numbers.
type AcademicPerformance struct {
	AverageGrade      float64 `json:"average_grade"`
	DisciplinaryCases int     `json:"disciplinary_cases"`
}

type AcademicPerformanceProvider interface {
	PerformanceFor(ctx context.Context, schoolID, studentID, academicYearID uuid.UUID) (AcademicPerformance, error)
}

// StaticPerformanceProvider serves fixed records, with per-student overrides.
// It is the default wiring until a results/discipline backend is attached,
// and what the tests feed the evaluator.
type StaticPerformanceProvider struct {
	Default   AcademicPerformance
	ByStudent map[uuid.UUID]AcademicPerformance
}

func (p *StaticPerformanceProvider) PerformanceFor(ctx context.Context, schoolID, studentID, academicYearID uuid.UUID) (AcademicPerformance, error) {
	if perf, ok := p.ByStudent[studentID]; ok {
		return perf, nil
	}
	return p.Default, nil
}
