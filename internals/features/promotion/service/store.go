// file: internals/features/promotion/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"

	yearModel "skuli_backend/internals/features/academics/years/model"
	promoModel "skuli_backend/internals/features/promotion/model"
	studentModel "skuli_backend/internals/features/students/model"
)

// Store is the persistence surface of the promotion engine. The GORM
// implementation lives in gorm_store.go; tests substitute an in-memory fake.
type Store interface {
	StudentByID(ctx context.Context, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error)
	ActiveStudentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]studentModel.StudentModel, error)

	// ClassByName returns nil (no error) when no active class carries the name.
	ClassByName(ctx context.Context, schoolID uuid.UUID, name string) (*studentModel.ClassModel, error)
	// ProgressionForClass returns nil (no error) when no active rule exists.
	ProgressionForClass(ctx context.Context, schoolID, fromClassID uuid.UUID) (*studentModel.ClassProgressionModel, error)

	CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error)
	CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error)

	CriteriaByID(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error)
	// ActiveCriteria returns nil (no error) when nothing is active for the type.
	ActiveCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (*promoModel.PromotionCriteriaModel, error)
	CreateCriteria(ctx context.Context, m *promoModel.PromotionCriteriaModel) error
	// ActivateCriteria deactivates every sibling of the same (school, type) and
	// activates the given row inside one transaction.
	ActivateCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error)
	DeleteCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) error
	CountCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (total, active int64, err error)

	// CreateAlumniIfAbsent inserts the alumni row unless (student, year)
	// already exists; reports whether a row was created.
	CreateAlumniIfAbsent(ctx context.Context, m *studentModel.AlumniModel) (bool, error)
	// GraduateStudent flips is_active=false, status=graduated.
	GraduateStudent(ctx context.Context, schoolID, studentID uuid.UUID) error
	ReassignStudentClass(ctx context.Context, schoolID, studentID, toClassID uuid.UUID) error

	CreatePromotionLog(ctx context.Context, m *promoModel.PromotionLogModel) error
}
