// file: internals/features/promotion/service/gorm_store.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	yearModel "skuli_backend/internals/features/academics/years/model"
	promoModel "skuli_backend/internals/features/promotion/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ Store = (*GormStore)(nil)

/* ===================== Students & classes ===================== */

func (g *GormStore) StudentByID(ctx context.Context, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := g.DB.WithContext(ctx).
		Preload("Class").
		Where("student_school_id = ? AND student_id = ?", schoolID, studentID).
		First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("student %s not found", studentID)
	}
	if err != nil {
		return nil, errs.Internal("loading student", err)
	}
	return &st, nil
}

func (g *GormStore) ActiveStudentsBySchool(ctx context.Context, schoolID uuid.UUID) ([]studentModel.StudentModel, error) {
	var students []studentModel.StudentModel
	err := g.DB.WithContext(ctx).
		Preload("Class").
		Where("student_school_id = ? AND student_is_active = TRUE AND student_status = ?", schoolID, studentModel.StudentStatusActive).
		Order("student_admission_no ASC").
		Find(&students).Error
	if err != nil {
		return nil, errs.Internal("listing active students", err)
	}
	return students, nil
}

func (g *GormStore) ClassByName(ctx context.Context, schoolID uuid.UUID, name string) (*studentModel.ClassModel, error) {
	var class studentModel.ClassModel
	err := g.DB.WithContext(ctx).
		Where("class_school_id = ? AND class_name = ? AND class_is_active = TRUE", schoolID, name).
		First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading class", err)
	}
	return &class, nil
}

func (g *GormStore) ProgressionForClass(ctx context.Context, schoolID, fromClassID uuid.UUID) (*studentModel.ClassProgressionModel, error) {
	var rule studentModel.ClassProgressionModel
	err := g.DB.WithContext(ctx).
		Where("class_progression_school_id = ? AND class_progression_from_class_id = ? AND class_progression_is_active = TRUE", schoolID, fromClassID).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading progression rule", err)
	}
	return &rule, nil
}

/* ===================== Current year & term ===================== */

func (g *GormStore) CurrentYear(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	var year yearModel.AcademicYearModel
	err := g.DB.WithContext(ctx).
		Where("academic_year_school_id = ? AND academic_year_is_current = TRUE", schoolID).
		First(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Configuration("no current academic year configured")
	}
	if err != nil {
		return nil, errs.Internal("loading current year", err)
	}
	return &year, nil
}

func (g *GormStore) CurrentTerm(ctx context.Context, schoolID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	var term yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_is_current = TRUE", schoolID).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Configuration("no current term configured")
	}
	if err != nil {
		return nil, errs.Internal("loading current term", err)
	}
	return &term, nil
}

/* ===================== Criteria ===================== */

func (g *GormStore) CriteriaByID(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error) {
	var criteria promoModel.PromotionCriteriaModel
	err := g.DB.WithContext(ctx).
		Where("promotion_criteria_school_id = ? AND promotion_criteria_id = ?", schoolID, criteriaID).
		First(&criteria).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("promotion criteria %s not found", criteriaID)
	}
	if err != nil {
		return nil, errs.Internal("loading promotion criteria", err)
	}
	return &criteria, nil
}

func (g *GormStore) ActiveCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (*promoModel.PromotionCriteriaModel, error) {
	var criteria promoModel.PromotionCriteriaModel
	err := g.DB.WithContext(ctx).
		Where("promotion_criteria_school_id = ? AND promotion_criteria_type = ? AND promotion_criteria_is_active = TRUE", schoolID, ptype).
		First(&criteria).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading active criteria", err)
	}
	return &criteria, nil
}

func (g *GormStore) CreateCriteria(ctx context.Context, m *promoModel.PromotionCriteriaModel) error {
	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		return errs.Internal("creating promotion criteria", err)
	}
	return nil
}

// ActivateCriteria clears every active flag of the same (school, type) before
// setting the target, all inside one transaction.
func (g *GormStore) ActivateCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) (*promoModel.PromotionCriteriaModel, error) {
	var criteria promoModel.PromotionCriteriaModel
	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("promotion_criteria_school_id = ? AND promotion_criteria_id = ?", schoolID, criteriaID).
			First(&criteria).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("promotion criteria %s not found", criteriaID)
			}
			return errs.Internal("loading promotion criteria", err)
		}

		if err := tx.Model(&promoModel.PromotionCriteriaModel{}).
			Where("promotion_criteria_school_id = ? AND promotion_criteria_type = ? AND promotion_criteria_is_active = TRUE",
				schoolID, criteria.PromotionCriteriaType).
			Update("promotion_criteria_is_active", false).Error; err != nil {
			return errs.Internal("deactivating sibling criteria", err)
		}

		if err := tx.Model(&criteria).
			Update("promotion_criteria_is_active", true).Error; err != nil {
			return errs.Internal("activating criteria", err)
		}
		criteria.PromotionCriteriaIsActive = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (g *GormStore) DeleteCriteria(ctx context.Context, schoolID, criteriaID uuid.UUID) error {
	res := g.DB.WithContext(ctx).
		Where("promotion_criteria_school_id = ? AND promotion_criteria_id = ?", schoolID, criteriaID).
		Delete(&promoModel.PromotionCriteriaModel{})
	if res.Error != nil {
		return errs.Internal("deleting promotion criteria", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("promotion criteria %s not found", criteriaID)
	}
	return nil
}

func (g *GormStore) CountCriteria(ctx context.Context, schoolID uuid.UUID, ptype promoModel.PromotionType) (int64, int64, error) {
	base := g.DB.WithContext(ctx).Model(&promoModel.PromotionCriteriaModel{}).
		Where("promotion_criteria_school_id = ? AND promotion_criteria_type = ?", schoolID, ptype)

	var total, active int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, errs.Internal("counting criteria", err)
	}
	if err := base.Session(&gorm.Session{}).
		Where("promotion_criteria_is_active = TRUE").Count(&active).Error; err != nil {
		return 0, 0, errs.Internal("counting active criteria", err)
	}
	return total, active, nil
}

/* ===================== Graduation & reassignment ===================== */

// CreateAlumniIfAbsent checks first and still treats a unique violation as the
// row already existing, in case two runs race.
func (g *GormStore) CreateAlumniIfAbsent(ctx context.Context, m *studentModel.AlumniModel) (bool, error) {
	var count int64
	err := g.DB.WithContext(ctx).Model(&studentModel.AlumniModel{}).
		Where("alumni_student_id = ? AND alumni_graduation_year = ?", m.AlumniStudentID, m.AlumniGraduationYear).
		Count(&count).Error
	if err != nil {
		return false, errs.Internal("checking alumni record", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return false, nil
		}
		return false, errs.Internal("creating alumni record", err)
	}
	return true, nil
}

func (g *GormStore) GraduateStudent(ctx context.Context, schoolID, studentID uuid.UUID) error {
	res := g.DB.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("student_school_id = ? AND student_id = ?", schoolID, studentID).
		Updates(map[string]any{
			"student_status":    studentModel.StudentStatusGraduated,
			"student_is_active": false,
		})
	if res.Error != nil {
		return errs.Internal("graduating student", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("student %s not found", studentID)
	}
	return nil
}

func (g *GormStore) ReassignStudentClass(ctx context.Context, schoolID, studentID, toClassID uuid.UUID) error {
	res := g.DB.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("student_school_id = ? AND student_id = ?", schoolID, studentID).
		Update("student_class_id", toClassID)
	if res.Error != nil {
		return errs.Internal("reassigning student class", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("student %s not found", studentID)
	}
	return nil
}

func (g *GormStore) CreatePromotionLog(ctx context.Context, m *promoModel.PromotionLogModel) error {
	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		return errs.Internal("writing promotion log", err)
	}
	return nil
}
