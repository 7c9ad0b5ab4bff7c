// file: internals/features/finance/payments/service/gorm_store.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	yearModel "skuli_backend/internals/features/academics/years/model"
	feeModel "skuli_backend/internals/features/finance/fees/model"
	paymentModel "skuli_backend/internals/features/finance/payments/model"
	studentModel "skuli_backend/internals/features/students/model"
	"skuli_backend/internals/helpers/errs"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

var _ Store = (*GormStore)(nil)

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

func (g *GormStore) StudentsBySchool(ctx context.Context, schoolID uuid.UUID, gradeID *uuid.UUID) ([]studentModel.StudentModel, error) {
	q := g.DB.WithContext(ctx).
		Preload("Class").
		Where("student_school_id = ? AND student_is_active = TRUE", schoolID)
	if gradeID != nil {
		q = q.Where("student_class_id IN (?)",
			g.DB.Table("classes").Select("class_id").
				Where("class_school_id = ? AND class_grade_id = ? AND class_deleted_at IS NULL", schoolID, *gradeID))
	}

	var students []studentModel.StudentModel
	if err := q.Order("student_admission_no ASC").Find(&students).Error; err != nil {
		return nil, errs.Internal("listing students", err)
	}
	return students, nil
}

func (g *GormStore) YearByID(ctx context.Context, schoolID, yearID uuid.UUID) (*yearModel.AcademicYearModel, error) {
	var year yearModel.AcademicYearModel
	err := g.DB.WithContext(ctx).
		Where("academic_year_school_id = ? AND academic_year_id = ?", schoolID, yearID).
		First(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("academic year %s not found", yearID)
	}
	if err != nil {
		return nil, errs.Internal("loading academic year", err)
	}
	return &year, nil
}

func (g *GormStore) YearByName(ctx context.Context, schoolID uuid.UUID, name string) (*yearModel.AcademicYearModel, error) {
	var year yearModel.AcademicYearModel
	err := g.DB.WithContext(ctx).
		Where("academic_year_school_id = ? AND academic_year_name = ?", schoolID, name).
		First(&year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("academic year %q not found", name)
	}
	if err != nil {
		return nil, errs.Internal("loading academic year", err)
	}
	return &year, nil
}

func (g *GormStore) TermByName(ctx context.Context, schoolID, yearID uuid.UUID, name string) (*yearModel.AcademicTermModel, error) {
	var term yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_academic_year_id = ? AND academic_term_name = ?", schoolID, yearID, name).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("term %q not found in year", name)
	}
	if err != nil {
		return nil, errs.Internal("loading term", err)
	}
	return &term, nil
}

func (g *GormStore) TermByID(ctx context.Context, schoolID, termID uuid.UUID) (*yearModel.AcademicTermModel, error) {
	var term yearModel.AcademicTermModel
	err := g.DB.WithContext(ctx).
		Where("academic_term_school_id = ? AND academic_term_id = ?", schoolID, termID).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("term %s not found", termID)
	}
	if err != nil {
		return nil, errs.Internal("loading term", err)
	}
	return &term, nil
}

func (g *GormStore) FeeWindowFor(ctx context.Context, schoolID, gradeID, yearID, termID uuid.UUID) (*FeeWindow, error) {
	var fs feeModel.FeeStructureModel
	err := g.DB.WithContext(ctx).
		Where("fee_structure_school_id = ? AND fee_structure_grade_id = ? AND fee_structure_academic_year_id = ? AND fee_structure_term_id = ?",
			schoolID, gradeID, yearID, termID).
		First(&fs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Internal("loading fee structure", err)
	}

	term, err := g.TermByID(ctx, schoolID, termID)
	if err != nil {
		return nil, err
	}
	year, err := g.YearByID(ctx, schoolID, yearID)
	if err != nil {
		return nil, err
	}

	return &FeeWindow{
		FeeStructureID: fs.FeeStructureID,
		YearID:         yearID,
		YearName:       year.AcademicYearName,
		TermID:         termID,
		TermName:       term.AcademicTermName,
		TermSortOrder:  term.AcademicTermSortOrder,
		TermStartDate:  term.AcademicTermStartDate,
		TotalAmount:    fs.FeeStructureTotalAmount,
		Breakdown:      fs.FeeStructureBreakdown,
	}, nil
}

func (g *GormStore) FeeWindowsForGrade(ctx context.Context, schoolID, gradeID uuid.UUID) ([]FeeWindow, error) {
	type row struct {
		FeeStructureID uuid.UUID       `gorm:"column:fee_structure_id"`
		YearID         uuid.UUID       `gorm:"column:academic_year_id"`
		YearName       string          `gorm:"column:academic_year_name"`
		TermID         uuid.UUID       `gorm:"column:academic_term_id"`
		TermName       string          `gorm:"column:academic_term_name"`
		TermSortOrder  int             `gorm:"column:academic_term_sort_order"`
		TermStartDate  time.Time       `gorm:"column:academic_term_start_date"`
		TotalAmount    decimal.Decimal `gorm:"column:fee_structure_total_amount"`
		Breakdown      []byte          `gorm:"column:fee_structure_breakdown"`
	}

	var rows []row
	err := g.DB.WithContext(ctx).
		Table("fee_structures").
		Select(`fee_structures.fee_structure_id, academic_years.academic_year_id, academic_years.academic_year_name,
			academic_terms.academic_term_id, academic_terms.academic_term_name, academic_terms.academic_term_sort_order,
			academic_terms.academic_term_start_date, fee_structures.fee_structure_total_amount, fee_structures.fee_structure_breakdown`).
		Joins("JOIN academic_years ON academic_years.academic_year_id = fee_structures.fee_structure_academic_year_id").
		Joins("JOIN academic_terms ON academic_terms.academic_term_id = fee_structures.fee_structure_term_id").
		Where("fee_structures.fee_structure_school_id = ? AND fee_structures.fee_structure_grade_id = ? AND fee_structures.fee_structure_deleted_at IS NULL",
			schoolID, gradeID).
		Order("academic_years.academic_year_name ASC, academic_terms.academic_term_sort_order ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.Internal("listing fee windows", err)
	}

	windows := make([]FeeWindow, 0, len(rows))
	for _, r := range rows {
		windows = append(windows, FeeWindow{
			FeeStructureID: r.FeeStructureID,
			YearID:         r.YearID,
			YearName:       r.YearName,
			TermID:         r.TermID,
			TermName:       r.TermName,
			TermSortOrder:  r.TermSortOrder,
			TermStartDate:  r.TermStartDate,
			TotalAmount:    r.TotalAmount,
			Breakdown:      r.Breakdown,
		})
	}
	return windows, nil
}

func (g *GormStore) AllocatedTotal(ctx context.Context, schoolID, studentID, yearID, termID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := g.DB.WithContext(ctx).
		Table("payment_allocations").
		Select("SUM(payment_allocation_amount)").
		Where("payment_allocation_school_id = ? AND payment_allocation_student_id = ? AND payment_allocation_academic_year_id = ? AND payment_allocation_term_id = ?",
			schoolID, studentID, yearID, termID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, errs.Internal("summing allocations", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (g *GormStore) PaymentsForStudent(ctx context.Context, schoolID, studentID uuid.UUID, yearID, termID *uuid.UUID) ([]paymentModel.PaymentModel, error) {
	q := g.DB.WithContext(ctx).
		Preload("Receipt").
		Where("payment_school_id = ? AND payment_student_id = ?", schoolID, studentID)
	if yearID != nil {
		q = q.Where("payment_academic_year_id = ?", *yearID)
	}
	if termID != nil {
		q = q.Where("payment_term_id = ?", *termID)
	}

	var payments []paymentModel.PaymentModel
	if err := q.Order("payment_paid_at DESC").Find(&payments).Error; err != nil {
		return nil, errs.Internal("listing payments", err)
	}
	return payments, nil
}

func (g *GormStore) PaymentExistsByReference(ctx context.Context, schoolID uuid.UUID, reference string) (bool, error) {
	var count int64
	err := g.DB.WithContext(ctx).
		Model(&paymentModel.PaymentModel{}).
		Where("payment_school_id = ? AND payment_reference = ?", schoolID, reference).
		Count(&count).Error
	if err != nil {
		return false, errs.Internal("checking payment reference", err)
	}
	return count > 0, nil
}

// CreatePaymentBundle inserts payment, allocations, and receipt in one
// transaction. Either all three land or none do; a payment without a receipt
// must never exist.
func (g *GormStore) CreatePaymentBundle(ctx context.Context, p *paymentModel.PaymentModel, allocs []paymentModel.PaymentAllocationModel, r *paymentModel.ReceiptModel) error {
	return g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for i := range allocs {
			allocs[i].PaymentAllocationPaymentID = p.PaymentID
		}
		if len(allocs) > 0 {
			if err := tx.Create(&allocs).Error; err != nil {
				return err
			}
		}
		r.ReceiptPaymentID = p.PaymentID
		return tx.Create(r).Error
	})
}
