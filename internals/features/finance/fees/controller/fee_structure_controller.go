// file: internals/features/finance/fees/controller/fee_structure_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skuli_backend/internals/features/finance/fees/dto"
	"skuli_backend/internals/features/finance/fees/model"
	helper "skuli_backend/internals/helpers"
	helperAuth "skuli_backend/internals/helpers/auth"
	"skuli_backend/internals/helpers/errs"
)

type FeeStructureController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db, Validator: helper.Validate}
}

/* -----------------------------
   Create
----------------------------- */

func (ctl *FeeStructureController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.FeeStructureCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}
	if !body.FeeStructureTotalAmount.IsPositive() {
		return helper.FromError(c, errs.Validation("fee_structure_total_amount must be > 0"))
	}

	ent := body.ToModel(schoolID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return helper.FromError(c, errs.Conflict("a fee structure already exists for this grade, year, and term"))
		}
		return helper.FromError(c, errs.Internal("creating fee structure", err))
	}

	return helper.JsonCreated(c, "fee structure created", dto.FromModel(ent))
}

/* -----------------------------
   List + GetByID
----------------------------- */

func (ctl *FeeStructureController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var q dto.FeeStructureFilterDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	page := q.Page
	if page == 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	dbq := ctl.DB.Model(&model.FeeStructureModel{}).
		Where("fee_structure_school_id = ?", schoolID)
	if q.GradeID != nil {
		dbq = dbq.Where("fee_structure_grade_id = ?", *q.GradeID)
	}
	if q.YearID != nil {
		dbq = dbq.Where("fee_structure_academic_year_id = ?", *q.YearID)
	}
	if q.TermID != nil {
		dbq = dbq.Where("fee_structure_term_id = ?", *q.TermID)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.FromError(c, errs.Internal("counting fee structures", err))
	}

	var list []model.FeeStructureModel
	if err := dbq.
		Order("fee_structure_created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&list).Error; err != nil {
		return helper.FromError(c, errs.Internal("listing fee structures", err))
	}

	return helper.JsonList(c, "", dto.FromModels(list), fiber.Map{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (ctl *FeeStructureController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid fee structure id"))
	}

	var ent model.FeeStructureModel
	if err := ctl.DB.
		Where("fee_structure_school_id = ? AND fee_structure_id = ?", schoolID, id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("fee structure %s not found", id))
		}
		return helper.FromError(c, errs.Internal("loading fee structure", err))
	}

	return helper.JsonOK(c, "", dto.FromModel(ent))
}

/* -----------------------------
   Update + Delete
----------------------------- */

// Update refuses once a payment has been allocated against the structure's
// window; the next window gets a new structure instead.
func (ctl *FeeStructureController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid fee structure id"))
	}

	var body dto.FeeStructureUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	if body.FeeStructureTotalAmount != nil && !body.FeeStructureTotalAmount.IsPositive() {
		return helper.FromError(c, errs.Validation("fee_structure_total_amount must be > 0"))
	}

	var ent model.FeeStructureModel
	if err := ctl.DB.
		Where("fee_structure_school_id = ? AND fee_structure_id = ?", schoolID, id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("fee structure %s not found", id))
		}
		return helper.FromError(c, errs.Internal("loading fee structure", err))
	}

	locked, err := ctl.hasAllocations(&ent)
	if err != nil {
		return helper.FromError(c, err)
	}
	if locked {
		return helper.FromError(c, errs.State("fee structure already has payments allocated; create a new structure for the next window"))
	}

	body.ApplyUpdates(&ent)
	if err := ctl.DB.Save(&ent).Error; err != nil {
		return helper.FromError(c, errs.Internal("updating fee structure", err))
	}

	return helper.JsonUpdated(c, "fee structure updated", dto.FromModel(ent))
}

func (ctl *FeeStructureController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid fee structure id"))
	}

	var ent model.FeeStructureModel
	if err := ctl.DB.
		Where("fee_structure_school_id = ? AND fee_structure_id = ?", schoolID, id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.FromError(c, errs.NotFound("fee structure %s not found", id))
		}
		return helper.FromError(c, errs.Internal("loading fee structure", err))
	}

	locked, err := ctl.hasAllocations(&ent)
	if err != nil {
		return helper.FromError(c, err)
	}
	if locked {
		return helper.FromError(c, errs.State("fee structure already has payments allocated; it cannot be deleted"))
	}

	if err := ctl.DB.Delete(&ent).Error; err != nil {
		return helper.FromError(c, errs.Internal("deleting fee structure", err))
	}

	return helper.JsonDeleted(c, "fee structure deleted", fiber.Map{"fee_structure_id": id})
}

func (ctl *FeeStructureController) hasAllocations(ent *model.FeeStructureModel) (bool, error) {
	var count int64
	err := ctl.DB.Table("payment_allocations").
		Where("payment_allocation_school_id = ? AND payment_allocation_academic_year_id = ? AND payment_allocation_term_id = ?",
			ent.FeeStructureSchoolID, ent.FeeStructureAcademicYearID, ent.FeeStructureTermID).
		Count(&count).Error
	if err != nil {
		return false, errs.Internal("checking allocations", err)
	}
	return count > 0, nil
}
