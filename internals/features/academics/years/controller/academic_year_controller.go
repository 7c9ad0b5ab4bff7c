// file: internals/features/academics/years/controller/academic_year_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skuli_backend/internals/features/academics/years/dto"
	"skuli_backend/internals/features/academics/years/model"
	"skuli_backend/internals/features/academics/years/service"
	helper "skuli_backend/internals/helpers"
	helperAuth "skuli_backend/internals/helpers/auth"
	"skuli_backend/internals/helpers/errs"
)

type AcademicYearController struct {
	DB        *gorm.DB
	Rollover  *service.RolloverService
	Validator *validator.Validate
}

func NewAcademicYearController(db *gorm.DB, rollover *service.RolloverService) *AcademicYearController {
	return &AcademicYearController{DB: db, Rollover: rollover, Validator: helper.Validate}
}

/* -----------------------------
   Years
----------------------------- */

func (ctl *AcademicYearController) ListYears(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var years []model.AcademicYearModel
	if err := ctl.DB.
		Where("academic_year_school_id = ?", schoolID).
		Order("academic_year_name ASC").
		Find(&years).Error; err != nil {
		return helper.FromError(c, errs.Internal("listing academic years", err))
	}
	return helper.JsonList(c, "", dto.FromYearModels(years), nil)
}

func (ctl *AcademicYearController) CreateYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.AcademicYearCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}

	ent := body.ToModel(schoolID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.FromError(c, errs.Internal("creating academic year", err))
	}
	return helper.JsonCreated(c, "academic year created", dto.FromYearModel(ent))
}

/* -----------------------------
   Terms
----------------------------- */

func (ctl *AcademicYearController) ListTerms(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	yearID, err := uuid.Parse(c.Params("year_id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid academic year id"))
	}

	var terms []model.AcademicTermModel
	if err := ctl.DB.
		Where("academic_term_school_id = ? AND academic_term_academic_year_id = ?", schoolID, yearID).
		Order("academic_term_sort_order ASC").
		Find(&terms).Error; err != nil {
		return helper.FromError(c, errs.Internal("listing terms", err))
	}
	return helper.JsonList(c, "", dto.FromTermModels(terms), nil)
}

func (ctl *AcademicYearController) CreateTerm(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.AcademicTermCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}

	ent := body.ToModel(schoolID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return helper.FromError(c, errs.Internal("creating term", err))
	}
	return helper.JsonCreated(c, "term created", dto.FromTermModel(ent))
}

/* -----------------------------
   Rollover
----------------------------- */

func (ctl *AcademicYearController) AdvanceYear(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	result, err := ctl.Rollover.AdvanceAcademicYear(c.UserContext(), schoolID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "academic year advanced", result)
}

func (ctl *AcademicYearController) AdvanceTerm(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	result, err := ctl.Rollover.AdvanceTerm(c.UserContext(), schoolID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "term advanced", result)
}
