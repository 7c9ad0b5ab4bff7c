// file: internals/features/promotion/controller/promotion_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skuli_backend/internals/features/promotion/dto"
	"skuli_backend/internals/features/promotion/model"
	"skuli_backend/internals/features/promotion/service"
	helper "skuli_backend/internals/helpers"
	helperAuth "skuli_backend/internals/helpers/auth"
	"skuli_backend/internals/helpers/errs"
)

type PromotionController struct {
	DB          *gorm.DB
	Eligibility *service.EligibilityService
	Promotion   *service.PromotionService
	Validator   *validator.Validate
}

func NewPromotionController(db *gorm.DB, eligibility *service.EligibilityService, promotion *service.PromotionService) *PromotionController {
	return &PromotionController{
		DB:          db,
		Eligibility: eligibility,
		Promotion:   promotion,
		Validator:   helper.Validate,
	}
}

/* -----------------------------
   Criteria management
----------------------------- */

func (ctl *PromotionController) CreateCriteria(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.CriteriaCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}

	criteria, err := ctl.Eligibility.CreateCriteria(c.UserContext(), body.ToCommand(schoolID))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "promotion criteria created", dto.FromCriteriaModel(*criteria))
}

func (ctl *PromotionController) ListCriteria(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var list []model.PromotionCriteriaModel
	if err := ctl.DB.
		Where("promotion_criteria_school_id = ?", schoolID).
		Order("promotion_criteria_created_at DESC").
		Find(&list).Error; err != nil {
		return helper.FromError(c, errs.Internal("listing promotion criteria", err))
	}
	return helper.JsonList(c, "", dto.FromCriteriaModels(list), nil)
}

func (ctl *PromotionController) ActivateCriteria(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid criteria id"))
	}

	criteria, err := ctl.Eligibility.ActivateCriteria(c.UserContext(), schoolID, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "promotion criteria activated", dto.FromCriteriaModel(*criteria))
}

func (ctl *PromotionController) DeleteCriteria(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid criteria id"))
	}

	if err := ctl.Eligibility.DeleteCriteria(c.UserContext(), schoolID, id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "promotion criteria deleted", fiber.Map{"promotion_criteria_id": id})
}

/* -----------------------------
   Evaluation & execution
----------------------------- */

func (ctl *PromotionController) EligibleStudents(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var q dto.EligibleQueryDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	results, err := ctl.Eligibility.EligibleStudents(c.UserContext(), schoolID, model.PromotionType(q.Type))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", results, nil)
}

func (ctl *PromotionController) BulkPromote(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	promotedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.BulkPromoteDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}

	result, err := ctl.Promotion.BulkPromote(c.UserContext(), body.ToCommand(schoolID, promotedBy))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "promotion batch processed", result)
}

/* -----------------------------
   Audit log
----------------------------- */

func (ctl *PromotionController) ListLogs(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var q dto.LogsQueryDTO
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
		pageSize = 50
	}

	dbq := ctl.DB.Model(&model.PromotionLogModel{}).
		Where("promotion_log_school_id = ?", schoolID)
	if q.BatchID != nil {
		dbq = dbq.Where("promotion_log_batch_id = ?", *q.BatchID)
	}
	if q.StudentID != nil {
		dbq = dbq.Where("promotion_log_student_id = ?", *q.StudentID)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return helper.FromError(c, errs.Internal("counting promotion logs", err))
	}

	var logs []model.PromotionLogModel
	if err := dbq.
		Order("promotion_log_created_at DESC, promotion_log_sequence_no ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&logs).Error; err != nil {
		return helper.FromError(c, errs.Internal("listing promotion logs", err))
	}

	return helper.JsonList(c, "", logs, fiber.Map{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
