// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skuli_backend/internals/features/finance/payments/dto"
	"skuli_backend/internals/features/finance/payments/service"
	helper "skuli_backend/internals/helpers"
	helperAuth "skuli_backend/internals/helpers/auth"
	"skuli_backend/internals/helpers/errs"
)

type PaymentController struct {
	Service   *service.BalanceService
	Validator *validator.Validate
}

func NewPaymentController(svc *service.BalanceService) *PaymentController {
	return &PaymentController{Service: svc, Validator: helper.Validate}
}

/* -----------------------------
   Record payment
----------------------------- */

func (ctl *PaymentController) Record(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	receivedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var body dto.RecordPaymentDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body: "+err.Error())
	}
	body.Normalize()
	if err := ctl.Validator.Struct(&body); err != nil {
		return helper.FromError(c, err)
	}

	result, err := ctl.Service.RecordPayment(c.UserContext(), body.ToCommand(schoolID, receivedBy))
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.JsonCreated(c, "payment recorded", result)
}

/* -----------------------------
   Balance & ledger queries
----------------------------- */

func (ctl *PaymentController) StudentBalance(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid student id"))
	}

	var q dto.BalanceQueryDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	balance, err := ctl.Service.CalculateStudentBalance(c.UserContext(), schoolID, studentID, q.Year, q.Term)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", balance)
}

func (ctl *PaymentController) StudentLedger(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid student id"))
	}

	var q dto.LedgerQueryDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	ledger, err := ctl.Service.StudentLedger(c.UserContext(), schoolID, studentID, q.Year)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", ledger)
}

func (ctl *PaymentController) StudentHistory(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.FromError(c, errs.Validation("invalid student id"))
	}

	var q dto.HistoryQueryDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	payments, err := ctl.Service.PaymentHistory(c.UserContext(), schoolID, studentID, q.Year, q.Term)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "", dto.FromPaymentModels(payments), nil)
}

// SchoolBalances is the school-wide outstanding report, optionally narrowed to
// one grade.
func (ctl *PaymentController) SchoolBalances(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var q dto.SchoolBalancesQueryDTO
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query: "+err.Error())
	}
	if err := ctl.Validator.Struct(&q); err != nil {
		return helper.FromError(c, err)
	}

	balances, err := ctl.Service.SchoolStudentBalances(c.UserContext(), schoolID, q.Year, q.Term, q.GradeID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "", balances)
}
