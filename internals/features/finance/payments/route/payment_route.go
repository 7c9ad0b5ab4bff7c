// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skuli_backend/internals/features/finance/payments/controller"
	"skuli_backend/internals/features/finance/payments/service"
)

// PaymentAdminRoutes mounts payment recording and balance reporting under the
// admin group. Base path: /api/a/:school_id
func PaymentAdminRoutes(api fiber.Router, db *gorm.DB) {
	svc := service.NewBalanceService(service.NewGormStore(db))
	ctl := controller.NewPaymentController(svc)

	api.Post("/payments", ctl.Record)
	api.Get("/balances", ctl.SchoolBalances)

	students := api.Group("/students/:student_id")
	students.Get("/balance", ctl.StudentBalance)
	students.Get("/ledger", ctl.StudentLedger)
	students.Get("/payments", ctl.StudentHistory)
}
