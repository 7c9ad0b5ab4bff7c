// file: internals/features/promotion/route/promotion_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearService "skuli_backend/internals/features/academics/years/service"
	paymentService "skuli_backend/internals/features/finance/payments/service"
	"skuli_backend/internals/features/promotion/controller"
	"skuli_backend/internals/features/promotion/service"
)

// PromotionAdminRoutes mounts criteria management, eligibility evaluation, and
// bulk execution under the admin group. Base path: /api/a/:school_id/promotion
func PromotionAdminRoutes(api fiber.Router, db *gorm.DB) {
	store := service.NewGormStore(db)
	balance := paymentService.NewBalanceService(paymentService.NewGormStore(db))
	rollover := yearService.NewRolloverService(yearService.NewGormStore(db))

	eligibility := service.NewEligibilityService(store, balance, &service.StaticPerformanceProvider{})
	promotion := service.NewPromotionService(store, rollover)
	ctl := controller.NewPromotionController(db, eligibility, promotion)

	r := api.Group("/promotion")

	r.Get("/criteria", ctl.ListCriteria)
	r.Post("/criteria", ctl.CreateCriteria)
	r.Post("/criteria/:id/activate", ctl.ActivateCriteria)
	r.Delete("/criteria/:id", ctl.DeleteCriteria)

	r.Get("/eligible", ctl.EligibleStudents)
	r.Post("/bulk", ctl.BulkPromote)
	r.Get("/logs", ctl.ListLogs)
}
