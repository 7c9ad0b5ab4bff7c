// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skuli_backend/internals/configs"
	"skuli_backend/internals/constants"
	"skuli_backend/internals/middlewares"

	yearRoute "skuli_backend/internals/features/academics/years/route"
	feeRoute "skuli_backend/internals/features/finance/fees/route"
	paymentRoute "skuli_backend/internals/features/finance/payments/route"
	promotionRoute "skuli_backend/internals/features/promotion/route"
)

// SetupRoutes mounts every feature under the tenant-scoped admin group.
// All finance and promotion operations require a valid JWT; finance writes
// need a finance role, promotion runs need a promotion role.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	admin := api.Group("/a/:school_id",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	yearRoute.AcademicYearAdminRoutes(admin, db)

	finance := admin.Group("", middlewares.OnlyRoles(constants.FinanceRoles...))
	feeRoute.FeeStructureAdminRoutes(finance, db)
	paymentRoute.PaymentAdminRoutes(finance, db)

	promotion := admin.Group("", middlewares.OnlyRoles(constants.PromotionRoles...))
	promotionRoute.PromotionAdminRoutes(promotion, db)
}
