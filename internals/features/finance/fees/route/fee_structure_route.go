// file: internals/features/finance/fees/route/fee_structure_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skuli_backend/internals/features/finance/fees/controller"
)

// FeeStructureAdminRoutes mounts the fee-structure CRUD under the admin group.
// Base path: /api/a/:school_id/fee-structures
func FeeStructureAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewFeeStructureController(db)

	r := api.Group("/fee-structures")
	r.Get("/", ctl.List)
	r.Get("/:id", ctl.GetByID)
	r.Post("/", ctl.Create)
	r.Put("/:id", ctl.Update)
	r.Delete("/:id", ctl.Delete)
}
