// file: internals/features/academics/years/route/academic_year_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skuli_backend/internals/features/academics/years/controller"
	"skuli_backend/internals/features/academics/years/service"
)

// AcademicYearAdminRoutes mounts year/term management and the rollover
// endpoints. Base path: /api/a/:school_id
func AcademicYearAdminRoutes(api fiber.Router, db *gorm.DB) {
	rollover := service.NewRolloverService(service.NewGormStore(db))
	ctl := controller.NewAcademicYearController(db, rollover)

	years := api.Group("/academic-years")
	years.Get("/", ctl.ListYears)
	years.Post("/", ctl.CreateYear)
	years.Post("/advance", ctl.AdvanceYear)
	years.Get("/:year_id/terms", ctl.ListTerms)

	terms := api.Group("/academic-terms")
	terms.Post("/", ctl.CreateTerm)
	terms.Post("/advance", ctl.AdvanceTerm)
}
