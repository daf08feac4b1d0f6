// file: internals/features/academics/routes/academics_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/academics/controller"
)

// AcademicsRoutes mounts the reference data endpoints under the admin group.
func AcademicsRoutes(admin fiber.Router, db *gorm.DB) {
	h := controller.NewAcademicsHandler(db)

	students := admin.Group("/students")
	students.Get("/", h.ListStudents)
	students.Post("/", h.CreateStudent)
	students.Get("/:id", h.GetStudent)

	departments := admin.Group("/departments")
	departments.Get("/", h.ListDepartments)
	departments.Post("/", h.CreateDepartment)

	schoolYears := admin.Group("/school-years")
	schoolYears.Get("/", h.ListSchoolYears)
	schoolYears.Post("/", h.CreateSchoolYear)

	grants := admin.Group("/grants")
	grants.Get("/", h.ListGrants)
	grants.Post("/", h.CreateGrant)
}
