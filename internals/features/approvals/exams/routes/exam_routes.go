// file: internals/features/approvals/exams/routes/exam_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/approvals/exams/controller"
)

// ExamRoutes mounts the exam permit endpoints under the admin group.
func ExamRoutes(admin fiber.Router, db *gorm.DB) {
	h := controller.NewExamHandler(db)

	g := admin.Group("/exam-permits")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/bulk-approve", h.BulkApprove)
	g.Get("/:id", h.Detail)
	g.Post("/:id/approve", h.Approve)
	g.Post("/:id/deny", h.Deny)
}
