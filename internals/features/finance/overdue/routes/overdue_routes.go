// file: internals/features/finance/overdue/routes/overdue_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/overdue/controller"
)

// OverdueRoutes mounts the escalation endpoints under the admin group.
func OverdueRoutes(admin fiber.Router, db *gorm.DB) {
	h := controller.NewOverdueHandler(db)

	g := admin.Group("/overdue")
	g.Post("/ledgers/:id", h.MarkOverdue)
	g.Delete("/ledgers/:id", h.ClearOverdue)
	g.Get("/runs", h.Runs)
	g.Post("/runs", h.BulkMark)
}
