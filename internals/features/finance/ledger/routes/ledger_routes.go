// file: internals/features/finance/ledger/routes/ledger_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/ledger/controller"
)

// LedgerRoutes mounts the student ledger endpoints under the admin group.
// Role gating happens on the parent router.
func LedgerRoutes(admin fiber.Router, db *gorm.DB) {
	ledger := controller.NewLedgerHandler(db)
	payment := controller.NewPaymentHandler(db)

	g := admin.Group("/ledgers")

	g.Get("/", ledger.List)
	g.Post("/", ledger.CreateOrGet)
	g.Get("/:id", ledger.Detail)
	g.Get("/:id/balance", ledger.Balance)
	g.Put("/:id/assessment", ledger.PostAssessment)

	g.Get("/:id/grants", ledger.AppliedGrants)
	g.Post("/:id/grants", ledger.ApplyGrant)
	g.Delete("/:id/grants/:grantInstanceId", ledger.RemoveGrant)

	g.Get("/:id/payments", payment.History)
	g.Post("/:id/payments", payment.Record)
	g.Post("/:id/payments/:paymentId/reverse", payment.Reverse)
}
