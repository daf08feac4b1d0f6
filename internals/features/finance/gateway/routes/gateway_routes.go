// file: internals/features/finance/gateway/routes/gateway_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/gateway/controller"
)

// TransactionRoutes mounts the admin transaction endpoints.
func TransactionRoutes(admin fiber.Router, db *gorm.DB) {
	h := controller.NewTransactionHandler(db)

	g := admin.Group("/transactions")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/checkout", h.Checkout)
	g.Get("/:id", h.Detail)
	g.Post("/:id/verify", h.Verify)
	g.Post("/:id/fail", h.Fail)
	g.Post("/:id/refund", h.Refund)
}

// CallbackRoutes mounts the provider webhook endpoints. These are public;
// the parent router applies the callback rate limiter.
func CallbackRoutes(public fiber.Router, db *gorm.DB) {
	h := controller.NewCallbackHandler(db)

	g := public.Group("/callbacks")
	g.Post("/midtrans", h.Midtrans)
}
