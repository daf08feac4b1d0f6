// file: internals/features/approvals/documents/routes/document_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/features/approvals/documents/controller"
	"campushub_backend/internals/helpers/storage"
)

// DocumentRoutes mounts the document request pipeline under the admin group.
func DocumentRoutes(admin fiber.Router, db *gorm.DB, receipts storage.ReceiptChecker) {
	h := controller.NewDocumentHandler(db, receipts)

	g := admin.Group("/document-requests")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Post("/quote", h.QuoteFee)
	g.Get("/:id", h.Detail)
	g.Put("/:id/receipt", h.AttachReceipt)
	g.Post("/:id/registrar", h.RegistrarDecide)
	g.Post("/:id/accounting", h.AccountingDecide)
}
