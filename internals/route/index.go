// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"campushub_backend/internals/configs"
	academicsRoutes "campushub_backend/internals/features/academics/routes"
	documentRoutes "campushub_backend/internals/features/approvals/documents/routes"
	examRoutes "campushub_backend/internals/features/approvals/exams/routes"
	gatewayRoutes "campushub_backend/internals/features/finance/gateway/routes"
	ledgerRoutes "campushub_backend/internals/features/finance/ledger/routes"
	overdueRoutes "campushub_backend/internals/features/finance/overdue/routes"
	"campushub_backend/internals/helpers/storage"
	"campushub_backend/internals/middlewares"
	authMw "campushub_backend/internals/middlewares/auth"
)

// SetupRoutes wires the public surface and the authenticated admin API.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// provider webhooks: no auth, own rate limiter
	public := app.Group("/api", middlewares.CallbackRateLimiter())
	gatewayRoutes.CallbackRoutes(public, db)

	admin := app.Group("/api/a",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMw.RequireRole("admin", "registrar", "accounting"),
	)

	receipts := &storage.LocalDisk{BaseDir: configs.ReceiptBaseDir}

	academicsRoutes.AcademicsRoutes(admin, db)
	ledgerRoutes.LedgerRoutes(admin, db)
	gatewayRoutes.TransactionRoutes(admin, db)
	overdueRoutes.OverdueRoutes(admin, db)
	documentRoutes.DocumentRoutes(admin, db, receipts)
	examRoutes.ExamRoutes(admin, db)
}
