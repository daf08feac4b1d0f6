package database

import (
	"log"

	"gorm.io/gorm"

	academicsModel "campushub_backend/internals/features/academics/model"
	docModel "campushub_backend/internals/features/approvals/documents/model"
	examModel "campushub_backend/internals/features/approvals/exams/model"
	gatewayModel "campushub_backend/internals/features/finance/gateway/model"
	ledgerModel "campushub_backend/internals/features/finance/ledger/model"
	overdueModel "campushub_backend/internals/features/finance/overdue/model"
)

// RunMigrations creates/updates the schema at boot. Order matters: FK targets first.
func RunMigrations(db *gorm.DB) {
	log.Println("[INFO] running migrations...")

	if err := db.AutoMigrate(
		&academicsModel.Department{},
		&academicsModel.SchoolYear{},
		&academicsModel.Student{},
		&academicsModel.GrantDefinition{},

		&ledgerModel.StudentLedger{},
		&ledgerModel.LedgerPayment{},
		&ledgerModel.StudentLedgerGrant{},

		&gatewayModel.OnlineTransaction{},
		&gatewayModel.GatewayCallbackEvent{},

		&overdueModel.EscalationRun{},

		&docModel.DocumentRequest{},
		&examModel.ExamPermit{},
	); err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}

	log.Println("[INFO] migrations done")
}
