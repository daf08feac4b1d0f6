// file: internals/features/finance/gateway/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"campushub_backend/internals/helpers/apperr"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans must be called at bootstrap, before any checkout.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type PayerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

/* =========================================================
   Generate Snap Token

   The transaction reference doubles as the Midtrans OrderID
   so the callback can be matched back to our row.
========================================================= */

func GenerateSnapToken(reference string, grossCentavos int64, description string, payer PayerInput) (string, string, error) {
	if grossCentavos <= 0 {
		return "", "", apperr.Validation("gross amount must be positive")
	}
	if reference == "" {
		return "", "", apperr.Validation("transaction reference is required")
	}

	// Midtrans works in whole currency units
	grossUnits := grossCentavos / 100

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  reference,
			GrossAmt: grossUnits,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payer.FirstName,
			LName: payer.LastName,
			Email: payer.Email,
			Phone: payer.Phone,
		},
	}

	name := description
	if name == "" {
		name = "School Fee Payment"
	}
	req.Items = &[]midtrans.ItemDetails{
		{
			ID:       reference,
			Price:    grossUnits,
			Qty:      1,
			Name:     truncate(name, 50),
			Category: "Tuition",
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
