package invoices

import (
	"fmt"
	"log"
	"time"

	"zyra/internal/models"

	"github.com/shopspring/decimal"
)

// DisplayInvoice is the unified row the dashboard renders, built from either
// a mobile money invoice or a crypto payment link. Amounts are normalized to
// major units before any comparison.
type DisplayInvoice struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Customer  string          `json:"customer"`
	Reference string          `json:"reference,omitempty"`
	Method    string          `json:"payment_method"` // mobile_money | crypto
	Status    string          `json:"status"`         // paid | unpaid
	Amount    decimal.Decimal `json:"amount"`         // major units
	Currency  string          `json:"currency"`       // ISO code or token symbol
	CreatedAt time.Time       `json:"created_at"`
}

// FromMobileMoney maps a stored invoice. Mobile money invoices only exist
// after a confirmed charge, so status is always paid. The denormalized
// original amount is already in major units.
func FromMobileMoney(inv models.MobileMoneyInvoice) (DisplayInvoice, error) {
	amount, err := decimal.NewFromString(inv.OriginalAmount)
	if err != nil {
		return DisplayInvoice{}, fmt.Errorf("invoice %s: bad original amount %q", inv.ID, inv.OriginalAmount)
	}

	return DisplayInvoice{
		ID:        inv.ID,
		Title:     inv.Title,
		Customer:  inv.CustomerName,
		Reference: inv.Reference,
		Method:    "mobile_money",
		Status:    "paid",
		Amount:    amount,
		Currency:  inv.OriginalCurrency,
		CreatedAt: inv.CreatedAt,
	}, nil
}

// FromCrypto maps a payment-link invoice, scaling the raw smallest-unit
// amount down by the token's decimals.
func FromCrypto(inv models.CryptoInvoice) (DisplayInvoice, error) {
	if inv.TokenDecimals < 0 || inv.TokenSymbol == "" {
		return DisplayInvoice{}, fmt.Errorf("invoice %s: missing destination token", inv.ID)
	}

	raw, err := decimal.NewFromString(inv.Amount)
	if err != nil {
		return DisplayInvoice{}, fmt.Errorf("invoice %s: bad amount %q", inv.ID, inv.Amount)
	}

	return DisplayInvoice{
		ID:        inv.ID,
		Title:     inv.Title,
		Customer:  inv.Receiver,
		Reference: inv.PaymentLinkID,
		Method:    "crypto",
		Status:    inv.Status,
		Amount:    raw.Shift(int32(-inv.TokenDecimals)),
		Currency:  inv.TokenSymbol,
		CreatedAt: inv.CreatedAt,
	}, nil
}

// Aggregate combines both invoice shapes into one list. Malformed records
// are skipped with a log line rather than rendered with garbage values.
func Aggregate(mobile []models.MobileMoneyInvoice, crypto []models.CryptoInvoice) []DisplayInvoice {
	combined := []DisplayInvoice{}

	for _, inv := range mobile {
		row, err := FromMobileMoney(inv)
		if err != nil {
			log.Printf("Skipping malformed record: %v", err)
			continue
		}
		combined = append(combined, row)
	}

	for _, inv := range crypto {
		row, err := FromCrypto(inv)
		if err != nil {
			log.Printf("Skipping malformed record: %v", err)
			continue
		}
		combined = append(combined, row)
	}

	return combined
}
