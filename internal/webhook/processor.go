package webhook

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"zyra/internal/models"
	"zyra/internal/paystack"
	"zyra/internal/store"
	"zyra/internal/whatsapp"
	"zyra/internal/ws"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Processor turns a confirmed Paystack charge into an invoice record. It is
// shared by the webhook handler and the client-side verify endpoint, so both
// paths go through the same idempotent save.
type Processor struct {
	Store    store.InvoiceStore
	Brands   *store.BrandStore
	Notifier *whatsapp.Notifier
	Hub      *ws.Hub
	DB       *gorm.DB
}

func NewProcessor(invStore store.InvoiceStore, brands *store.BrandStore, notifier *whatsapp.Notifier, hub *ws.Hub, db *gorm.DB) *Processor {
	return &Processor{Store: invStore, Brands: brands, Notifier: notifier, Hub: hub, DB: db}
}

// ProcessCharge saves the invoice for a successful transaction. Returns the
// invoice and whether this call created it; a duplicate reference is a no-op.
func (p *Processor) ProcessCharge(tx *paystack.TransactionData) (*models.MobileMoneyInvoice, bool, error) {
	if tx.Status != "success" {
		return nil, false, fmt.Errorf("transaction %s not successful: %s", tx.Reference, tx.Status)
	}

	inv := invoiceFromTransaction(tx)

	created, err := p.Store.SaveInvoice(inv)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return inv, false, nil
	}

	p.decrementStock(tx)

	brandName := inv.CompanySlug
	if brand, err := p.Brands.Get(inv.CompanySlug); err == nil {
		brandName = brand.Name
	}
	p.Notifier.NotifyPaymentReceived(inv, brandName)
	p.Hub.NotifyInvoicePaid(inv)

	return inv, true, nil
}

// decrementStock reduces inventory counts for items named in the charge
// metadata. Stock never goes negative; an oversold item just stays at zero.
func (p *Processor) decrementStock(tx *paystack.TransactionData) {
	items, ok := tx.Metadata["items"].([]interface{})
	if !ok {
		return
	}

	for _, raw := range items {
		var itemID uint
		switch v := raw.(type) {
		case float64:
			itemID = uint(v)
		case string:
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				continue
			}
			itemID = uint(n)
		default:
			continue
		}

		res := p.DB.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity > 0", itemID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			log.Printf("Error decrementing stock for item %d: %v", itemID, res.Error)
		}
	}
}

func invoiceFromTransaction(tx *paystack.TransactionData) *models.MobileMoneyInvoice {
	meta := tx.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}

	inv := &models.MobileMoneyInvoice{
		CompanySlug:      metaString(meta, "company_slug"),
		Title:            metaString(meta, "title"),
		Description:      metaString(meta, "description"),
		Amount:           strconv.FormatInt(tx.Amount, 10),
		Currency:         tx.Currency,
		Reference:        tx.Reference,
		CustomerEmail:    tx.Customer.Email,
		CustomerName:     metaString(meta, "customer_name"),
		PhoneNumber:      metaString(meta, "phone_number"),
		OriginalAmount:   metaString(meta, "original_amount"),
		OriginalCurrency: metaString(meta, "original_currency"),
		Metadata:         datatypes.JSONMap(meta),
	}

	if inv.PhoneNumber == "" {
		inv.PhoneNumber = tx.Customer.Phone
	}
	if inv.OriginalCurrency == "" {
		inv.OriginalCurrency = tx.Currency
	}
	if inv.OriginalAmount == "" {
		// Fall back to converting from the smallest unit.
		inv.OriginalAmount = strconv.FormatFloat(float64(tx.Amount)/100, 'f', 2, 64)
	}

	if paidAt, err := time.Parse(time.RFC3339, tx.PaidAt); err == nil {
		inv.PaidAt = &paidAt
	}

	return inv
}

func metaString(meta map[string]interface{}, key string) string {
	switch v := meta[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
