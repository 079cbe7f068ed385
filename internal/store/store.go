package store

import (
	"errors"
	"log"

	"zyra/internal/config"
	"zyra/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// InvoiceStore is the single storage surface for mobile money invoices.
// Callers never pick a backend; the implementation is selected once at
// startup from config.
type InvoiceStore interface {
	// SaveInvoice persists the invoice unless one with the same reference
	// already exists. Returns true when a new record was created.
	SaveInvoice(inv *models.MobileMoneyInvoice) (bool, error)
	GetInvoice(id, companySlug string) (*models.MobileMoneyInvoice, error)
	ListInvoices(companySlug string) ([]models.MobileMoneyInvoice, error)
	ListAllInvoices() ([]models.MobileMoneyInvoice, error)
}

func NewInvoiceStore(cfg *config.Config, db *gorm.DB) InvoiceStore {
	switch cfg.StoreBackend {
	case "file":
		log.Printf("Using file invoice store at %s", cfg.DataDir)
		return NewFileInvoiceStore(cfg.DataDir)
	default:
		return NewGormInvoiceStore(db)
	}
}
