package store

import (
	"errors"
	"time"

	"zyra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CryptoInvoiceStore tracks Thirdweb payment links locally so payment status
// can be read from our own records instead of being inferred client-side.
type CryptoInvoiceStore struct {
	db *gorm.DB
}

func NewCryptoInvoiceStore(db *gorm.DB) *CryptoInvoiceStore {
	return &CryptoInvoiceStore{db: db}
}

func (s *CryptoInvoiceStore) Create(inv *models.CryptoInvoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = "unpaid"
	}
	return s.db.Create(inv).Error
}

func (s *CryptoInvoiceStore) GetByPaymentLinkID(linkID string) (*models.CryptoInvoice, error) {
	var inv models.CryptoInvoice
	err := s.db.Where("payment_link_id = ?", linkID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkPaid flips an unpaid invoice to paid. Returns true when a row changed.
func (s *CryptoInvoiceStore) MarkPaid(linkID string) (bool, error) {
	res := s.db.Model(&models.CryptoInvoice{}).
		Where("payment_link_id = ? AND status = ?", linkID, "unpaid").
		Updates(map[string]interface{}{"status": "paid", "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

func (s *CryptoInvoiceStore) ListByCompany(companySlug string) ([]models.CryptoInvoice, error) {
	var invoices []models.CryptoInvoice
	err := s.db.Where("company_slug = ?", companySlug).Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *CryptoInvoiceStore) ListAll() ([]models.CryptoInvoice, error) {
	var invoices []models.CryptoInvoice
	err := s.db.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}
