package store

import (
	"errors"

	"zyra/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormInvoiceStore struct {
	db *gorm.DB
}

func NewGormInvoiceStore(db *gorm.DB) *GormInvoiceStore {
	return &GormInvoiceStore{db: db}
}

func (s *GormInvoiceStore) SaveInvoice(inv *models.MobileMoneyInvoice) (bool, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	var existing models.MobileMoneyInvoice
	err := s.db.Where("reference = ?", inv.Reference).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := s.db.Create(inv).Error; err != nil {
		// The unique index on reference closes the check-then-create window:
		// a concurrent writer that got there first makes this a no-op.
		if s.db.Where("reference = ?", inv.Reference).First(&existing).Error == nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *GormInvoiceStore) GetInvoice(id, companySlug string) (*models.MobileMoneyInvoice, error) {
	var inv models.MobileMoneyInvoice

	if companySlug != "" {
		err := s.db.Where("id = ? AND company_slug = ?", id, companySlug).First(&inv).Error
		if err == nil {
			return &inv, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	// Legacy fallback: records written before invoices were company-scoped
	// carry no slug.
	err := s.db.Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *GormInvoiceStore) ListInvoices(companySlug string) ([]models.MobileMoneyInvoice, error) {
	var invoices []models.MobileMoneyInvoice
	err := s.db.Where("company_slug = ?", companySlug).Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *GormInvoiceStore) ListAllInvoices() ([]models.MobileMoneyInvoice, error) {
	var invoices []models.MobileMoneyInvoice
	err := s.db.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}
