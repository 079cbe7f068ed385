package store

import (
	"testing"
	"time"

	"zyra/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Brand{},
		&models.InventoryItem{},
		&models.MobileMoneyInvoice{},
		&models.CryptoInvoice{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func sampleInvoice(reference, slug string) *models.MobileMoneyInvoice {
	return &models.MobileMoneyInvoice{
		Title:            "Test invoice",
		Amount:           "5000",
		Currency:         "GHS",
		Reference:        reference,
		CompanySlug:      slug,
		OriginalAmount:   "50.00",
		OriginalCurrency: "GHS",
		CreatedAt:        time.Now(),
	}
}

func runInvoiceStoreTests(t *testing.T, s InvoiceStore) {
	created, err := s.SaveInvoice(sampleInvoice("ref-1", "acme"))
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if !created {
		t.Fatal("first save should create the invoice")
	}

	// Second delivery with the same reference must be a no-op.
	created, err = s.SaveInvoice(sampleInvoice("ref-1", "acme"))
	if err != nil {
		t.Fatalf("duplicate save errored: %v", err)
	}
	if created {
		t.Fatal("duplicate reference created a second invoice")
	}

	list, err := s.ListInvoices("acme")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one invoice after duplicate delivery, got %d", len(list))
	}

	// Company-scoped fetch, then legacy fallback without a slug.
	inv, err := s.GetInvoice(list[0].ID, "acme")
	if err != nil {
		t.Fatalf("scoped get failed: %v", err)
	}
	if inv.Reference != "ref-1" {
		t.Errorf("wrong invoice: %s", inv.Reference)
	}

	inv, err = s.GetInvoice(list[0].ID, "")
	if err != nil {
		t.Fatalf("legacy fallback get failed: %v", err)
	}
	if inv.ID != list[0].ID {
		t.Errorf("fallback returned wrong invoice")
	}

	if _, err := s.GetInvoice("missing-id", "acme"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}

	// A different company stays isolated.
	if _, err := s.SaveInvoice(sampleInvoice("ref-2", "other")); err != nil {
		t.Fatalf("save for second company failed: %v", err)
	}
	list, err = s.ListInvoices("acme")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("acme list leaked other company's invoices: %d", len(list))
	}

	all, err := s.ListAllInvoices()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 invoices total, got %d", len(all))
	}

	// Legacy records carry no company slug. They must still be visible to
	// the global list and the reference dedup must still hold for them.
	legacy := sampleInvoice("ref-legacy", "")
	created, err = s.SaveInvoice(legacy)
	if err != nil {
		t.Fatalf("save without slug failed: %v", err)
	}
	if !created {
		t.Fatal("first save without slug should create the invoice")
	}

	created, err = s.SaveInvoice(sampleInvoice("ref-legacy", ""))
	if err != nil {
		t.Fatalf("duplicate save without slug errored: %v", err)
	}
	if created {
		t.Fatal("duplicate reference without slug created a second invoice")
	}

	all, err = s.ListAllInvoices()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 invoices including the slugless one, got %d", len(all))
	}

	inv, err = s.GetInvoice(legacy.ID, "")
	if err != nil {
		t.Fatalf("get without slug failed: %v", err)
	}
	if inv.Reference != "ref-legacy" {
		t.Errorf("wrong invoice: %s", inv.Reference)
	}
}

func TestGormInvoiceStore(t *testing.T) {
	runInvoiceStoreTests(t, NewGormInvoiceStore(testDB(t)))
}

func TestFileInvoiceStore(t *testing.T) {
	runInvoiceStoreTests(t, NewFileInvoiceStore(t.TempDir()))
}

func TestCryptoInvoiceStoreMarkPaid(t *testing.T) {
	s := NewCryptoInvoiceStore(testDB(t))

	inv := &models.CryptoInvoice{
		PaymentLinkID: "link-1",
		CompanySlug:   "acme",
		Title:         "Crypto invoice",
		Amount:        "1000000000000000000",
		TokenDecimals: 18,
		TokenSymbol:   "ETH",
	}
	if err := s.Create(inv); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.Status != "unpaid" {
		t.Fatalf("new invoice should default to unpaid, got %s", inv.Status)
	}

	changed, err := s.MarkPaid("link-1")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if !changed {
		t.Fatal("expected first mark to change the row")
	}

	// Marking again is a no-op.
	changed, err = s.MarkPaid("link-1")
	if err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if changed {
		t.Fatal("second mark should not change anything")
	}

	got, err := s.GetByPaymentLinkID("link-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "paid" {
		t.Errorf("status = %s, want paid", got.Status)
	}
}
