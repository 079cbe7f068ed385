package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"zyra/internal/config"
	"zyra/internal/database"
	"zyra/internal/models"
	"zyra/internal/paystack"
	"zyra/internal/store"
	"zyra/internal/whatsapp"
	"zyra/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testSetup(t *testing.T) (*gorm.DB, *Processor) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{PaystackSecretKey: "sk_test_secret"}
	hub := ws.NewHub()
	go hub.Run()

	processor := NewProcessor(
		store.NewGormInvoiceStore(db),
		store.NewBrandStore(db, t.TempDir()),
		whatsapp.NewNotifier(whatsapp.NewClient(cfg)),
		hub,
		db,
	)
	return db, processor
}

func successfulCharge(reference string) *paystack.TransactionData {
	return &paystack.TransactionData{
		Status:    "success",
		Reference: reference,
		Amount:    5000,
		Currency:  "GHS",
		PaidAt:    "2026-03-15T12:00:00Z",
		Customer:  paystack.Customer{Email: "ama@example.com"},
		Metadata: map[string]interface{}{
			"company_slug":      "acme",
			"title":             "Website build",
			"customer_name":     "Ama Mensah",
			"phone_number":      "0241234567",
			"original_amount":   "50.00",
			"original_currency": "GHS",
		},
	}
}

func TestProcessChargeIsIdempotent(t *testing.T) {
	db, processor := testSetup(t)

	inv, created, err := processor.ProcessCharge(successfulCharge("ref-dup"))
	if err != nil {
		t.Fatalf("first charge failed: %v", err)
	}
	if !created {
		t.Fatal("first charge should create the invoice")
	}
	if inv.PaidAt == nil {
		t.Error("paid_at not parsed")
	}

	// The same reference delivered again must not create a second record.
	_, created, err = processor.ProcessCharge(successfulCharge("ref-dup"))
	if err != nil {
		t.Fatalf("second charge errored: %v", err)
	}
	if created {
		t.Fatal("duplicate reference created a second invoice")
	}

	var count int64
	db.Model(&models.MobileMoneyInvoice{}).Where("reference = ?", "ref-dup").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 invoice, found %d", count)
	}
}

func TestProcessChargeRejectsFailedTransaction(t *testing.T) {
	_, processor := testSetup(t)

	tx := successfulCharge("ref-failed")
	tx.Status = "failed"
	if _, _, err := processor.ProcessCharge(tx); err == nil {
		t.Fatal("expected error for failed transaction")
	}
}

func TestProcessChargeDecrementsStock(t *testing.T) {
	db, processor := testSetup(t)

	brand := store.DefaultBrand("acme", "Acme")
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("failed to create brand: %v", err)
	}
	item := models.InventoryItem{BrandID: brand.ID, Name: "Widget", Quantity: 2}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	tx := successfulCharge("ref-stock")
	tx.Metadata["items"] = []interface{}{float64(item.ID)}

	if _, _, err := processor.ProcessCharge(tx); err != nil {
		t.Fatalf("charge failed: %v", err)
	}

	var got models.InventoryItem
	db.First(&got, item.ID)
	if got.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", got.Quantity)
	}

	// Stock never goes below zero.
	db.Model(&got).UpdateColumn("quantity", 0)
	tx2 := successfulCharge("ref-stock-2")
	tx2.Metadata["items"] = []interface{}{float64(item.ID)}
	if _, _, err := processor.ProcessCharge(tx2); err != nil {
		t.Fatalf("charge failed: %v", err)
	}
	db.First(&got, item.ID)
	if got.Quantity != 0 {
		t.Errorf("quantity went negative: %d", got.Quantity)
	}
}

// --- Webhook handler ---

func signBody(body []byte, key string) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, processor := testSetup(t)
	cfg := &config.Config{PaystackSecretKey: "sk_test_secret"}
	handler := NewPaystackHandler(cfg, processor, db)

	r := gin.New()
	r.POST("/api/paystack/webhook", handler.HandleWebhook)
	return r, db
}

func deliver(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/paystack/webhook", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r, _ := webhookRouter(t)

	body, _ := json.Marshal(paystack.WebhookPayload{Event: "charge.success", Data: *successfulCharge("ref-sig")})
	w := deliver(r, body, "deadbeef")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestWebhookSavesInvoiceAndAcksDuplicates(t *testing.T) {
	r, db := webhookRouter(t)

	body, _ := json.Marshal(paystack.WebhookPayload{Event: "charge.success", Data: *successfulCharge("ref-hook")})
	signature := signBody(body, "sk_test_secret")

	w := deliver(r, body, signature)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// Redelivery still acks 200 and leaves a single invoice.
	w = deliver(r, body, signature)
	if w.Code != http.StatusOK {
		t.Fatalf("redelivery status = %d, want 200", w.Code)
	}

	var invoiceCount, eventCount int64
	db.Model(&models.MobileMoneyInvoice{}).Where("reference = ?", "ref-hook").Count(&invoiceCount)
	db.Model(&models.WebhookEvent{}).Where("provider_event_id = ?", "ref-hook").Count(&eventCount)
	if invoiceCount != 1 {
		t.Errorf("invoice count = %d, want 1", invoiceCount)
	}
	if eventCount != 1 {
		t.Errorf("event count = %d, want 1", eventCount)
	}
}

func TestWebhookRecordsDistinctEventsWithoutReference(t *testing.T) {
	r, db := webhookRouter(t)

	first, _ := json.Marshal(paystack.WebhookPayload{Event: "transfer.success"})
	second, _ := json.Marshal(paystack.WebhookPayload{Event: "transfer.failed"})

	if w := deliver(r, first, signBody(first, "sk_test_secret")); w.Code != http.StatusOK {
		t.Fatalf("first event status = %d", w.Code)
	}
	if w := deliver(r, second, signBody(second, "sk_test_secret")); w.Code != http.StatusOK {
		t.Fatalf("second event status = %d", w.Code)
	}

	// Two distinct events without a transaction reference must both be
	// recorded instead of colliding on an empty dedup key.
	var count int64
	db.Model(&models.WebhookEvent{}).Count(&count)
	if count != 2 {
		t.Fatalf("event count = %d, want 2", count)
	}

	// Redelivering one of them is still a dedup no-op.
	if w := deliver(r, first, signBody(first, "sk_test_secret")); w.Code != http.StatusOK {
		t.Fatalf("redelivery status = %d", w.Code)
	}
	db.Model(&models.WebhookEvent{}).Count(&count)
	if count != 2 {
		t.Fatalf("event count after redelivery = %d, want 2", count)
	}

	var events []models.WebhookEvent
	db.Find(&events)
	for _, e := range events {
		if e.ProcessedAt == nil {
			t.Errorf("event %s not marked processed", e.ProviderEventID)
		}
	}
}
