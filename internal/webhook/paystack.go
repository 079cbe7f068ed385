package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"zyra/internal/config"
	"zyra/internal/models"
	"zyra/internal/paystack"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaystackHandler consumes Paystack webhook deliveries. Per the provider
// contract it always acks with 200 once the signature is accepted;
// processing failures are recorded on the stored event row instead.
type PaystackHandler struct {
	Config    *config.Config
	Processor *Processor
	DB        *gorm.DB
}

func NewPaystackHandler(cfg *config.Config, processor *Processor, db *gorm.DB) *PaystackHandler {
	return &PaystackHandler{Config: cfg, Processor: processor, DB: db}
}

// eventID derives the dedup key for a delivery. Charge events carry a
// transaction reference; events without one fall back to the event type plus
// a body hash so distinct deliveries never collide on the unique index.
func eventID(payload *paystack.WebhookPayload, body []byte) string {
	if payload.Data.Reference != "" {
		return payload.Data.Reference
	}
	sum := sha256.Sum256(body)
	return fmt.Sprintf("%s-%s", payload.Event, hex.EncodeToString(sum[:8]))
}

func (h *PaystackHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !paystack.VerifySignature(body, signature, h.Config.PaystackSecretKey) {
		log.Printf("Rejected Paystack webhook with bad signature")
		c.Status(http.StatusUnauthorized)
		return
	}

	var payload paystack.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Error parsing Paystack webhook: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	event := &models.WebhookEvent{
		Provider:        "paystack",
		ProviderEventID: eventID(&payload, body),
		EventType:       payload.Event,
		Payload:         string(body),
		SignatureValid:  true,
	}
	if err := h.DB.Create(event).Error; err != nil {
		// Duplicate delivery: the unique index on provider+event id means
		// we have already seen and processed this one.
		log.Printf("Duplicate Paystack delivery for %s, acking", event.ProviderEventID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	now := time.Now()
	update := map[string]interface{}{"processed_at": &now}
	if payload.Event == "charge.success" {
		_, created, err := h.Processor.ProcessCharge(&payload.Data)
		if err != nil {
			log.Printf("Error processing charge %s: %v", payload.Data.Reference, err)
			update["processing_error"] = err.Error()
		} else if !created {
			log.Printf("Charge %s already saved, webhook was a no-op", payload.Data.Reference)
		}
	}
	h.DB.Model(event).Updates(update)

	c.JSON(http.StatusOK, gin.H{"received": true})
}
