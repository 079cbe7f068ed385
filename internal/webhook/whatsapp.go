package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"zyra/internal/config"
	"zyra/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

// WhatsAppHandler serves the Cloud API verify handshake and receives
// delivery-status callbacks for sent notifications.
type WhatsAppHandler struct {
	Config *config.Config
}

func NewWhatsAppHandler(cfg *config.Config) *WhatsAppHandler {
	return &WhatsAppHandler{Config: cfg}
}

func (h *WhatsAppHandler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.WhatsAppVerifyToken {
			log.Println("WhatsApp webhook verified successfully!")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

func (h *WhatsAppHandler) HandleStatus(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	// Signature verification only applies when an app secret is configured;
	// deployments without one keep the teacher behaviour.
	if h.Config.WhatsAppWebhookSecret != "" {
		if !whatsapp.VerifySignature(body, c.GetHeader("X-Hub-Signature-256"), h.Config.WhatsAppWebhookSecret) {
			log.Printf("Rejected WhatsApp webhook with bad signature")
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Error parsing WhatsApp webhook: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, status := range change.Value.Statuses {
				if status.Status == "failed" {
					log.Printf("WhatsApp message %s to %s failed", status.ID, status.RecipientID)
				} else {
					log.Printf("WhatsApp message %s: %s", status.ID, status.Status)
				}
			}
		}
	}

	c.Status(http.StatusOK)
}
