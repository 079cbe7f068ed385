package api

import (
	"net/http"

	"zyra/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

type WhatsAppHandler struct {
	Client *whatsapp.Client
}

func NewWhatsAppHandler(client *whatsapp.Client) *WhatsAppHandler {
	return &WhatsAppHandler{Client: client}
}

type SendRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *WhatsAppHandler) SendMessage(c *gin.Context) {
	if !h.Client.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "WhatsApp is not enabled"})
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	to, err := whatsapp.FormatPhone(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	resp, err := h.Client.SendMessage(to, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send message: " + err.Error()})
		return
	}

	messageID := ""
	if len(resp.Messages) > 0 {
		messageID = resp.Messages[0].ID
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "message_id": messageID})
}

// GetStatus reports whether sending is configured, so the dashboard can hide
// the notification controls when it is not.
func (h *WhatsAppHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.Client.Enabled()})
}
