package api

import (
	"log"
	"net/http"

	"zyra/internal/paystack"
	"zyra/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaystackHandler struct {
	Client    *paystack.Client
	Processor *webhook.Processor
}

func NewPaystackHandler(client *paystack.Client, processor *webhook.Processor) *PaystackHandler {
	return &PaystackHandler{Client: client, Processor: processor}
}

type InitializeRequest struct {
	Email            string `json:"email" binding:"required"`
	Amount           string `json:"amount" binding:"required"` // smallest currency unit
	Currency         string `json:"currency"`
	CompanySlug      string `json:"company_slug"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	CustomerName     string `json:"customer_name"`
	PhoneNumber      string `json:"phone_number"`
	OriginalAmount   string `json:"original_amount"` // major units, for display
	OriginalCurrency string `json:"original_currency"`
	CallbackURL      string `json:"callback_url"`
	Items            []uint `json:"items"` // inventory item IDs
}

func (h *PaystackHandler) Initialize(c *gin.Context) {
	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata := map[string]interface{}{
		"company_slug":      req.CompanySlug,
		"title":             req.Title,
		"description":       req.Description,
		"customer_name":     req.CustomerName,
		"phone_number":      req.PhoneNumber,
		"original_amount":   req.OriginalAmount,
		"original_currency": req.OriginalCurrency,
	}
	if len(req.Items) > 0 {
		items := make([]interface{}, len(req.Items))
		for i, id := range req.Items {
			items[i] = float64(id)
		}
		metadata["items"] = items
	}

	init, err := h.Client.InitializeTransaction(paystack.InitializeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Reference:   "zyra-" + uuid.NewString(),
		CallbackURL: req.CallbackURL,
		Metadata:    metadata,
	})
	if err != nil {
		log.Printf("Error initializing transaction: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initialize transaction"})
		return
	}

	c.JSON(http.StatusOK, init)
}

type VerifyRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// Verify confirms a transaction after the client-side callback. It shares
// the webhook's save path, so whichever of the two arrives first creates the
// invoice and the other is a no-op.
func (h *PaystackHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.Client.VerifyTransaction(req.Reference)
	if err != nil {
		log.Printf("Error verifying transaction %s: %v", req.Reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to verify transaction"})
		return
	}

	if tx.Status != "success" {
		c.JSON(http.StatusOK, gin.H{"status": tx.Status, "reference": tx.Reference})
		return
	}

	inv, _, err := h.Processor.ProcessCharge(tx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "invoice": inv})
}
