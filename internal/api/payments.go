package api

import (
	"errors"
	"log"
	"net/http"

	"zyra/internal/models"
	"zyra/internal/store"
	"zyra/internal/thirdweb"
	"zyra/internal/ws"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Thirdweb *thirdweb.Client
	Crypto   *store.CryptoInvoiceStore
	Brands   *store.BrandStore
	Hub      *ws.Hub
}

func NewPaymentHandler(tw *thirdweb.Client, crypto *store.CryptoInvoiceStore, brands *store.BrandStore, hub *ws.Hub) *PaymentHandler {
	return &PaymentHandler{Thirdweb: tw, Crypto: crypto, Brands: brands, Hub: hub}
}

type CreatePaymentLinkRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	CompanySlug string          `json:"company_slug"`
	Amount      string          `json:"amount" binding:"required"` // smallest token unit
	Receiver    string          `json:"receiver"`
	Token       *thirdweb.Token `json:"token"`
}

// CreatePaymentLink creates a hosted crypto checkout link and records the
// invoice locally so payment status can be read from our own records.
func (h *PaymentHandler) CreatePaymentLink(c *gin.Context) {
	var req CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receiver := req.Receiver
	if receiver == "" && req.CompanySlug != "" {
		brand, err := h.Brands.Get(req.CompanySlug)
		if err == nil {
			receiver = brand.PaymentReceiver
		}
	}
	if receiver == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No receiver wallet configured"})
		return
	}

	link, err := h.Thirdweb.CreatePaymentLink(thirdweb.CreateLinkRequest{
		Title:       req.Title,
		Description: req.Description,
		Intent: thirdweb.Intent{
			Receiver:         receiver,
			DestinationToken: req.Token,
			Amount:           req.Amount,
		},
	})
	if err != nil {
		log.Printf("Error creating payment link: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment link"})
		return
	}

	inv := &models.CryptoInvoice{
		PaymentLinkID: link.ID,
		CompanySlug:   req.CompanySlug,
		Title:         req.Title,
		Amount:        req.Amount,
		Receiver:      receiver,
	}
	if req.Token != nil {
		inv.TokenChainID = req.Token.ChainID
		inv.TokenAddress = req.Token.Address
		inv.TokenDecimals = req.Token.Decimals
		inv.TokenSymbol = req.Token.Symbol
		inv.TokenName = req.Token.Name
	}
	if err := h.Crypto.Create(inv); err != nil {
		log.Printf("Error saving crypto invoice for link %s: %v", link.ID, err)
	}

	h.Hub.NotifyPaymentLinkCreated(inv)

	c.JSON(http.StatusOK, link)
}

func (h *PaymentHandler) GetPaymentLink(c *gin.Context) {
	id := c.Param("id")

	link, err := h.Thirdweb.GetPaymentLink(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment link not found"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *PaymentHandler) ListPaymentLinks(c *gin.Context) {
	receiver := c.Query("receiver")

	links, err := h.Thirdweb.ListPaymentLinks(receiver)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, links)
}

// ListPayments proxies the upstream payments feed and reconciles local
// crypto invoice status against it, so "paid" comes from our records rather
// than client-side cross-referencing.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.Thirdweb.ListPayments()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	for _, p := range payments {
		if p.Status != "completed" && p.Status != "succeeded" {
			continue
		}
		changed, err := h.Crypto.MarkPaid(p.PaymentLinkID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("Error reconciling payment %s: %v", p.ID, err)
			continue
		}
		if changed {
			if inv, err := h.Crypto.GetByPaymentLinkID(p.PaymentLinkID); err == nil {
				h.Hub.NotifyInvoicePaid(inv)
			}
		}
	}

	c.JSON(http.StatusOK, payments)
}
