package api

import (
	"log"
	"net/http"
	"time"

	"zyra/internal/brand"
	"zyra/internal/config"
	"zyra/internal/models"
	"zyra/internal/store"
	"zyra/internal/thirdweb"
	"zyra/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdminHandler struct {
	Config   *config.Config
	DB       *gorm.DB
	Brands   *store.BrandStore
	Store    store.InvoiceStore
	Crypto   *store.CryptoInvoiceStore
	Notifier *whatsapp.Notifier
	Thirdweb *thirdweb.Client
}

func NewAdminHandler(cfg *config.Config, db *gorm.DB, brands *store.BrandStore, invStore store.InvoiceStore, crypto *store.CryptoInvoiceStore, notifier *whatsapp.Notifier, tw *thirdweb.Client) *AdminHandler {
	return &AdminHandler{
		Config:   cfg,
		DB:       db,
		Brands:   brands,
		Store:    invStore,
		Crypto:   crypto,
		Notifier: notifier,
		Thirdweb: tw,
	}
}

// --- Auth ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.AuthenticateAdmin(h.DB, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Config.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// --- Companies ---

func (h *AdminHandler) ListCompanies(c *gin.Context) {
	brands, err := h.Brands.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	c.JSON(http.StatusOK, brands)
}

type CreateCompanyRequest struct {
	Slug string `json:"slug" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (h *AdminHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !brand.ValidSlug(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug must be lowercase letters, digits and hyphens"})
		return
	}

	if _, err := h.Brands.Get(req.Slug); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Company already exists"})
		return
	}

	b := store.DefaultBrand(req.Slug, req.Name)
	if err := h.Brands.Create(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, b)
}

// --- Analytics ---

type CompanyAnalytics struct {
	Slug              string            `json:"slug"`
	InvoiceCount      int               `json:"invoice_count"`
	PaidCount         int               `json:"paid_count"`
	UnpaidCount       int               `json:"unpaid_count"`
	RevenueByCurrency map[string]string `json:"revenue_by_currency"` // major units
}

func (h *AdminHandler) CompanyAnalytics(c *gin.Context) {
	slug := c.Param("slug")

	if _, err := h.Brands.Get(slug); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	mobile, err := h.Store.ListInvoices(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	crypto, err := h.Crypto.ListByCompany(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	analytics := CompanyAnalytics{
		Slug:              slug,
		RevenueByCurrency: map[string]string{},
	}
	revenue := map[string]decimal.Decimal{}

	for _, inv := range mobile {
		analytics.InvoiceCount++
		analytics.PaidCount++
		amount, err := decimal.NewFromString(inv.OriginalAmount)
		if err != nil {
			continue
		}
		revenue[inv.OriginalCurrency] = revenue[inv.OriginalCurrency].Add(amount)
	}

	for _, inv := range crypto {
		analytics.InvoiceCount++
		if inv.Status == "paid" {
			analytics.PaidCount++
			raw, err := decimal.NewFromString(inv.Amount)
			if err != nil {
				continue
			}
			revenue[inv.TokenSymbol] = revenue[inv.TokenSymbol].Add(raw.Shift(int32(-inv.TokenDecimals)))
		} else {
			analytics.UnpaidCount++
		}
	}

	for currency, total := range revenue {
		analytics.RevenueByCurrency[currency] = total.String()
	}

	c.JSON(http.StatusOK, analytics)
}

func (h *AdminHandler) GlobalStats(c *gin.Context) {
	var companyCount, interestCount int64
	h.DB.Model(&models.Brand{}).Count(&companyCount)
	h.DB.Model(&models.ContactInterest{}).Count(&interestCount)

	mobile, err := h.Store.ListAllInvoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	crypto, err := h.Crypto.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	paidCrypto := 0
	for _, inv := range crypto {
		if inv.Status == "paid" {
			paidCrypto++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"companies":            companyCount,
		"mobile_money_invoices": len(mobile),
		"crypto_invoices":      len(crypto),
		"crypto_paid":          paidCrypto,
		"contact_interests":    interestCount,
	})
}

// --- Reminders ---

type ReminderRequest struct {
	Reminders []struct {
		PaymentLinkID string `json:"payment_link_id" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
	} `json:"reminders" binding:"required"`
}

// SendReminders pushes WhatsApp reminders for unpaid crypto invoices. The
// dashboard supplies the customer phone per link; we look up the invoice and
// the live checkout URL.
func (h *AdminHandler) SendReminders(c *gin.Context) {
	slug := c.Param("slug")

	b, err := h.Brands.Get(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent := 0
	for _, r := range req.Reminders {
		inv, err := h.Crypto.GetByPaymentLinkID(r.PaymentLinkID)
		if err != nil || inv.CompanySlug != slug || inv.Status == "paid" {
			continue
		}

		linkURL := ""
		if link, err := h.Thirdweb.GetPaymentLink(r.PaymentLinkID); err == nil {
			linkURL = link.URL
		}

		amount := decimal.Zero
		if raw, err := decimal.NewFromString(inv.Amount); err == nil {
			amount = raw.Shift(int32(-inv.TokenDecimals))
		}

		if err := h.Notifier.SendPaymentReminder(r.Phone, b.Name, inv.Title, amount.String(), inv.TokenSymbol, linkURL); err != nil {
			log.Printf("Failed to send reminder for %s: %v", r.PaymentLinkID, err)
			continue
		}
		sent++
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Reminders processed",
		"sent":   sent,
		"total":  len(req.Reminders),
	})
}
