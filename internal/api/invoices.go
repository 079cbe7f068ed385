package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"zyra/internal/invoices"
	"zyra/internal/store"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	Store  store.InvoiceStore
	Crypto *store.CryptoInvoiceStore
}

func NewInvoiceHandler(invStore store.InvoiceStore, crypto *store.CryptoInvoiceStore) *InvoiceHandler {
	return &InvoiceHandler{Store: invStore, Crypto: crypto}
}

func (h *InvoiceHandler) ListCompanyInvoices(c *gin.Context) {
	slug := c.Param("slug")
	list, err := h.Store.ListInvoices(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InvoiceHandler) ListAllInvoices(c *gin.Context) {
	list, err := h.Store.ListAllInvoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	companySlug := c.Query("companySlug")

	inv, err := h.Store.GetInvoice(id, companySlug)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}

// ListUnified returns both invoice shapes as one filtered, sorted list.
// Filtering happens here rather than in the browser so the dashboard never
// compares amounts across mismatched units.
func (h *InvoiceHandler) ListUnified(c *gin.Context) {
	slug := c.Param("slug")

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

	filter := invoices.FilterState{
		Search:    c.Query("search"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		MinAmount: c.Query("min_amount"),
		MaxAmount: c.Query("max_amount"),
		Customer:  c.Query("customer"),
	}
	if statuses := c.Query("statuses"); statuses != "" {
		filter.Statuses = strings.Split(statuses, ",")
	}
	if methods := c.Query("methods"); methods != "" {
		filter.Methods = strings.Split(methods, ",")
	}

	list := invoices.Filter(invoices.Aggregate(mobile, crypto), filter)
	invoices.Sort(list, c.DefaultQuery("sort_by", "date"), c.DefaultQuery("sort_order", "desc"))

	c.JSON(http.StatusOK, list)
}

// ExportInvoices downloads the unified list as CSV.
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	slug := c.Param("slug")

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

	list := invoices.Aggregate(mobile, crypto)
	invoices.Sort(list, "date", "desc")

	csv := "ID,Title,Customer,Reference,Method,Status,Amount,Currency,Created At\n"
	for _, inv := range list {
		csv += fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			inv.ID,
			csvEscape(inv.Title),
			csvEscape(inv.Customer),
			inv.Reference,
			inv.Method,
			inv.Status,
			inv.Amount.String(),
			inv.Currency,
			inv.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+slug+"-invoices.csv")
	c.String(http.StatusOK, csv)
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
