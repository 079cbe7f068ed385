package invoices

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FilterState holds the dashboard's active constraints. Empty fields are
// no-ops: a filter with nothing set passes everything.
type FilterState struct {
	Search    string   `json:"search"`
	Statuses  []string `json:"statuses"`
	Methods   []string `json:"methods"`
	DateFrom  string   `json:"date_from"`  // YYYY-MM-DD, inclusive
	DateTo    string   `json:"date_to"`    // YYYY-MM-DD, inclusive through end of day
	MinAmount string   `json:"min_amount"` // major units
	MaxAmount string   `json:"max_amount"`
	Customer  string   `json:"customer"`
}

// Filter keeps invoices matching the conjunction of all active constraints.
func Filter(list []DisplayInvoice, f FilterState) []DisplayInvoice {
	out := []DisplayInvoice{}
	for _, inv := range list {
		if matches(inv, f) {
			out = append(out, inv)
		}
	}
	return out
}

func matches(inv DisplayInvoice, f FilterState) bool {
	if f.Search != "" {
		haystack := strings.ToLower(inv.Title + " " + inv.Customer + " " + inv.Reference + " " + inv.ID)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}

	if len(f.Statuses) > 0 && !contains(f.Statuses, inv.Status) {
		return false
	}

	if len(f.Methods) > 0 && !contains(f.Methods, inv.Method) {
		return false
	}

	if f.DateFrom != "" {
		from, err := time.Parse("2006-01-02", f.DateFrom)
		if err == nil && inv.CreatedAt.Before(from) {
			return false
		}
	}

	if f.DateTo != "" {
		to, err := time.Parse("2006-01-02", f.DateTo)
		if err == nil {
			// Inclusive through the end of the "to" day.
			end := to.Add(24*time.Hour - time.Nanosecond)
			if inv.CreatedAt.After(end) {
				return false
			}
		}
	}

	if f.MinAmount != "" {
		min, err := decimal.NewFromString(f.MinAmount)
		if err != nil {
			log.Printf("Ignoring bad min amount %q", f.MinAmount)
		} else if inv.Amount.LessThan(min) {
			return false
		}
	}

	if f.MaxAmount != "" {
		max, err := decimal.NewFromString(f.MaxAmount)
		if err != nil {
			log.Printf("Ignoring bad max amount %q", f.MaxAmount)
		} else if inv.Amount.GreaterThan(max) {
			return false
		}
	}

	if f.Customer != "" {
		if !strings.Contains(strings.ToLower(inv.Customer), strings.ToLower(f.Customer)) {
			return false
		}
	}

	return true
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
