package invoices

import (
	"sort"
	"strings"
)

// Sort orders invoices by date, amount, customer or status. The sort is
// stable: ties keep their input order. Unknown keys fall back to date.
func Sort(list []DisplayInvoice, sortBy, order string) {
	desc := order == "desc"

	less := func(a, b DisplayInvoice) bool {
		switch sortBy {
		case "amount":
			return a.Amount.LessThan(b.Amount)
		case "customer":
			return strings.ToLower(a.Customer) < strings.ToLower(b.Customer)
		case "status":
			return a.Status < b.Status
		default: // date
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}
