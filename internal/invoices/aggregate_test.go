package invoices

import (
	"testing"
	"time"

	"zyra/internal/models"
)

func mobileInvoice(id, amount, currency, customer string, created time.Time) models.MobileMoneyInvoice {
	return models.MobileMoneyInvoice{
		ID:               id,
		Title:            "Invoice " + id,
		Reference:        "ref-" + id,
		OriginalAmount:   amount,
		OriginalCurrency: currency,
		CustomerName:     customer,
		CreatedAt:        created,
	}
}

func cryptoInvoice(id, amount string, decimals int, status string, created time.Time) models.CryptoInvoice {
	return models.CryptoInvoice{
		ID:            id,
		PaymentLinkID: "link-" + id,
		Title:         "Link " + id,
		Amount:        amount,
		TokenDecimals: decimals,
		TokenSymbol:   "ETH",
		Status:        status,
		CreatedAt:     created,
	}
}

func TestAggregateCombinesBothShapes(t *testing.T) {
	now := time.Now()
	mobile := []models.MobileMoneyInvoice{mobileInvoice("m1", "50.00", "GHS", "Ama", now)}
	crypto := []models.CryptoInvoice{cryptoInvoice("c1", "2500000000000000000", 18, "unpaid", now)}

	list := Aggregate(mobile, crypto)
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}

	if list[0].Method != "mobile_money" || list[0].Status != "paid" {
		t.Errorf("mobile money row wrong: %+v", list[0])
	}
	if list[1].Method != "crypto" || list[1].Amount.String() != "2.5" {
		t.Errorf("crypto row not normalized: amount=%s", list[1].Amount)
	}
}

func TestAggregateSkipsMalformedRecords(t *testing.T) {
	now := time.Now()
	mobile := []models.MobileMoneyInvoice{
		mobileInvoice("good", "10.00", "GHS", "Ama", now),
		mobileInvoice("bad", "not-a-number", "GHS", "Kofi", now),
	}
	crypto := []models.CryptoInvoice{
		// Missing destination token metadata.
		{ID: "bad-crypto", Amount: "100", TokenDecimals: 18, CreatedAt: now},
	}

	list := Aggregate(mobile, crypto)
	if len(list) != 1 {
		t.Fatalf("expected only the good record, got %d rows", len(list))
	}
	if list[0].ID != "good" {
		t.Errorf("wrong survivor: %s", list[0].ID)
	}
}

func TestFilterEmptyStateIsIdentity(t *testing.T) {
	now := time.Now()
	list := Aggregate(
		[]models.MobileMoneyInvoice{
			mobileInvoice("m1", "50.00", "GHS", "Ama", now),
			mobileInvoice("m2", "75.00", "GHS", "Kofi", now.Add(-time.Hour)),
		},
		[]models.CryptoInvoice{cryptoInvoice("c1", "1000000000000000000", 18, "unpaid", now)},
	)

	filtered := Filter(list, FilterState{})
	if len(filtered) != len(list) {
		t.Fatalf("empty filter changed length: %d != %d", len(filtered), len(list))
	}
	for i := range list {
		if filtered[i].ID != list[i].ID {
			t.Errorf("order changed at %d: %s != %s", i, filtered[i].ID, list[i].ID)
		}
	}
}

func TestFilterAmountRangeNormalizesCrypto(t *testing.T) {
	now := time.Now()
	crypto := []models.CryptoInvoice{
		cryptoInvoice("quarter", "250000000000000000", 18, "unpaid", now),      // 0.25 -> out
		cryptoInvoice("normalized", "25000000000000000000", 18, "unpaid", now), // 25 -> in
		cryptoInvoice("too-big", "100000000000000000000", 18, "unpaid", now),   // 100 -> out
		cryptoInvoice("fractional", "2500000000000000000", 18, "unpaid", now),  // 2.5 -> in
	}

	list := Aggregate(nil, crypto)
	filtered := Filter(list, FilterState{MinAmount: "2.5", MaxAmount: "50"})

	got := map[string]bool{}
	for _, inv := range filtered {
		got[inv.ID] = true
	}
	if !got["normalized"] || !got["fractional"] {
		t.Errorf("expected normalized amounts 25 and 2.5 inside range, got %v", got)
	}
	if got["too-big"] || got["quarter"] {
		t.Errorf("amounts outside range retained: %v", got)
	}
}

func TestFilterDateRangeIncludesEndOfDay(t *testing.T) {
	created := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	list := Aggregate([]models.MobileMoneyInvoice{
		mobileInvoice("late-night", "10.00", "GHS", "Ama", created),
	}, nil)

	filtered := Filter(list, FilterState{DateFrom: "2026-03-15", DateTo: "2026-03-15"})
	if len(filtered) != 1 {
		t.Fatalf("invoice created late on the 'to' day should be included")
	}

	filtered = Filter(list, FilterState{DateTo: "2026-03-14"})
	if len(filtered) != 0 {
		t.Fatalf("invoice after the 'to' day should be excluded")
	}
}

func TestFilterIsConjunction(t *testing.T) {
	now := time.Now()
	list := Aggregate([]models.MobileMoneyInvoice{
		mobileInvoice("m1", "50.00", "GHS", "Ama Mensah", now),
		mobileInvoice("m2", "50.00", "GHS", "Kofi Owusu", now),
	}, nil)

	filtered := Filter(list, FilterState{
		Methods:  []string{"mobile_money"},
		Customer: "ama",
	})
	if len(filtered) != 1 || filtered[0].ID != "m1" {
		t.Fatalf("expected only m1, got %+v", filtered)
	}
}

func TestSortDateDescIsNonIncreasing(t *testing.T) {
	base := time.Now()
	list := Aggregate([]models.MobileMoneyInvoice{
		mobileInvoice("a", "1.00", "GHS", "x", base.Add(-2*time.Hour)),
		mobileInvoice("b", "1.00", "GHS", "x", base),
		mobileInvoice("c", "1.00", "GHS", "x", base.Add(-time.Hour)),
	}, nil)

	Sort(list, "date", "desc")
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("dates not non-increasing at %d", i)
		}
	}
}

func TestSortAmountAsc(t *testing.T) {
	now := time.Now()
	list := Aggregate([]models.MobileMoneyInvoice{
		mobileInvoice("big", "100.00", "GHS", "x", now),
		mobileInvoice("small", "5.00", "GHS", "x", now),
		mobileInvoice("mid", "50.00", "GHS", "x", now),
	}, nil)

	Sort(list, "amount", "asc")
	want := []string{"small", "mid", "big"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d: want %s, got %s", i, id, list[i].ID)
		}
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	now := time.Now()
	list := Aggregate([]models.MobileMoneyInvoice{
		mobileInvoice("first", "10.00", "GHS", "x", now),
		mobileInvoice("second", "10.00", "GHS", "x", now),
	}, nil)

	Sort(list, "amount", "desc")
	if list[0].ID != "first" || list[1].ID != "second" {
		t.Errorf("tie order not preserved: %s, %s", list[0].ID, list[1].ID)
	}
}
