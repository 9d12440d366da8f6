package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/models"
	"github.com/satheeshds/invoicing/validation"
)

// seedSales creates invoices an hour apart starting 2024-03-01 09:00 UTC.
func seedSales(t *testing.T) *AnalyticsService {
	t.Helper()
	return seedSalesInto(t, db.NewMemoryStore())
}

func seedSalesInto(t *testing.T, store *db.Store) *AnalyticsService {
	t.Helper()
	svc := invoiceServiceOn(store)
	ctx := context.Background()

	inputs := []models.InvoiceInput{
		invoiceInput("Acme", 100, line("Bolt", 10, 60), line("Nut", 20, 40)),
		invoiceInput("Globex", 50, line("Bolt", 5, 50)),
		invoiceInput("Acme", 30),
	}
	for _, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seeding invoice: %v", err)
		}
	}
	// One invoice late on the following day.
	svc.now = fixedClock(time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC), 0)
	if _, err := svc.Create(ctx, invoiceInput("Initech", 5, line("Washer", 1, 5))); err != nil {
		t.Fatalf("seeding invoice: %v", err)
	}

	return NewAnalyticsService(store.Invoices)
}

func TestAnalytics_SalesOverTime(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)
	ctx := context.Background()

	points, err := svc.SalesOverTime(ctx, "", "")
	if err != nil {
		t.Fatalf("SalesOverTime() error = %v", err)
	}
	if got := fmt.Sprint(points); got != "[{2024-03-01 180} {2024-03-02 5}]" {
		t.Errorf("SalesOverTime() = %s", got)
	}
}

func TestAnalytics_SalesOverTimeBoundsAreInclusiveDays(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)
	ctx := context.Background()

	tests := []struct {
		start, end string
		want       string
	}{
		{"2024-03-01", "2024-03-01", "[{2024-03-01 180}]"},
		{"2024-03-02", "", "[{2024-03-02 5}]"},
		// The 2024-03-02 invoice was created at 23:59 and still counts.
		{"", "2024-03-02", "[{2024-03-01 180} {2024-03-02 5}]"},
		{"2024-04-01", "", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.start+".."+tt.end, func(t *testing.T) {
			points, err := svc.SalesOverTime(ctx, tt.start, tt.end)
			if err != nil {
				t.Fatalf("SalesOverTime() error = %v", err)
			}
			if got := fmt.Sprint(points); got != tt.want {
				t.Errorf("SalesOverTime(%q, %q) = %s, want %s", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAnalytics_SalesOverTimeRejectsBadDates(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)

	for _, bad := range []string{"2024/03/01", "yesterday", "2024-13-01"} {
		_, err := svc.SalesOverTime(context.Background(), bad, "")
		var verr *validation.RequestValidationError
		if !errors.As(err, &verr) {
			t.Errorf("SalesOverTime(%q) error = %v, want RequestValidationError", bad, err)
		}
	}
}

func TestAnalytics_TopProducts(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)
	ctx := context.Background()

	top, err := svc.TopProducts(ctx, DefaultTopLimit)
	if err != nil {
		t.Fatalf("TopProducts() error = %v", err)
	}
	if got := fmt.Sprint(top); got != "[{Bolt 15 110} {Nut 20 40} {Washer 1 5}]" {
		t.Errorf("TopProducts() = %s", got)
	}

	top, err = svc.TopProducts(ctx, 1)
	if err != nil {
		t.Fatalf("TopProducts(1) error = %v", err)
	}
	if len(top) != 1 || top[0].Concept != "Bolt" {
		t.Errorf("TopProducts(1) = %v", top)
	}
}

// seedCatalogInto records five distinct products and two customers with
// the same total, so rankings need the _id tie-break.
func seedCatalogInto(t *testing.T, store *db.Store) *AnalyticsService {
	t.Helper()
	svc := invoiceServiceOn(store)
	ctx := context.Background()

	inputs := []models.InvoiceInput{
		invoiceInput("Acme", 160, line("Alpha", 2, 90), line("Beta", 1, 70)),
		invoiceInput("Hooli", 100, line("Gamma", 3, 70), line("Delta", 4, 20), line("Epsilon", 5, 10)),
		invoiceInput("Globex", 100),
	}
	for _, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("seeding invoice: %v", err)
		}
	}
	return NewAnalyticsService(store.Invoices)
}

func TestAnalytics_TopProductsLimitAndOrder(t *testing.T) {
	t.Parallel()
	svc := seedCatalogInto(t, db.NewMemoryStore())
	ctx := context.Background()

	top, err := svc.TopProducts(ctx, 2)
	if err != nil {
		t.Fatalf("TopProducts(2) error = %v", err)
	}
	if got := fmt.Sprint(top); got != "[{Alpha 2 90} {Beta 1 70}]" {
		t.Errorf("TopProducts(2) = %s", got)
	}

	all, err := svc.TopProducts(ctx, DefaultTopLimit)
	if err != nil {
		t.Fatalf("TopProducts() error = %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("TopProducts() = %d entries, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Total > all[i-1].Total {
			t.Errorf("TopProducts() not descending at %d: %v", i, all)
		}
	}
}

func TestAnalytics_TopCustomersTieBreak(t *testing.T) {
	t.Parallel()
	svc := seedCatalogInto(t, db.NewMemoryStore())

	top, err := svc.TopCustomers(context.Background(), DefaultTopLimit)
	if err != nil {
		t.Fatalf("TopCustomers() error = %v", err)
	}
	if got := fmt.Sprint(top); got != "[{Acme 1 160} {Globex 1 100} {Hooli 1 100}]" {
		t.Errorf("TopCustomers() = %s", got)
	}
}

func TestAnalytics_TopCustomers(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)

	top, err := svc.TopCustomers(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopCustomers() error = %v", err)
	}
	if got := fmt.Sprint(top); got != "[{Acme 2 130} {Globex 1 50}]" {
		t.Errorf("TopCustomers() = %s", got)
	}
}

func TestAnalytics_LimitBounds(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)
	ctx := context.Background()

	for _, limit := range []int{0, -3, MaxTopLimit + 1} {
		var verr *validation.RequestValidationError
		if _, err := svc.TopProducts(ctx, limit); !errors.As(err, &verr) {
			t.Errorf("TopProducts(%d) error = %v", limit, err)
		}
		if _, err := svc.TopCustomers(ctx, limit); !errors.As(err, &verr) {
			t.Errorf("TopCustomers(%d) error = %v", limit, err)
		}
	}
	if _, err := svc.TopCustomers(ctx, MaxTopLimit); err != nil {
		t.Errorf("TopCustomers(%d) error = %v", MaxTopLimit, err)
	}
}

func TestAnalytics_Dashboard(t *testing.T) {
	t.Parallel()
	svc := seedSales(t)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(d.SalesOverTime) != 2 || len(d.TopProducts) != 3 || len(d.TopCustomers) != 3 {
		t.Errorf("Dashboard() = %+v", d)
	}
}

func TestAnalytics_EmptyStore(t *testing.T) {
	t.Parallel()
	_, store := newInvoiceService(t)
	svc := NewAnalyticsService(store.Invoices)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.SalesOverTime == nil || d.TopProducts == nil || d.TopCustomers == nil {
		t.Errorf("Dashboard() on empty store = %+v, want empty slices", d)
	}
}
