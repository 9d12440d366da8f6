//go:build integration

package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/testinfra"
)

// TestAnalytics_MemoryMatchesMongo runs every report on the same invoices
// in MongoDB and in the memory store and expects identical results.
func TestAnalytics_MemoryMatchesMongo(t *testing.T) {
	fixtures := []struct {
		name string
		seed func(*testing.T, *db.Store) *AnalyticsService
	}{
		{"sales", seedSalesInto},
		{"catalog", seedCatalogInto},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			live := fx.seed(t, testinfra.StartMongo(t, "trista_"+fx.name))
			mem := fx.seed(t, db.NewMemoryStore())
			ctx := context.Background()

			reports := []struct {
				name string
				run  func(*AnalyticsService) (any, error)
			}{
				{"sales over time", func(s *AnalyticsService) (any, error) { return s.SalesOverTime(ctx, "", "") }},
				{"sales from", func(s *AnalyticsService) (any, error) { return s.SalesOverTime(ctx, "2024-03-02", "") }},
				{"sales until", func(s *AnalyticsService) (any, error) { return s.SalesOverTime(ctx, "", "2024-03-01") }},
				{"sales single day", func(s *AnalyticsService) (any, error) { return s.SalesOverTime(ctx, "2024-03-01", "2024-03-01") }},
				{"top products", func(s *AnalyticsService) (any, error) { return s.TopProducts(ctx, DefaultTopLimit) }},
				{"top products limited", func(s *AnalyticsService) (any, error) { return s.TopProducts(ctx, 2) }},
				{"top customers", func(s *AnalyticsService) (any, error) { return s.TopCustomers(ctx, DefaultTopLimit) }},
				{"top customers limited", func(s *AnalyticsService) (any, error) { return s.TopCustomers(ctx, 1) }},
				{"dashboard", func(s *AnalyticsService) (any, error) { return s.Dashboard(ctx) }},
			}
			for _, r := range reports {
				got, err := r.run(live)
				if err != nil {
					t.Fatalf("%s on mongo: %v", r.name, err)
				}
				want, err := r.run(mem)
				if err != nil {
					t.Fatalf("%s on memory: %v", r.name, err)
				}
				if fmt.Sprintf("%+v", got) != fmt.Sprintf("%+v", want) {
					t.Errorf("%s: mongo = %+v, memory = %+v", r.name, got, want)
				}
			}
		})
	}
}
