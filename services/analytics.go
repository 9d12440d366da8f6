package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/models"
	"github.com/satheeshds/invoicing/validation"
)

const (
	// DefaultTopLimit is the ranking size when the caller gives none.
	DefaultTopLimit = 5
	// MaxTopLimit caps the ranking size.
	MaxTopLimit = 100

	dateRule  = "omitempty,datetime=2006-01-02"
	limitRule = "min=1,max=100"
)

// AnalyticsService aggregates invoices for the dashboard.
type AnalyticsService struct {
	invoices db.Collection
}

func NewAnalyticsService(invoices db.Collection) *AnalyticsService {
	return &AnalyticsService{invoices: invoices}
}

// SalesOverTime sums invoice totals per creation day, oldest first. start
// and end are optional inclusive YYYY-MM-DD bounds compared against the
// day, so an invoice created late on the end day is still counted.
func (s *AnalyticsService) SalesOverTime(ctx context.Context, start, end string) ([]models.SalesPoint, error) {
	if verr := validation.ValidateVar("start_date", start, dateRule); verr != nil {
		return nil, verr
	}
	if verr := validation.ValidateVar("end_date", end, dateRule); verr != nil {
		return nil, verr
	}

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "date", Value: bson.D{{Key: "$substrBytes", Value: bson.A{"$created_at", 0, 10}}}},
		}}},
	}
	if bounds := dateBounds(start, end); len(bounds) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "date", Value: bounds}}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$date"},
			{Key: "value", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	)

	type row struct {
		Date  string  `bson:"_id"`
		Value float64 `bson:"value"`
	}
	rows, err := aggregate[row](ctx, s.invoices, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sales over time: %w", err)
	}

	out := make([]models.SalesPoint, len(rows))
	for i, r := range rows {
		out[i] = models.SalesPoint{Date: r.Date, Value: r.Value}
	}
	return out, nil
}

func dateBounds(start, end string) bson.D {
	var d bson.D
	if start != "" {
		d = append(d, bson.E{Key: "$gte", Value: start})
	}
	if end != "" {
		d = append(d, bson.E{Key: "$lte", Value: end})
	}
	return d
}

// TopProducts ranks invoiced products by line total. Products are grouped
// by the name in the invoice snapshot, not by id.
func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	if verr := validation.ValidateVar("limit", limit, limitRule); verr != nil {
		return nil, verr
	}

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$products.product.name"},
			{Key: "items", Value: bson.D{{Key: "$sum", Value: "$products.quantity"}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$products.total"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	type row struct {
		Concept string  `bson:"_id"`
		Items   int64   `bson:"items"`
		Total   float64 `bson:"total"`
	}
	rows, err := aggregate[row](ctx, s.invoices, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	out := make([]models.TopProduct, len(rows))
	for i, r := range rows {
		out[i] = models.TopProduct{Concept: r.Concept, Items: r.Items, Total: r.Total}
	}
	return out, nil
}

// TopCustomers ranks clients by invoiced total.
func (s *AnalyticsService) TopCustomers(ctx context.Context, limit int) ([]models.TopCustomer, error) {
	if verr := validation.ValidateVar("limit", limit, limitRule); verr != nil {
		return nil, verr
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$client_name"},
			{Key: "documents", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	type row struct {
		Concept   string  `bson:"_id"`
		Documents int64   `bson:"documents"`
		Total     float64 `bson:"total"`
	}
	rows, err := aggregate[row](ctx, s.invoices, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}

	out := make([]models.TopCustomer, len(rows))
	for i, r := range rows {
		out[i] = models.TopCustomer{Concept: r.Concept, Documents: r.Documents, Total: r.Total}
	}
	return out, nil
}

// Dashboard runs all three reports with their defaults: every day, and
// the top DefaultTopLimit products and customers.
func (s *AnalyticsService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	sales, err := s.SalesOverTime(ctx, "", "")
	if err != nil {
		return models.Dashboard{}, err
	}
	products, err := s.TopProducts(ctx, DefaultTopLimit)
	if err != nil {
		return models.Dashboard{}, err
	}
	customers, err := s.TopCustomers(ctx, DefaultTopLimit)
	if err != nil {
		return models.Dashboard{}, err
	}
	return models.Dashboard{SalesOverTime: sales, TopProducts: products, TopCustomers: customers}, nil
}

func aggregate[T any](ctx context.Context, coll db.Collection, pipeline mongo.Pipeline) ([]T, error) {
	docs, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return db.DecodeAll[T](docs)
}
