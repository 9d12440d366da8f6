package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/logging"
	"github.com/satheeshds/invoicing/metrics"
	"github.com/satheeshds/invoicing/models"
	"github.com/satheeshds/invoicing/validation"
)

// invoiceSequence names the counter that numbers invoices.
const invoiceSequence = "invoices"

type InvoiceService struct {
	invoices db.Collection
	seq      db.Sequencer
	now      func() time.Time
}

func NewInvoiceService(invoices db.Collection, seq db.Sequencer) *InvoiceService {
	return &InvoiceService{invoices: invoices, seq: seq, now: time.Now}
}

// List returns every invoice in insertion order.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	docs, err := s.invoices.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return db.DecodeAll[models.Invoice](docs)
}

func (s *InvoiceService) Count(ctx context.Context) (int64, error) {
	n, err := s.invoices.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}
	return n, nil
}

// Get looks an invoice up by its display number.
func (s *InvoiceService) Get(ctx context.Context, number string) (models.Invoice, error) {
	var inv models.Invoice
	raw, err := s.invoices.FindOne(ctx, bson.D{{Key: "number", Value: number}})
	if errors.Is(err, db.ErrNoDocuments) {
		return inv, fmt.Errorf("invoice %s: %w", number, ErrNotFound)
	}
	if err != nil {
		return inv, fmt.Errorf("fetching invoice %s: %w", number, err)
	}
	if err := bson.Unmarshal(raw, &inv); err != nil {
		return inv, fmt.Errorf("decoding invoice %s: %w", number, err)
	}
	return inv, nil
}

// Create numbers and stores a new invoice. Numbers come from an atomic
// counter kept at or above the invoice count, so they stay unique under
// concurrent requests.
func (s *InvoiceService) Create(ctx context.Context, input models.InvoiceInput) (models.Invoice, error) {
	if verr := validation.ValidateStruct(&input); verr != nil {
		return models.Invoice{}, verr
	}

	n, err := s.seq.Next(ctx, invoiceSequence)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("numbering invoice: %w", err)
	}

	inv := input.NewInvoice(strconv.FormatInt(n, 10), s.now().UTC().Format(models.CreatedAtLayout))
	id, err := s.invoices.InsertOne(ctx, inv)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("inserting invoice %s: %w", inv.Number, err)
	}
	inv.ID = id

	metrics.InvoicesCreated.Inc()
	logging.Ctx(ctx).Info().Str("number", inv.Number).Str("client", inv.ClientName).
		Float64("total", inv.Total).Msg("invoice created")
	return inv, nil
}

// SyncSequence raises the invoice counter to the current invoice count,
// which keeps number == count+1 for stores created before the counter
// existed.
func (s *InvoiceService) SyncSequence(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if err := s.seq.Seed(ctx, invoiceSequence, n); err != nil {
		return err
	}
	logging.Debug().Int64("floor", n).Msg("invoice sequence synced")
	return nil
}
