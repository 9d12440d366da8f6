package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/models"
)

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, img blob.Image) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://res.cloudinary.com/demo/image/upload/products/" + img.Filename, nil
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	cur := start.Add(-step)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(step)
		return cur
	}
}

func newInvoiceService(t *testing.T) (*InvoiceService, *db.Store) {
	t.Helper()
	store := db.NewMemoryStore()
	return invoiceServiceOn(store), store
}

// invoiceServiceOn returns a service whose clock starts 2024-03-01 09:00 UTC
// and advances an hour per invoice.
func invoiceServiceOn(store *db.Store) *InvoiceService {
	svc := NewInvoiceService(store.Invoices, store.Sequence)
	svc.now = fixedClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), time.Hour)
	return svc
}

func invoiceInput(client string, total float64, items ...models.ProductItem) models.InvoiceInput {
	return models.InvoiceInput{
		ClientName:    client,
		Type:          "invoice",
		PaymentMethod: "cash",
		Products:      items,
		Total:         total,
		Status:        "pending",
	}
}

func line(name string, qty int, total float64) models.ProductItem {
	return models.ProductItem{
		RowID:    name + "-row",
		Product:  models.Product{Name: name, Unit: "u", TaxName: "VAT", Active: true},
		Quantity: qty,
		Total:    total,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID)
}

func TestUploadError(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := error(&UploadError{Err: cause})
	if !errors.Is(err, cause) {
		t.Error("UploadError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Error() = %q", err.Error())
	}
}
