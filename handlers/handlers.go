// Package handlers exposes the invoicing API over HTTP.
package handlers

import (
	"context"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/db"
	"github.com/satheeshds/invoicing/services"
)

// defaultMaxUploadBytes bounds request bodies when no limit is configured.
const defaultMaxUploadBytes = 10 << 20

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// stateReporter is implemented by uploaders that track their own health,
// such as blob.Breaker.
type stateReporter interface {
	State() string
}

// Handler serves every API route.
type Handler struct {
	invoices  *services.InvoiceService
	products  *services.ProductService
	analytics *services.AnalyticsService
	store     Pinger
	images    blob.Uploader
	maxUpload int64
}

// New wires the services onto store. maxUpload bounds request bodies,
// product images included.
func New(store *db.Store, images blob.Uploader, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &Handler{
		invoices:  services.NewInvoiceService(store.Invoices, store.Sequence),
		products:  services.NewProductService(store.Products, images),
		analytics: services.NewAnalyticsService(store.Invoices),
		store:     store,
		images:    images,
		maxUpload: maxUpload,
	}
}

// Invoices exposes the invoice service, used at startup to sync the
// numbering sequence.
func (h *Handler) Invoices() *services.InvoiceService { return h.invoices }
