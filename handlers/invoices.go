package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/satheeshds/invoicing/models"
)

// ListInvoices lists all invoices
// @Summary      List invoices
// @Description  Get every stored invoice.
// @Tags         invoices
// @Produce      json
// @Success      200  {array}   models.Invoice
// @Failure      500  {object}  ErrorResponse
// @Router       /invoices/ [get]
// @Security     BasicAuth
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "fetch invoices", "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// CountInvoices returns the number of invoices
// @Summary      Count invoices
// @Tags         invoices
// @Produce      json
// @Success      200  {integer}  int
// @Failure      500  {object}   ErrorResponse
// @Router       /invoices/count [get]
// @Security     BasicAuth
func (h *Handler) CountInvoices(w http.ResponseWriter, r *http.Request) {
	n, err := h.invoices.Count(r.Context())
	if err != nil {
		writeServiceError(w, r, "count invoices", "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// GetInvoice retrieves a single invoice by its number
// @Summary      Get invoice
// @Description  Get an invoice by its display number.
// @Tags         invoices
// @Produce      json
// @Param        number  path      string  true  "Invoice number"
// @Success      200     {object}  models.Invoice
// @Failure      404     {object}  ErrorResponse
// @Router       /invoices/{number} [get]
// @Security     BasicAuth
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeServiceError(w, r, "fetch invoice", "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Store a new invoice. The number and creation time are assigned by the server.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  models.Invoice
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /invoices/ [post]
// @Security     BasicAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	inv, err := h.invoices.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, "create invoice", "Invoice not found", err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}
