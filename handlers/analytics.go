package handlers

import (
	"net/http"
	"strconv"

	"github.com/satheeshds/invoicing/services"
)

// SalesOverTime returns daily sales totals
// @Summary      Sales over time
// @Description  Sum of invoice totals per creation day, oldest first. Both bounds are inclusive.
// @Tags         analytics
// @Produce      json
// @Param        start_date  query     string  false  "First day (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Last day (YYYY-MM-DD)"
// @Success      200         {array}   models.SalesPoint
// @Failure      400         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /analytics/sales-over-time [get]
// @Security     BasicAuth
func (h *Handler) SalesOverTime(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	points, err := h.analytics.SalesOverTime(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, r, "fetch sales data", "", err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// TopProducts ranks products by invoiced total
// @Summary      Top products
// @Tags         analytics
// @Produce      json
// @Param        limit  query     int  false  "Number of products (1-100)"  default(5)
// @Success      200    {array}   models.TopProduct
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /analytics/top-products [get]
// @Security     BasicAuth
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	top, err := h.analytics.TopProducts(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "fetch top products", "", err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// TopCustomers ranks clients by invoiced total
// @Summary      Top customers
// @Tags         analytics
// @Produce      json
// @Param        limit  query     int  false  "Number of customers (1-100)"  default(5)
// @Success      200    {array}   models.TopCustomer
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /analytics/top-customers [get]
// @Security     BasicAuth
func (h *Handler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	top, err := h.analytics.TopCustomers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "fetch top customers", "", err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// Dashboard returns all analytics with default parameters
// @Summary      Dashboard analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      500  {object}  ErrorResponse
// @Router       /analytics/dashboard-analytics [get]
// @Security     BasicAuth
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, "fetch dashboard analytics", "", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// parseLimit reads ?limit, defaulting to services.DefaultTopLimit. Range
// checks happen in the service.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return services.DefaultTopLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return 0, false
	}
	return n, true
}
