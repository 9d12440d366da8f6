package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/satheeshds/invoicing/blob"
	"github.com/satheeshds/invoicing/models"
)

// multipartMemory is how much of a multipart form is held in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

var requiredProductFields = []string{"type", "name", "unit", "price", "taxName", "taxRate", "total"}

// ListProducts lists all products
// @Summary      List products
// @Description  Get every product, active or not.
// @Tags         products
// @Produce      json
// @Success      200  {array}   models.Product
// @Failure      500  {object}  ErrorResponse
// @Router       /products/ [get]
// @Security     BasicAuth
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeServiceError(w, r, "fetch products", "Product not found", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct retrieves a single product by ID
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  models.Product
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{id} [get]
// @Security     BasicAuth
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "fetch product", "Product not found", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct creates a new product
// @Summary      Create product
// @Description  Create a product from a form. An optional image is uploaded and its URL stored.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        type         formData  string   true   "Product type"
// @Param        name         formData  string   true   "Name"
// @Param        unit         formData  string   true   "Unit"
// @Param        reference    formData  string   false  "Reference"
// @Param        price        formData  number   true   "Price"
// @Param        taxName      formData  string   true   "Tax name"
// @Param        taxRate      formData  integer  true   "Tax rate (percent)"
// @Param        total        formData  number   true   "Total"
// @Param        description  formData  string   false  "Description"
// @Param        image        formData  file     false  "Image"
// @Success      201          {object}  models.Product
// @Failure      400          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /products/ [post]
// @Security     BasicAuth
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, img, cleanup, err := h.parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	var missing []string
	for _, key := range requiredProductFields {
		if _, ok := form[key]; !ok {
			missing = append(missing, key+" is required")
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, strings.Join(missing, "; "))
		return
	}

	input := models.ProductInput{
		Type:        form.Get("type"),
		Name:        form.Get("name"),
		Unit:        form.Get("unit"),
		Reference:   form.Get("reference"),
		TaxName:     form.Get("taxName"),
		Description: form.Get("description"),
	}
	if input.Price, err = strconv.ParseFloat(form.Get("price"), 64); err != nil {
		writeError(w, http.StatusBadRequest, "price must be a number")
		return
	}
	if input.Total, err = strconv.ParseFloat(form.Get("total"), 64); err != nil {
		writeError(w, http.StatusBadRequest, "total must be a number")
		return
	}
	if input.TaxRate, err = strconv.Atoi(form.Get("taxRate")); err != nil {
		writeError(w, http.StatusBadRequest, "taxRate must be an integer")
		return
	}

	p, err := h.products.Create(r.Context(), input, img)
	if err != nil {
		writeServiceError(w, r, "create product", "Product not found", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct partially updates a product
// @Summary      Update product
// @Description  Change the submitted fields only. A field sent empty is stored empty.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string   true   "Product ID"
// @Param        type         formData  string   false  "Product type"
// @Param        name         formData  string   false  "Name"
// @Param        unit         formData  string   false  "Unit"
// @Param        reference    formData  string   false  "Reference"
// @Param        price        formData  number   false  "Price"
// @Param        taxName      formData  string   false  "Tax name"
// @Param        taxRate      formData  integer  false  "Tax rate (percent)"
// @Param        total        formData  number   false  "Total"
// @Param        description  formData  string   false  "Description"
// @Param        active       formData  boolean  false  "Active"
// @Param        image        formData  file     false  "Image"
// @Success      200          {object}  models.Product
// @Failure      400          {object}  ErrorResponse
// @Failure      404          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /products/{id} [patch]
// @Security     BasicAuth
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	form, img, cleanup, err := h.parseProductForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	patch, err := productPatch(form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), patch, img)
	if err != nil {
		writeServiceError(w, r, "update product", "Product not found", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// parseProductForm accepts multipart and urlencoded bodies. The image is
// nil when no file part named "image" was sent.
func (h *Handler) parseProductForm(w http.ResponseWriter, r *http.Request) (url.Values, *blob.Image, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, nil, noop, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, nil, noop, fmt.Errorf("invalid form: %w", err)
	}

	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	if r.MultipartForm == nil {
		return r.PostForm, nil, cleanup, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return r.PostForm, nil, cleanup, nil
	}
	if err != nil {
		cleanup()
		return nil, nil, noop, fmt.Errorf("invalid image: %w", err)
	}
	// Browsers send an empty part when the file input was left blank.
	if header.Filename == "" && header.Size == 0 {
		_ = file.Close()
		return r.PostForm, nil, cleanup, nil
	}

	return r.PostForm, &blob.Image{Filename: header.Filename, Reader: file}, func() {
		_ = file.Close()
		cleanup()
	}, nil
}

// productPatch keeps the distinction between a field that was not sent
// and one sent empty.
func productPatch(form url.Values) (models.ProductPatch, error) {
	var p models.ProductPatch
	str := func(key string, dst *models.Optional[string]) {
		if _, ok := form[key]; ok {
			*dst = models.Some(form.Get(key))
		}
	}
	str("type", &p.Type)
	str("name", &p.Name)
	str("unit", &p.Unit)
	str("reference", &p.Reference)
	str("taxName", &p.TaxName)
	str("description", &p.Description)

	for _, f := range []struct {
		key string
		dst *models.Optional[float64]
	}{{"price", &p.Price}, {"total", &p.Total}} {
		if _, ok := form[f.key]; !ok {
			continue
		}
		v, err := strconv.ParseFloat(form.Get(f.key), 64)
		if err != nil {
			return p, fmt.Errorf("%s must be a number", f.key)
		}
		*f.dst = models.Some(v)
	}

	if _, ok := form["taxRate"]; ok {
		v, err := strconv.Atoi(form.Get("taxRate"))
		if err != nil {
			return p, errors.New("taxRate must be an integer")
		}
		p.TaxRate = models.Some(v)
	}
	if _, ok := form["active"]; ok {
		v, err := strconv.ParseBool(form.Get("active"))
		if err != nil {
			return p, errors.New("active must be a boolean")
		}
		p.Active = models.Some(v)
	}
	return p, nil
}
