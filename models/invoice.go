package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CreatedAtLayout is the stored form of Invoice.CreatedAt. Its first ten
// characters are the calendar day used by the sales analytics.
const CreatedAtLayout = "2006-01-02T15:04:05.000000"

// Invoice is an issued invoice. It is never modified after creation.
type Invoice struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Number           string             `json:"number" bson:"number"`
	ClientID         string             `json:"client_id" bson:"client_id"`
	ClientName       string             `json:"client_name" bson:"client_name"`
	ClientOfficialID string             `json:"client_official_id" bson:"client_official_id"`
	ClientPhone      string             `json:"client_phone" bson:"client_phone"`
	OperationDate    string             `json:"operation_date" bson:"operation_date"`
	Type             string             `json:"type" bson:"type"`
	PaymentMethod    string             `json:"payment_method" bson:"payment_method"`
	PaymentPeriod    string             `json:"payment_period" bson:"payment_period"`
	DueDate          string             `json:"due_date" bson:"due_date"`
	Products         []ProductItem      `json:"products" bson:"products"`
	Subtotal         float64            `json:"subtotal" bson:"subtotal"`
	Discount         float64            `json:"discount" bson:"discount"`
	TaxableBase      float64            `json:"taxable_base" bson:"taxable_base"`
	Taxes            map[string]float64 `json:"taxes" bson:"taxes"`
	Total            float64            `json:"total" bson:"total"`
	CreatedAt        string             `json:"created_at" bson:"created_at"`
	Status           string             `json:"status" bson:"status"`
}

// ProductItem is one invoice line. Product is a snapshot taken when the
// invoice was issued, not a reference.
type ProductItem struct {
	RowID     string  `json:"row_id" bson:"row_id"`
	Product   Product `json:"product" bson:"product"`
	Reference string  `json:"reference" bson:"reference"`
	Price     float64 `json:"price" bson:"price" validate:"gte=0"`
	Discount  float64 `json:"discount" bson:"discount" validate:"gte=0"`
	TaxName   string  `json:"taxName" bson:"taxName"`
	TaxRate   int     `json:"taxRate" bson:"taxRate" validate:"gte=0,lte=100"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"gte=0"`
	Total     float64 `json:"total" bson:"total"`
}

// InvoiceInput is the create payload: an invoice without the server
// assigned _id, number and created_at.
type InvoiceInput struct {
	ClientID         string             `json:"client_id"`
	ClientName       string             `json:"client_name" validate:"required"`
	ClientOfficialID string             `json:"client_official_id"`
	ClientPhone      string             `json:"client_phone"`
	OperationDate    string             `json:"operation_date"`
	Type             string             `json:"type"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentPeriod    string             `json:"payment_period"`
	DueDate          string             `json:"due_date"`
	Products         []ProductItem      `json:"products" validate:"dive"`
	Subtotal         float64            `json:"subtotal"`
	Discount         float64            `json:"discount" validate:"gte=0"`
	TaxableBase      float64            `json:"taxable_base"`
	Taxes            map[string]float64 `json:"taxes"`
	Total            float64            `json:"total"`
	Status           string             `json:"status"`
}

// NewInvoice builds the document to insert from the input and the server
// assigned fields.
func (in InvoiceInput) NewInvoice(number, createdAt string) Invoice {
	products := in.Products
	if products == nil {
		products = []ProductItem{}
	}
	taxes := in.Taxes
	if taxes == nil {
		taxes = map[string]float64{}
	}
	return Invoice{
		Number:           number,
		ClientID:         in.ClientID,
		ClientName:       in.ClientName,
		ClientOfficialID: in.ClientOfficialID,
		ClientPhone:      in.ClientPhone,
		OperationDate:    in.OperationDate,
		Type:             in.Type,
		PaymentMethod:    in.PaymentMethod,
		PaymentPeriod:    in.PaymentPeriod,
		DueDate:          in.DueDate,
		Products:         products,
		Subtotal:         in.Subtotal,
		Discount:         in.Discount,
		TaxableBase:      in.TaxableBase,
		Taxes:            taxes,
		Total:            in.Total,
		CreatedAt:        createdAt,
		Status:           in.Status,
	}
}
