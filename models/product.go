package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog entry. Products are never deleted; Active is the
// only lifecycle flag.
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"`
	Name        string             `json:"name" bson:"name"`
	Unit        string             `json:"unit" bson:"unit"`
	Reference   string             `json:"reference" bson:"reference"`
	Price       float64            `json:"price" bson:"price"`
	TaxName     string             `json:"taxName" bson:"taxName"`
	TaxRate     int                `json:"taxRate" bson:"taxRate"`
	Total       float64            `json:"total" bson:"total"`
	Description string             `json:"description" bson:"description"`
	ImageURL    *string            `json:"image_url" bson:"image_url"`
	Active      bool               `json:"active" bson:"active"`
}

// ProductInput is the create form. Reference and Description are optional
// and stored as "" when missing.
type ProductInput struct {
	Type        string  `json:"type" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Unit        string  `json:"unit" validate:"required"`
	Reference   string  `json:"reference"`
	Price       float64 `json:"price" validate:"gte=0"`
	TaxName     string  `json:"taxName" validate:"required"`
	TaxRate     int     `json:"taxRate" validate:"gte=0,lte=100"`
	Total       float64 `json:"total" validate:"gte=0"`
	Description string  `json:"description"`
}

// NewProduct builds the document to insert. New products are active.
func (in ProductInput) NewProduct() Product {
	return Product{
		Type:        in.Type,
		Name:        in.Name,
		Unit:        in.Unit,
		Reference:   in.Reference,
		Price:       in.Price,
		TaxName:     in.TaxName,
		TaxRate:     in.TaxRate,
		Total:       in.Total,
		Description: in.Description,
		Active:      true,
	}
}

// ProductPatch is a partial update. A field that is not Set is left alone;
// a field Set to its zero value ("" or 0) is written as such, except the
// required text fields, which may not be blanked.
type ProductPatch struct {
	Type        Optional[string]  `form:"type" validate:"omitnil,notblank"`
	Name        Optional[string]  `form:"name" validate:"omitnil,notblank"`
	Unit        Optional[string]  `form:"unit" validate:"omitnil,notblank"`
	Reference   Optional[string]  `form:"reference"`
	Price       Optional[float64] `form:"price" validate:"omitnil,gte=0"`
	TaxName     Optional[string]  `form:"taxName" validate:"omitnil,notblank"`
	TaxRate     Optional[int]     `form:"taxRate" validate:"omitnil,gte=0,lte=100"`
	Total       Optional[float64] `form:"total" validate:"omitnil,gte=0"`
	Description Optional[string]  `form:"description"`
	Active      Optional[bool]    `form:"active"`
}

// Fields returns the bson field name to value map of every set field.
func (p ProductPatch) Fields() map[string]any {
	out := map[string]any{}
	p.Type.addTo(out, "type")
	p.Name.addTo(out, "name")
	p.Unit.addTo(out, "unit")
	p.Reference.addTo(out, "reference")
	p.Price.addTo(out, "price")
	p.TaxName.addTo(out, "taxName")
	p.TaxRate.addTo(out, "taxRate")
	p.Total.addTo(out, "total")
	p.Description.addTo(out, "description")
	p.Active.addTo(out, "active")
	return out
}

// IsEmpty reports whether no field is set.
func (p ProductPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}
