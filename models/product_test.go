package models

import "testing"

func TestProductPatch_Fields(t *testing.T) {
	t.Parallel()

	var empty ProductPatch
	if !empty.IsEmpty() {
		t.Error("zero patch should be empty")
	}

	p := ProductPatch{
		Name:        Some("Nut"),
		Description: Some(""),
		TaxRate:     Some(0),
		Active:      Some(false),
	}
	if p.IsEmpty() {
		t.Fatal("patch with set fields reported empty")
	}

	got := p.Fields()
	want := map[string]any{"name": "Nut", "description": "", "taxRate": 0, "active": false}
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Fields()[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestProductInput_NewProductIsActive(t *testing.T) {
	t.Parallel()

	p := ProductInput{Name: "Bolt", TaxRate: 21}.NewProduct()
	if !p.Active || p.ImageURL != nil || !p.ID.IsZero() {
		t.Errorf("NewProduct() = %+v", p)
	}
}
