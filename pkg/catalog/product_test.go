package catalog

import (
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Category
		ok   bool
	}{
		{name: "exact match", raw: "phone", want: CategoryPhone, ok: true},
		{name: "uppercase", raw: "LAPTOP", want: CategoryLaptop, ok: true},
		{name: "surrounding whitespace", raw: "  tablet ", want: CategoryTablet, ok: true},
		{name: "unknown", raw: "smartwatch", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "plural is not a category", raw: "phones", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseCategory(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHasTagCaseInsensitive(t *testing.T) {
	p := Product{Tags: []string{"Camera", "5g"}}

	if !p.HasTag("camera") {
		t.Error("expected match on lowered tag")
	}
	if !p.HasTag("5G") {
		t.Error("expected match on uppercased query")
	}
	if p.HasTag("gaming") {
		t.Error("unexpected match on absent tag")
	}
}

func TestEmbedTextFlattensAttributes(t *testing.T) {
	p := Product{
		Id:          "p1",
		Name:        "Pixel 9",
		Category:    CategoryPhone,
		Brand:       "Google",
		Price:       699,
		Description: "Compact phone with a class-leading camera.",
		Specs:       map[string]string{"screen": "6.3 inch", "battery": "4700mAh"},
		Features:    []string{"wireless charging"},
		Tags:        []string{"camera", "compact"},
	}

	text := p.EmbedText()
	for _, want := range []string{
		"Product: Pixel 9",
		"Category: phone",
		"Brand: Google",
		"Price: $699",
		"class-leading camera",
		"battery: 4700mAh",
		"wireless charging",
		"Tags: camera compact",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("EmbedText() missing %q:\n%s", want, text)
		}
	}

	// spec keys sort so the document is stable across runs
	if strings.Index(text, "battery:") > strings.Index(text, "screen:") {
		t.Error("expected spec keys in sorted order")
	}
}

func TestEmbedTextOmitsEmptySections(t *testing.T) {
	p := Product{Name: "Bare", Category: CategoryTablet, Brand: "Acme", Price: 100}

	text := p.EmbedText()
	if strings.Contains(text, "Specifications:") || strings.Contains(text, "Features:") || strings.Contains(text, "Tags:") {
		t.Errorf("expected empty sections omitted:\n%s", text)
	}
}

func TestBrandsDeduplicates(t *testing.T) {
	products := []Product{
		{Brand: "Apple"},
		{Brand: "apple"},
		{Brand: "Samsung"},
	}

	brands := Brands(products)
	if len(brands) != 2 {
		t.Fatalf("Brands() = %v, want 2 distinct entries", brands)
	}
	if brands[0] != "Apple" || brands[1] != "Samsung" {
		t.Errorf("Brands() = %v, want first-seen casing preserved", brands)
	}
}

func TestSampleCatalogIsWellFormed(t *testing.T) {
	products := Sample()
	if len(products) == 0 {
		t.Fatal("sample catalog is empty")
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if seen[p.Id] {
			t.Errorf("duplicate product id %q", p.Id)
		}
		seen[p.Id] = true

		if _, ok := ParseCategory(string(p.Category)); !ok {
			t.Errorf("product %s has unknown category %q", p.Id, p.Category)
		}
		if p.Price <= 0 {
			t.Errorf("product %s has non-positive price %v", p.Id, p.Price)
		}
		if p.Brand == "" || p.Name == "" {
			t.Errorf("product %s missing brand or name", p.Id)
		}
	}
}
