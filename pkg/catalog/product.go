package catalog

import (
	"fmt"
	"strings"
)

// Category is the product type taxonomy. The catalog only carries these three.
type Category string

const (
	CategoryPhone  Category = "phone"
	CategoryLaptop Category = "laptop"
	CategoryTablet Category = "tablet"
)

// Categories returns all known categories in a stable order.
func Categories() []Category {
	return []Category{CategoryPhone, CategoryLaptop, CategoryTablet}
}

// ParseCategory matches a raw string against the known categories (case-insensitive).
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryPhone:
		return CategoryPhone, true
	case CategoryLaptop:
		return CategoryLaptop, true
	case CategoryTablet:
		return CategoryTablet, true
	}
	return "", false
}

// Product is an immutable catalog record. Instances are created at catalog
// load time and replaced wholesale on refresh, never mutated in place.
type Product struct {
	Id          string            `json:"id"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	Brand       string            `json:"brand"`
	Price       float64           `json:"price"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs"`
	Features    []string          `json:"features"`
	Tags        []string          `json:"tags"`
	Embedding   []float32         `json:"embedding,omitempty"`
}

// HasTag reports whether the product carries the tag (case-insensitive).
func (p Product) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	for _, t := range p.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// EmbedText builds the text document that gets embedded for this product.
// Specs, features and tags are flattened in so semantic queries like
// "long battery life for travel" can land on the right record.
func (p Product) EmbedText() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Product: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("Category: %s\n", p.Category))
	sb.WriteString(fmt.Sprintf("Brand: %s\n", p.Brand))
	sb.WriteString(fmt.Sprintf("Price: $%.0f\n", p.Price))
	sb.WriteString(fmt.Sprintf("Description: %s\n", p.Description))

	if len(p.Specs) > 0 {
		sb.WriteString("Specifications: ")
		for _, k := range sortedKeys(p.Specs) {
			sb.WriteString(fmt.Sprintf("%s: %s ", k, p.Specs[k]))
		}
		sb.WriteString("\n")
	}
	if len(p.Features) > 0 {
		sb.WriteString("Features: " + strings.Join(p.Features, " ") + "\n")
	}
	if len(p.Tags) > 0 {
		sb.WriteString("Tags: " + strings.Join(p.Tags, " "))
	}

	return strings.TrimSpace(sb.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort, maps are small
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Brands collects the distinct brand vocabulary of a product set.
func Brands(products []Product) []string {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range products {
		key := strings.ToLower(p.Brand)
		if !seen[key] {
			seen[key] = true
			brands = append(brands, p.Brand)
		}
	}
	return brands
}
