package extract

import (
	"strings"

	"github.com/namhkse/recomending-system/pkg/catalog"
)

// Vocabulary is the controlled vocabulary the extractor matches against.
// Brands come from the live catalog; synonym tables map common device terms
// to the brand/category they imply (e.g. "macbook" -> Apple laptop).
type Vocabulary struct {
	brands map[string]string // lowercase term -> canonical brand
	// device terms that also imply a category
	categoryHints map[string]catalog.Category
}

// categorySynonyms are generic words for each category, brand-neutral.
var categorySynonyms = map[string]catalog.Category{
	"phone":       catalog.CategoryPhone,
	"phones":      catalog.CategoryPhone,
	"smartphone":  catalog.CategoryPhone,
	"smartphones": catalog.CategoryPhone,
	"mobile":      catalog.CategoryPhone,
	"laptop":      catalog.CategoryLaptop,
	"laptops":     catalog.CategoryLaptop,
	"notebook":    catalog.CategoryLaptop,
	"notebooks":   catalog.CategoryLaptop,
	"ultrabook":   catalog.CategoryLaptop,
	"computer":    catalog.CategoryLaptop,
	"tablet":      catalog.CategoryTablet,
	"tablets":     catalog.CategoryTablet,
}

// brandSynonyms map device/product terms to canonical brand names. Only
// terms that unambiguously identify a brand belong here.
var brandSynonyms = map[string]string{
	"apple":     "Apple",
	"iphone":    "Apple",
	"iphones":   "Apple",
	"macbook":   "Apple",
	"macbooks":  "Apple",
	"ipad":      "Apple",
	"ipads":     "Apple",
	"samsung":   "Samsung",
	"galaxy":    "Samsung",
	"google":    "Google",
	"pixel":     "Google",
	"oneplus":   "OnePlus",
	"dell":      "Dell",
	"xps":       "Dell",
	"lenovo":    "Lenovo",
	"thinkpad":  "Lenovo",
	"asus":      "ASUS",
	"rog":       "ASUS",
	"zephyrus":  "ASUS",
	"microsoft": "Microsoft",
	"surface":   "Microsoft",
	"amazon":    "Amazon",
	"kindle":    "Amazon",
}

// deviceCategoryHints are brand terms specific enough to also pin the
// category. "galaxy" or "surface" span multiple categories and stay out.
var deviceCategoryHints = map[string]catalog.Category{
	"iphone":   catalog.CategoryPhone,
	"iphones":  catalog.CategoryPhone,
	"macbook":  catalog.CategoryLaptop,
	"macbooks": catalog.CategoryLaptop,
	"ipad":     catalog.CategoryTablet,
	"ipads":    catalog.CategoryTablet,
	"thinkpad": catalog.CategoryLaptop,
}

// tagSynonyms map use-case words to catalog tag vocabulary. Matches become
// soft preferred tags unless a "must have" cue upgrades them.
var tagSynonyms = map[string][]string{
	"photography":  {"photography", "camera"},
	"photo":        {"photography", "camera"},
	"photos":       {"photography", "camera"},
	"camera":       {"camera", "photography"},
	"gaming":       {"gaming"},
	"games":        {"gaming"},
	"game":         {"gaming"},
	"business":     {"business", "professional"},
	"work":         {"business", "productivity"},
	"productivity": {"productivity"},
	"creative":     {"creative"},
	"design":       {"creative", "design"},
	"travel":       {"portable"},
	"portable":     {"portable"},
	"lightweight":  {"portable"},
	"budget":       {"budget", "value"},
	"cheap":        {"budget", "value"},
	"affordable":   {"budget", "value"},
	"premium":      {"premium"},
	"reading":      {"reading"},
	"entertainment": {"entertainment", "multimedia"},
	"movies":        {"entertainment", "multimedia"},
	"multimedia":    {"multimedia"},
	"performance":   {"performance"},
	"security":      {"security"},
	"kids":          {"kids"},
}

// NewVocabulary builds the matcher from the catalog's brand set plus the
// static synonym tables.
func NewVocabulary(products []catalog.Product) *Vocabulary {
	v := &Vocabulary{
		brands:        make(map[string]string),
		categoryHints: make(map[string]catalog.Category),
	}
	for term, brand := range brandSynonyms {
		v.brands[term] = brand
	}
	for term, cat := range deviceCategoryHints {
		v.categoryHints[term] = cat
	}
	// catalog brands always match themselves, even without a synonym entry
	for _, b := range catalog.Brands(products) {
		v.brands[strings.ToLower(b)] = b
	}
	return v
}

// Brand resolves a token to a canonical brand name, if known.
func (v *Vocabulary) Brand(token string) (string, bool) {
	b, ok := v.brands[strings.ToLower(token)]
	return b, ok
}

// Category resolves a token to a category, via generic synonyms or
// brand-specific device hints.
func (v *Vocabulary) Category(token string) (catalog.Category, bool) {
	token = strings.ToLower(token)
	if c, ok := categorySynonyms[token]; ok {
		return c, true
	}
	if c, ok := v.categoryHints[token]; ok {
		return c, true
	}
	return "", false
}

// Tags resolves a token to its catalog tag synonyms.
func (v *Vocabulary) Tags(token string) ([]string, bool) {
	tags, ok := tagSynonyms[strings.ToLower(token)]
	return tags, ok
}
