package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByBrandIn struct {
	Brands []string
}

func (s ByBrandIn) Apply(db *gorm.DB) *gorm.DB {
	lowered := make([]string, len(s.Brands))
	for i, b := range s.Brands {
		lowered[i] = strings.ToLower(b)
	}
	return db.Where("LOWER(brand) IN ?", lowered)
}

type PriceAtLeast struct {
	Min float64
}

func (s PriceAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price >= ?", s.Min)
}

type PriceAtMost struct {
	Max float64
}

func (s PriceAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Max)
}

// HasAllTags requires every tag to be present in the jsonb tags array.
type HasAllTags struct {
	Tags []string
}

func (s HasAllTags) Apply(db *gorm.DB) *gorm.DB {
	for _, tag := range s.Tags {
		db = db.Where("tags @> ?", `["`+strings.ToLower(tag)+`"]`)
	}
	return db
}
