package store

import (
	"strings"
	"time"

	"github.com/namhkse/recomending-system/pkg/catalog"
)

// Session phases
const (
	PhaseEmpty   = "EMPTY"   // no constraints accumulated yet
	PhasePartial = "PARTIAL" // at least one constraint active
)

// Hard constraint field names, used for merge reporting and relaxation order.
const (
	FieldCategory     = "category"
	FieldPriceMin     = "price_min"
	FieldPriceMax     = "price_max"
	FieldBrands       = "brands"
	FieldRequiredTags = "required_tags"
)

// ConstraintSet is the accumulated structured filter for one session.
// Zero values mean unconstrained.
type ConstraintSet struct {
	Category      catalog.Category `json:"category,omitempty"`
	PriceMin      *float64         `json:"price_min,omitempty"`
	PriceMax      *float64         `json:"price_max,omitempty"`
	Brands        []string         `json:"brands,omitempty"`
	RequiredTags  []string         `json:"required_tags,omitempty"`
	PreferredTags []string         `json:"preferred_tags,omitempty"`

	// Order tracks when each hard constraint field was last set, oldest
	// first. The relaxation loop pops from the tail (most recent first).
	Order []string `json:"order,omitempty"`
}

// IsEmpty reports whether no hard constraint at all is active.
// Preferred tags are soft and do not count.
func (c ConstraintSet) IsEmpty() bool {
	return c.Category == "" && c.PriceMin == nil && c.PriceMax == nil &&
		len(c.Brands) == 0 && len(c.RequiredTags) == 0
}

// Clone returns a deep copy so merges never alias the stored session state.
func (c ConstraintSet) Clone() ConstraintSet {
	out := c
	if c.PriceMin != nil {
		v := *c.PriceMin
		out.PriceMin = &v
	}
	if c.PriceMax != nil {
		v := *c.PriceMax
		out.PriceMax = &v
	}
	out.Brands = append([]string(nil), c.Brands...)
	out.RequiredTags = append([]string(nil), c.RequiredTags...)
	out.PreferredTags = append([]string(nil), c.PreferredTags...)
	out.Order = append([]string(nil), c.Order...)
	return out
}

// Touch moves a hard constraint field to the tail of the relaxation order.
func (c *ConstraintSet) Touch(field string) {
	for i, f := range c.Order {
		if f == field {
			c.Order = append(c.Order[:i], c.Order[i+1:]...)
			break
		}
	}
	c.Order = append(c.Order, field)
}

// Delta is the constraint change extracted from a single utterance.
// Zero-valued fields mean "no change", never an implicit reset.
type Delta struct {
	Category      catalog.Category `json:"category,omitempty"`
	PriceMin      *float64         `json:"price_min,omitempty"`
	PriceMax      *float64         `json:"price_max,omitempty"`
	Brands        []string         `json:"brands,omitempty"`
	RequiredTags  []string         `json:"required_tags,omitempty"`
	PreferredTags []string         `json:"preferred_tags,omitempty"`

	// Reset marks an explicit "start over" intent. It is the only thing
	// that produces a replace-instead-of-union merge.
	Reset bool `json:"reset,omitempty"`

	// Query is the residual free text left after recognized spans were
	// consumed; it drives the semantic search embedding.
	Query string `json:"query,omitempty"`
}

// IsZero reports whether the delta carries no change at all.
func (d Delta) IsZero() bool {
	return d.Category == "" && d.PriceMin == nil && d.PriceMax == nil &&
		len(d.Brands) == 0 && len(d.RequiredTags) == 0 &&
		len(d.PreferredTags) == 0 && !d.Reset
}

// Turn records one utterance/response exchange.
type Turn struct {
	Utterance      string    `json:"utterance"`
	Delta          Delta     `json:"delta"`
	RecommendedIds []string  `json:"recommended_ids"`
	At             time.Time `json:"at"`
}

// Session is the in-memory conversation state, owned by exactly one
// conversation. History is a bounded FIFO; the state manager evicts the
// oldest turn once MaxTurns is exceeded.
type Session struct {
	ID          string        `json:"id"`
	Phase       string        `json:"phase"`
	Constraints ConstraintSet `json:"constraints"`
	Turns       []Turn        `json:"turns"`
	LastQuery   string        `json:"last_query"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NormalizeSet lowercases, trims, and deduplicates a tag/brand set while
// keeping first-seen order.
func NormalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// UnionSets merges b into a without duplicates, preserving order.
func UnionSets(a, b []string) []string {
	out := append([]string(nil), a...)
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
