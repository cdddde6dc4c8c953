// Package state owns constraint merging, session phase transitions, and the
// bounded turn history.
package state

import (
	"log"
	"time"

	"github.com/namhkse/recomending-system/pkg/store"
)

// DefaultMaxTurns caps the conversation history per session.
const DefaultMaxTurns = 10

// Manager handles session state transitions and history bookkeeping.
type Manager struct {
	maxTurns int
	logger   *log.Logger
}

// NewManager creates a new state manager. maxTurns <= 0 falls back to the
// default cap.
func NewManager(maxTurns int, logger *log.Logger) *Manager {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Manager{maxTurns: maxTurns, logger: logger}
}

// NewSession creates an empty session.
func NewSession(id string) *store.Session {
	return &store.Session{
		ID:        id,
		Phase:     store.PhaseEmpty,
		CreatedAt: time.Now(),
	}
}

// Merge applies a delta to a copy of the constraint set and returns the
// result plus the names of any rejected fields. The input set is never
// mutated, so a failed turn leaves session state untouched.
//
// Merge rules: scalar fields overwrite, set fields union. A reset delta
// replaces everything with the empty set. A price bound that would make
// price_min exceed price_max is dropped and the prior value retained.
func Merge(cs store.ConstraintSet, d store.Delta) (store.ConstraintSet, []string) {
	if d.Reset {
		return store.ConstraintSet{}, nil
	}

	out := cs.Clone()
	var rejected []string

	if d.Category != "" {
		out.Category = d.Category
		out.Touch(store.FieldCategory)
	}

	// A full range in one delta stands on its own; a single new bound is
	// validated against the retained opposite bound.
	switch {
	case d.PriceMin != nil && d.PriceMax != nil:
		if *d.PriceMin <= *d.PriceMax {
			out.PriceMin, out.PriceMax = clonePtr(d.PriceMin), clonePtr(d.PriceMax)
			out.Touch(store.FieldPriceMin)
			out.Touch(store.FieldPriceMax)
		} else {
			rejected = append(rejected, store.FieldPriceMin, store.FieldPriceMax)
		}
	case d.PriceMin != nil:
		if out.PriceMax != nil && *d.PriceMin > *out.PriceMax {
			rejected = append(rejected, store.FieldPriceMin)
		} else {
			out.PriceMin = clonePtr(d.PriceMin)
			out.Touch(store.FieldPriceMin)
		}
	case d.PriceMax != nil:
		if out.PriceMin != nil && *d.PriceMax < *out.PriceMin {
			rejected = append(rejected, store.FieldPriceMax)
		} else {
			out.PriceMax = clonePtr(d.PriceMax)
			out.Touch(store.FieldPriceMax)
		}
	}

	if len(d.Brands) > 0 {
		out.Brands = store.UnionSets(out.Brands, store.NormalizeSet(d.Brands))
		out.Touch(store.FieldBrands)
	}
	if len(d.RequiredTags) > 0 {
		out.RequiredTags = store.UnionSets(out.RequiredTags, store.NormalizeSet(d.RequiredTags))
		out.Touch(store.FieldRequiredTags)
	}
	if len(d.PreferredTags) > 0 {
		out.PreferredTags = store.UnionSets(out.PreferredTags, store.NormalizeSet(d.PreferredTags))
	}

	return out, rejected
}

// Relax removes the most recently added hard constraint from the set and
// returns its field name. Returns false when nothing is left to relax.
func Relax(cs *store.ConstraintSet) (string, bool) {
	if len(cs.Order) == 0 {
		return "", false
	}
	field := cs.Order[len(cs.Order)-1]
	cs.Order = cs.Order[:len(cs.Order)-1]

	switch field {
	case store.FieldCategory:
		cs.Category = ""
	case store.FieldPriceMin:
		cs.PriceMin = nil
	case store.FieldPriceMax:
		cs.PriceMax = nil
	case store.FieldBrands:
		cs.Brands = nil
	case store.FieldRequiredTags:
		cs.RequiredTags = nil
	}
	return field, true
}

// Commit installs the merged constraints on the session, transitions the
// phase, and appends the turn with FIFO eviction at the history cap.
func (m *Manager) Commit(session *store.Session, merged store.ConstraintSet, turn store.Turn) {
	session.Constraints = merged
	if merged.IsEmpty() {
		session.Phase = store.PhaseEmpty
	} else {
		session.Phase = store.PhasePartial
	}
	session.LastQuery = turn.Utterance

	session.Turns = append(session.Turns, turn)
	if len(session.Turns) > m.maxTurns {
		evicted := len(session.Turns) - m.maxTurns
		session.Turns = append([]store.Turn(nil), session.Turns[evicted:]...)
		m.logger.Printf("[STATE] Evicted %d turn(s), history capped at %d", evicted, m.maxTurns)
	}

	m.logger.Printf("[STATE] Session %s phase=%s constraints_empty=%v turns=%d",
		session.ID, session.Phase, merged.IsEmpty(), len(session.Turns))
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
