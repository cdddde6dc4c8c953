package state

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/store"
)

func f(v float64) *float64 { return &v }

func newTestManager(maxTurns int) *Manager {
	return NewManager(maxTurns, log.New(io.Discard, "", 0))
}

func TestMergeEmptyDeltaIsIdentity(t *testing.T) {
	cs := store.ConstraintSet{
		Category:      catalog.CategoryPhone,
		PriceMax:      f(1000),
		Brands:        []string{"apple"},
		RequiredTags:  []string{"camera"},
		PreferredTags: []string{"premium"},
	}

	merged, rejected := Merge(cs, store.Delta{})

	if len(rejected) != 0 {
		t.Fatalf("rejected = %v, want none", rejected)
	}
	if merged.Category != cs.Category {
		t.Errorf("Category changed: %q", merged.Category)
	}
	if *merged.PriceMax != 1000 {
		t.Errorf("PriceMax changed: %v", *merged.PriceMax)
	}
	if len(merged.Brands) != 1 || merged.Brands[0] != "apple" {
		t.Errorf("Brands changed: %v", merged.Brands)
	}
	if len(merged.RequiredTags) != 1 || len(merged.PreferredTags) != 1 {
		t.Errorf("tag sets changed: %v %v", merged.RequiredTags, merged.PreferredTags)
	}
}

func TestMergeScalarOverwritesSetUnions(t *testing.T) {
	cs := store.ConstraintSet{
		Category: catalog.CategoryPhone,
		PriceMax: f(1000),
		Brands:   []string{"apple"},
	}

	merged, rejected := Merge(cs, store.Delta{
		Category: catalog.CategoryLaptop,
		PriceMax: f(2000),
		Brands:   []string{"Dell"},
	})

	if len(rejected) != 0 {
		t.Fatalf("rejected = %v, want none", rejected)
	}
	if merged.Category != catalog.CategoryLaptop {
		t.Errorf("Category = %q, want laptop (scalar overwrite)", merged.Category)
	}
	if *merged.PriceMax != 2000 {
		t.Errorf("PriceMax = %v, want 2000 (scalar overwrite)", *merged.PriceMax)
	}
	if len(merged.Brands) != 2 {
		t.Errorf("Brands = %v, want union of apple and dell", merged.Brands)
	}
}

func TestMergeRejectsInvalidPriceBound(t *testing.T) {
	cs := store.ConstraintSet{PriceMax: f(1000)}

	merged, rejected := Merge(cs, store.Delta{PriceMin: f(1500)})

	if len(rejected) != 1 || rejected[0] != store.FieldPriceMin {
		t.Fatalf("rejected = %v, want [price_min]", rejected)
	}
	if merged.PriceMin != nil {
		t.Errorf("PriceMin = %v, want nil (new bound dropped)", *merged.PriceMin)
	}
	if *merged.PriceMax != 1000 {
		t.Errorf("PriceMax = %v, want prior 1000 retained", *merged.PriceMax)
	}
}

func TestMergeRejectsMaxBelowMin(t *testing.T) {
	cs := store.ConstraintSet{PriceMin: f(800)}

	merged, rejected := Merge(cs, store.Delta{PriceMax: f(500)})

	if len(rejected) != 1 || rejected[0] != store.FieldPriceMax {
		t.Fatalf("rejected = %v, want [price_max]", rejected)
	}
	if merged.PriceMax != nil {
		t.Errorf("PriceMax should stay nil, got %v", *merged.PriceMax)
	}
	if *merged.PriceMin != 800 {
		t.Errorf("PriceMin = %v, want 800", *merged.PriceMin)
	}
}

func TestMergeFullRangeReplacesBounds(t *testing.T) {
	cs := store.ConstraintSet{PriceMin: f(100), PriceMax: f(200)}

	merged, rejected := Merge(cs, store.Delta{PriceMin: f(640), PriceMax: f(960)})

	if len(rejected) != 0 {
		t.Fatalf("rejected = %v, want none", rejected)
	}
	if *merged.PriceMin != 640 || *merged.PriceMax != 960 {
		t.Errorf("bounds = [%v, %v], want [640, 960]", *merged.PriceMin, *merged.PriceMax)
	}
}

func TestMergeResetClearsEverything(t *testing.T) {
	cs := store.ConstraintSet{
		Category:     catalog.CategoryPhone,
		PriceMax:     f(1000),
		Brands:       []string{"apple"},
		RequiredTags: []string{"camera"},
		Order:        []string{store.FieldCategory, store.FieldPriceMax, store.FieldBrands},
	}

	merged, _ := Merge(cs, store.Delta{Reset: true})

	if !merged.IsEmpty() {
		t.Errorf("merged = %+v, want empty after reset", merged)
	}
	if len(merged.Order) != 0 {
		t.Errorf("Order = %v, want empty", merged.Order)
	}
}

func TestResetKeepsHistoryAndIdentity(t *testing.T) {
	m := newTestManager(10)
	session := NewSession("s-1")

	merged, _ := Merge(session.Constraints, store.Delta{Category: catalog.CategoryPhone})
	m.Commit(session, merged, store.Turn{Utterance: "a phone"})

	merged, _ = Merge(session.Constraints, store.Delta{Reset: true})
	m.Commit(session, merged, store.Turn{Utterance: "start over"})

	if session.ID != "s-1" {
		t.Errorf("session identity changed: %q", session.ID)
	}
	if len(session.Turns) != 2 {
		t.Errorf("history length = %d, want 2 (reset keeps history)", len(session.Turns))
	}
	if !session.Constraints.IsEmpty() {
		t.Errorf("constraints = %+v, want empty", session.Constraints)
	}
	if session.Phase != store.PhaseEmpty {
		t.Errorf("phase = %q, want %q", session.Phase, store.PhaseEmpty)
	}
}

func TestHistoryEvictionFIFO(t *testing.T) {
	m := newTestManager(10)
	session := NewSession("s-evict")

	for i := 0; i < 11; i++ {
		m.Commit(session, session.Constraints, store.Turn{Utterance: fmt.Sprintf("turn %d", i)})
	}

	if len(session.Turns) != 10 {
		t.Fatalf("history length = %d, want 10", len(session.Turns))
	}
	if session.Turns[0].Utterance != "turn 1" {
		t.Errorf("oldest turn = %q, want %q (turn 0 evicted)", session.Turns[0].Utterance, "turn 1")
	}
	if session.Turns[9].Utterance != "turn 10" {
		t.Errorf("newest turn = %q, want %q", session.Turns[9].Utterance, "turn 10")
	}
}

func TestRelaxPopsMostRecentFirst(t *testing.T) {
	cs, _ := Merge(store.ConstraintSet{}, store.Delta{Category: catalog.CategoryPhone})
	cs, _ = Merge(cs, store.Delta{PriceMax: f(1000)})
	cs, _ = Merge(cs, store.Delta{Brands: []string{"apple"}})

	field, ok := Relax(&cs)
	if !ok || field != store.FieldBrands {
		t.Fatalf("first relax = %q, want brands", field)
	}
	if len(cs.Brands) != 0 {
		t.Errorf("Brands = %v, want cleared", cs.Brands)
	}

	field, _ = Relax(&cs)
	if field != store.FieldPriceMax {
		t.Fatalf("second relax = %q, want price_max", field)
	}

	field, _ = Relax(&cs)
	if field != store.FieldCategory {
		t.Fatalf("third relax = %q, want category", field)
	}

	if _, ok := Relax(&cs); ok {
		t.Error("relax on empty set should report ok=false")
	}
}

func TestPhaseTransitions(t *testing.T) {
	m := newTestManager(10)
	session := NewSession("s-phase")

	if session.Phase != store.PhaseEmpty {
		t.Fatalf("initial phase = %q, want EMPTY", session.Phase)
	}

	merged, _ := Merge(session.Constraints, store.Delta{Category: catalog.CategoryTablet})
	m.Commit(session, merged, store.Turn{Utterance: "tablets"})
	if session.Phase != store.PhasePartial {
		t.Errorf("phase = %q, want PARTIAL", session.Phase)
	}

	merged, _ = Merge(session.Constraints, store.Delta{Reset: true})
	m.Commit(session, merged, store.Turn{Utterance: "reset"})
	if session.Phase != store.PhaseEmpty {
		t.Errorf("phase after reset = %q, want EMPTY", session.Phase)
	}
}
