package rank

import (
	"errors"
	"reflect"
	"testing"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/store"
)

func f(v float64) *float64 { return &v }

func phone(id string, price float64, tags ...string) catalog.Product {
	return catalog.Product{Id: id, Category: catalog.CategoryPhone, Brand: "Test", Price: price, Tags: tags}
}

func TestRankCombinedScore(t *testing.T) {
	candidates := []index.Scored{
		{Product: phone("p1", 500, "camera"), Similarity: 0.5},
		{Product: phone("p2", 700, "gaming"), Similarity: 0.9},
	}
	cs := store.ConstraintSet{PreferredTags: []string{"camera"}}

	recs, err := Rank(candidates, cs, DefaultWeights(), 5)
	if err != nil {
		t.Fatal(err)
	}

	// p1: 0.6*0.5 + 0.4*1.0 = 0.70, p2: 0.6*0.9 + 0.4*0.0 = 0.54
	if recs[0].Product.Id != "p1" {
		t.Errorf("top = %s, want p1 (soft tag match outweighs similarity)", recs[0].Product.Id)
	}
	if recs[0].FilterScore != 1.0 {
		t.Errorf("FilterScore = %v, want 1.0", recs[0].FilterScore)
	}
	if recs[1].FilterScore != 0.0 {
		t.Errorf("FilterScore = %v, want 0.0", recs[1].FilterScore)
	}
}

func TestRankPreferredTagFraction(t *testing.T) {
	candidates := []index.Scored{
		{Product: phone("p1", 500, "camera", "gaming"), Similarity: 0},
	}
	cs := store.ConstraintSet{PreferredTags: []string{"camera", "gaming", "budget", "premium"}}

	recs, err := Rank(candidates, cs, DefaultWeights(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if recs[0].FilterScore != 0.5 {
		t.Errorf("FilterScore = %v, want 0.5 (2 of 4 preferred tags)", recs[0].FilterScore)
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	// identical similarity and no soft tags: combined scores tie
	candidates := []index.Scored{
		{Product: phone("p3", 900), Similarity: 0.8},
		{Product: phone("p1", 700), Similarity: 0.8},
		{Product: phone("p2", 700), Similarity: 0.8},
	}

	var prev []string
	for i := 0; i < 5; i++ {
		recs, err := Rank(candidates, store.ConstraintSet{}, DefaultWeights(), 5)
		if err != nil {
			t.Fatal(err)
		}
		ids := make([]string, len(recs))
		for j, r := range recs {
			ids[j] = r.Product.Id
		}
		want := []string{"p1", "p2", "p3"} // price asc, then id asc
		if !reflect.DeepEqual(ids, want) {
			t.Fatalf("order = %v, want %v", ids, want)
		}
		if prev != nil && !reflect.DeepEqual(ids, prev) {
			t.Fatalf("ordering not reproducible: %v vs %v", ids, prev)
		}
		prev = ids
	}
}

func TestRankExcludesHardViolators(t *testing.T) {
	candidates := []index.Scored{
		{Product: phone("cheap", 999, "camera"), Similarity: 0.4},
		{Product: phone("pricey", 1999, "gaming"), Similarity: 0.95},
	}
	cs := store.ConstraintSet{
		Category:      catalog.CategoryPhone,
		PriceMax:      f(1200),
		PreferredTags: []string{"photography", "camera"},
	}

	recs, err := Rank(candidates, cs, DefaultWeights(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Product.Id != "cheap" {
		t.Fatalf("recs = %v, want only the $999 phone (the $1999 one violates price_max)", recs)
	}
}

func TestRankNoCandidatesSignal(t *testing.T) {
	candidates := []index.Scored{
		{Product: phone("p1", 2000), Similarity: 0.99},
	}
	cs := store.ConstraintSet{PriceMax: f(100)}

	_, err := Rank(candidates, cs, DefaultWeights(), 5)
	if !errors.Is(err, recsys.ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates", err)
	}

	_, err = Rank(nil, store.ConstraintSet{}, DefaultWeights(), 5)
	if !errors.Is(err, recsys.ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates for empty input", err)
	}
}

func TestRankTruncatesToK(t *testing.T) {
	var candidates []index.Scored
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		candidates = append(candidates, index.Scored{Product: phone(id, 100), Similarity: 0.5})
	}

	recs, err := Rank(candidates, store.ConstraintSet{}, DefaultWeights(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Errorf("len = %d, want 3", len(recs))
	}
}

func TestRankPriceMonotonicity(t *testing.T) {
	candidates := []index.Scored{
		{Product: phone("p1", 400), Similarity: 0.5},
		{Product: phone("p2", 800), Similarity: 0.5},
		{Product: phone("p3", 1200), Similarity: 0.5},
	}

	narrow, err := Rank(candidates, store.ConstraintSet{PriceMax: f(500)}, DefaultWeights(), 10)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := Rank(candidates, store.ConstraintSet{PriceMax: f(1000)}, DefaultWeights(), 10)
	if err != nil {
		t.Fatal(err)
	}

	// widening price_max only adds candidates, never removes survivors
	for _, n := range narrow {
		found := false
		for _, w := range wide {
			if w.Product.Id == n.Product.Id {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("product %s passed the narrow bound but not the wide one", n.Product.Id)
		}
	}
	if len(wide) <= len(narrow) {
		t.Errorf("wide result (%d) should not shrink vs narrow (%d)", len(wide), len(narrow))
	}
}
