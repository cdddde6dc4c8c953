// Package rank merges vector-similarity and soft filter-satisfaction scores
// into one deterministic ordering.
package rank

import (
	"sort"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/store"
)

// Weights controls the combined-score mix. They are a policy choice, not a
// mandated constant; bootstrap reads them from configuration.
type Weights struct {
	Similarity float64
	Filter     float64
}

// DefaultWeights favors semantic relevance over soft tag matches.
func DefaultWeights() Weights {
	return Weights{Similarity: 0.6, Filter: 0.4}
}

// Recommendation is one ranked product with its score breakdown.
type Recommendation struct {
	Product     catalog.Product `json:"product"`
	Similarity  float64         `json:"similarity_score"`
	FilterScore float64         `json:"filter_score"`
	Combined    float64         `json:"combined_score"`
}

// Rank re-scores candidates against the merged constraints and returns the
// top k. Hard constraints are enforced by the index predicate already, but
// violators are excluded here too so the contract holds for any backend.
// The filter score is purely soft: the fraction of preferred tags the
// product carries.
//
// Returns recsys.ErrNoCandidates when nothing survives, which is distinct
// from a nonempty low-relevance result.
func Rank(candidates []index.Scored, cs store.ConstraintSet, w Weights, k int) ([]Recommendation, error) {
	pred := index.FromConstraints(cs)

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if !pred.Matches(c.Product) {
			continue
		}
		fs := preferredTagScore(c.Product, cs.PreferredTags)
		recs = append(recs, Recommendation{
			Product:     c.Product,
			Similarity:  c.Similarity,
			FilterScore: fs,
			Combined:    w.Similarity*c.Similarity + w.Filter*fs,
		})
	}

	if len(recs) == 0 {
		return nil, recsys.ErrNoCandidates
	}

	// Deterministic order: combined desc, then price asc, then id asc.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Combined != recs[j].Combined {
			return recs[i].Combined > recs[j].Combined
		}
		if recs[i].Product.Price != recs[j].Product.Price {
			return recs[i].Product.Price < recs[j].Product.Price
		}
		return recs[i].Product.Id < recs[j].Product.Id
	})

	if k > 0 && len(recs) > k {
		recs = recs[:k]
	}
	return recs, nil
}

// preferredTagScore is the fraction of preferred tags present on the
// product, in [0,1]. No preferred tags means a neutral full score so soft
// ranking never penalizes an unconstrained session.
func preferredTagScore(p catalog.Product, preferred []string) float64 {
	if len(preferred) == 0 {
		return 1.0
	}
	matched := 0
	for _, tag := range preferred {
		if p.HasTag(tag) {
			matched++
		}
	}
	return float64(matched) / float64(len(preferred))
}
