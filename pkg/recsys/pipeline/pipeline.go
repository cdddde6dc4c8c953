// Package pipeline drives the turn-by-turn recommendation protocol:
// extract -> merge -> retrieve -> rank -> commit. It owns no state of its
// own beyond wiring and treats the extractor, index, and ranker as pure
// functions of their inputs.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/recsys/extract"
	"github.com/namhkse/recomending-system/pkg/recsys/rank"
	"github.com/namhkse/recomending-system/pkg/recsys/state"
	"github.com/namhkse/recomending-system/pkg/store"
)

// Config encapsulates the engine's tunables. Weights and relaxation order
// are policy, not fixed constants; bootstrap feeds them from configuration.
type Config struct {
	TopK            int
	Weights         rank.Weights
	MaxRelaxations  int
	ProviderTimeout time.Duration
}

// DefaultConfig returns the default engine tuning.
func DefaultConfig() Config {
	return Config{
		TopK:            5,
		Weights:         rank.DefaultWeights(),
		MaxRelaxations:  3,
		ProviderTimeout: 10 * time.Second,
	}
}

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	Items []rank.Recommendation

	// Delta is what the extractor recognized in this utterance.
	Delta store.Delta

	// Degraded means the embedding provider was unavailable and ordering
	// fell back to filter-only scoring.
	Degraded bool

	// Relaxed lists hard constraints dropped (most recent first) to
	// produce a nonempty result.
	Relaxed []string

	// Rejected lists constraint updates refused by the merge
	// (e.g. a price_max below the standing price_min).
	Rejected []string

	// Empty means no candidates survived even after bounded relaxation.
	Empty bool
}

// Pipeline wires the engine components for one deployment.
type Pipeline struct {
	extractor *extract.Extractor
	stateMgr  *state.Manager
	idx       *index.Index
	embedder  embedding.EmbeddingProvider
	cfg       Config
	logger    *log.Logger
}

func New(
	extractor *extract.Extractor,
	stateMgr *state.Manager,
	idx *index.Index,
	embedder embedding.EmbeddingProvider,
	cfg Config,
	logger *log.Logger,
) *Pipeline {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxRelaxations <= 0 {
		cfg.MaxRelaxations = 3
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 10 * time.Second
	}
	return &Pipeline{
		extractor: extractor,
		stateMgr:  stateMgr,
		idx:       idx,
		embedder:  embedder,
		cfg:       cfg,
		logger:    logger,
	}
}

// Turn processes one utterance against the session. On success the session
// state is committed (constraints merged, history appended); on an index
// error the session is left untouched so the caller can retry the turn.
func (p *Pipeline) Turn(ctx context.Context, session *store.Session, utterance string) (*TurnResult, error) {
	delta := p.extractor.Extract(utterance, session.Constraints)

	merged, rejected := state.Merge(session.Constraints, delta)
	if len(rejected) > 0 {
		p.logger.Printf("[PIPELINE] Rejected constraint update(s): %v", rejected)
	}

	queryText := delta.Query
	if queryText == "" {
		queryText = utterance
	}

	vector, degraded := p.embedQuery(ctx, queryText)

	candidates, err := p.retrieve(ctx, vector, merged, degraded)
	if err != nil {
		return nil, err
	}

	recs, rankErr := rank.Rank(candidates, merged, p.cfg.Weights, p.cfg.TopK)

	// Bounded LIFO relaxation: drop the most recently added hard
	// constraint and retry until something matches or the budget runs out.
	var relaxed []string
	for attempt := 0; errors.Is(rankErr, recsys.ErrNoCandidates) && attempt < p.cfg.MaxRelaxations; attempt++ {
		field, ok := state.Relax(&merged)
		if !ok {
			break
		}
		relaxed = append(relaxed, field)
		p.logger.Printf("[PIPELINE] No candidates, relaxed %q (%d/%d)", field, attempt+1, p.cfg.MaxRelaxations)

		candidates, err = p.retrieve(ctx, vector, merged, degraded)
		if err != nil {
			return nil, err
		}
		recs, rankErr = rank.Rank(candidates, merged, p.cfg.Weights, p.cfg.TopK)
	}

	empty := false
	if rankErr != nil {
		if !errors.Is(rankErr, recsys.ErrNoCandidates) {
			return nil, rankErr
		}
		empty = true
		recs = nil
	}

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Product.Id
	}

	p.stateMgr.Commit(session, merged, store.Turn{
		Utterance:      utterance,
		Delta:          delta,
		RecommendedIds: ids,
		At:             time.Now(),
	})

	return &TurnResult{
		Items:    recs,
		Delta:    delta,
		Degraded: degraded,
		Relaxed:  relaxed,
		Rejected: rejected,
		Empty:    empty,
	}, nil
}

// embedQuery generates the utterance embedding with a bounded timeout.
// Failure or timeout degrades the turn instead of failing it.
func (p *Pipeline) embedQuery(ctx context.Context, text string) ([]float32, bool) {
	embedCtx, cancel := context.WithTimeout(ctx, p.cfg.ProviderTimeout)
	defer cancel()

	res, err := p.embedder.Generate(embedCtx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		p.logger.Printf("[PIPELINE] %v: %v, degrading to filter-only ranking", recsys.ErrProviderUnavailable, err)
		return nil, true
	}
	if len(res.Embedding.Values) == 0 {
		p.logger.Printf("[PIPELINE] Provider returned empty vector, degrading to filter-only ranking")
		return nil, true
	}
	return res.Embedding.Values, false
}

func (p *Pipeline) retrieve(ctx context.Context, vector []float32, cs store.ConstraintSet, degraded bool) ([]index.Scored, error) {
	pred := index.FromConstraints(cs)
	if degraded {
		return p.idx.FilterOnly(ctx, pred, p.cfg.TopK)
	}
	return p.idx.Query(ctx, vector, pred, p.cfg.TopK)
}
