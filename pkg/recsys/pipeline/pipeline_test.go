package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namhkse/recomending-system/pkg/catalog"
	"github.com/namhkse/recomending-system/pkg/embedding"
	"github.com/namhkse/recomending-system/pkg/index"
	"github.com/namhkse/recomending-system/pkg/recsys"
	"github.com/namhkse/recomending-system/pkg/recsys/extract"
	"github.com/namhkse/recomending-system/pkg/recsys/state"
	"github.com/namhkse/recomending-system/pkg/store"
)

type failingEmbedder struct{}

func (failingEmbedder) Generate(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
	return nil, errors.New("provider offline")
}

type brokenBackend struct{}

func (brokenBackend) Search(context.Context, []float32, int, *index.Predicate) ([]index.Scored, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) Filter(context.Context, *index.Predicate, int) ([]index.Scored, error) {
	return nil, errors.New("connection refused")
}
func (brokenBackend) Replace(context.Context, []catalog.Product) error { return nil }
func (brokenBackend) Upsert(context.Context, catalog.Product) error    { return nil }

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newPipeline(t *testing.T, backend index.Backend, embedder embedding.EmbeddingProvider) *Pipeline {
	t.Helper()
	products := catalog.Sample()
	if backend == nil {
		b := index.NewMemoryBackend()
		require.NoError(t, b.Replace(context.Background(), products))
		backend = b
	}
	if embedder == nil {
		embedder = embedding.NewHashProvider(64)
	}

	vocab := extract.NewVocabulary(products)
	return New(
		extract.NewExtractor(vocab, testLogger()),
		state.NewManager(state.DefaultMaxTurns, testLogger()),
		index.New(backend, index.DefaultPoolRetries, testLogger()),
		embedder,
		DefaultConfig(),
		testLogger(),
	)
}

func TestTurnCommitsConstraintsAndHistory(t *testing.T) {
	p := newPipeline(t, nil, nil)
	session := state.NewSession("s1")

	res, err := p.Turn(context.Background(), session, "I need a phone under $1200 for photography")
	require.NoError(t, err)
	require.NotEmpty(t, res.Items)

	assert.Equal(t, store.PhasePartial, session.Phase)
	assert.Equal(t, catalog.CategoryPhone, session.Constraints.Category)
	require.NotNil(t, session.Constraints.PriceMax)
	assert.Equal(t, 1200.0, *session.Constraints.PriceMax)
	require.Len(t, session.Turns, 1)
	assert.Equal(t, "I need a phone under $1200 for photography", session.Turns[0].Utterance)
	assert.NotEmpty(t, session.Turns[0].RecommendedIds)

	for _, item := range res.Items {
		assert.Equal(t, catalog.CategoryPhone, item.Product.Category)
		assert.LessOrEqual(t, item.Product.Price, 1200.0)
	}
}

func TestTurnRefinementNarrowsPriorResults(t *testing.T) {
	p := newPipeline(t, nil, nil)
	session := state.NewSession("s1")

	_, err := p.Turn(context.Background(), session, "show me laptops")
	require.NoError(t, err)

	res, err := p.Turn(context.Background(), session, "under $1500 please")
	require.NoError(t, err)

	// category carries over from the first turn
	assert.Equal(t, catalog.CategoryLaptop, session.Constraints.Category)
	for _, item := range res.Items {
		assert.Equal(t, catalog.CategoryLaptop, item.Product.Category)
		assert.LessOrEqual(t, item.Product.Price, 1500.0)
	}
	assert.Len(t, session.Turns, 2)
}

func TestTurnDegradedOnEmbedFailure(t *testing.T) {
	p := newPipeline(t, nil, failingEmbedder{})
	session := state.NewSession("s1")

	res, err := p.Turn(context.Background(), session, "a tablet under $600")
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	require.NotEmpty(t, res.Items)
	for _, item := range res.Items {
		assert.Equal(t, catalog.CategoryTablet, item.Product.Category)
		assert.LessOrEqual(t, item.Product.Price, 600.0)
		assert.Zero(t, item.Similarity)
	}
	// degraded ordering falls back to price ascending
	for i := 1; i < len(res.Items); i++ {
		assert.GreaterOrEqual(t, res.Items[i].Product.Price, res.Items[i-1].Product.Price)
	}
	// a degraded turn still commits
	assert.Len(t, session.Turns, 1)
}

func TestTurnRelaxationRecoversFromOverConstraint(t *testing.T) {
	p := newPipeline(t, nil, nil)
	session := state.NewSession("s1")

	// no phone in the sample catalog costs under $50
	res, err := p.Turn(context.Background(), session, "a phone under $50")
	require.NoError(t, err)

	require.NotEmpty(t, res.Relaxed, "expected the price bound to be relaxed")
	assert.Equal(t, "price_max", res.Relaxed[0])
	assert.NotEmpty(t, res.Items)
	assert.LessOrEqual(t, len(res.Relaxed), DefaultConfig().MaxRelaxations)

	// the committed constraints reflect what was actually used
	assert.Nil(t, session.Constraints.PriceMax)
	assert.Equal(t, catalog.CategoryPhone, session.Constraints.Category)
}

func TestTurnRelaxationBounded(t *testing.T) {
	// backend with nothing in it: relaxation can never help, so the loop
	// must stop at the budget (or when no constraints remain) and report
	// an empty result rather than spin.
	empty := index.NewMemoryBackend()
	p := newPipeline(t, empty, nil)
	session := state.NewSession("s1")

	res, err := p.Turn(context.Background(), session, "an Apple phone under $900 that must have wireless charging")
	require.NoError(t, err)

	assert.True(t, res.Empty)
	assert.Empty(t, res.Items)
	assert.LessOrEqual(t, len(res.Relaxed), DefaultConfig().MaxRelaxations)
	// empty turns still commit so the user can keep refining
	assert.Len(t, session.Turns, 1)
	assert.Empty(t, session.Turns[0].RecommendedIds)
}

func TestTurnIndexErrorLeavesSessionUntouched(t *testing.T) {
	p := newPipeline(t, brokenBackend{}, nil)
	session := state.NewSession("s1")

	_, err := p.Turn(context.Background(), session, "a phone under $1200")
	require.Error(t, err)
	assert.True(t, errors.Is(err, recsys.ErrIndexUnavailable))

	assert.Equal(t, store.PhaseEmpty, session.Phase)
	assert.True(t, session.Constraints.IsEmpty())
	assert.Empty(t, session.Turns)
}

func TestTurnResetClearsConstraints(t *testing.T) {
	p := newPipeline(t, nil, nil)
	session := state.NewSession("s1")

	_, err := p.Turn(context.Background(), session, "a Samsung phone under $1000")
	require.NoError(t, err)
	require.False(t, session.Constraints.IsEmpty())

	res, err := p.Turn(context.Background(), session, "actually, let's start over")
	require.NoError(t, err)

	assert.True(t, res.Delta.Reset)
	assert.True(t, session.Constraints.IsEmpty())
	assert.Len(t, session.Turns, 2, "reset keeps conversation history")
}

func TestTurnRejectedBoundSurfaced(t *testing.T) {
	p := newPipeline(t, nil, nil)
	session := state.NewSession("s1")

	_, err := p.Turn(context.Background(), session, "a laptop over $1500")
	require.NoError(t, err)

	res, err := p.Turn(context.Background(), session, "under $1000")
	require.NoError(t, err)

	assert.Contains(t, res.Rejected, store.FieldPriceMax)
	require.NotNil(t, session.Constraints.PriceMin)
	assert.Equal(t, 1500.0, *session.Constraints.PriceMin)
	assert.Nil(t, session.Constraints.PriceMax)
}
