package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/butterfly/internal/adapter"
	adaptermocks "github.com/mouse-blink/butterfly/internal/adapter/mocks"
	"github.com/mouse-blink/butterfly/internal/logging"
	m "github.com/mouse-blink/butterfly/internal/model"
)

// countingPipeline wraps a real pipeline and counts Process calls.
type countingPipeline struct {
	Pipeline
	calls int
}

func (p *countingPipeline) Process(id string, code string) m.Outcome {
	p.calls++
	return p.Pipeline.Process(id, code)
}

func newCountingPipeline() *countingPipeline {
	return &countingPipeline{Pipeline: NewPipeline(enabledOptions(), logging.Discard())}
}

func counterSourceAt(path m.Path) m.Source {
	return m.Source{Origin: &m.File{Path: path}, Root: "/proj/src"}
}

func TestInstrumenter_Process_NoOrigin(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	in := NewInstrumenter(fs, nil, newCountingPipeline(), logging.Discard())

	_, err := in.Process(m.Source{}, true)
	assert.ErrorIs(t, err, errNoOrigin)
}

func TestInstrumenter_Process_ReadError(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	boom := errors.New("permission denied")

	fs.EXPECT().ReadFile(m.Path("/proj/src/Counter.tsx")).Return(nil, boom)

	in := NewInstrumenter(fs, nil, newCountingPipeline(), logging.Discard())

	_, err := in.Process(counterSourceAt("/proj/src/Counter.tsx"), true)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "read /proj/src/Counter.tsx")
}

func TestInstrumenter_Process_WithoutCache(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	fs.EXPECT().ReadFile(m.Path("/proj/src/Counter.tsx")).Return([]byte(counterComponent), nil)

	pipe := newCountingPipeline()
	in := NewInstrumenter(fs, nil, pipe, logging.Discard())

	got, err := in.Process(counterSourceAt("/proj/src/Counter.tsx"), true)
	require.NoError(t, err)

	assert.Equal(t, 1, pipe.calls)
	assert.False(t, got.Cached)
	assert.Equal(t, []byte(counterComponent), got.Original)
	assert.Equal(t, m.OutcomeTransformed, got.Outcome.Kind)
	assert.Equal(t, m.Path("/proj/src/Counter.tsx"), got.Source.Origin.Path)
}

func TestInstrumenter_Process_CacheHit(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	cache := adaptermocks.NewMockTransformCache(t)
	pipe := newCountingPipeline()

	path := m.Path("/proj/src/Counter.tsx")
	key := adapter.CacheKey(string(path), contentHash([]byte(counterComponent)), pipe.Fingerprint())
	cached := m.CacheEntry{Kind: m.OutcomeTransformed, Result: &m.TransformResult{Code: "cached code"}}

	fs.EXPECT().ReadFile(path).Return([]byte(counterComponent), nil)
	cache.EXPECT().Get(key).Return(cached, true, nil)

	in := NewInstrumenter(fs, cache, pipe, logging.Discard())

	got, err := in.Process(counterSourceAt(path), true)
	require.NoError(t, err)

	assert.Equal(t, 0, pipe.calls)
	assert.True(t, got.Cached)
	assert.Equal(t, m.OutcomeTransformed, got.Outcome.Kind)
	assert.Equal(t, "cached code", got.Outcome.Result.Code)
}

func TestInstrumenter_Process_CacheMissStoresOutcome(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	cache := adaptermocks.NewMockTransformCache(t)
	pipe := newCountingPipeline()

	path := m.Path("/proj/src/Counter.tsx")
	key := adapter.CacheKey(string(path), contentHash([]byte(counterComponent)), pipe.Fingerprint())

	fs.EXPECT().ReadFile(path).Return([]byte(counterComponent), nil)
	cache.EXPECT().Get(key).Return(m.CacheEntry{}, false, nil)
	cache.EXPECT().Put(key, mock.MatchedBy(func(entry m.CacheEntry) bool {
		return entry.Kind == m.OutcomeTransformed && entry.Result != nil && len(entry.Result.Injections) == 1
	})).Return(nil)

	in := NewInstrumenter(fs, cache, pipe, logging.Discard())

	got, err := in.Process(counterSourceAt(path), true)
	require.NoError(t, err)

	assert.Equal(t, 1, pipe.calls)
	assert.False(t, got.Cached)
}

func TestInstrumenter_Process_CacheErrorsAreNotFatal(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	cache := adaptermocks.NewMockTransformCache(t)
	pipe := newCountingPipeline()

	path := m.Path("/proj/src/Title.jsx")

	fs.EXPECT().ReadFile(path).Return([]byte(staticComponent), nil)
	cache.EXPECT().Get(mock.Anything).Return(m.CacheEntry{}, false, errors.New("corrupt entry"))
	cache.EXPECT().Put(mock.Anything, m.CacheEntry{Kind: m.OutcomeUnchanged}).Return(errors.New("disk full"))

	in := NewInstrumenter(fs, cache, pipe, logging.Discard())

	got, err := in.Process(counterSourceAt(path), true)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeUnchanged, got.Outcome.Kind)
}

func TestInstrumenter_Process_CacheDisabledForCall(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	cache := adaptermocks.NewMockTransformCache(t)
	pipe := newCountingPipeline()

	fs.EXPECT().ReadFile(m.Path("/proj/src/Counter.tsx")).Return([]byte(counterComponent), nil)

	in := NewInstrumenter(fs, cache, pipe, logging.Discard())

	got, err := in.Process(counterSourceAt("/proj/src/Counter.tsx"), false)
	require.NoError(t, err)

	assert.Equal(t, 1, pipe.calls)
	assert.False(t, got.Cached)
	cache.AssertNotCalled(t, "Get", mock.Anything)
}

func TestInstrumenter_Process_FailedOutcomeIsNotCached(t *testing.T) {
	fs := adaptermocks.NewMockSourceFSAdapter(t)
	cache := adaptermocks.NewMockTransformCache(t)

	failing := &pipeline{
		opts:   enabledOptions(),
		logger: logging.Discard(),
		transform: func(string, m.TransformOptions) *m.TransformResult {
			panic("boom")
		},
	}

	fs.EXPECT().ReadFile(m.Path("/proj/src/Counter.tsx")).Return([]byte(counterComponent), nil)
	cache.EXPECT().Get(mock.Anything).Return(m.CacheEntry{}, false, nil)

	in := NewInstrumenter(fs, cache, failing, logging.Discard())

	got, err := in.Process(counterSourceAt("/proj/src/Counter.tsx"), true)
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeFailed, got.Outcome.Kind)
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
