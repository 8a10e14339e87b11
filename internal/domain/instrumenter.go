package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"github.com/mouse-blink/butterfly/internal/adapter"
	m "github.com/mouse-blink/butterfly/internal/model"
)

var errNoOrigin = errors.New("source has no origin file")

// Instrumenter runs a single source file through the pipeline, reusing
// cached outcomes when the content and options have not changed.
type Instrumenter interface {
	Process(source m.Source, useCache bool) (m.FileOutcome, error)
}

type instrumenter struct {
	fs       adapter.SourceFSAdapter
	cache    adapter.TransformCache
	pipeline Pipeline
	logger   *log.Logger
}

// NewInstrumenter creates an Instrumenter. cache may be nil.
func NewInstrumenter(fs adapter.SourceFSAdapter, cache adapter.TransformCache, pipeline Pipeline, logger *log.Logger) Instrumenter {
	return &instrumenter{
		fs:       fs,
		cache:    cache,
		pipeline: pipeline,
		logger:   logger,
	}
}

func (in *instrumenter) Process(source m.Source, useCache bool) (m.FileOutcome, error) {
	if source.Origin == nil {
		return m.FileOutcome{}, errNoOrigin
	}

	path := source.Origin.Path

	code, err := in.fs.ReadFile(path)
	if err != nil {
		return m.FileOutcome{}, fmt.Errorf("read %s: %w", path, err)
	}

	result := m.FileOutcome{Source: source, Original: code}

	useCache = useCache && in.cache != nil

	var key string

	if useCache {
		key = adapter.CacheKey(string(path), contentHash(code), in.pipeline.Fingerprint())

		entry, ok, err := in.cache.Get(key)
		if err != nil {
			in.logger.Warn().Err(err).Str("file", string(path)).Msg("cache read failed")
		}

		if ok {
			result.Outcome = m.Outcome{Kind: entry.Kind, Result: entry.Result}
			result.Cached = true

			return result, nil
		}
	}

	result.Outcome = in.pipeline.Process(string(path), string(code))

	if useCache && result.Outcome.Kind != m.OutcomeFailed {
		entry := m.CacheEntry{Kind: result.Outcome.Kind, Result: result.Outcome.Result}
		if err := in.cache.Put(key, entry); err != nil {
			in.logger.Warn().Err(err).Str("file", string(path)).Msg("cache write failed")
		}
	}

	return result, nil
}

func contentHash(code []byte) string {
	sum := sha256.Sum256(code)

	return hex.EncodeToString(sum[:])
}
