// Package domain holds the instrumentation workflow: the host pipeline that
// decides what happens to each file, the instrumenter that ties it to the
// filesystem and the transform cache, and the commands built on top.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phuslu/log"

	"github.com/mouse-blink/butterfly/internal/domain/tracking"
	m "github.com/mouse-blink/butterfly/internal/model"
)

// DefaultOverlayImport is the module id entry files import to boot the overlay.
const DefaultOverlayImport = "virtual:butterfly-effect-overlay"

var (
	entryFilePattern     = regexp.MustCompile(`/main\.(ts|tsx|js|jsx)$`)
	componentFilePattern = regexp.MustCompile(`\.(jsx|tsx)$`)
)

// Pipeline decides, per file, whether to instrument, bootstrap the overlay
// or leave the file alone. It never fails a build: engine failures are
// logged and reported as OutcomeFailed with the original text kept.
type Pipeline interface {
	Process(id string, code string) m.Outcome
	// Load returns the content of a virtual module served by the pipeline.
	Load(id string) (string, bool)
	// Fingerprint identifies the options that influence Process output.
	Fingerprint() string
}

type transformFunc func(source string, opts m.TransformOptions) *m.TransformResult

type pipeline struct {
	opts        m.PipelineOptions
	logger      *log.Logger
	transform   transformFunc
	fingerprint string
}

// NewPipeline constructs a Pipeline around the tracking engine.
func NewPipeline(opts m.PipelineOptions, logger *log.Logger) Pipeline {
	if opts.OverlayImport == "" {
		opts.OverlayImport = DefaultOverlayImport
	}

	return &pipeline{
		opts:        opts,
		logger:      logger,
		transform:   tracking.Transform,
		fingerprint: fingerprintOptions(opts),
	}
}

func (p *pipeline) Process(id string, code string) (outcome m.Outcome) {
	if !p.opts.Enabled {
		return m.Outcome{Kind: m.OutcomeSkipped}
	}

	slashed := filepath.ToSlash(id)

	if entryFilePattern.MatchString(slashed) {
		return p.bootstrapEntry(code)
	}

	if !componentFilePattern.MatchString(slashed) {
		return m.Outcome{Kind: m.OutcomeSkipped}
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("file", id).Str("panic", fmt.Sprint(r)).Msg("transform failed, keeping original source")

			outcome = m.Outcome{
				Kind: m.OutcomeFailed,
				Err:  fmt.Errorf("transform %s: %v", id, r),
			}
		}
	}()

	result := p.transform(code, p.opts.Transform)
	if result == nil {
		return m.Outcome{Kind: m.OutcomeUnchanged}
	}

	p.logger.Debug().Str("file", id).Int("injections", len(result.Injections)).Msg("instrumented")

	return m.Outcome{Kind: m.OutcomeTransformed, Result: result}
}

func (p *pipeline) bootstrapEntry(code string) m.Outcome {
	statement := fmt.Sprintf("import '%s';", p.opts.OverlayImport)
	if strings.Contains(code, statement) {
		return m.Outcome{Kind: m.OutcomeUnchanged}
	}

	return m.Outcome{
		Kind:   m.OutcomeEntry,
		Result: &m.TransformResult{Code: statement + "\n" + code},
	}
}

func (p *pipeline) Load(id string) (string, bool) {
	if !p.opts.Enabled || id != p.opts.OverlayImport {
		return "", false
	}

	return RenderOverlayModule(p.opts.Overlay), true
}

func (p *pipeline) Fingerprint() string {
	return p.fingerprint
}

func fingerprintOptions(opts m.PipelineOptions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", opts)))

	return hex.EncodeToString(sum[:8])
}
