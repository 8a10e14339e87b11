// Package tracking instruments React component sources so that every state
// updater invoked inside an effect block reports itself to the tracking hook
// before it runs.
//
// The engine works on unparsed text. A small lexer skips strings, comments
// and template text, the extractor derives component names and updater
// names, and the scanner follows brace depth to decide which updater calls
// sit inside an effect callback. A callback with a block body ends at its
// closing brace; an expression body ends with the effect's argument list.
// Instrumented lines keep their
// indentation and gain a tracking statement in front of the original code:
//
//	useEffect(() => {
//	  __trackStateUpdate({ componentName: 'Counter', line: 5, timestamp: Date.now() }); setCount(count + 1);
//	}, []);
package tracking

import (
	"fmt"
	"strings"
	"unicode"

	m "github.com/mouse-blink/butterfly/internal/model"
)

const (
	// StateMarker is the state declaration hook.
	StateMarker = "useState"
	// EffectMarker is the effect registration hook.
	EffectMarker = "useEffect"
	// TrackingHook is the runtime function called before tracked updates.
	TrackingHook = "__trackStateUpdate"
	// DefaultRuntimeModule provides TrackingHook at runtime.
	DefaultRuntimeModule = "vite-plugin-butterfly-effect/runtime"
)

// ImportLine returns the import statement that brings the tracking hook
// into scope.
func ImportLine(runtimeModule string) string {
	if runtimeModule == "" {
		runtimeModule = DefaultRuntimeModule
	}

	return fmt.Sprintf("import { %s } from '%s';", TrackingHook, runtimeModule)
}

// TrackingCall returns the statement injected before an updater call.
func TrackingCall(component string, line int) string {
	return fmt.Sprintf("%s({ componentName: '%s', line: %d, timestamp: Date.now() });", TrackingHook, component, line)
}

// Eligible reports whether source is worth scanning at all.
func Eligible(source string, opts m.TransformOptions) bool {
	if !opts.TrackState {
		return false
	}

	return strings.Contains(source, StateMarker) && strings.Contains(source, EffectMarker)
}

// Transform instruments source. It returns nil when the file is not eligible
// or when nothing had to change, in which case the caller keeps the original
// text. Transform has no side effects and is safe for concurrent use.
func Transform(source string, opts m.TransformOptions) *m.TransformResult {
	if !Eligible(source, opts) {
		return nil
	}

	tokens := Tokenize(source)
	syms := Extract(tokens)
	calls := Scan(tokens, syms.Updaters)

	importAdded := !strings.Contains(source, TrackingHook)
	if !importAdded && len(calls) == 0 {
		return nil
	}

	shift := 0
	if importAdded {
		shift = 1
	}

	var tracked map[int]int
	if opts.FirstMatchOnly {
		tracked = trackedLines(tokens)
	}

	lines := strings.Split(source, "\n")
	injections := make([]m.Injection, 0, len(calls))

	for start := 0; start < len(calls); {
		line := calls[start].Line

		end := start
		for end < len(calls) && calls[end].Line == line {
			end++
		}

		onLine := calls[start:end]
		if opts.FirstMatchOnly {
			if tracked[line] > 0 {
				start = end
				continue
			}

			onLine = onLine[:1]
		}

		component := syms.ComponentAt(line)
		reported := line + shift

		for _, call := range onLine {
			injections = append(injections, m.Injection{
				Line:      reported,
				Column:    call.Col,
				Component: component,
				Updater:   call.Updater,
			})
		}

		lines[line-1] = rewriteLine(lines[line-1], TrackingCall(component, reported), len(onLine))
		start = end
	}

	if !importAdded && len(injections) == 0 {
		return nil
	}

	if importAdded {
		lines = append([]string{ImportLine(opts.RuntimeModule)}, lines...)
	}

	return &m.TransformResult{
		Code:        strings.Join(lines, "\n"),
		SourceMap:   nil,
		ImportAdded: importAdded,
		Component:   syms.Component(),
		Updaters:    syms.UpdaterNames(),
		Injections:  injections,
	}
}

// rewriteLine keeps the leading whitespace of line, then emits count tracking
// statements followed by the trimmed original code.
func rewriteLine(line, call string, count int) string {
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent := line[:len(line)-len(body)]

	eol := ""
	if strings.HasSuffix(body, "\r") {
		eol = "\r"
	}

	var b strings.Builder

	b.WriteString(indent)

	for range count {
		b.WriteString(call)
		b.WriteByte(' ')
	}

	b.WriteString(strings.TrimSpace(body))
	b.WriteString(eol)

	return b.String()
}
