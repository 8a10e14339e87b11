package tracking

// effectFrame records the cursor depths at the point an effect call starts.
// braced is set once the callback body block opens; from then on only the
// closing brace ends the frame.
type effectFrame struct {
	braceDepth int
	parenDepth int
	line       int
	braced     bool
}

// Cursor is the scanner state threaded through the token stream.
type Cursor struct {
	// BraceDepth is the number of unmatched `{` seen so far.
	BraceDepth int
	// ParenDepth is the number of unmatched `(` seen so far.
	ParenDepth int

	effects []effectFrame
}

// InsideEffect reports whether the cursor is lexically inside an effect call.
func (c *Cursor) InsideEffect() bool {
	return len(c.effects) > 0
}

// EffectEntryDepth is the brace depth recorded when the innermost open
// effect call started, or -1 outside any effect.
func (c *Cursor) EffectEntryDepth() int {
	if len(c.effects) == 0 {
		return -1
	}

	return c.effects[len(c.effects)-1].braceDepth
}

// Depth returns how many effect calls are currently open.
func (c *Cursor) Depth() int {
	return len(c.effects)
}

func (c *Cursor) enterEffect(line int) {
	c.effects = append(c.effects, effectFrame{
		braceDepth: c.BraceDepth,
		parenDepth: c.ParenDepth,
		line:       line,
	})
}

// openBrace marks the innermost frame braced when the brace opens directly
// in the effect's argument list, which is where the callback body starts.
func (c *Cursor) openBrace() {
	if n := len(c.effects); n > 0 {
		top := &c.effects[n-1]
		if !top.braced && c.BraceDepth == top.braceDepth && c.ParenDepth == top.parenDepth+1 {
			top.braced = true
		}
	}

	c.BraceDepth++
}

// closeBrace leaves every effect whose callback block the brace closes, and
// any effect whose enclosing block ends.
func (c *Cursor) closeBrace() {
	c.BraceDepth--

	for n := len(c.effects); n > 0; n = len(c.effects) {
		top := c.effects[n-1]
		if c.BraceDepth > top.braceDepth || (c.BraceDepth == top.braceDepth && !top.braced) {
			return
		}

		c.effects = c.effects[:n-1]
	}
}

func (c *Cursor) openParen() {
	c.ParenDepth++
}

// closeParen leaves every expression-bodied effect whose argument list the
// parenthesis closes. Braced effects ignore parentheses.
func (c *Cursor) closeParen() {
	c.ParenDepth--

	for n := len(c.effects); n > 0; n = len(c.effects) {
		top := c.effects[n-1]
		if top.braced || c.ParenDepth > top.parenDepth {
			return
		}

		c.effects = c.effects[:n-1]
	}
}

// UpdaterCall is an updater invocation found inside an effect.
type UpdaterCall struct {
	Updater string
	Line    int // 1-based line of the original source
	Col     int
	// Nesting is the number of effect calls enclosing the invocation.
	Nesting int
}

// Scan walks tokens once and returns, in source order, every invocation of a
// known updater that occurs inside an effect call. A line carrying k tracking
// calls already accounts for its first k invocations, so instrumented output
// scans clean.
func Scan(tokens []Token, updaters map[string]struct{}) []UpdaterCall {
	tracked := trackedLines(tokens)

	var (
		cur   Cursor
		calls []UpdaterCall
	)

	for i, tok := range tokens {
		switch tok.Kind {
		case LBrace:
			cur.openBrace()
		case RBrace:
			cur.closeBrace()
		case LParen:
			cur.openParen()
		case RParen:
			cur.closeParen()
		case Ident:
			if kindAt(tokens, i+1) != LParen {
				continue
			}

			if tok.Text == EffectMarker {
				cur.enterEffect(tok.Line)
				continue
			}

			if !cur.InsideEffect() || kindAt(tokens, i-1) == Dot {
				continue
			}

			if _, ok := updaters[tok.Text]; !ok {
				continue
			}

			if tracked[tok.Line] > 0 {
				tracked[tok.Line]--
				continue
			}

			calls = append(calls, UpdaterCall{
				Updater: tok.Text,
				Line:    tok.Line,
				Col:     tok.Col,
				Nesting: cur.Depth(),
			})
		}
	}

	return calls
}

// trackedLines counts the tracking calls on every line.
func trackedLines(tokens []Token) map[int]int {
	lines := make(map[int]int)

	for i, tok := range tokens {
		if tok.Kind == Ident && tok.Text == TrackingHook && kindAt(tokens, i+1) == LParen {
			lines[tok.Line]++
		}
	}

	return lines
}
