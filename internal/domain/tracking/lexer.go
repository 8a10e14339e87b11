package tracking

// Kind classifies a significant token.
type Kind int

// Token kinds emitted by the lexer. Whitespace, comments and string or
// template text never produce tokens.
const (
	Ident Kind = iota
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Less
	Greater
	Dot
	Comma
	Colon
	Semicolon
	Assign
	Arrow
	Other
)

var kindNames = [...]string{
	Ident:     "ident",
	LBrace:    "{",
	RBrace:    "}",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	Less:      "<",
	Greater:   ">",
	Dot:       ".",
	Comma:     ",",
	Colon:     ":",
	Semicolon: ";",
	Assign:    "=",
	Arrow:     "=>",
	Other:     "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Token is a significant lexeme with its position in the source.
type Token struct {
	Kind Kind
	Text string
	Line int // 1-based
	Col  int // 0-based byte column
}

// lexer produces tokens from unparsed JavaScript/TypeScript text. It is not a
// parser: it only needs to know which braces and parentheses are code, so
// string, comment and template text is skipped. Regex literals are not
// recognised.
type lexer struct {
	cur cursor
	// substitutions holds, for every open template substitution `${`, the
	// number of unmatched code braces opened inside it.
	substitutions []int
}

// Tokenize returns the significant tokens of src in source order.
func Tokenize(src string) []Token {
	lx := &lexer{cur: newCursor(src)}

	var tokens []Token

	for {
		tok, ok := lx.next()
		if !ok {
			return tokens
		}

		tokens = append(tokens, tok)
	}
}

func (lx *lexer) next() (Token, bool) {
	for {
		lx.skipSpace()

		if lx.cur.eof() {
			return Token{}, false
		}

		b0, b1, _ := lx.cur.peek2()

		switch {
		case b0 == '/' && b1 == '/':
			lx.skipLineComment()
		case b0 == '/' && b1 == '*':
			lx.skipBlockComment()
		case b0 == '\'' || b0 == '"':
			lx.skipQuoted(b0)
		case b0 == '`':
			lx.cur.bump()
			lx.skipTemplate()
		case b0 == '}' && lx.closesSubstitution():
			lx.cur.bump()
			lx.substitutions = lx.substitutions[:len(lx.substitutions)-1]
			lx.skipTemplate()
		case isIdentStart(b0):
			return lx.scanIdent(), true
		case isDigit(b0):
			return lx.scanNumber(), true
		default:
			return lx.scanPunct(), true
		}
	}
}

func (lx *lexer) closesSubstitution() bool {
	n := len(lx.substitutions)

	return n > 0 && lx.substitutions[n-1] == 0
}

func (lx *lexer) skipSpace() {
	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			lx.cur.bump()
		default:
			return
		}
	}
}

func (lx *lexer) skipLineComment() {
	for !lx.cur.eof() && lx.cur.peek() != '\n' {
		lx.cur.bump()
	}
}

func (lx *lexer) skipBlockComment() {
	lx.cur.bump()
	lx.cur.bump()

	for !lx.cur.eof() {
		b0, b1, ok := lx.cur.peek2()
		if ok && b0 == '*' && b1 == '/' {
			lx.cur.bump()
			lx.cur.bump()

			return
		}

		lx.cur.bump()
	}
}

// skipQuoted consumes a quoted string. An unterminated string ends at the
// end of its line so a stray apostrophe in JSX text only affects one line.
func (lx *lexer) skipQuoted(quote byte) {
	lx.cur.bump()

	for !lx.cur.eof() {
		switch lx.cur.peek() {
		case quote:
			lx.cur.bump()
			return
		case '\\':
			lx.cur.bump()
			lx.cur.bump()
		case '\n':
			return
		default:
			lx.cur.bump()
		}
	}
}

// skipTemplate consumes template text up to the closing backtick or up to
// the start of a substitution, whose code is then tokenised normally.
func (lx *lexer) skipTemplate() {
	for !lx.cur.eof() {
		b0, b1, _ := lx.cur.peek2()

		switch {
		case b0 == '`':
			lx.cur.bump()
			return
		case b0 == '\\':
			lx.cur.bump()
			lx.cur.bump()
		case b0 == '$' && b1 == '{':
			lx.cur.bump()
			lx.cur.bump()
			lx.substitutions = append(lx.substitutions, 0)

			return
		default:
			lx.cur.bump()
		}
	}
}

func (lx *lexer) scanIdent() Token {
	line, col, start := lx.cur.line, lx.cur.col(), lx.cur.off

	for !lx.cur.eof() && isIdentContinue(lx.cur.peek()) {
		lx.cur.bump()
	}

	return Token{Kind: Ident, Text: lx.cur.src[start:lx.cur.off], Line: line, Col: col}
}

func (lx *lexer) scanNumber() Token {
	line, col, start := lx.cur.line, lx.cur.col(), lx.cur.off

	for !lx.cur.eof() {
		b := lx.cur.peek()
		if !isIdentContinue(b) && b != '.' {
			break
		}

		lx.cur.bump()
	}

	return Token{Kind: Other, Text: lx.cur.src[start:lx.cur.off], Line: line, Col: col}
}

func (lx *lexer) scanPunct() Token {
	line, col, start := lx.cur.line, lx.cur.col(), lx.cur.off
	b0, b1, _ := lx.cur.peek2()
	lx.cur.bump()

	kind := Other

	switch b0 {
	case '{':
		kind = LBrace
		if n := len(lx.substitutions); n > 0 {
			lx.substitutions[n-1]++
		}
	case '}':
		kind = RBrace
		if n := len(lx.substitutions); n > 0 {
			lx.substitutions[n-1]--
		}
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	case '[':
		kind = LBracket
	case ']':
		kind = RBracket
	case '<':
		kind = Less
	case '>':
		kind = Greater
	case '.':
		kind = Dot
	case ',':
		kind = Comma
	case ':':
		kind = Colon
	case ';':
		kind = Semicolon
	case '?':
		if b1 == '.' {
			lx.cur.bump()
			kind = Dot
		}
	case '=':
		switch b1 {
		case '>':
			lx.cur.bump()
			kind = Arrow
		case '=':
			for lx.cur.peek() == '=' {
				lx.cur.bump()
			}
		default:
			kind = Assign
		}
	}

	return Token{Kind: kind, Text: lx.cur.src[start:lx.cur.off], Line: line, Col: col}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
