package tracking

import "sort"

// UnknownComponent is reported when no component declaration can be found.
const UnknownComponent = "Unknown"

// Declaration is a function-like binding that may be a component.
type Declaration struct {
	Name string
	Line int
	// TopLevel is true when the declaration is not nested in any block.
	TopLevel bool
}

// Symbols holds what the extractor learned from the original source.
type Symbols struct {
	// Declarations lists every recognised declaration in source order.
	Declarations []Declaration
	// Updaters is the set of state updater names bound by state declarations.
	Updaters map[string]struct{}
}

// Component returns the first declaration of the file, the name used when
// a line cannot be attributed to a specific declaration.
func (s Symbols) Component() string {
	if len(s.Declarations) == 0 {
		return UnknownComponent
	}

	return s.Declarations[0].Name
}

// ComponentAt attributes a line of the original source to the nearest
// top-level declaration starting at or before it.
func (s Symbols) ComponentAt(line int) string {
	name := ""

	for _, decl := range s.Declarations {
		if decl.Line > line {
			break
		}

		if decl.TopLevel {
			name = decl.Name
		}
	}

	if name == "" {
		return s.Component()
	}

	return name
}

// UpdaterNames returns the updater set sorted by name.
func (s Symbols) UpdaterNames() []string {
	names := make([]string, 0, len(s.Updaters))
	for name := range s.Updaters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Extract derives component declarations and state updaters from tokens.
func Extract(tokens []Token) Symbols {
	syms := Symbols{Updaters: make(map[string]struct{})}
	depth := 0

	for i, tok := range tokens {
		switch tok.Kind {
		case LBrace:
			depth++
			continue
		case RBrace:
			depth--
			continue
		case Ident:
		default:
			continue
		}

		switch tok.Text {
		case "function":
			if name, ok := identAt(tokens, i+1); ok {
				syms.Declarations = append(syms.Declarations, Declaration{
					Name:     name.Text,
					Line:     name.Line,
					TopLevel: depth <= 0,
				})
			}
		case "const", "let", "var":
			if name, ok := boundFunction(tokens, i); ok {
				syms.Declarations = append(syms.Declarations, Declaration{
					Name:     name.Text,
					Line:     name.Line,
					TopLevel: depth <= 0,
				})
			}

			if updater, ok := stateUpdater(tokens, i); ok {
				syms.Updaters[updater] = struct{}{}
			}
		}
	}

	return syms
}

func identAt(tokens []Token, i int) (Token, bool) {
	if i < 0 || i >= len(tokens) || tokens[i].Kind != Ident {
		return Token{}, false
	}

	return tokens[i], true
}

func kindAt(tokens []Token, i int) Kind {
	if i < 0 || i >= len(tokens) {
		return Other
	}

	return tokens[i].Kind
}

// boundFunction matches `const Name [: Type] = (`, `= function`, `= async`
// and `= param =>` starting at the binding keyword.
func boundFunction(tokens []Token, i int) (Token, bool) {
	name, ok := identAt(tokens, i+1)
	if !ok {
		return Token{}, false
	}

	j := i + 2
	if kindAt(tokens, j) == Colon {
		j = skipTypeAnnotation(tokens, j+1)
	}

	if kindAt(tokens, j) != Assign {
		return Token{}, false
	}

	j++

	switch kindAt(tokens, j) {
	case LParen:
		return name, true
	case Ident:
		switch tokens[j].Text {
		case "function", "async":
			return name, true
		}

		if kindAt(tokens, j+1) == Arrow {
			return name, true
		}
	}

	return Token{}, false
}

// maxAnnotationTokens bounds the type annotation skip on malformed input.
const maxAnnotationTokens = 64

// skipTypeAnnotation returns the index of the `=` that ends a type
// annotation, or the index where the scan gave up.
func skipTypeAnnotation(tokens []Token, j int) int {
	nesting := 0

	for limit := j + maxAnnotationTokens; j < len(tokens) && j < limit; j++ {
		switch tokens[j].Kind {
		case Less, LParen, LBracket, LBrace:
			nesting++
		case Greater, RParen, RBracket, RBrace:
			nesting--
		case Assign:
			if nesting <= 0 {
				return j
			}
		case Semicolon:
			return j
		}
	}

	return j
}

// stateUpdater matches `const [value, updater] = useState(` starting at the
// binding keyword; `React.useState(` and `useState<T>(` are accepted too.
func stateUpdater(tokens []Token, i int) (string, bool) {
	j := i + 1
	if kindAt(tokens, j) != LBracket {
		return "", false
	}

	// First element: anything up to the comma at the top of the pattern.
	nesting, first, comma := 0, 0, -1

	for j++; j < len(tokens) && comma < 0; j++ {
		switch tokens[j].Kind {
		case LBracket, LBrace, LParen:
			nesting++
		case RBracket, RBrace, RParen:
			if nesting == 0 {
				return "", false
			}

			nesting--
		case Comma:
			if nesting == 0 {
				if first == 0 {
					return "", false
				}

				comma = j

				continue
			}
		}

		first++
	}

	if comma < 0 {
		return "", false
	}

	updater, ok := identAt(tokens, comma+1)
	if !ok || kindAt(tokens, comma+2) != RBracket || kindAt(tokens, comma+3) != Assign {
		return "", false
	}

	j = comma + 4
	if t, ok := identAt(tokens, j); ok && t.Text != StateMarker && kindAt(tokens, j+1) == Dot {
		j += 2
	}

	hook, ok := identAt(tokens, j)
	if !ok || hook.Text != StateMarker {
		return "", false
	}

	j++
	if kindAt(tokens, j) == Less {
		j = skipTypeArguments(tokens, j)
	}

	if kindAt(tokens, j) != LParen {
		return "", false
	}

	return updater.Text, true
}

// skipTypeArguments returns the index just past the `>` closing the type
// argument list that opens at j.
func skipTypeArguments(tokens []Token, j int) int {
	nesting := 0

	for limit := j + maxAnnotationTokens; j < len(tokens) && j < limit; j++ {
		switch tokens[j].Kind {
		case Less:
			nesting++
		case Greater:
			nesting--
			if nesting == 0 {
				return j + 1
			}
		case Semicolon, LBrace, RBrace:
			return j
		}
	}

	return j
}
