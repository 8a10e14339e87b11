package tracking

import (
	"strings"
	"testing"

	m "github.com/mouse-blink/butterfly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterSource = `
function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  }, []);
}
      `

var trackOnly = m.TransformOptions{TrackState: true}

func countCalls(code string) int {
	return strings.Count(code, TrackingHook+"({")
}

func countImports(code string) int {
	return strings.Count(code, "import { "+TrackingHook+" }")
}

func TestTransform_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		code string
		opts m.TransformOptions
	}{
		{
			name: "track state disabled",
			code: counterSource,
			opts: m.TransformOptions{TrackState: false, TrackEffect: true},
		},
		{
			name: "no state declaration",
			code: `
function Component() {
  useEffect(() => {
    console.log('hello');
  }, []);
}
`,
			opts: trackOnly,
		},
		{
			name: "no effect block",
			code: `
function Component() {
  const [count, setCount] = useState(0);
  return <button onClick={() => setCount(count + 1)}>Click</button>;
}
`,
			opts: trackOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Eligible(tt.code, tt.opts))
			assert.Nil(t, Transform(tt.code, tt.opts))
		})
	}
}

func TestTransform_Counter(t *testing.T) {
	code := `function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  }, []);
}`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)

	want := `import { __trackStateUpdate } from 'vite-plugin-butterfly-effect/runtime';
function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    __trackStateUpdate({ componentName: 'Counter', line: 5, timestamp: Date.now() }); setCount(count + 1);
  }, []);
}`

	assert.Equal(t, want, result.Code)
	assert.Nil(t, result.SourceMap)
	assert.True(t, result.ImportAdded)
	assert.Equal(t, "Counter", result.Component)
	assert.Equal(t, []string{"setCount"}, result.Updaters)
	assert.Equal(t, []m.Injection{{Line: 5, Column: 4, Component: "Counter", Updater: "setCount"}}, result.Injections)
}

func TestTransform_ComponentName(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "function declaration", code: counterSource, want: "Counter"},
		{
			name: "arrow function",
			code: `
const MyComponent = () => {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  }, []);
}
`,
			want: "MyComponent",
		},
		{
			name: "typed arrow function",
			code: `
export const Panel: React.FC<Props> = ({ open }) => {
  const [shown, setShown] = useState(open);
  useEffect(() => {
    setShown(open);
  }, [open]);
};
`,
			want: "Panel",
		},
		{
			name: "no declaration",
			code: `
export default memo(() => {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  }, []);
});
`,
			want: UnknownComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Transform(tt.code, trackOnly)
			require.NotNil(t, result)
			assert.Contains(t, result.Code, "componentName: '"+tt.want+"'")
		})
	}
}

func TestTransform_MultipleUpdaters(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);
  const [name, setName] = useState('');
  const [isOpen, setIsOpen] = useState(false);

  useEffect(() => {
    setCount(count + 1);
    setName('updated');
    setIsOpen(true);
  }, []);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 3, countCalls(result.Code))
	assert.Equal(t, []string{"setCount", "setIsOpen", "setName"}, result.Updaters)

	for _, line := range strings.Split(result.Code, "\n") {
		if strings.Contains(line, "setName('updated')") || strings.Contains(line, "setIsOpen(true)") {
			assert.Equal(t, 1, countCalls(line), line)
		}
	}
}

func TestTransform_OutsideEffectIsUntouched(t *testing.T) {
	code := `
function Counter() {
  const [count, setCount] = useState(0);

  const handleClick = () => {
    setCount(count + 1);
  };

  useEffect(() => {
    setCount(count + 1);
  }, []);

  return <button onClick={() => setCount(0)}>reset</button>;
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))

	lines := strings.Split(result.Code, "\n")
	// Line 7 after the import: the handler body.
	assert.Equal(t, "    setCount(count + 1);", lines[6])
	assert.Equal(t, "  return <button onClick={() => setCount(0)}>reset</button>;", lines[13])
	assert.Contains(t, lines[10], "componentName: 'Counter', line: 11")
}

func TestTransform_MultipleEffects(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);
  const [name, setName] = useState('');

  useEffect(() => {
    setCount(count + 1);
  }, []);

  useEffect(() => {
    setName('updated');
  }, [count]);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 2, countCalls(result.Code))
}

func TestTransform_Import(t *testing.T) {
	t.Run("adds import", func(t *testing.T) {
		result := Transform(counterSource, trackOnly)
		require.NotNil(t, result)
		assert.True(t, strings.HasPrefix(result.Code, "import { __trackStateUpdate } from 'vite-plugin-butterfly-effect/runtime';\n"))
	})

	t.Run("existing import is not duplicated", func(t *testing.T) {
		code := `
import { __trackStateUpdate } from 'vite-plugin-butterfly-effect/runtime';

function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(count + 1);
  }, []);
}
`
		result := Transform(code, trackOnly)
		require.NotNil(t, result)
		assert.False(t, result.ImportAdded)
		assert.Equal(t, 1, countImports(result.Code))
		assert.Equal(t, 1, countCalls(result.Code))
		assert.Contains(t, result.Code, "line: 7,")
	})

	t.Run("existing import and nothing to rewrite", func(t *testing.T) {
		code := `
import { __trackStateUpdate } from 'vite-plugin-butterfly-effect/runtime';

function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    console.log(count);
  }, [count]);
}
`
		assert.Nil(t, Transform(code, trackOnly))
	})

	t.Run("custom runtime module", func(t *testing.T) {
		opts := trackOnly
		opts.RuntimeModule = "@acme/butterfly-runtime"

		result := Transform(counterSource, opts)
		require.NotNil(t, result)
		assert.True(t, strings.HasPrefix(result.Code, "import { __trackStateUpdate } from '@acme/butterfly-runtime';\n"))
	})
}

func TestTransform_ImportOnly(t *testing.T) {
	code := `
function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    console.log(count);
  }, [count]);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.True(t, result.ImportAdded)
	assert.Empty(t, result.Injections)
	assert.Equal(t, 0, countCalls(result.Code))
}

func TestTransform_FixedPoint(t *testing.T) {
	first := Transform(counterSource, trackOnly)
	require.NotNil(t, first)

	assert.Nil(t, Transform(first.Code, trackOnly))
	assert.Equal(t, 1, countImports(first.Code))
}

func TestTransform_PreservesIndentation(t *testing.T) {
	result := Transform(counterSource, trackOnly)
	require.NotNil(t, result)
	assert.Contains(t, result.Code, "\n    __trackStateUpdate({")

	tabbed := "function Counter() {\n\tconst [count, setCount] = useState(0);\n\tuseEffect(() => {\n\t\tsetCount(1);\n\t}, []);\n}"
	result = Transform(tabbed, trackOnly)
	require.NotNil(t, result)
	assert.Contains(t, result.Code, "\n\t\t__trackStateUpdate({ componentName: 'Counter', line: 5, timestamp: Date.now() }); setCount(1);\n")
}

func TestTransform_NestedBlocks(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);

  useEffect(() => {
    if (count > 0) {
      for (const item of items) {
        setCount(count + item);
      }
    }
  }, [count]);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))
	assert.Contains(t, result.Code, "        __trackStateUpdate({")
}

func TestTransform_FunctionalUpdater(t *testing.T) {
	code := `
function Counter() {
  const [count, setCount] = useState(0);
  useEffect(() => {
    setCount(prev => prev + 1);
  }, []);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Contains(t, result.Code, "__trackStateUpdate({ componentName: 'Counter', line: 6, timestamp: Date.now() }); setCount(prev => prev + 1);")
}

func TestTransform_SingleLineEffect(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);
  useEffect(() => { setCount(count + 1); }, []);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))

	lines := strings.Split(result.Code, "\n")
	assert.Equal(t, "  __trackStateUpdate({ componentName: 'Component', line: 5, timestamp: Date.now() }); useEffect(() => { setCount(count + 1); }, []);", lines[4])
}

func TestTransform_ExpressionBodiedEffect(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);
  useEffect(() => setCount(count + 1), []);
  setCount(0);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))
	assert.Contains(t, result.Code, "\n  setCount(0);\n")
}

func TestTransform_UpdaterAfterEffectOnSameLine(t *testing.T) {
	code := `
function Component() {
  const [count, setCount] = useState(0);
  useEffect(() => { console.log(count); }, [count]); setCount(1);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 0, countCalls(result.Code))
}

func TestTransform_BracesInLiterals(t *testing.T) {
	code := "function Component() {\n" +
		"  const [label, setLabel] = useState('');\n" +
		"  useEffect(() => {\n" +
		"    console.log(\"}\"); // closing } in a comment\n" +
		"    /* { unbalanced { */\n" +
		"    const message = `value: ${label.length > 0 ? `{${label}}` : '}'}`;\n" +
		"    setLabel(message);\n" +
		"  }, [label]);\n" +
		"  setLabel('outside');\n" +
		"}\n"

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))
	assert.Contains(t, result.Code, "line: 8, timestamp: Date.now() }); setLabel(message);")
	assert.Contains(t, result.Code, "\n  setLabel('outside');\n")
}

func TestTransform_NestedEffects(t *testing.T) {
	code := `
function Component() {
  const [a, setA] = useState(0);
  const [b, setB] = useState(0);
  useEffect(() => {
    useEffect(() => {
      setA(1);
    }, []);
    setB(2);
  }, []);
  setB(3);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 2, countCalls(result.Code))
	assert.Contains(t, result.Code, "}); setB(2);")
	assert.Contains(t, result.Code, "\n  setB(3);\n")
}

func TestTransform_SeveralUpdatersOnOneLine(t *testing.T) {
	code := `
function Component() {
  const [a, setA] = useState(0);
  const [b, setB] = useState(0);
  useEffect(() => {
    setA(1); setB(2);
  }, []);
}
`

	t.Run("one call per invocation", func(t *testing.T) {
		result := Transform(code, trackOnly)
		require.NotNil(t, result)
		assert.Equal(t, 2, countCalls(result.Code))
		require.Len(t, result.Injections, 2)
		assert.Equal(t, "setA", result.Injections[0].Updater)
		assert.Equal(t, "setB", result.Injections[1].Updater)
	})

	t.Run("first match only", func(t *testing.T) {
		opts := trackOnly
		opts.FirstMatchOnly = true

		result := Transform(code, opts)
		require.NotNil(t, result)
		assert.Equal(t, 1, countCalls(result.Code))
		assert.Contains(t, result.Code, "}); setA(1); setB(2);")
	})
}

func TestTransform_MultipleComponents(t *testing.T) {
	code := `function First() {
  const [a, setA] = useState(0);
  useEffect(() => {
    setA(1);
  }, []);
}

const Second = () => {
  const [b, setB] = useState(0);
  useEffect(() => {
    setB(2);
  }, []);
};`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Contains(t, result.Code, "componentName: 'First', line: 5,")
	assert.Contains(t, result.Code, "componentName: 'Second', line: 12,")
	assert.Equal(t, "First", result.Component)
}

func TestTransform_HookVariants(t *testing.T) {
	code := `
export function Search() {
  const [query, setQuery] = React.useState<string>('');
  const [items, setItems] = useState<Item[]>([]);
  React.useEffect(() => {
    setItems(filter(query));
    store.setQuery(query);
  }, [query]);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, []string{"setItems", "setQuery"}, result.Updaters)
	assert.Equal(t, 1, countCalls(result.Code))
	assert.Contains(t, result.Code, "\n    store.setQuery(query);\n")
}

func TestTransform_CRLF(t *testing.T) {
	code := "function Counter() {\r\n  const [count, setCount] = useState(0);\r\n  useEffect(() => {\r\n    setCount(1);\r\n  }, []);\r\n}\r\n"

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Contains(t, result.Code, "\r\n    __trackStateUpdate({ componentName: 'Counter', line: 5, timestamp: Date.now() }); setCount(1);\r\n")
}

func TestTransform_StrayParenInJSXText(t *testing.T) {
	code := `
function Greeting() {
  const [n, setN] = useState(0);
  useEffect(() => {
    const msg = <p>Hi :) there</p>;
    setN(1);
  }, []);
}
`

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.Equal(t, 1, countCalls(result.Code))
	assert.Contains(t, result.Code, "line: 7, timestamp: Date.now() }); setN(1);")
}

func TestTransform_PartiallyTrackedLine(t *testing.T) {
	call := "__trackStateUpdate({ componentName: 'C', line: 6, timestamp: Date.now() });"
	code := "import { __trackStateUpdate } from 'vite-plugin-butterfly-effect/runtime';\n" +
		"function C() {\n" +
		"  const [n, setN] = useState(0);\n" +
		"  const [k, setK] = useState(0);\n" +
		"  useEffect(() => {\n" +
		"    " + call + " setN(1); setK(2);\n" +
		"  }, []);\n" +
		"}\n"

	result := Transform(code, trackOnly)
	require.NotNil(t, result)
	assert.False(t, result.ImportAdded)
	require.Len(t, result.Injections, 1)
	assert.Equal(t, "setK", result.Injections[0].Updater)
	assert.Equal(t, "C", result.Injections[0].Component)
	assert.Equal(t, 6, result.Injections[0].Line)

	lines := strings.Split(result.Code, "\n")
	assert.Equal(t, "    "+call+" "+call+" setN(1); setK(2);", lines[5])

	assert.Nil(t, Transform(result.Code, trackOnly))

	t.Run("first match only leaves tracked lines alone", func(t *testing.T) {
		opts := trackOnly
		opts.FirstMatchOnly = true

		assert.Nil(t, Transform(code, opts))
	})
}

func TestTransform_FirstMatchOnlyFixedPoint(t *testing.T) {
	code := `
function Component() {
  const [a, setA] = useState(0);
  const [b, setB] = useState(0);
  useEffect(() => {
    setA(1); setB(2);
  }, []);
}
`

	opts := trackOnly
	opts.FirstMatchOnly = true

	first := Transform(code, opts)
	require.NotNil(t, first)
	assert.Nil(t, Transform(first.Code, opts))
}
