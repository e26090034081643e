package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meejain/da-crawl/internal/analyzer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   analyzer.Verdict
	}{
		{
			name:   "empty root",
			markup: `<body></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "whitespace only text",
			markup: `<body>   </body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "paragraph with words",
			markup: `<body><p>Hello world</p></body>`,
			want:   analyzer.VerdictSubstantive,
		},
		{
			name:   "single empty div child",
			markup: `<body><div></div></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "short text without any word",
			markup: `<body><p>12 34 56 78 90</p></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "short text with a word",
			markup: `<body><p>ok testing 12</p></body>`,
			want:   analyzer.VerdictSubstantive,
		},
		{
			// 8 characters but 24 bytes; the length rule counts characters.
			name:   "short multibyte text without any word",
			markup: `<body><p>★★ ★★ ★★</p></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "long multibyte text without latin words",
			markup: `<body><p>★★★★★ ★★★★★ ★★★★★ ★★★★★</p></body>`,
			want:   analyzer.VerdictSubstantive,
		},
		{
			name:   "single child with nested empty markup",
			markup: `<body><div><span>  </span></div></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "main element preferred over body",
			markup: `<body><header>site navigation header</header><main></main></body>`,
			want:   analyzer.VerdictBlank,
		},
		{
			name:   "substantive main element",
			markup: `<body><main><p>Some real content worth keeping around.</p></main></body>`,
			want:   analyzer.VerdictSubstantive,
		},
		{
			name:   "long text split across elements",
			markup: `<body><h1>Getting started</h1><p>Install the tool and run it.</p></body>`,
			want:   analyzer.VerdictSubstantive,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := analyzer.Parse([]byte(tc.markup))
			require.NoError(t, err)
			assert.Equal(t, tc.want, analyzer.Classify(doc))
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	doc, err := analyzer.Parse([]byte(`<body><p>Hello world</p></body>`))
	require.NoError(t, err)

	first := analyzer.Classify(doc)
	second := analyzer.Classify(doc)
	assert.Equal(t, first, second, "classify must be a pure function of content")
}

func TestDocument_View(t *testing.T) {
	doc, err := analyzer.Parse([]byte(`<body><main class="page"><p>One</p> <p>Two   words</p></main></body>`))
	require.NoError(t, err)

	assert.Equal(t, "One Two words", doc.Text())
	assert.Equal(t, 2, doc.ChildCount())

	outer, err := doc.OuterHTML()
	require.NoError(t, err)
	assert.Contains(t, outer, `<main class="page">`)
	assert.Contains(t, outer, `</main>`)
}

func TestInspect(t *testing.T) {
	anal := analyzer.New()

	t.Run("substantive document yields payload", func(t *testing.T) {
		verdict, payload, err := anal.Inspect([]byte(`<body><main><p>Hello world again</p></main></body>`))
		require.NoError(t, err)
		assert.Equal(t, analyzer.VerdictSubstantive, verdict)
		assert.Contains(t, payload, "<main>")
		assert.Contains(t, payload, "<p>Hello world again</p>")
	})

	t.Run("blank document yields no payload", func(t *testing.T) {
		verdict, payload, err := anal.Inspect([]byte(`<body><div></div></body>`))
		require.NoError(t, err)
		assert.Equal(t, analyzer.VerdictBlank, verdict)
		assert.Empty(t, payload)
	})
}
