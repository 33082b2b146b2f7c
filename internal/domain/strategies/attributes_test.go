package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

func TestGlobSource(t *testing.T) {
	tests := []struct {
		glob    string
		matches []string
		misses  []string
	}{
		{glob: "*.js", matches: []string{"a.js", "src/a.js"}, misses: []string{"a.jsx", "js"}},
		{glob: "/build/*.js", matches: []string{"build/a.js"}, misses: []string{"src/build/a.js", "build/sub/a.js"}},
		{glob: "docs/**/*.md", matches: []string{"docs/a.md", "docs/x/y/a.md"}, misses: []string{"a.md", "src/docs/a.md"}},
		{glob: "file?.txt", matches: []string{"file1.txt"}, misses: []string{"file10.txt"}},
		{glob: "[!a]*.c", matches: []string{"b.c", "lib/main.c"}, misses: []string{"a.c"}},
		{glob: "Makefile.in", matches: []string{"Makefile.in", "sub/Makefile.in"}, misses: []string{"MakefileXin"}},
	}

	for _, tt := range tests {
		t.Run(tt.glob, func(t *testing.T) {
			pattern, err := m.CompilePattern(globSource(tt.glob), 0)
			require.NoError(t, err)

			for _, subject := range tt.matches {
				assert.True(t, pattern.Match(subject), "%s should match %s", tt.glob, subject)
			}

			for _, subject := range tt.misses {
				assert.False(t, pattern.Match(subject), "%s should not match %s", tt.glob, subject)
			}
		})
	}
}

func TestParseAttributes(t *testing.T) {
	data := []byte(`# generated files
*.es6 linguist-language=JavaScript

/vendor/** linguist-vendored
*.tmpl text eol=lf linguist-language=Go
*.bad linguist-language=
`)

	assert.Equal(t, []attribute{
		{glob: "*.es6", language: "JavaScript"},
		{glob: "*.tmpl", language: "Go"},
	}, parseAttributes(data))
}

func TestAttributeSet_Diff(t *testing.T) {
	a, b := &m.Icon{ClassName: "a"}, &m.Icon{ClassName: "b"}

	previous := attributeSet{
		{source: "*.x", icon: a},
		{source: "*.y", icon: a},
		{source: "*.z", icon: b},
	}
	next := attributeSet{
		{source: "*.x", icon: a},
		{source: "*.y", icon: b},
		{source: "*.w", icon: b},
	}

	assert.ElementsMatch(t, []string{"*.y", "*.w", "*.z"}, previous.diff(next))
	assert.Empty(t, next.diff(next))
	assert.Nil(t, attributeSet(nil).match("anything"))
}
