package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

func tallContent(lines int) string {
	var b strings.Builder
	for i := range lines {
		fmt.Fprintf(&b, "line %d\n", i)
	}

	return b.String()
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUI_PrintsWithoutTerminal(t *testing.T) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	ui := NewTUI(cmd, &out, false)

	err := ui.DisplayClassifications(context.Background(), []m.Classification{
		{Path: "/repo/main.go", Classes: []string{"go-icon"}, Strategy: "path"},
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "/repo/main.go")
	assert.Contains(t, out.String(), "go-icon")
}

func TestTUI_EmptyRules(t *testing.T) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, NewTUI(cmd, &out, false).DisplayRules(context.Background(), nil, m.ColourNone))
	assert.Equal(t, "No matching rules\n", out.String())
}

func TestPagerModel(t *testing.T) {
	t.Run("short content is not paged", func(t *testing.T) {
		p := newPagerModel("t", tallContent(5), 80, 20)
		assert.False(t, p.needsPagination())
	})

	t.Run("unknown height is not paged", func(t *testing.T) {
		p := newPagerModel("t", tallContent(500), 0, 0)
		assert.False(t, p.needsPagination())
	})

	t.Run("navigation", func(t *testing.T) {
		p := newPagerModel("Classifications", tallContent(100), 80, 20)
		require.True(t, p.needsPagination())

		model, _ := p.Update(key("G"))
		p = model.(pagerModel)
		assert.True(t, p.viewport.AtBottom())

		model, _ = p.Update(key("g"))
		p = model.(pagerModel)
		assert.True(t, p.viewport.AtTop())

		assert.Contains(t, p.View(), "Classifications")
		assert.Contains(t, p.View(), "line 0")
	})

	t.Run("resize", func(t *testing.T) {
		p := newPagerModel("t", tallContent(30), 80, 20)

		model, _ := p.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
		p = model.(pagerModel)

		assert.Equal(t, 60-reservedLines, p.viewport.Height)
		assert.False(t, p.needsPagination())
	})

	t.Run("quit", func(t *testing.T) {
		p := newPagerModel("t", tallContent(100), 80, 20)

		model, cmd := p.Update(key("q"))
		p = model.(pagerModel)

		assert.NotNil(t, cmd)
		assert.True(t, p.quitting)
		assert.Empty(t, p.View())
	})
}
