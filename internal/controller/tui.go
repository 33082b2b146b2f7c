package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// reservedLines is the height taken by the pager's title and footer.
const reservedLines = 3

var titleStyle = lipgloss.NewStyle().Bold(true)

// TUI implements UI for terminals. Tables taller than the screen open in a
// scrollable pager; everything else is printed like SimpleUI does.
type TUI struct {
	*SimpleUI
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(cmd *cobra.Command, output io.Writer, colour bool) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd, colour), output: output}
}

// DisplayClassifications shows the classification table, paged when needed.
func (t *TUI) DisplayClassifications(ctx context.Context, classifications []m.Classification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(ctx, "Classifications", t.classificationTable(classifications))
}

// DisplayRules shows the rule table, paged when needed.
func (t *TUI) DisplayRules(ctx context.Context, rules []m.RuleMatch, mode m.ColourMode) error {
	if len(rules) == 0 {
		return t.SimpleUI.DisplayRules(ctx, rules, mode)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(ctx, "Icon rules", t.rulesTable(rules, mode))
}

func (t *TUI) page(ctx context.Context, title, content string) error {
	var width, height int

	if f, ok := t.output.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = w, h
		}
	}

	pager := newPagerModel(title, content, width, height)

	if !pager.needsPagination() {
		_, err := fmt.Fprint(t.output, content)
		return err
	}

	program := tea.NewProgram(pager, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

// pagerModel is the Bubble Tea model scrolling a rendered table.
type pagerModel struct {
	title    string
	lines    int
	height   int
	viewport viewport.Model
	quitting bool
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(1, height-reservedLines))
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		lines:    strings.Count(content, "\n"),
		height:   height,
		viewport: vp,
	}
}

// needsPagination reports whether the content is taller than the screen.
func (p pagerModel) needsPagination() bool {
	return p.height > 0 && p.lines > p.viewport.Height
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
		p.viewport.Width = msg.Width
		p.viewport.Height = max(1, msg.Height-reservedLines)

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			p.quitting = true
			return p, tea.Quit
		case "g", "home":
			p.viewport.GotoTop()
			return p, nil
		case "G", "end":
			p.viewport.GotoBottom()
			return p, nil
		}
	}

	var cmd tea.Cmd

	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if p.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.viewport.View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %3.0f%% | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit", p.viewport.ScrollPercent()*100)

	return b.String()
}
