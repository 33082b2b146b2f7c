package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

const noneLabel = "-"

// shades of each colour hue, from light to dark.
var hues = map[string][3]string{
	"red":    {"#ff8a80", "#e53935", "#b71c1c"},
	"green":  {"#b9f6ca", "#43a047", "#1b5e20"},
	"blue":   {"#82b1ff", "#1e88e5", "#0d47a1"},
	"cyan":   {"#84ffff", "#00acc1", "#006064"},
	"yellow": {"#ffff8d", "#fdd835", "#f9a825"},
	"orange": {"#ffd180", "#fb8c00", "#e65100"},
	"pink":   {"#ff80ab", "#d81b60", "#880e4f"},
	"purple": {"#ea80fc", "#8e24aa", "#4a148c"},
	"maroon": {"#d7a9a9", "#8d3a3a", "#5c1a1a"},
}

// SimpleUI implements UI by writing tables to the command's output.
type SimpleUI struct {
	cmd    *cobra.Command
	colour bool
}

// NewSimpleUI creates a new SimpleUI. With colour set, icon class names are
// painted with their colour token.
func NewSimpleUI(cmd *cobra.Command, colour bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, colour: colour}
}

// DisplayClassifications prints one row per resource.
func (s *SimpleUI) DisplayClassifications(ctx context.Context, classifications []m.Classification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", s.classificationTable(classifications))

	return nil
}

func (s *SimpleUI) classificationTable(classifications []m.Classification) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Icon", "Strategy"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	matched := 0

	for _, c := range classifications {
		if c.Icon != nil {
			matched++
		}

		table.Append([]string{displayPath(c), s.paint(c.Classes), labelOr(c.Strategy)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(classifications)),
		fmt.Sprintf("%d matched", matched),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayChange prints a single updated classification.
func (s *SimpleUI) DisplayChange(ctx context.Context, c m.Classification) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\t%s\t%s\n", displayPath(c), s.paint(c.Classes), labelOr(c.Strategy))
}

// DisplayRules prints the icon rules found by a search.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.RuleMatch, mode m.ColourMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(rules) == 0 {
		s.printf("No matching rules\n")
		return nil
	}

	s.printf("%s", s.rulesTable(rules, mode))

	return nil
}

func (s *SimpleUI) rulesTable(rules []m.RuleMatch, mode m.ColourMode) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Group", "Icon", "Priority", "Match"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, rule := range rules {
		match := noneLabel
		if rule.Icon.Match != nil {
			match = rule.Icon.Match.Source()
		}

		table.Append([]string{
			rule.Icon.Group,
			s.paint(rule.Icon.Classes(mode)),
			fmt.Sprintf("%d", rule.Icon.Priority),
			match,
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rules)), "", "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayCacheInfo prints what the stored snapshot holds.
func (s *SimpleUI) DisplayCacheInfo(ctx context.Context, info m.CacheInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Backend:  %s\n", info.Backend)
	s.printf("Location: %s\n", info.Location)

	if !info.Exists {
		s.printf("No snapshot saved yet\n")
		return nil
	}

	s.printf("Entries:  %s", humanize.Comma(int64(info.Entries)))

	if info.Capacity > 0 {
		s.printf(" of %s", humanize.Comma(int64(info.Capacity)))
	}

	s.printf("\n")
	s.printf("Size:     %s\n", humanize.Bytes(uint64(max(0, info.Size))))
	s.printf("Version:  %d\n", info.Version)

	if !info.Modified.IsZero() {
		s.printf("Saved:    %s\n", humanize.Time(info.Modified))
	}

	return nil
}

// DisplayCacheCleared confirms a cache clear.
func (s *SimpleUI) DisplayCacheCleared(ctx context.Context, info m.CacheInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Cleared %s cache at %s\n", info.Backend, info.Location)
}

// paint renders a class list, colouring the class name with the colour
// token that follows it.
func (s *SimpleUI) paint(classes []string) string {
	if len(classes) == 0 {
		return noneLabel
	}

	name := classes[0]
	if len(classes) < 2 {
		return name
	}

	if !s.colour {
		return name + " (" + classes[1] + ")"
	}

	colour, ok := colourOf(classes[1])
	if !ok {
		return name
	}

	return lipgloss.NewStyle().Foreground(colour).Render(name)
}

func colourOf(token string) (lipgloss.Color, bool) {
	shade, hue, ok := strings.Cut(token, "-")
	if !ok {
		shade, hue = "medium", token
	}

	shades, ok := hues[hue]
	if !ok {
		return "", false
	}

	switch shade {
	case "light":
		return lipgloss.Color(shades[0]), true
	case "medium":
		return lipgloss.Color(shades[1]), true
	case "dark":
		return lipgloss.Color(shades[2]), true
	}

	return "", false
}

func displayPath(c m.Classification) string {
	path := string(c.Path)
	if c.Directory {
		path += "/"
	}

	if c.Symlink {
		path += "@"
	}

	return path
}

func labelOr(label string) string {
	if label == "" {
		return noneLabel
	}

	return label
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
