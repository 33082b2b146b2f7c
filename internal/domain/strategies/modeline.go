package strategies

import (
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"

	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

var (
	emacsModeline = regexp2.MustCompile(`-\*-\s*(.*?)\s*-\*-`, regexp2.None)
	vimModeline   = regexp2.MustCompile(`(?:^|\s)(?:vi|vim|ex)(?:[<=>]?\d+)?:\s*(?:set?\s+)?(.*)$`, regexp2.IgnoreCase)
)

var vimLanguageOptions = map[string]bool{
	"ft": true, "filetype": true,
	"syn": true, "syntax": true,
}

func modelineMatcher(table *rules.Table) headerMatcher {
	return func(line string, sample []byte) *m.Icon {
		lines := []string{line}
		if strings.HasPrefix(line, "#!") {
			lines = append(lines, secondLine(sample))
		}

		for _, l := range lines {
			language := modelineLanguage(l)
			if language == "" {
				continue
			}

			if icon := table.MatchByLanguageAlias(language); icon != nil {
				return icon
			}

			if icon := table.MatchByInterpreter(language); icon != nil {
				return icon
			}
		}

		return nil
	}
}

// modelineLanguage returns the language named by an Emacs or Vim modeline.
func modelineLanguage(line string) string {
	if language := emacsLanguage(line); language != "" {
		return language
	}

	return vimLanguage(line)
}

func emacsLanguage(line string) string {
	match, err := emacsModeline.FindStringMatch(line)
	if err != nil || match == nil {
		return ""
	}

	body := match.GroupByNumber(1).String()
	if !strings.Contains(body, ":") {
		return strings.TrimSpace(body)
	}

	for _, field := range strings.Split(body, ";") {
		key, value, ok := strings.Cut(field, ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), "mode") {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

func vimLanguage(line string) string {
	match, err := vimModeline.FindStringMatch(line)
	if err != nil || match == nil {
		return ""
	}

	options := strings.FieldsFunc(match.GroupByNumber(1).String(), func(r rune) bool {
		return r == ' ' || r == '\t' || r == ':'
	})

	for _, option := range options {
		key, value, ok := strings.Cut(option, "=")
		if ok && vimLanguageOptions[cases.Fold().String(key)] {
			return value
		}
	}

	return ""
}
