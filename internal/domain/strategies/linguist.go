package strategies

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// AttributesFile is the name of the file linguist overrides are read from.
const AttributesFile = ".gitattributes"

const languageAttribute = "linguist-language="

// Linguist classifies files through linguist-language attributes declared
// in the .gitattributes file at the top of each root.
type Linguist struct {
	table      *rules.Table
	fs         adapter.ProbeFSAdapter
	roots      []m.Path
	newWatcher func() (adapter.FileWatcher, error)

	mu       sync.Mutex
	sets     map[m.Path]attributeSet
	strategy *domain.Strategy
	watcher  adapter.FileWatcher
	wg       sync.WaitGroup
}

// NewLinguist creates the linguist strategy. newWatcher may be nil.
func NewLinguist(
	table *rules.Table,
	fs adapter.ProbeFSAdapter,
	roots []m.Path,
	newWatcher func() (adapter.FileWatcher, error),
) *domain.Strategy {
	return domain.NewStrategy(domain.StrategyOptions{
		Name:     NameLinguist,
		Priority: PriorityLinguist,
		Files:    true,
	}, &Linguist{table: table, fs: fs, roots: cleanRoots(roots), newWatcher: newWatcher})
}

func cleanRoots(roots []m.Path) []m.Path {
	out := make([]m.Path, 0, len(roots))
	for _, root := range roots {
		out = append(out, m.Path(filepath.Clean(string(root))))
	}

	return out
}

// MatchIcon implements domain.Classifier.
func (l *Linguist) MatchIcon(r *domain.Resource) *m.Icon {
	root, rel, ok := l.locate(r.Path())
	if !ok {
		return nil
	}

	l.mu.Lock()
	set := l.sets[root]
	l.mu.Unlock()

	return set.match(rel)
}

// locate finds the innermost root containing path and the slash-separated
// path relative to it.
func (l *Linguist) locate(path m.Path) (m.Path, string, bool) {
	var best m.Path

	for _, root := range l.roots {
		if path.Within(root) && len(root) > len(best) {
			best = root
		}
	}

	if best == "" {
		return "", "", false
	}

	rel, err := filepath.Rel(string(best), string(path))
	if err != nil || rel == "." {
		return "", "", false
	}

	return best, filepath.ToSlash(rel), true
}

// Start implements domain.Lifecycle.
func (l *Linguist) Start(ctx context.Context, s *domain.Strategy) error {
	sets := make(map[m.Path]attributeSet, len(l.roots))
	for _, root := range l.roots {
		sets[root] = l.read(ctx, root)
	}

	l.mu.Lock()
	l.strategy = s
	l.sets = sets
	l.mu.Unlock()

	if l.newWatcher == nil {
		return nil
	}

	watcher, err := l.newWatcher()
	if err != nil {
		slog.Warn("attribute files will not be watched", "error", err)
		return nil
	}

	for _, root := range l.roots {
		if err := watcher.WatchFile(attributesPath(root)); err != nil {
			slog.Warn("failed to watch attribute file", "root", root, "error", err)
		}
	}

	l.mu.Lock()
	l.watcher = watcher
	l.mu.Unlock()

	l.wg.Add(1)

	go l.watch(context.WithoutCancel(ctx), watcher)

	return nil
}

// Stop implements domain.Lifecycle.
func (l *Linguist) Stop() {
	l.mu.Lock()
	watcher := l.watcher
	l.watcher = nil
	l.strategy = nil
	l.sets = nil
	l.mu.Unlock()

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			slog.Warn("failed to close attribute watcher", "error", err)
		}
	}

	l.wg.Wait()
}

func (l *Linguist) watch(ctx context.Context, watcher adapter.FileWatcher) {
	defer l.wg.Done()

	for evt := range watcher.Events() {
		l.Reload(ctx, evt.Path.Dir())
	}
}

// Reload rereads the attribute file of root and reclassifies the resources
// whose linguist language changed.
func (l *Linguist) Reload(ctx context.Context, root m.Path) {
	next := l.read(ctx, root)

	l.mu.Lock()
	s := l.strategy

	if s == nil || l.sets == nil {
		l.mu.Unlock()
		return
	}

	previous := l.sets[root]
	l.sets[root] = next
	l.mu.Unlock()

	changed := previous.diff(next)
	if len(changed) == 0 {
		return
	}

	classify := func(set attributeSet) func(*domain.Resource) *m.Icon {
		return func(r *domain.Resource) *m.Icon {
			owner, rel, ok := l.locate(r.Path())
			if !ok || owner != root {
				return nil
			}

			return set.match(rel)
		}
	}

	count := recheckChanged(s, classify(previous), classify(next))

	slog.Debug("reloaded attribute file", "root", root, "changed", changed, "resources", count)
}

func (l *Linguist) read(ctx context.Context, root m.Path) attributeSet {
	if l.fs == nil {
		return nil
	}

	data, err := l.fs.ReadFile(ctx, attributesPath(root))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read attribute file", "root", root, "error", err)
		}

		return nil
	}

	return l.compile(parseAttributes(data))
}

func attributesPath(root m.Path) m.Path {
	return m.Path(filepath.Join(string(root), AttributesFile))
}

// compile turns attribute lines into rules tried last line first, the
// order in which git lets later lines override earlier ones.
func (l *Linguist) compile(attributes []attribute) attributeSet {
	set := make(attributeSet, 0, len(attributes))

	for i := len(attributes) - 1; i >= 0; i-- {
		a := attributes[i]

		pattern, err := m.CompilePattern(globSource(a.glob), 0)
		if err != nil {
			slog.Warn("invalid attribute pattern", "pattern", a.glob, "error", err)
			continue
		}

		set = append(set, attributeRule{
			source:  a.glob,
			pattern: pattern,
			icon:    l.table.MatchByLanguageAlias(a.language),
		})
	}

	return set
}

type attribute struct {
	glob     string
	language string
}

// parseAttributes extracts the lines of a gitattributes file that set a
// linguist language.
func parseAttributes(data []byte) []attribute {
	var out []attribute

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		for _, field := range fields[1:] {
			if language, ok := strings.CutPrefix(field, languageAttribute); ok && language != "" {
				out = append(out, attribute{glob: fields[0], language: language})
			}
		}
	}

	return out
}

// globSource converts a gitattributes pattern into a regular expression over
// slash-separated paths relative to the attribute file. Patterns without a
// slash match a name at any depth.
func globSource(glob string) string {
	anchored := strings.Contains(strings.TrimSuffix(glob, "/"), "/")
	glob = strings.TrimPrefix(glob, "/")

	var b strings.Builder

	if anchored {
		b.WriteString("^")
	} else {
		b.WriteString("(?:^|/)")
	}

	for i := 0; i < len(glob); i++ {
		c := glob[i]

		switch c {
		case '*':
			switch {
			case strings.HasPrefix(glob[i:], "**/"):
				b.WriteString("(?:.*/)?")
				i += 2
			case strings.HasPrefix(glob[i:], "**"):
				b.WriteString(".*")
				i++
			default:
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}

			class := glob[i+1 : i+1+end]
			if rest, ok := strings.CutPrefix(class, "!"); ok {
				class = "^" + rest
			}

			b.WriteString("[" + strings.ReplaceAll(class, `\`, `\\`) + "]")
			i += end + 1
		default:
			b.WriteString(regexp2.Escape(string(c)))
		}
	}

	b.WriteString("$")

	return b.String()
}
