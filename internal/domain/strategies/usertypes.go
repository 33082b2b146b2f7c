package strategies

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// UserTypesKey is the configuration key holding user type overrides.
const UserTypesKey = "user_types"

// UserType assigns a grammar scope, or a language name, to files by
// extension or by exact name.
type UserType struct {
	Scope string   `mapstructure:"scope"`
	Match []string `mapstructure:"match"`
}

// UserTypes classifies files through the user_types configuration.
type UserTypes struct {
	table  *rules.Table
	config *viper.Viper
	hook   sync.Once

	mu       sync.Mutex
	set      attributeSet
	strategy *domain.Strategy
}

// NewUserTypes creates the user type strategy. config may be nil.
func NewUserTypes(table *rules.Table, config *viper.Viper) *domain.Strategy {
	return domain.NewStrategy(domain.StrategyOptions{
		Name:     NameUserTypes,
		Priority: PriorityUserTypes,
		Files:    true,
		Virtual:  true,
	}, &UserTypes{table: table, config: config})
}

// MatchIcon implements domain.Classifier.
func (u *UserTypes) MatchIcon(r *domain.Resource) *m.Icon {
	u.mu.Lock()
	set := u.set
	u.mu.Unlock()

	return set.match(r.Name())
}

// Start implements domain.Lifecycle.
func (u *UserTypes) Start(_ context.Context, s *domain.Strategy) error {
	set := u.load()

	u.mu.Lock()
	u.strategy = s
	u.set = set
	u.mu.Unlock()

	if u.config != nil {
		u.hook.Do(func() {
			u.config.OnConfigChange(func(fsnotify.Event) { u.Reload() })
		})
	}

	return nil
}

// Stop implements domain.Lifecycle.
func (u *UserTypes) Stop() {
	u.mu.Lock()
	u.strategy = nil
	u.set = nil
	u.mu.Unlock()
}

// Reload rereads the configuration and reclassifies the resources whose
// user type changed. It does nothing while the strategy is disabled.
func (u *UserTypes) Reload() {
	next := u.load()

	u.mu.Lock()
	s := u.strategy
	previous := u.set

	if s == nil {
		u.mu.Unlock()
		return
	}

	u.set = next
	u.mu.Unlock()

	changed := previous.diff(next)
	if len(changed) == 0 {
		return
	}

	count := recheckChanged(s,
		func(r *domain.Resource) *m.Icon { return previous.match(r.Name()) },
		func(r *domain.Resource) *m.Icon { return next.match(r.Name()) },
	)

	slog.Debug("reloaded user types", "changed", changed, "resources", count)
}

func (u *UserTypes) load() attributeSet {
	if u.config == nil {
		return nil
	}

	var types []UserType
	if err := u.config.UnmarshalKey(UserTypesKey, &types); err != nil {
		slog.Warn("invalid user types", "error", err)
		return nil
	}

	var set attributeSet

	for _, t := range types {
		icon := u.table.MatchByScope(t.Scope)
		if icon == nil {
			icon = u.table.MatchByLanguageAlias(t.Scope)
		}

		for _, entry := range t.Match {
			name := strings.TrimPrefix(entry, ".")
			if name == "" {
				continue
			}

			pattern, err := m.CompilePattern(`(?:^|\.)`+regexp2.Escape(name)+`$`, m.FlagIgnoreCase)
			if err != nil {
				slog.Warn("invalid user type", "match", entry, "error", err)
				continue
			}

			set = append(set, attributeRule{source: entry, pattern: pattern, icon: icon})
		}
	}

	return set
}
