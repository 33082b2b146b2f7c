package strategies

import (
	"fileicons.dev/pkg/fileicons/internal/domain"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// attributeRule maps one entry of an attribute source to an icon.
type attributeRule struct {
	source  string
	pattern *m.Pattern
	icon    *m.Icon
}

// attributeSet is the pattern set derived from an attribute source, in the
// order rules are tried.
type attributeSet []attributeRule

func (s attributeSet) match(subject string) *m.Icon {
	for _, rule := range s {
		if rule.pattern.Match(subject) {
			return rule.icon
		}
	}

	return nil
}

// diff returns the sources whose icon was added, dropped or changed.
func (s attributeSet) diff(next attributeSet) []string {
	before := make(map[string]*m.Icon, len(s))
	for _, rule := range s {
		before[rule.source] = rule.icon
	}

	var changed []string

	seen := make(map[string]bool, len(next))

	for _, rule := range next {
		seen[rule.source] = true

		if icon, ok := before[rule.source]; !ok || icon != rule.icon {
			changed = append(changed, rule.source)
		}
	}

	for _, rule := range s {
		if !seen[rule.source] {
			changed = append(changed, rule.source)
		}
	}

	return changed
}

// recheckChanged reruns s on the tracked resources whose icon differs
// between two classifications, and returns how many there were.
func recheckChanged(s *domain.Strategy, before, after func(*domain.Resource) *m.Icon) int {
	if s == nil {
		return 0
	}

	var changed []*domain.Resource

	for _, r := range s.Tracked() {
		if before(r) != after(r) {
			changed = append(changed, r)
		}
	}

	s.Recheck(changed...)

	return len(changed)
}
