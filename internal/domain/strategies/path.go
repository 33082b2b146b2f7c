package strategies

import (
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

type pathClassifier struct {
	table *rules.Table
}

// NewPath creates the name and path strategy. It classifies files,
// directories and virtual entries, and reruns when a resource moves.
func NewPath(table *rules.Table) *domain.Strategy {
	return domain.NewStrategy(domain.StrategyOptions{
		Name:        NamePath,
		Priority:    PriorityPath,
		Files:       true,
		Directories: true,
		Virtual:     true,
	}, &pathClassifier{table: table})
}

func (c *pathClassifier) MatchIcon(r *domain.Resource) *m.Icon {
	if icon := c.table.MatchByPath(r.Path(), r.IsDirectory()); icon != nil {
		return icon
	}

	return c.table.MatchByName(r.Name(), r.IsDirectory())
}
