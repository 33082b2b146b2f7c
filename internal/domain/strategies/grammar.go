package strategies

import (
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

type grammarClassifier struct {
	table *rules.Table
}

// NewGrammar creates the strategy honouring a grammar explicitly chosen in
// an editor. It has no effect on resources that are not being edited.
func NewGrammar(table *rules.Table) *domain.Strategy {
	return domain.NewStrategy(domain.StrategyOptions{
		Name:     NameGrammar,
		Priority: PriorityGrammar,
		Files:    true,
		Virtual:  true,
	}, &grammarClassifier{table: table})
}

func (c *grammarClassifier) MatchIcon(r *domain.Resource) *m.Icon {
	if !r.Editing() {
		return nil
	}

	return c.table.MatchByScope(r.Grammar())
}

func (c *grammarClassifier) Watch(r *domain.Resource, recheck func()) domain.Subscription {
	return domain.Subscriptions{
		r.OnDidChangeGrammar(func(*domain.Resource) { recheck() }),
		r.OnDidChangeEditing(func(*domain.Resource) { recheck() }),
	}
}
