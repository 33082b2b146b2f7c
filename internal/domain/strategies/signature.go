package strategies

import (
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func signatureMatcher(table *rules.Table) headerMatcher {
	return func(_ string, sample []byte) *m.Icon {
		return table.MatchBySignature(string(sample))
	}
}
