package strategies

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"fileicons.dev/pkg/fileicons/internal/domain"
)

func TestUserTypesStrategy(t *testing.T) {
	table := defaultTable(t)

	config := viper.New()
	config.Set(UserTypesKey, []map[string]any{
		{"scope": "source.python", "match": []string{"pyx", "SConscript.local"}},
		{"scope": "JavaScript", "match": []string{".jsm"}},
	})

	s := NewUserTypes(table, config)
	enable(t, s)

	cython := domain.NewResource("/repo/speedups.pyx", domain.ResourceOptions{}, nil, table)
	scons := domain.NewResource("/repo/SConscript.local", domain.ResourceOptions{}, nil, table)
	module := domain.NewResource("/repo/lib.jsm", domain.ResourceOptions{}, nil, table)
	other := domain.NewResource("/repo/notes.txt", domain.ResourceOptions{}, nil, table)

	for _, r := range []*domain.Resource{cython, scons, module, other} {
		s.RegisterResource(r)
	}

	assert.Equal(t, "python-icon", slot(cython, PriorityUserTypes))
	assert.Equal(t, "python-icon", slot(scons, PriorityUserTypes))
	assert.Equal(t, "js-icon", slot(module, PriorityUserTypes), "language names work as well as scopes")
	assert.Equal(t, "", slot(other, PriorityUserTypes))

	t.Run("reload pushes changes", func(t *testing.T) {
		config.Set(UserTypesKey, []map[string]any{
			{"scope": "source.ruby", "match": []string{"pyx"}},
			{"scope": "JavaScript", "match": []string{"jsm"}},
		})

		s.Classifier().(*UserTypes).Reload()

		assert.Equal(t, "ruby-icon", slot(cython, PriorityUserTypes))
		assert.Equal(t, "", slot(scons, PriorityUserTypes))
		assert.Equal(t, "js-icon", slot(module, PriorityUserTypes))
	})

	t.Run("disabled strategy ignores reloads", func(t *testing.T) {
		s.Disable()

		config.Set(UserTypesKey, []map[string]any{{"scope": "source.go", "match": []string{"pyx"}}})
		s.Classifier().(*UserTypes).Reload()

		assert.Equal(t, "", slot(cython, PriorityUserTypes))
	})
}

func TestUserTypes_NoConfig(t *testing.T) {
	table := defaultTable(t)
	s := NewUserTypes(table, nil)
	enable(t, s)

	r := domain.NewResource("/repo/a.pyx", domain.ResourceOptions{}, nil, table)
	s.RegisterResource(r)

	assert.Equal(t, "", slot(r, PriorityUserTypes))
}
