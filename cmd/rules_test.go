package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/domain"
)

func TestRulesCmd(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantQuery string
		wantDirs  bool
	}{
		{"no query", []string{"rules"}, "", false},
		{"query", []string{"rules", "rust"}, "rust", false},
		{"directories", []string{"rules", "-d", "git"}, "git", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := useMockWorkflow(t)

			mockWorkflow.EXPECT().Rules(mock.Anything, mock.MatchedBy(func(args domain.RulesArgs) bool {
				return args.Query == tt.wantQuery && args.Directories == tt.wantDirs
			})).Return(nil)

			cmd := newRootCmd()
			cmd.AddCommand(newRulesCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
		})
	}
}

func TestRulesCmd_TooManyArgs(t *testing.T) {
	useMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRulesCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules", "go", "rust"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg")
}
