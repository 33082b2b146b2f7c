package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func executeClassify(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newClassifyCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"classify"}, args...))

	return cmd.Execute()
}

func TestClassifyCmd_Defaults(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(args domain.ClassifyArgs) bool {
		return len(args.Paths) == 0 &&
			!args.Watch &&
			len(args.Strategies) == len(strategies.Names) &&
			args.Strategies[strategies.NamePath]
	})).Return(nil)

	require.NoError(t, executeClassify(t))
}

func TestClassifyCmd_MultiplePaths(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(args domain.ClassifyArgs) bool {
		return assert.ObjectsAreEqual([]m.Path{"./cmd", "./internal/..."}, args.Paths)
	})).Return(nil)

	require.NoError(t, executeClassify(t, "./cmd", "./internal/..."))
}

func TestClassifyCmd_WithExcludePatterns(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(args domain.ClassifyArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "node_modules" &&
			args.Exclude[1] == `\.min\.js$`
	})).Return(nil)

	require.NoError(t, executeClassify(t, "-x", "node_modules", "-x", `\.min\.js$`, "."))
}

func TestClassifyCmd_DisableAndColour(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(args domain.ClassifyArgs) bool {
		return args.Mode == m.ColourLight &&
			!args.Strategies[strategies.NameModeline] &&
			!args.Strategies[strategies.NameLinguist] &&
			args.Strategies[strategies.NameHashbang]
	})).Return(nil)

	require.NoError(t, executeClassify(t, "--colour", "light", "--disable", "modeline,linguist"))
}

func TestClassifyCmd_Watch(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.MatchedBy(func(args domain.ClassifyArgs) bool {
		return args.Watch
	})).Return(nil)

	require.NoError(t, executeClassify(t, "--watch", "."))
}

func TestClassifyCmd_PropagatesError(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	mockWorkflow.EXPECT().Classify(mock.Anything, mock.Anything).Return(errors.New("root path error"))

	err := executeClassify(t, "./missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root path error")
}

func TestNewClassifyCmd(t *testing.T) {
	cmd := newClassifyCmd()
	assert.Equal(t, "classify [paths...]", cmd.Use)
	assert.Equal(t, classifyLongDescription, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup(watchFlagName))
	assert.NotNil(t, cmd.Flags().Lookup(disableFlagName))
}
