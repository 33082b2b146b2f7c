package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func executeCache(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(newCacheCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"cache"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestCacheCmd_Info(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)
	mockWorkflow.EXPECT().CacheInfo(mock.Anything).Return(nil)

	_, err := executeCache(t, "info")
	require.NoError(t, err)
}

func TestCacheCmd_Clear(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)
	mockWorkflow.EXPECT().ClearCache(mock.Anything).Return(errors.New("cache is locked"))

	_, err := executeCache(t, "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache is locked")
}

func TestCacheCmd_HelpWithoutSubcommand(t *testing.T) {
	useMockWorkflow(t)

	out, err := executeCache(t)
	require.NoError(t, err)
	assert.Contains(t, out, "info")
	assert.Contains(t, out, "clear")
}
