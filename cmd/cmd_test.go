package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicommit-cli/aicommit/internal/workflow"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "aicommit", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"verbose", "lang", "model", "new-branch", "interactive", "dry-run"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag --%s", name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))

	shorthands := map[string]string{
		"v": "verbose",
		"l": "lang",
		"m": "model",
		"b": "new-branch",
		"i": "interactive",
	}
	for short, long := range shorthands {
		flag := rootCmd.Flags().ShorthandLookup(short)
		require.NotNil(t, flag, "shorthand -%s", short)
		assert.Equal(t, long, flag.Name)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["config"])
	assert.True(t, names["version"])
	assert.True(t, names["completion"])
}

func TestHandleResult(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, handleResult(nil))
	})

	t.Run("no changes is a clean exit", func(t *testing.T) {
		assert.NoError(t, handleResult(workflow.ErrNoChanges))
	})

	t.Run("user abort is a clean exit", func(t *testing.T) {
		assert.NoError(t, handleResult(workflow.ErrAborted))
	})

	t.Run("wrapped sentinels are recognized", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), workflow.ErrNoChanges)
		assert.NoError(t, handleResult(wrapped))
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		assert.ErrorIs(t, handleResult(boom), boom)
	})
}
