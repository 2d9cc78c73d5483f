package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

// Validation must reject bad requests before the Gemini client is
// touched, so these run against a zero-value Client with no network.
func TestGenerateRejectsEmptyDiff(t *testing.T) {
	c := &Client{}
	_, err := c.Generate(context.Background(), Request{
		Diff:  "   \n",
		Kind:  KindCommitMessage,
		Model: "gemini-1.5-flash",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty diff")
}

func TestGenerateRejectsDisallowedModel(t *testing.T) {
	tests := []string{"gpt-4", "claude-3-opus", "", "gemini-9000"}

	for _, model := range tests {
		t.Run(model, func(t *testing.T) {
			c := &Client{}
			_, err := c.Generate(context.Background(), Request{
				Diff:  "+print('hi')\n",
				Kind:  KindCommitMessage,
				Model: model,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not supported")
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Run("reason only", func(t *testing.T) {
		e := &Error{Reason: "empty output"}
		assert.Equal(t, "generation failed: empty output", e.Error())
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		e := &Error{Reason: "request failed", Err: cause}
		assert.Contains(t, e.Error(), "connection refused")
		assert.ErrorIs(t, e, cause)
	})

	t.Run("feedback included", func(t *testing.T) {
		e := &Error{Reason: "empty output", Feedback: "SAFETY: blocked"}
		assert.Contains(t, e.Error(), "SAFETY: blocked")
	})
}

func TestRenderPromptPerKind(t *testing.T) {
	c := &Client{}

	commit, err := c.renderPrompt(Request{Diff: "+x\n", Kind: KindCommitMessage, Language: "pt"})
	require.NoError(t, err)
	assert.Contains(t, commit, "Portuguese")
	assert.Contains(t, commit, "commit message")

	branch, err := c.renderPrompt(Request{Diff: "+x\n", Kind: KindBranchName})
	require.NoError(t, err)
	assert.Contains(t, branch, "branch name")
	assert.Contains(t, branch, "kebab-case")
}
