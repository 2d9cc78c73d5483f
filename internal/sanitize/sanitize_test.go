package sanitize

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitMessage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "plain message",
			raw:      "feat: add login form",
			expected: "feat: add login form",
		},
		{
			name:     "surrounding whitespace",
			raw:      "  fix: handle nil pointer \n",
			expected: "fix: handle nil pointer",
		},
		{
			name:     "code fence wrapper",
			raw:      "```\nfeat: add retry logic\n```",
			expected: "feat: add retry logic",
		},
		{
			name:     "inline backticks and quotes",
			raw:      "fix: escape `\"quoted\"` and 'single' values",
			expected: "fix: escape quoted and single values",
		},
		{
			name:     "multiline body survives",
			raw:      "feat: add cache\n\nKeeps responses for an hour.",
			expected: "feat: add cache\n\nKeeps responses for an hour.",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "only quotes and fences",
			raw:     "``` \"\" '' ```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CommitMessage(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyMessage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCommitMessageStripsAllForbiddenCharacters(t *testing.T) {
	inputs := []string{
		"```feat: a```",
		"`fix`: 'b' \"c\"",
		"chore: update `deps` to \"latest\"",
	}
	for _, raw := range inputs {
		got, err := CommitMessage(raw)
		require.NoError(t, err)
		assert.NotContains(t, got, "`")
		assert.NotContains(t, got, `"`)
		assert.NotContains(t, got, "'")
	}
}

func TestBranchName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "already clean",
			raw:      "feat/add-login-form",
			expected: "feat/add-login-form",
		},
		{
			name:     "uppercase and spaces",
			raw:      "Fix Broken Links",
			expected: "fix-broken-links",
		},
		{
			name:     "underscores become hyphens",
			raw:      "refactor_user_store",
			expected: "refactor-user-store",
		},
		{
			name:     "surrounding backticks",
			raw:      "`feat/add-cache`",
			expected: "feat/add-cache",
		},
		{
			name:     "special characters dropped",
			raw:      "fix: handle @user's #123 input!",
			expected: "fix-handle-users-123-input",
		},
		{
			name:     "hyphen runs collapse",
			raw:      "feat---multiple   spaces",
			expected: "feat-multiple-spaces",
		},
		{
			name:     "leading and trailing junk trimmed",
			raw:      "--feat/add-thing--",
			expected: "feat/add-thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BranchName(tt.raw))
		})
	}
}

func TestBranchNameNeverEmpty(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9/-]+$`)

	inputs := []string{
		"",
		"   ",
		"\t\n",
		"!!!???",
		"```",
		"___",
		"---",
		"@#$%^&*",
	}
	for _, raw := range inputs {
		got := BranchName(raw)
		assert.NotEmpty(t, got, "input %q", raw)
		assert.Regexp(t, pattern, got, "input %q", raw)
		assert.True(t, strings.HasPrefix(got, "ai-generated-branch-"), "input %q got %q", raw, got)
		assert.Len(t, got, len("ai-generated-branch-")+8, "input %q", raw)
	}
}

func TestBranchNameIdempotent(t *testing.T) {
	inputs := []string{
		"feat/add-login-form",
		"Fix Broken Links",
		"refactor_user_store",
		"`feat: Add Cache!`",
		"--weird---input__here  now--",
		"UPPER/Case/Path",
	}
	for _, raw := range inputs {
		once := BranchName(raw)
		twice := BranchName(once)
		assert.Equal(t, once, twice, "input %q", raw)
	}
}

func TestBranchNameMatchesAllowedAlphabet(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9/-]+$`)

	inputs := []string{
		"feat: Add OAuth2 support (Google, GitHub)",
		"Fix\tcrash on empty\nconfig",
		"chore(deps): bump viper to v1.21.0",
	}
	for _, raw := range inputs {
		got := BranchName(raw)
		assert.Regexp(t, pattern, got, "input %q", raw)
	}
}
