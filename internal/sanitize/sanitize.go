// Package sanitize normalizes raw model output into strings that are
// safe to hand to git.
package sanitize

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyMessage is returned when nothing usable remains after
// stripping a commit message. Commit messages have no fallback.
var ErrEmptyMessage = errors.New("sanitized commit message is empty")

var (
	separatorRunRegex = regexp.MustCompile(`[\s_]+`)
	disallowedRegex   = regexp.MustCompile(`[^a-zA-Z0-9/-]+`)
	hyphenRunRegex    = regexp.MustCompile(`-+`)
)

// CommitMessage trims the raw text and removes code fences, backticks
// and quote characters anywhere in it. Plain character stripping, not
// quote-aware parsing.
func CommitMessage(raw string) (string, error) {
	cleaned := raw
	for _, token := range []string{"```", "`", `"`, "'"} {
		cleaned = strings.ReplaceAll(cleaned, token, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", ErrEmptyMessage
	}
	return cleaned, nil
}

// BranchName reduces the raw text to lowercase letters, digits, hyphens
// and slashes. Whitespace and underscore runs become single hyphens.
// The result is never empty: unusable input yields a random fallback
// name. BranchName is idempotent.
func BranchName(raw string) string {
	cleaned := strings.Trim(raw, "` \t\r\n")
	cleaned = separatorRunRegex.ReplaceAllString(cleaned, "-")
	cleaned = disallowedRegex.ReplaceAllString(cleaned, "")
	cleaned = hyphenRunRegex.ReplaceAllString(cleaned, "-")
	cleaned = strings.Trim(cleaned, "-/")
	cleaned = strings.ToLower(cleaned)

	if cleaned == "" {
		return fallbackBranchName()
	}
	return cleaned
}

func fallbackBranchName() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; keep the
		// never-empty contract anyway.
		return "ai-generated-branch-00000000"
	}
	return "ai-generated-branch-" + hex.EncodeToString(buf)
}
