// Package gitutil provides helpers shared by the git integration layer.
package gitutil

import (
	"fmt"

	"github.com/aicommit-cli/aicommit/internal/gitcmd"
)

// WrapError builds an error for a failed git command, preferring the
// stderr text git printed over the bare exec error.
func WrapError(action string, result gitcmd.Result, err error) error {
	if msg := result.StderrString(true); msg != "" {
		return fmt.Errorf("%s: %s: %w", action, msg, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
