// Package git implements the repository inspector and mutator on top of
// the git command line.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aicommit-cli/aicommit/internal/gitcmd"
	"github.com/aicommit-cli/aicommit/internal/gitutil"
	"github.com/aicommit-cli/aicommit/internal/stringsutil"
)

// BranchOutcome reports how CreateBranch resolved.
type BranchOutcome int

const (
	// BranchCreated means a new branch was created and checked out.
	BranchCreated BranchOutcome = iota
	// BranchExisted means the branch already existed and was checked out.
	BranchExisted
)

// Options configures a Client.
type Options struct {
	Verbose bool
	Dir     string
}

// Client runs read and write operations against the repository in the
// working directory.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{runner: gitcmd.Runner{Verbose: opts.Verbose, Dir: opts.Dir}}
}

// CheckRepository verifies that git is installed and the working
// directory is inside a git work tree.
func (c *Client) CheckRepository() error {
	result, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return errors.New("git executable not found; is git installed and on PATH?")
		}
		return gitutil.WrapError("not a git repository", result, err)
	}
	if result.StdoutString(true) != "true" {
		return errors.New("current directory is not inside a git work tree")
	}
	return nil
}

// StagedDiff returns the diff of staged changes, trimmed. Empty string
// means nothing is staged.
func (c *Client) StagedDiff() (string, error) {
	result, err := c.runner.Run("diff", "--cached")
	if err != nil {
		return "", gitutil.WrapError("failed to read staged diff", result, err)
	}
	return result.StdoutString(true), nil
}

// UnstagedDiff returns the diff of unstaged changes, trimmed.
func (c *Client) UnstagedDiff() (string, error) {
	result, err := c.runner.Run("diff")
	if err != nil {
		return "", gitutil.WrapError("failed to read unstaged diff", result, err)
	}
	return result.StdoutString(true), nil
}

// StagedFiles lists the paths currently staged for commit.
func (c *Client) StagedFiles() ([]string, error) {
	result, err := c.runner.Run("diff", "--cached", "--name-only")
	if err != nil {
		return nil, gitutil.WrapError("failed to list staged files", result, err)
	}
	return stringsutil.SplitNonEmpty(result.StdoutString(true), "\n"), nil
}

// AddAll stages the entire working tree.
func (c *Client) AddAll() error {
	result, err := c.runner.Run("add", ".")
	if err != nil {
		return gitutil.WrapError("git add failed", result, err)
	}
	return nil
}

// Commit commits the staged changes with the given message.
func (c *Client) Commit(message string) error {
	result, err := c.runner.Run("commit", "-m", message)
	if err != nil {
		return gitutil.WrapError("git commit failed", result, err)
	}
	return nil
}

// CreateBranch creates the branch and checks it out. When the branch
// already exists it is checked out instead and BranchExisted is
// returned. The "already exists" classification is confined to this
// function; callers only see the structured outcome.
func (c *Client) CreateBranch(name string) (BranchOutcome, error) {
	if err := gitutil.ValidateBranchName(name); err != nil {
		return BranchCreated, err
	}

	result, err := c.runner.Run("checkout", "-b", name)
	if err == nil {
		return BranchCreated, nil
	}

	if strings.Contains(result.StderrString(true), "already exists") {
		checkout, err := c.runner.Run("checkout", name)
		if err != nil {
			return BranchExisted, gitutil.WrapError(
				fmt.Sprintf("failed to switch to existing branch %q", name), checkout, err)
		}
		return BranchExisted, nil
	}

	return BranchCreated, gitutil.WrapError(
		fmt.Sprintf("failed to create branch %q", name), result, err)
}
