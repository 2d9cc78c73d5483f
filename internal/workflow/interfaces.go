// Package workflow orchestrates the diff-to-commit pipeline.
package workflow

import (
	"context"

	"github.com/aicommit-cli/aicommit/internal/git"
	"github.com/aicommit-cli/aicommit/internal/llm"
)

// GitClient abstracts the repository inspector and mutator so the flow
// is testable without a repository.
type GitClient interface {
	CheckRepository() error
	StagedDiff() (string, error)
	UnstagedDiff() (string, error)
	StagedFiles() ([]string, error)
	AddAll() error
	Commit(message string) error
	CreateBranch(name string) (git.BranchOutcome, error)
}

// Generator abstracts the generation service.
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// Decision is the operator's answer to a candidate string.
type Decision int

const (
	Accept Decision = iota
	Reject
	Regenerate
)

// Prompter resolves operator decisions. Confirm is asked once per
// candidate; RetryGeneration is asked when generation itself failed in
// interactive mode.
type Prompter interface {
	Confirm(label, candidate string) (Decision, error)
	RetryGeneration(failure error) (bool, error)
}
