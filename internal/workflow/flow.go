package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/aicommit-cli/aicommit/internal/git"
	"github.com/aicommit-cli/aicommit/internal/gitutil"
	"github.com/aicommit-cli/aicommit/internal/llm"
	"github.com/aicommit-cli/aicommit/internal/sanitize"
	"github.com/aicommit-cli/aicommit/internal/ui"
)

// ErrNoChanges signals a clean no-op: neither staged nor unstaged
// changes exist. The cmd layer turns it into a notice and exit 0.
var ErrNoChanges = errors.New("no changes detected in the working tree")

// ErrAborted signals an explicit user rejection. Also exit 0: saying
// no is not an error.
var ErrAborted = errors.New("aborted by user")

type diffSource int

const (
	sourceStaged diffSource = iota
	sourceUnstaged
)

// Options carries the per-invocation settings of the pipeline.
type Options struct {
	Interactive bool
	NewBranch   bool
	DryRun      bool
	Verbose     bool
	Language    string
	Model       string
	OutWriter   io.Writer
	ErrWriter   io.Writer
}

// Flow runs the pipeline: select diff, optionally create a branch,
// generate and confirm a commit message, stage if needed, commit.
type Flow struct {
	git      GitClient
	gen      Generator
	opts     Options
	prompter Prompter

	// spin wraps the blocking generation call; replaced in tests.
	spin func(message string, fn func())
}

func NewFlow(gitClient GitClient, gen Generator, opts Options) *Flow {
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	return &Flow{
		git:      gitClient,
		gen:      gen,
		opts:     opts,
		prompter: &InteractivePrompter{Out: opts.ErrWriter},
		spin: func(message string, fn func()) {
			sp := ui.NewSpinner(message)
			sp.Start()
			fn()
			sp.Stop()
		},
	}
}

// SetPrompter replaces the interactive prompter, for tests.
func (f *Flow) SetPrompter(p Prompter) { f.prompter = p }

func (f *Flow) Run(ctx context.Context) error {
	if err := f.git.CheckRepository(); err != nil {
		return err
	}

	diff, source, err := f.selectDiff()
	if err != nil {
		return err
	}
	if diff == "" {
		return ErrNoChanges
	}

	if f.opts.NewBranch {
		if err := f.createBranch(ctx, diff); err != nil {
			return err
		}
	}

	message, err := f.candidate(ctx, llm.KindCommitMessage, diff)
	if err != nil {
		return err
	}

	if f.opts.DryRun {
		f.notice("Dry run mode, nothing was staged or committed")
		return nil
	}

	if source == sourceUnstaged {
		if err := f.git.AddAll(); err != nil {
			return err
		}
		f.verbose("All changes were added to the staging area")
	}

	if f.opts.Verbose {
		if files, err := f.git.StagedFiles(); err == nil && len(files) > 0 {
			f.verbose("Committing %d file(s)", len(files))
		}
	}

	if err := f.git.Commit(message); err != nil {
		return err
	}
	f.notice("Successfully committed changes!")
	return nil
}

// selectDiff prefers the staged diff; the unstaged diff is consulted
// only when nothing is staged.
func (f *Flow) selectDiff() (string, diffSource, error) {
	staged, err := f.git.StagedDiff()
	if err != nil {
		return "", sourceStaged, err
	}
	if staged != "" {
		f.verbose("Using staged changes")
		return staged, sourceStaged, nil
	}

	unstaged, err := f.git.UnstagedDiff()
	if err != nil {
		return "", sourceUnstaged, err
	}
	if unstaged != "" {
		f.verbose("No staged changes, using unstaged changes")
	}
	return unstaged, sourceUnstaged, nil
}

func (f *Flow) createBranch(ctx context.Context, diff string) error {
	name, err := f.candidate(ctx, llm.KindBranchName, diff)
	if err != nil {
		return err
	}
	if err := gitutil.ValidateBranchName(name); err != nil {
		return err
	}

	if f.opts.DryRun {
		f.notice("Dry run mode, would create branch %s", name)
		return nil
	}

	outcome, err := f.git.CreateBranch(name)
	if err != nil {
		return err
	}
	switch outcome {
	case git.BranchExisted:
		f.notice("Branch %s already exists, switched to it", name)
	default:
		f.notice("Created and switched to branch %s", name)
	}
	return nil
}

// candidate produces one accepted, sanitized string of the given kind.
// In interactive mode it drives the confirm/regenerate loop and the
// retry-on-failure prompt; otherwise the first success is returned and
// the first failure is fatal.
func (f *Flow) candidate(ctx context.Context, kind llm.Kind, diff string) (string, error) {
	for {
		value, err := f.generateOnce(ctx, kind, diff)
		if err != nil {
			var genErr *llm.Error
			if !f.opts.Interactive || !errors.As(err, &genErr) {
				return "", err
			}
			retry, perr := f.prompter.RetryGeneration(err)
			if perr != nil {
				return "", perr
			}
			if !retry {
				return "", err
			}
			continue
		}

		fmt.Fprintf(f.opts.ErrWriter, "\nGenerated %s:\n", kindLabel(kind))
		fmt.Fprintln(f.opts.OutWriter, value)

		if !f.opts.Interactive {
			return value, nil
		}

		decision, err := f.prompter.Confirm(kindLabel(kind), value)
		if err != nil {
			return "", err
		}
		switch decision {
		case Accept:
			return value, nil
		case Reject:
			return "", ErrAborted
		case Regenerate:
			f.notice("Regenerating %s...", kindLabel(kind))
		}
	}
}

func (f *Flow) generateOnce(ctx context.Context, kind llm.Kind, diff string) (string, error) {
	req := llm.Request{
		Diff:     diff,
		Kind:     kind,
		Language: f.opts.Language,
		Model:    f.opts.Model,
	}

	var raw string
	var genErr error
	f.spin(fmt.Sprintf("Generating %s...", kindLabel(kind)), func() {
		raw, genErr = f.gen.Generate(ctx, req)
	})
	if genErr != nil {
		return "", genErr
	}

	if kind == llm.KindBranchName {
		return sanitize.BranchName(raw), nil
	}
	return sanitize.CommitMessage(raw)
}

func kindLabel(kind llm.Kind) string {
	if kind == llm.KindBranchName {
		return "branch name"
	}
	return "commit message"
}

func (f *Flow) notice(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(f.opts.ErrWriter, format+"\n", args...)
}

func (f *Flow) verbose(format string, args ...any) {
	if !f.opts.Verbose {
		return
	}
	color.New(color.FgCyan).Fprintf(f.opts.ErrWriter, format+"\n", args...)
}
