// Package cmd wires the CLI surface to the commit pipeline.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aicommit-cli/aicommit/internal/config"
	"github.com/aicommit-cli/aicommit/internal/git"
	"github.com/aicommit-cli/aicommit/internal/llm"
	"github.com/aicommit-cli/aicommit/internal/prompt"
	"github.com/aicommit-cli/aicommit/internal/workflow"
)

var (
	cfgFile     string
	verbose     bool
	language    string
	model       string
	newBranch   bool
	interactive bool
	dryRun      bool

	rootCtx = context.Background()

	rootCmd = &cobra.Command{
		Use:   "aicommit",
		Short: "aicommit - AI-generated Git commit messages",
		Long: `aicommit inspects your working tree, sends the diff to the Gemini API ` +
			`and commits with the generated message. It can also name and create a ` +
			`branch for you first.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleResult(run(cmd.Context()))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// SetContext installs the signal-aware context commands run under.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.aicommit.yaml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show progress details")
	rootCmd.Flags().StringVarP(&language, "lang", "l", "",
		"Commit message language: pt or en (default "+config.DefaultLanguage+")")
	rootCmd.Flags().StringVarP(&model, "model", "m", "",
		"Gemini model to use (default "+config.DefaultModel+")")
	rootCmd.Flags().BoolVarP(&newBranch, "new-branch", "b", false,
		"Generate a branch name from the diff and create/switch to it first")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Confirm or regenerate each candidate before it is used")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Run the pipeline without staging, branching or committing")
}

func run(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if model != "" {
		cfg.Model = model
	}
	if language != "" {
		if !config.IsSupportedLanguage(language) {
			return fmt.Errorf("language %q is not supported; choose one of: %s",
				language, strings.Join(config.SupportedLanguages, ", "))
		}
		cfg.Language = language
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The API key check happens before the client is built, so a
	// missing key never reaches the network.
	client, err := llm.New(ctx, cfg.APIKey)
	if err != nil {
		return err
	}
	if cfg.CommitTemplate != "" {
		tmpl, err := prompt.LoadTemplate(cfg.CommitTemplate)
		if err != nil {
			return err
		}
		client.CommitTemplate = tmpl
	}

	flow := workflow.NewFlow(
		git.NewClient(git.Options{Verbose: verbose}),
		client,
		workflow.Options{
			Interactive: interactive,
			NewBranch:   newBranch,
			DryRun:      dryRun,
			Verbose:     verbose,
			Language:    cfg.Language,
			Model:       cfg.Model,
		},
	)
	return flow.Run(ctx)
}

// handleResult converts the two clean-exit sentinels into notices and
// a nil error; everything else propagates to main for exit code 1.
func handleResult(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workflow.ErrNoChanges):
		fmt.Println("No changes detected to commit.")
		return nil
	case errors.Is(err, workflow.ErrAborted):
		fmt.Println("Aborted: no commit was made.")
		return nil
	}
	return err
}
