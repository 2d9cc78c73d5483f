package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aicommit-cli/aicommit/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage aicommit configuration",
		Long:  `Inspect and change the persistent configuration (model, language).`,
	}

	configListCmd = &cobra.Command{
		Use:   "list",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("model: %s\n", cfg.Model)
			fmt.Printf("language: %s\n", cfg.Language)
			if cfg.CommitTemplate != "" {
				fmt.Printf("commit_template: %s\n", cfg.CommitTemplate)
			}
			if cfg.APIKey != "" {
				fmt.Println("api_key: (set)")
			} else {
				fmt.Println("api_key: (not set)")
			}
			return nil
		},
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model <name>",
		Short: "Set the Gemini model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !config.IsAllowedModel(name) {
				return fmt.Errorf("model %q is not supported; choose one of: %s",
					name, strings.Join(config.AllowedModels, ", "))
			}
			if err := config.Set(cfgFile, "model", name); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("Model set to %s\n", name)
			return nil
		},
	}

	configSetLangCmd = &cobra.Command{
		Use:   "lang <code>",
		Short: "Set the commit message language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToLower(args[0])
			if !config.IsSupportedLanguage(code) {
				return fmt.Errorf("language %q is not supported; choose one of: %s",
					code, strings.Join(config.SupportedLanguages, ", "))
			}
			if err := config.Set(cfgFile, "language", code); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("Language set to %s\n", code)
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}
)

func init() {
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetLangCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
