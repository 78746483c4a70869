// File path: internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nicodishanthj/lqa-insight/internal/audit"
	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/config"
	"github.com/nicodishanthj/lqa-insight/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "Second-pass audit of LQA HTML reports",
	Long: `insight sends first-pass localization QA reports to a language model
and turns its answer into a triaged fix list, a needs-context queue and
process recommendations.

Run "insight serve" for the dashboard or "insight audit FILE..." for a
one-off audit from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

// newProvider is replaced in tests.
var newProvider = llm.NewProvider

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, auditCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadEnvironment(cmd *cobra.Command, args []string) error {
	logger := common.Logger()
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("insight: no dotenv file", "path", envFile)
			return nil
		}
		logger.Warn("insight: dotenv file not loaded", "path", envFile, "error", err)
		return nil
	}
	logger.Info("insight: environment loaded", "path", envFile)
	return nil
}

// loadConfig reads the layered configuration and validates it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("provider") {
		cfg.LLM.Provider, _ = cmd.Flags().GetString("provider")
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model, _ = cmd.Flags().GetString("model")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newAuditClient(ctx context.Context, cfg config.Config) (*audit.Client, error) {
	provider, err := newProvider(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	common.Logger().Info("insight: llm provider ready", "provider", provider.Name())
	return audit.NewClient(provider, audit.WithDeferrableFilter(cfg.FilterP2)), nil
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "completion service: gemini or openai")
	cmd.Flags().String("model", "", "model name override")
}
