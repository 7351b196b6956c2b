package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	token      string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envToken := os.Getenv("TELEGRAM_TOKEN")

	cmd := &cobra.Command{
		Use:   "gpr-quiz-bot",
		Short: "Daily song-guessing quiz bot for Telegram",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&token, "token", envToken, "Telegram bot API token (overrides config)")
	cmd.AddCommand(NewRunCmd(&configPath, &token))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
