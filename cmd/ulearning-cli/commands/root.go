package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ulearning-cli",
	Short: "ulearning-cli exports courseware questions to markdown, json, or a question bank.",
}

// config and preference-store paths apply to every subcommand.
var (
	rootConfig *string
	rootPrefs  *string
)

func init() {
	rootConfig = rootCmd.PersistentFlags().String("config", "config.json5", "Path to the config file.")
	rootPrefs = rootCmd.PersistentFlags().String("prefs", "prefs.db", "Path to the preference store.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
