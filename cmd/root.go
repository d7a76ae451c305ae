// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reposcore",
	Short: "A CLI tool to score contributors of GitHub repositories.",
	Long: `reposcore fetches the issues and pull requests of one or more GitHub
repositories, scores every contributor by label category and writes ranked
leaderboards as CSV, text tables, charts, JSON or YAML.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is .reposcore.yaml in the working or home directory)")
	rootCmd.PersistentFlags().StringP("token", "t", "", "GitHub token (falls back to GITHUB_TOKEN and .env)")
}

// newLogger discards all logs unless --verbose is set, then logs to stderr.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	return logger
}
