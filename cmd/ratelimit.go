package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/reposcore/internal/config"
	"github.com/naka-gawa/reposcore/internal/gateway"
)

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Prints the current GitHub core API quota",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		limit, err := githubGateway.FetchRateLimit(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "remaining: %d/%d\nreset: %s\n",
			limit.Remaining, limit.Limit, limit.ResetAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratelimitCmd)
}
