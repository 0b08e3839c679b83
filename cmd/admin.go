package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"evaluation-backend/internal/evaluation"
	"evaluation-backend/internal/jwt"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations",
	Long:  `Reset the voting window, mint admin tokens, and read the audit trail.`,
}

var adminResetCmd = &cobra.Command{
	Use:   "reset-votes",
	Short: "Clear the vote-control ledger",
	Long:  `Delete all vote-control rows so every device may vote again today. Evaluation history is preserved.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := evaluation.NewService(provider, clk)

		if err := svc.ResetVotingWindow(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting voting window: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Voting window reset. All devices are eligible again.")
	},
}

var tokenSubject string

var adminTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token for /api/reset-timer",
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Secret == "" {
			fmt.Fprintln(os.Stderr, "No secret configured; the reset endpoint is unguarded and needs no token.")
			os.Exit(1)
		}

		claim := jwt.NewAdminClaim(tokenSubject, cfg.TokenTTL)
		token, err := jwt.GenerateJWT(claim, cfg.Secret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

var logsLimit int

var adminLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Read the audit trail",
	Long:  `Print system log entries, newest first. The audit trail is internal and has no HTTP endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		entries, err := provider.ListSystemLog(ctx, logsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading audit trail: %v\n", err)
			os.Exit(1)
		}

		if len(entries) == 0 {
			fmt.Println("Audit trail is empty.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIMESTAMP\tACTION\tDETAILS")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Timestamp, e.Action, e.Details)
		}
		w.Flush()
	},
}

func init() {
	adminTokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "operator name embedded in the token")
	adminLogsCmd.Flags().IntVar(&logsLimit, "limit", 50, "number of entries to show (0 for all)")

	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminResetCmd)
	adminCmd.AddCommand(adminTokenCmd)
	adminCmd.AddCommand(adminLogsCmd)
}
