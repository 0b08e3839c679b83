package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"evaluation-backend/internal/evaluation"
)

var evaluationsCmd = &cobra.Command{
	Use:   "evaluations",
	Short: "Inspect and submit evaluations",
	Long:  `List stored evaluations, show aggregate statistics, or submit a test evaluation from the command line.`,
}

var evaluationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all evaluations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := evaluation.NewService(provider, clk)

		records, err := svc.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing evaluations: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("No evaluations found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDEVICE\tTIMESTAMP\tRATING\tFEEDBACK")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.DeviceID, r.Timestamp, r.OverallRating, r.Feedback)
		}
		w.Flush()
	},
}

var evaluationsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := evaluation.NewService(provider, clk)

		stats, err := svc.Statistics(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Total evaluations: %d\n", stats.TotalEvaluations)
		fmt.Printf("Evaluations today: %d\n", stats.EvaluationsToday)
		fmt.Printf("Feedbacks:         %d\n", stats.TotalFeedbacks)

		ratings := make([]string, 0, len(stats.Distribution))
		for rating := range stats.Distribution {
			ratings = append(ratings, rating)
		}
		sort.Strings(ratings)

		fmt.Println("Distribution:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, rating := range ratings {
			fmt.Fprintf(w, "  %s\t%d\n", rating, stats.Distribution[rating])
		}
		w.Flush()
	},
}

var (
	submitDeviceID string
	submitSectors  string
	submitFeedback string
)

var evaluationsSubmitCmd = &cobra.Command{
	Use:   "submit [rating]",
	Short: "Submit an evaluation from the command line",
	Long:  `Submit an evaluation for testing. The evaluation id is generated; the device id defaults to a generated one, meaning each invocation counts as a fresh device.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := evaluation.NewService(provider, clk)

		deviceID := submitDeviceID
		if deviceID == "" {
			deviceID = "cli-" + uuid.NewString()
		}

		sub := evaluation.Submission{
			ID:            uuid.NewString(),
			DeviceID:      deviceID,
			Timestamp:     time.Now().Format(time.RFC3339),
			OverallRating: args[0],
			Feedback:      submitFeedback,
		}
		if submitSectors != "" {
			if !json.Valid([]byte(submitSectors)) {
				fmt.Fprintf(os.Stderr, "Invalid sectors JSON: %s\n", submitSectors)
				os.Exit(1)
			}
			sub.Sectors = json.RawMessage(submitSectors)
		}

		id, err := svc.Submit(ctx, sub)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error submitting evaluation: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Evaluation %s submitted for device %s.\n", id, deviceID)
	},
}

func init() {
	evaluationsSubmitCmd.Flags().StringVar(&submitDeviceID, "device", "", "device id (generated when empty)")
	evaluationsSubmitCmd.Flags().StringVar(&submitSectors, "sectors", "", "sector ratings as JSON, e.g. '{\"forno\":5}'")
	evaluationsSubmitCmd.Flags().StringVar(&submitFeedback, "feedback", "", "free-text feedback")

	rootCmd.AddCommand(evaluationsCmd)
	evaluationsCmd.AddCommand(evaluationsListCmd)
	evaluationsCmd.AddCommand(evaluationsStatsCmd)
	evaluationsCmd.AddCommand(evaluationsSubmitCmd)
}
