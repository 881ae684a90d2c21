package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/metrics"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the diagnostics overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.RequireTeacher(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg))
		defer cancel()

		client := gateway.New(cfg)
		rows, err := client.FetchDiagnosticsOverview(ctx)
		if err != nil {
			return fmt.Errorf("fetch overview: %w", err)
		}

		course, _ := cmd.Flags().GetString("course")
		if course != "" {
			rows = metrics.FilterCourse(rows, course)
		}

		k := metrics.Compute(rows)
		fmt.Printf("Readiness: %d%%   Needs attention: %d   Active: %d\n", k.Readiness, k.NeedsAttention, k.ActiveCount)
		if k.HasWeakTopic {
			fmt.Printf("Weakest topic:   %s\n", k.TopWeakTopic)
		}
		if k.HasStrongTopic {
			fmt.Printf("Strongest topic: %s\n", k.StrongestTopic)
		}
		fmt.Println()

		if len(rows) == 0 {
			fmt.Println("No diagnostics found.")
			return nil
		}

		fmt.Printf("%-30s %-16s %-10s %6s %12s %8s\n", "NAME", "COURSE", "STATUS", "RESP", "COMPLETION", "SLUG")
		for _, row := range rows {
			fmt.Printf("%-30s %-16s %-10s %6d %11.0f%% %8s\n",
				clip(row.Name, 30), clip(row.Course, 16), row.Status,
				row.Responses, row.CompletionPct, row.Slug)
			if len(row.WeakTopics) > 0 {
				fmt.Printf("    weak: %s\n", strings.Join(row.WeakTopics, ", "))
			}
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().String("course", "", "Only show diagnostics for this course")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
