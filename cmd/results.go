package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var resultsCmd = &cobra.Command{
	Use:   "results <form-id>",
	Short: "Print per-topic results for a published form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg))
		defer cancel()

		client := gateway.New(cfg)
		res, err := client.FetchResults(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch results: %w", err)
		}

		fmt.Printf("%s — %d responses\n\n", res.FormTitle, res.TotalResponses)
		if res.TotalResponses == 0 {
			fmt.Println("No submissions yet.")
			return nil
		}

		for _, ts := range res.Topics {
			bar := textBar(ts.CorrectPct, 40)
			fmt.Printf("%-30s %s %5.1f%%  (n=%d)\n", clip(ts.Topic, 30), bar, ts.CorrectPct, ts.N)
		}
		return nil
	},
}

// textBar renders pct (0-100) as a fixed-width block bar.
func textBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
