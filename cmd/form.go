package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var formCmd = &cobra.Command{
	Use:   "form <slug>",
	Short: "Preview a published form as students will see it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg))
		defer cancel()

		client := gateway.New(cfg)
		info, err := client.FormInfo(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch form: %w", err)
		}

		fmt.Printf("%s  (%s, %d questions)\n", info.Title, info.Status, info.TotalQuestions)
		fmt.Println("Link:", client.FormURL(args[0]))

		questions, err := client.FormQuestions(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}

		labels := "ABCD"
		for i, q := range questions {
			fmt.Printf("\n%d. [%s] %s\n", i+1, q.Topic, q.Stem)
			for j, opt := range q.Options {
				marker := " "
				if j < len(labels) {
					marker = string(labels[j])
				}
				fmt.Printf("   %s) %s\n", marker, opt)
			}
		}
		return nil
	},
}
