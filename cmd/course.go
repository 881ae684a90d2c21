package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var courseCmd = &cobra.Command{
	Use:   "course <name>",
	Short: "Set your course name",
	Long:  "Sets the course name shown on the dashboard. Setting it for the first time also completes onboarding.",
	Args:  cobra.ExactArgs(1),
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
		if err := client.UpdateCourseName(ctx, args[0]); err != nil {
			return fmt.Errorf("update course name: %w", err)
		}

		completed, _, err := client.OnboardingStatus(ctx)
		if err == nil && !completed {
			if err := client.CompleteOnboarding(ctx); err != nil {
				return fmt.Errorf("complete onboarding: %w", err)
			}
		}

		fmt.Println("Course set to", args[0])
		return nil
	},
}
