package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Print the class roster",
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
		students, err := client.ListStudents(ctx)
		if err != nil {
			return fmt.Errorf("fetch students: %w", err)
		}

		if len(students) == 0 {
			fmt.Println("No students yet.")
			return nil
		}

		fmt.Printf("%-28s %-32s %10s  %s\n", "NAME", "EMAIL", "COMPLETED", "LAST ACTIVE")
		for _, s := range students {
			fmt.Printf("%-28s %-32s %10d  %s\n", clip(s.Name, 28), clip(s.Email, 32), s.FormsCompleted, s.LastActivity)
		}
		return nil
	},
}
