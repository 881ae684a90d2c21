package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a published form",
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
		if err := client.DeleteForm(ctx, args[0]); err != nil {
			return fmt.Errorf("delete form %s: %w", args[0], err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}
