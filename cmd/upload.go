package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/gateway"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <textbook.pdf>",
	Short: "Upload a textbook and print its extracted topics",
	Long:  "Uploads a textbook PDF to the backend. The returned textbook id can anchor question generation in the book's actual content.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open textbook: %w", err)
		}
		defer f.Close()

		// Uploads parse the whole book server-side; give them more room
		// than a normal request.
		ctx, cancel := context.WithTimeout(cmd.Context(), 4*requestTimeout(cfg))
		defer cancel()

		client := gateway.New(cfg)
		up, err := client.UploadTextbook(ctx, args[0], f)
		if err != nil {
			return fmt.Errorf("upload textbook: %w", err)
		}

		fmt.Println("Textbook ID:", up.TextbookID)
		if len(up.Topics) == 0 {
			fmt.Println("No topics extracted.")
			return nil
		}
		fmt.Println("Extracted topics:")
		for _, t := range up.Topics {
			fmt.Printf("  %-40s %3.0f%%\n", t.Name, t.Weight*100)
		}
		return nil
	},
}
