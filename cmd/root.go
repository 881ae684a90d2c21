package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reteach/reteach-cli/internal/app"
	"github.com/reteach/reteach-cli/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "reteach",
	Short: "Diagnostic builder for teachers",
	Long:  "reTeach — terminal client for building AI-generated diagnostics from a syllabus, publishing them as student forms, and tracking per-topic results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return app.Run(cfg)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "Backend base URL (overrides RETEACH_BACKEND_URL)")
	rootCmd.PersistentFlags().String("teacher-email", "", "Teacher email (overrides RETEACH_TEACHER_EMAIL)")
	rootCmd.PersistentFlags().String("teacher-name", "", "Teacher display name (overrides RETEACH_TEACHER_NAME)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request HTTP timeout (overrides RETEACH_TIMEOUT)")
	rootCmd.PersistentFlags().String("db", "", "Path to recovery database file (overrides RETEACH_DB)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig layers flags over env vars over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.ConfigFromEnv()

	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.BackendURL = v
	}
	if v, _ := cmd.Flags().GetString("teacher-email"); v != "" {
		cfg.TeacherEmail = v
	}
	if v, _ := cmd.Flags().GetString("teacher-name"); v != "" {
		cfg.TeacherName = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

// requestTimeout bounds one-shot CLI commands by the configured timeout.
func requestTimeout(cfg config.Config) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return 30 * time.Second
}
