package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"agni/internal/config"
	"agni/internal/handler"
	"agni/internal/verify"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "verify [text]",
		Short: "Verify a news claim from the command line",
		Long: `Runs one verification (claim extraction, web search and verdict synthesis)
and prints the result as JSON. Credentials are read from the environment or a .env file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			godotenv.Load()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			text, err := handler.ValidateText(strings.Join(args, " "))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			service, _, cleanup := verify.Bootstrap(ctx, config.Load())
			defer cleanup()

			resp := service.Verify(ctx, text)

			out := map[string]any{
				"classification":  resp.Classification,
				"reason":          resp.Reason,
				"confidence":      resp.Confidence,
				"sources":         resp.Sources,
				"key_findings":    resp.KeyFindings,
				"timestamp":       resp.Timestamp.Format(time.RFC3339),
				"processing_time": resp.ProcessingTime.Seconds(),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the verification")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")

	return cmd
}
