package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// set at build time
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, configPath)
		if err != nil {
			return err
		}
		return a.serve(ctx)
	}

	rootCmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "Backend API for the academic portfolio site",
		Long:         "Serves profile, blog and dashboard data and answers visitor questions through an AI provider with a local fallback.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (optional)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}

	askCmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the assistant one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, configPath)
			if err != nil {
				return err
			}
			ans, err := a.responder.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			source := string(ans.Provider.Name)
			if ans.Provider.UsingFallback {
				source += " (fallback)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n-- %s\n", ans.Text, source)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print which AI provider would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.responder.Status())
		},
	}

	rootCmd.AddCommand(serveCmd, askCmd, statusCmd)
	return rootCmd
}
