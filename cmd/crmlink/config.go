package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/crmlink/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate the environment and print the effective settings",
		Long: `Parses the environment the same way "serve" does and prints the
non-secret settings. Exits non-zero when a required variable is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "http address:      %s\n", cfg.Server.Address)
			fmt.Fprintf(out, "store driver:      %s\n", cfg.StoreDriver)
			fmt.Fprintf(out, "redirect url:      %s\n", cfg.HubSpot.RedirectURL)
			fmt.Fprintf(out, "api base:          %s\n", cfg.HubSpot.APIBaseURL)
			fmt.Fprintf(out, "state ttl:         %s\n", cfg.Integration.StateTTL)
			fmt.Fprintf(out, "expiry margin:     %s\n", cfg.Integration.ExpiryMargin)
			fmt.Fprintf(out, "pkce:              %t\n", cfg.Integration.UsePKCE)
			fmt.Fprintf(out, "metrics:           %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "log level:         %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "sentry:            %t\n", cfg.Log.Sentry.DSN != "")
			return nil
		},
	}
}
