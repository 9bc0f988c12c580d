package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "crmlink",
		Short: "HubSpot account connection service",
		Long: `crmlink connects user accounts to HubSpot over OAuth2, keeps the granted
credentials in an expiring store and lists contacts and companies through
the HubSpot CRM API.

Configuration is read from the environment; see "crmlink config".`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "crmlink version %s\n" .Version}}`)

	root.AddCommand(newServeCmd(version))
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd(version))
	return root
}

func execute(version string) {
	if err := newRootCmd(version).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crmlink version %s\n", version)
		},
	}
}
