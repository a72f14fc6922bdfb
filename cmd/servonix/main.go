package main

import (
	"os"

	"github.com/spf13/cobra"

	"servonix/internal/interfaces/cli/migrate"
	"servonix/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "servonix",
		Short: "Servonix - internal escalation messaging service",
		Long:  `Servonix runs the admin-to-head escalation messaging service, including the HTTP API, notification streams, and database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
