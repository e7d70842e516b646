package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
)

// MigrateCmd creates or updates the links table.
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Connects to the configured database (sqlite, postgres or mysql) and
creates or updates the links table from the Go model.`,
	RunE: func(c *cobra.Command, args []string) error {
		app, err := cmd.OpenApp()
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Fprintln(c.OutOrStdout(), "Database migrations executed successfully.")
		return nil
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}
