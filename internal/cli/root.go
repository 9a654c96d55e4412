// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "barberia-migrate",
		Short: "Migrate the barberia legacy database into the new schema",
		Long: `barberia-migrate copies clients, employees, products, services and exchange
rates from the legacy database into a freshly created database built from the
target schema. The target is deleted and rebuilt on every run.

Paths are read from BARBERIA_* environment variables (or .env) and default to
db/barberia_legacy.db, db/barberia.db and db/schema.sql.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.Context(), cmd.OutOrStdout())
		},
	}

	return rootCmd
}
