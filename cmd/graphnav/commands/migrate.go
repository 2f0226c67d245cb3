package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(rt *session) *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the nodes and edges tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := rt.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			if drop {
				if err := store.DropSchema(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("schema dropped"))
			}
			if err := store.CreateSchema(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("schema created"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop existing tables first")
	return cmd
}
