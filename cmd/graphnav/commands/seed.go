package commands

import (
	"fmt"

	"github.com/meikuraledutech/graphnav/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored graph with the sample graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := rt.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := store.CreateSchema(ctx); err != nil {
				return err
			}
			stats, err := seed.Apply(ctx, store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render("sample graph seeded"))
			fmt.Fprintf(out, "%s %d\n", labelStyle.Render("nodes:"), stats.Nodes)
			fmt.Fprintf(out, "%s %d\n", labelStyle.Render("edges:"), stats.Edges)
			fmt.Fprintf(out, "%s %d\n", labelStyle.Render("root: "), stats.RootID)
			fmt.Fprintf(out, "%s %v\n", labelStyle.Render("nodes by depth:"), stats.Levels)
			return nil
		},
	}
}
