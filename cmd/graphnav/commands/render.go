package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Draw the stored graph as ASCII trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := rt.open(ctx); err != nil {
				return err
			}
			defer rt.close()

			out, err := rt.engine().RenderGraph(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
