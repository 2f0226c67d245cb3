package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meikuraledutech/graphnav"
	"github.com/spf13/cobra"
)

func newReachCmd(rt *session) *cobra.Command {
	var (
		engine   string
		maxDepth int
	)
	cmd := &cobra.Command{
		Use:   "reach <node-id>",
		Short: "List the nodes reachable from a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid node id %q", args[0])
			}
			switch engine {
			case "cte", "dfs", "both":
			default:
				return fmt.Errorf("unknown engine %q, want cte, dfs or both", engine)
			}

			ctx := cmd.Context()
			store, err := rt.open(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			n, err := store.GetNode(ctx, id)
			if err != nil {
				return err
			}
			if n == nil {
				return fmt.Errorf("node %d: %w", id, graphnav.ErrNodeNotFound)
			}

			e := rt.engine()
			if maxDepth > 0 {
				e = graphnav.NewEngine(store, graphnav.WithMaxDepth(maxDepth), graphnav.WithLogger(rt.logger))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Reachable from %d (%s)", n.ID, n.Name)))

			switch engine {
			case "cte":
				r, err := e.ReachableViaQuery(ctx, id)
				if err != nil {
					return err
				}
				printReachability(out, "cte", r)
			case "dfs":
				r, err := e.ReachableViaTraversal(ctx, id)
				if err != nil {
					return err
				}
				printReachability(out, "dfs", r)
			case "both":
				c, err := e.Compare(ctx, id)
				if err != nil {
					return err
				}
				printReachability(out, "cte", c.Query)
				printReachability(out, "dfs", c.Traversal)
				if c.Equivalent {
					fmt.Fprintln(out, okStyle.Render("engines agree"))
				} else {
					fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("engines differ: max depth %d cuts the query result short", e.MaxDepth())))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&engine, "engine", "both", "cte, dfs or both")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "depth ceiling for the cte engine (default from config)")
	return cmd
}

func printReachability(w io.Writer, engine string, r *graphnav.Reachability) {
	ids := make([]string, len(r.ReachableIDs))
	for i, id := range r.ReachableIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	fmt.Fprintf(w, "%s %d [%s]\n", labelStyle.Render(engine+":"), r.Count, strings.Join(ids, ", "))
}
