package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rebuild/internal/engine/planner"
	"go.trai.ch/rebuild/internal/ui/output"
	"go.trai.ch/rebuild/internal/ui/style"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [selectors...]",
		Short: "Print the chunks a rebuild would run without running them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.rebuildOptions(cmd, args)
			if err != nil {
				return err
			}
			plan, err := c.app.Plan(opts)
			if err != nil {
				return err
			}
			if plan == nil {
				return nil
			}
			return RenderPlan(cmd.OutOrStdout(), plan)
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

// RenderPlan writes the chunk sequence of plan. Targets are marked with a
// filled dot, nodes kept only for ordering with a circle.
func RenderPlan(w io.Writer, plan *planner.Plan) error {
	r := output.Renderer(w)
	header := r.NewStyle().Bold(true).Foreground(style.Heading)
	target := r.NewStyle().Foreground(style.Built)
	support := r.NewStyle().Foreground(style.Muted)

	for i, chunk := range plan.Chunks {
		if _, err := fmt.Fprintln(w, header.Render(fmt.Sprintf("Chunk %d", i+1))); err != nil {
			return err
		}
		for _, id := range chunk {
			line := support.Render(style.OrderMark + " " + id.String())
			if plan.Targets.Has(id) {
				line = target.Render(style.TargetMark + " " + id.String())
			}
			if _, err := fmt.Fprintln(w, "  "+line); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d chunks, %d packages to rebuild\n", len(plan.Chunks), plan.Executable())
	return err
}
