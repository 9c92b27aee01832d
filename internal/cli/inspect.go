package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plotgram/plotgram/pkg/plot"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	data  string // CSV data file overriding the spec's [data] path
	plain bool   // print a plain listing instead of the interactive browser
}

// newInspectCmd creates the inspect command for browsing the panels of
// a built plot.
func newInspectCmd() *cobra.Command {
	opts := inspectOpts{}

	cmd := &cobra.Command{
		Use:   "inspect [spec.toml]",
		Short: "Browse the panels of a built plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "CSV data file (overrides the spec's [data] path)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a plain listing instead of the interactive browser")

	return cmd
}

func runInspect(ctx context.Context, specPath string, opts *inspectOpts) error {
	in, err := loadInputs(specPath, opts.data)
	if err != nil {
		return err
	}

	built, err := in.build(ctx)
	if err != nil {
		return err
	}
	for _, w := range built.Warnings {
		printWarning("%s", w.Message)
	}

	if opts.plain {
		printInspectPlain(built)
		return nil
	}

	p := tea.NewProgram(NewPanelListModel(built))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// printInspectPlain writes a non-interactive panel listing. Used when
// the output is not a terminal.
func printInspectPlain(b *plot.Built) {
	if b.Title != "" {
		printInfo("%s", b.Title)
	}
	printInfo("%d panels, %d layers", len(b.Panels), len(b.Layers))
	for _, p := range b.Panels {
		printDetail("panel %d at %d,%d  %s  x %s  y %s  %d rows",
			p.Panel.Panel, p.Panel.Row, p.Panel.Col,
			panelVars(p.Panel.Vars),
			formatRange(p.Ranges.X), formatRange(p.Ranges.Y),
			panelRows(b, p.Panel.Panel))
	}
}
