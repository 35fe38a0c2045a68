package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/model"
	"github.com/idilsaglam/lostboard/internal/store/jsonstore"
	"github.com/idilsaglam/lostboard/internal/ui"
	"github.com/idilsaglam/lostboard/internal/view"
)

func newListCmd(app *App) *cobra.Command {
	var (
		filters filterFlags
		group   bool
		format  string
		from    string
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List board items",
		Args:    exactArgs(0, "lostboard ls [flags]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := filters.criteria()
			if err != nil {
				return err
			}

			var items []model.Item
			if from != "" {
				if items, err = jsonstore.Load(from); err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
			} else {
				if err := app.Board.Load(cmd.Context()); err != nil {
					return fmt.Errorf("load: %w", err)
				}
				items = app.Board.Items()
			}
			shown := view.Apply(items, crit)

			out := cmd.OutOrStdout()
			switch format {
			case "panel":
				renderPanel(out, items, shown, group)
			case "table":
				return renderTable(out, shown)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(shown)
			default:
				return usagef("unknown format %q (want panel, table or json)", format)
			}
			return nil
		},
	}

	filters.bind(cmd.Flags())
	cmd.Flags().BoolVar(&group, "group", false, "Group output by active/done")
	cmd.Flags().StringVar(&format, "format", "panel", "Output format: panel|table|json")
	cmd.Flags().StringVar(&from, "from", "", "Read items from a snapshot file instead of the board")
	return cmd
}

// renderPanel prints the header counts for the whole board and the filtered
// items below it.
func renderPanel(w io.Writer, all, shown []model.Item, group bool) {
	th := ui.Current()
	c := view.Tally(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Lost & Found"),
		ui.C(th.Lost, th.SymLost), c.Lost,
		ui.C(th.Found, th.SymFound), c.Found,
		ui.C(th.Pending, th.SymActive), c.Active,
		ui.C(th.Success, th.SymDone), c.Done,
	)

	lines := []string{
		header,
		ui.C(th.Muted, ui.ProgressBar(c.Done, len(all), 28)+" resolved"),
		"",
	}
	if group {
		lines = append(lines, groupLines(shown)...)
	} else {
		lines = append(lines, itemLines(shown)...)
	}
	lines = append(lines, "", ui.C(th.Muted, "Tip: resolve with `lostboard done <id>`"))
	ui.Panel(w, lines)
}

func itemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, fmt.Sprintf("%s  %s  %s  %s  %s",
			ui.Dim(fmt.Sprintf("%4s", it.ID)),
			ui.KindBadge(it.Kind),
			ui.Truncate(it.Title, 40),
			ui.C(ui.Current().Muted, ui.Truncate(it.Location, 30)+" · "+it.Date),
			ui.StatusBadge(it.Status),
		))
	}
	return out
}

func groupLines(items []model.Item) []string {
	var active, done []model.Item
	for _, it := range items {
		if it.Done() {
			done = append(done, it)
		} else {
			active = append(active, it)
		}
	}
	th := ui.Current()
	var lines []string
	lines = append(lines, ui.C(th.Accent, "Active"))
	if len(active) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(active)...)
	}
	lines = append(lines, "", ui.C(th.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, itemLines(done)...)
	}
	return lines
}

func renderTable(w io.Writer, items []model.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tTITLE\tLOCATION\tDATE")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Kind, it.Status, it.Title, it.Location, it.Date)
	}
	return tw.Flush()
}
