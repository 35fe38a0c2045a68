package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/store/jsonstore"
	"github.com/idilsaglam/lostboard/internal/ui"
	"github.com/idilsaglam/lostboard/internal/view"
)

func newExportCmd(app *App) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the (filtered) board to a JSON snapshot",
		Args:  exactArgs(1, "lostboard export <file> [flags]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := filters.criteria()
			if err != nil {
				return err
			}
			if err := app.Board.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			items := view.Apply(app.Board.Items(), crit)
			if err := jsonstore.Save(args[0], items); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("exported %d items to %s", len(items), args[0]))
			return nil
		},
	}

	filters.bind(cmd.Flags())
	return cmd
}
