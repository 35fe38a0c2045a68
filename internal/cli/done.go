package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/ui"
)

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an item as resolved",
		Args:  exactArgs(1, "lostboard done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := app.Board.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load: %w", err)
			}

			held := false
			for _, it := range app.Board.Items() {
				if it.ID != id {
					continue
				}
				held = true
				if it.Done() {
					ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%q is already done", it.Title))
					return nil
				}
			}
			if !held {
				return notFoundError{id: id}
			}

			it, err := app.Board.MarkDone(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("mark done: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("marked %q done", it.Title))
			return nil
		},
	}
}
