package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/model"
	"github.com/idilsaglam/lostboard/internal/ui"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		d     model.Draft
		found bool
		done  bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a lost or found item",
		Args:  exactArgs(0, `lostboard add --title <name> --location <where> --image-url <url> [--date YYYY-MM-DD] [--found] [--done]`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if found {
				d.Kind = model.KindFound
			}
			if done {
				d.Status = model.StatusDone
			}
			if err := d.Validate(); err != nil {
				return usageError{err: err}
			}

			it, err := app.Board.Add(cmd.Context(), d)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s %q (id %s)", it.Kind, it.Title, it.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&d.Title, "title", "", "What was lost or found")
	f.StringVar(&d.Location, "location", "", "Where it was lost or found")
	f.StringVar(&d.ImageURL, "image-url", "", "Picture of the item")
	f.StringVar(&d.Date, "date", time.Now().Format("2006-01-02"), "Date (YYYY-MM-DD)")
	f.BoolVar(&found, "found", false, "Report a found item (default: lost)")
	f.BoolVar(&done, "done", false, "Create the item already resolved")
	return cmd
}
