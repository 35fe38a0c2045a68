package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/lostboard/internal/boardserver"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, db string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local board resource for development",
		Long: `Serve the board collection at http://<addr>/board backed by a SQLite file.
Point the client at it with --base-url http://localhost:8080/board.`,
		Args: exactArgs(0, "lostboard serve [--addr host:port] [--db path]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.ServerAddr
			}
			if db == "" {
				db = app.Config.ServerDB
			}

			repo, err := boardserver.OpenSQLite(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("open board db: %w", err)
			}
			defer repo.Close()

			app.Log.WithField("db", db).Info("board database opened")
			return boardserver.New(repo, app.Log).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&db, "db", "", "SQLite database path (default ~/.lostboard/board.db)")
	return cmd
}
