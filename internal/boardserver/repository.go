package boardserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/lostboard/internal/model"
)

var ErrNotFound = errors.New("item not found")

// Repository stores board items for the development server.
type Repository interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id string) (model.Item, error)
	Create(ctx context.Context, it model.Item) error
	SetStatus(ctx context.Context, id string, s model.Status) (model.Item, error)
	Close() error
}

type sqliteRepo struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) a board database at path. ":memory:" gives
// a private in-memory board.
func OpenSQLite(ctx context.Context, path string) (Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS items (
  seq       INTEGER PRIMARY KEY AUTOINCREMENT,
  id        TEXT NOT NULL UNIQUE,
  image_url TEXT NOT NULL,
  title     TEXT NOT NULL,
  location  TEXT NOT NULL,
  date      TEXT NOT NULL,
  found     INTEGER NOT NULL DEFAULT 0,
  done      INTEGER NOT NULL DEFAULT 0
);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &sqliteRepo{db: db}, nil
}

const selectItem = `SELECT id, image_url, title, location, date, found, done FROM items`

func (r *sqliteRepo) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectItem+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *sqliteRepo) Get(ctx context.Context, id string) (model.Item, error) {
	row := r.db.QueryRowContext(ctx, selectItem+` WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrNotFound
	}
	return it, err
}

func (r *sqliteRepo) Create(ctx context.Context, it model.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, image_url, title, location, date, found, done) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.ImageURL, it.Title, it.Location, it.Date,
		boolInt(it.Kind == model.KindFound), boolInt(it.Status == model.StatusDone),
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// SetStatus only ever resolves an item; a done item is never reopened.
func (r *sqliteRepo) SetStatus(ctx context.Context, id string, s model.Status) (model.Item, error) {
	if s == model.StatusDone {
		res, err := r.db.ExecContext(ctx, `UPDATE items SET done = 1 WHERE id = ?`, id)
		if err != nil {
			return model.Item{}, fmt.Errorf("update item: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return model.Item{}, ErrNotFound
		}
	}
	return r.Get(ctx, id)
}

func (r *sqliteRepo) Close() error { return r.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var (
		it          model.Item
		found, done int
	)
	if err := s.Scan(&it.ID, &it.ImageURL, &it.Title, &it.Location, &it.Date, &found, &done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, err
		}
		return model.Item{}, fmt.Errorf("scan item: %w", err)
	}
	if found != 0 {
		it.Kind = model.KindFound
	}
	if done != 0 {
		it.Status = model.StatusDone
	}
	return it, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
