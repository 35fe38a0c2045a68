// Package board holds the session's single authoritative copy of the item
// collection. Views read snapshots; only the methods here mutate it.
package board

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/lostboard/internal/logger"
	"github.com/idilsaglam/lostboard/internal/model"
)

// ErrInFlight is returned by MarkDone while a call for the same id is running.
var ErrInFlight = errors.New("mark done already in progress for this item")

// Store is the remote side of the board.
type Store interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, d model.Draft) (model.Item, error)
	MarkDone(ctx context.Context, id string) (model.Item, error)
}

type Board struct {
	store Store
	log   logrus.FieldLogger

	mu      sync.RWMutex
	items   []model.Item
	pending map[string]struct{}
	rev     uint64
}

func New(store Store, log logrus.FieldLogger) *Board {
	if log == nil {
		log = logger.Discard()
	}
	return &Board{
		store:   store,
		log:     log.WithField("component", "board"),
		pending: make(map[string]struct{}),
	}
}

// Load fetches every item and replaces the held collection. On failure the
// collection is left as it was and the error is logged and returned.
func (b *Board) Load(ctx context.Context) error {
	items, err := b.store.ListItems(ctx)
	if err != nil {
		b.log.WithError(err).Error("load items")
		return err
	}
	b.ReplaceAll(items)
	b.log.WithField("count", len(items)).Info("items loaded")
	return nil
}

// Reload is Load invoked after startup. Local patches are discarded in
// favor of the remote state.
func (b *Board) Reload(ctx context.Context) error { return b.Load(ctx) }

// ReplaceAll swaps the whole collection.
func (b *Board) ReplaceAll(items []model.Item) {
	cp := make([]model.Item, len(items))
	copy(cp, items)

	b.mu.Lock()
	b.items = cp
	b.rev++
	b.mu.Unlock()
}

// Add validates the draft, creates it remotely and appends the returned item.
func (b *Board) Add(ctx context.Context, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}

	created, err := b.store.CreateItem(ctx, d)
	if err != nil {
		b.log.WithError(err).WithField("title", d.Title).Error("add item")
		return model.Item{}, err
	}

	b.mu.Lock()
	b.items = append(b.items, created)
	b.rev++
	b.mu.Unlock()

	b.log.WithField("id", created.ID).Info("item added")
	return created, nil
}

// MarkDone resolves an item remotely and then flips the held copy's status in
// place. The held item is not replaced by the server's copy and no re-fetch
// happens. An id that is not held leaves local state untouched.
func (b *Board) MarkDone(ctx context.Context, id string) (model.Item, error) {
	if !b.acquire(id) {
		return model.Item{}, ErrInFlight
	}
	defer b.release(id)

	remote, err := b.store.MarkDone(ctx, id)
	if err != nil {
		b.log.WithError(err).WithField("id", id).Error("mark done")
		return model.Item{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Status = model.StatusDone
			b.rev++
			b.log.WithField("id", id).Info("item marked done")
			return b.items[i], nil
		}
	}
	b.log.WithField("id", id).Warn("marked done remotely but not held locally")
	return remote, nil
}

// Pending reports whether a MarkDone call for id is in flight.
func (b *Board) Pending(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.pending[id]
	return ok
}

// Items returns a copy of the collection in board order.
func (b *Board) Items() []model.Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Item, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Revision increases on every change to the collection.
func (b *Board) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rev
}

func (b *Board) acquire(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.pending[id]; busy {
		return false
	}
	b.pending[id] = struct{}{}
	return true
}

func (b *Board) release(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}
