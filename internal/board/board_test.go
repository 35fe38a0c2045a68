package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/lostboard/internal/model"
)

type fakeStore struct {
	mu sync.Mutex

	items     []model.Item
	listErr   error
	createErr error
	markErr   error
	nextID    int

	creates int
	marks   int

	// markGate, when set, blocks MarkDone until closed.
	markGate    chan struct{}
	markStarted chan struct{}
}

func (f *fakeStore) ListItems(ctx context.Context) ([]model.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStore) CreateItem(ctx context.Context, d model.Draft) (model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return model.Item{}, f.createErr
	}
	f.nextID++
	return d.WithID(fmt.Sprintf("srv-%d", f.nextID)), nil
}

func (f *fakeStore) MarkDone(ctx context.Context, id string) (model.Item, error) {
	f.mu.Lock()
	f.marks++
	gate, started := f.markGate, f.markStarted
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if f.markErr != nil {
		return model.Item{}, f.markErr
	}
	// The server's copy deliberately differs to prove it is not adopted.
	return model.Item{ID: id, Title: "server copy", Status: model.StatusDone}, nil
}

func seed() []model.Item {
	return []model.Item{
		{ID: "1", ImageURL: "a", Title: "Black phone", Location: "Metro", Date: "2025-08-01", Kind: model.KindLost},
		{ID: "2", ImageURL: "b", Title: "Wallet", Location: "Park", Date: "2025-08-02", Kind: model.KindFound, Status: model.StatusDone},
		{ID: "3", ImageURL: "c", Title: "Keys", Location: "Cafe", Date: "2025-08-03", Kind: model.KindFound},
	}
}

func validDraft() model.Draft {
	return model.Draft{ImageURL: "d.jpg", Title: "Umbrella", Location: "Bus 12", Date: "2025-08-04", Kind: model.KindLost}
}

func TestLoadReplacesCollection(t *testing.T) {
	b := New(&fakeStore{items: seed()}, nil)
	b.ReplaceAll([]model.Item{{ID: "old"}})

	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, seed(), b.Items())
}

func TestLoadFailureLeavesBoardEmpty(t *testing.T) {
	boom := errors.New("transport down")
	b := New(&fakeStore{listErr: boom}, nil)

	err := b.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, b.Items())
	assert.Equal(t, 0, b.Len())
}

func TestAddAppendsCreatedItem(t *testing.T) {
	store := &fakeStore{items: seed()}
	b := New(store, nil)
	require.NoError(t, b.Load(context.Background()))
	before := b.Items()

	created, err := b.Add(context.Background(), validDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, validDraft(), created.Draft())

	after := b.Items()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, created, after[len(after)-1])
}

func TestAddFailureLeavesCollection(t *testing.T) {
	store := &fakeStore{items: seed(), createErr: errors.New("500")}
	b := New(store, nil)
	require.NoError(t, b.Load(context.Background()))

	_, err := b.Add(context.Background(), validDraft())
	require.Error(t, err)
	assert.Equal(t, seed(), b.Items())
}

func TestAddRejectsInvalidDraftWithoutCallingStore(t *testing.T) {
	store := &fakeStore{}
	b := New(store, nil)

	d := validDraft()
	d.Location = ""
	_, err := b.Add(context.Background(), d)

	fe, ok := model.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "location")
	assert.Equal(t, 0, store.creates)
	assert.Empty(t, b.Items())
}

func TestMarkDoneFlipsOnlyMatchingItem(t *testing.T) {
	for _, id := range []string{"1", "2", "3"} {
		t.Run(id, func(t *testing.T) {
			b := New(&fakeStore{items: seed()}, nil)
			require.NoError(t, b.Load(context.Background()))
			rev := b.Revision()

			got, err := b.MarkDone(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.NotEqual(t, "server copy", got.Title)

			after := b.Items()
			require.Len(t, after, 3)
			for i, it := range after {
				want := seed()[i]
				if it.ID == id {
					want.Status = model.StatusDone
				}
				assert.Equal(t, want, it)
			}
			assert.Greater(t, b.Revision(), rev)
		})
	}
}

func TestMarkDoneUnknownIDIsLocalNoop(t *testing.T) {
	b := New(&fakeStore{items: seed()}, nil)
	require.NoError(t, b.Load(context.Background()))
	rev := b.Revision()

	_, err := b.MarkDone(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, seed(), b.Items())
	assert.Equal(t, rev, b.Revision())
}

func TestMarkDoneFailureLeavesCollection(t *testing.T) {
	b := New(&fakeStore{items: seed(), markErr: errors.New("404")}, nil)
	require.NoError(t, b.Load(context.Background()))

	_, err := b.MarkDone(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, seed(), b.Items())
	assert.False(t, b.Pending("1"))
}

func TestMarkDoneGuardsSameItem(t *testing.T) {
	store := &fakeStore{
		items:       seed(),
		markGate:    make(chan struct{}),
		markStarted: make(chan struct{}, 2),
	}
	b := New(store, nil)
	require.NoError(t, b.Load(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := b.MarkDone(context.Background(), "1")
		done <- err
	}()
	<-store.markStarted

	assert.True(t, b.Pending("1"))
	_, err := b.MarkDone(context.Background(), "1")
	assert.ErrorIs(t, err, ErrInFlight)

	// A different item is not blocked by the guard.
	go func() { b.MarkDone(context.Background(), "3") }()
	<-store.markStarted

	close(store.markGate)
	require.NoError(t, <-done)
	assert.False(t, b.Pending("1"))
	assert.Equal(t, model.StatusDone, b.Items()[0].Status)
}

func TestItemsReturnsCopy(t *testing.T) {
	b := New(&fakeStore{}, nil)
	b.ReplaceAll(seed())

	snap := b.Items()
	snap[0].Title = "mutated"
	assert.Equal(t, "Black phone", b.Items()[0].Title)
}
