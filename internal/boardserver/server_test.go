package boardserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/lostboard/internal/itemstore"
	"github.com/idilsaglam/lostboard/internal/logger"
	"github.com/idilsaglam/lostboard/internal/model"
)

func newTestServer(t *testing.T) (*httptest.Server, Repository) {
	t.Helper()
	repo := openRepo(t)
	srv := New(repo, logger.Discard())
	ids := 0
	srv.newID = func() string {
		ids++
		return strings.Repeat("i", ids)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func sampleDraft(title string) model.Draft {
	return model.Draft{
		ImageURL: "https://img.example/" + title + ".png",
		Title:    title,
		Location: "Library",
		Date:     "2025-05-04",
	}
}

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()
	ts, _ := newTestServer(t)
	client := itemstore.New(ts.URL + "/board")

	items, err := client.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	created, err := client.CreateItem(ctx, sampleDraft("Umbrella"))
	require.NoError(t, err)
	assert.Equal(t, "i", created.ID)
	assert.Equal(t, model.StatusActive, created.Status)

	_, err = client.CreateItem(ctx, sampleDraft("Scarf"))
	require.NoError(t, err)

	done, err := client.MarkDone(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Done())
	assert.Equal(t, "Umbrella", done.Title)

	items, err = client.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Done())
	assert.False(t, items[1].Done())
}

func TestMarkDoneUnknownIDIsFetchError(t *testing.T) {
	ts, _ := newTestServer(t)
	client := itemstore.New(ts.URL + "/board")

	_, err := client.MarkDone(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, itemstore.IsFetch(err))
	assert.Equal(t, http.StatusNotFound, itemstore.StatusCode(err))
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	ts, repo := newTestServer(t)

	resp, err := http.Post(ts.URL+"/board", "application/json", strings.NewReader(`{"title":"Keys"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Location is required.", body.Fields["location"])
	assert.Equal(t, "Image URL is required.", body.Fields["imageUrl"])
	assert.NotContains(t, body.Fields, "title")

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/board", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetItem(t *testing.T) {
	ts, repo := newTestServer(t)
	require.NoError(t, repo.Create(context.Background(), sampleDraft("Gloves").WithID("g1")))

	resp, err := http.Get(ts.URL + "/board/g1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var it model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&it))
	assert.Equal(t, "Gloves", it.Title)

	resp2, err := http.Get(ts.URL + "/board/missing")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	var msg string
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&msg))
	assert.Equal(t, "Not found", msg)
}

func TestPutIgnoresOtherFields(t *testing.T) {
	ts, repo := newTestServer(t)
	require.NoError(t, repo.Create(context.Background(), sampleDraft("Bag").WithID("b1")))

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/board/b1", strings.NewReader(`{"title":"Renamed"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var it model.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&it))
	assert.Equal(t, "Bag", it.Title)
	assert.False(t, it.Done())
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/board/x", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(openRepo(t), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
