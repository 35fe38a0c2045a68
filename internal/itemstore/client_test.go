package itemstore_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/lostboard/internal/itemstore"
	"github.com/idilsaglam/lostboard/internal/model"
)

func TestListItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/board", r.URL.Path)
		w.Write([]byte(`[
			{"id":"1","imageUrl":"a.jpg","title":"Black phone","location":"Metro","date":"2025-08-01","type":false,"status":false},
			{"id":"2","imageUrl":"b.jpg","title":"Wallet","location":"Park","date":"2025-08-02","type":true,"status":true}
		]`))
	}))
	defer ts.Close()

	c := itemstore.New(ts.URL + "/board/")
	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Black phone", items[0].Title)
	assert.Equal(t, model.KindFound, items[1].Kind)
	assert.Equal(t, model.StatusDone, items[1].Status)
}

func TestListItemsErrors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantFetch bool
		wantParse bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantFetch: true},
		{name: "not found", status: http.StatusNotFound, body: `"Not found"`, wantFetch: true},
		{name: "not json", status: http.StatusOK, body: "<html>", wantParse: true},
		{name: "object instead of array", status: http.StatusOK, body: `{"id":"1"}`, wantParse: true},
		{name: "null", status: http.StatusOK, body: `null`, wantParse: true},
		{name: "bad flag", status: http.StatusOK, body: `[{"id":"1","type":"lost"}]`, wantParse: true},
		{name: "missing id", status: http.StatusOK, body: `[{"title":"x"}]`, wantParse: true},
		{name: "duplicate id", status: http.StatusOK, body: `[{"id":"1"},{"id":"1"}]`, wantParse: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			items, err := itemstore.New(ts.URL).ListItems(context.Background())
			require.Error(t, err)
			assert.Nil(t, items)
			assert.Equal(t, tc.wantFetch, itemstore.IsFetch(err), err.Error())
			assert.Equal(t, tc.wantParse, itemstore.IsParse(err), err.Error())
			if tc.wantFetch {
				assert.Equal(t, tc.status, itemstore.StatusCode(err))
			}
		})
	}
}

func TestListItemsTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := itemstore.New(url).ListItems(context.Background())
	require.Error(t, err)
	assert.True(t, itemstore.IsFetch(err))
	assert.Equal(t, 0, itemstore.StatusCode(err))
}

func TestCreateItem(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"imageUrl":"a.jpg","title":"Keys","location":"Cafe","date":"2025-08-03","type":true,"status":false}`, string(raw))

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		body["id"] = "99"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer ts.Close()

	d := model.Draft{ImageURL: "a.jpg", Title: "Keys", Location: "Cafe", Date: "2025-08-03", Kind: model.KindFound}
	it, err := itemstore.New(ts.URL).CreateItem(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, d.WithID("99"), it)
}

func TestCreateItemFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.UserAgent(), "broken") {
			w.Write([]byte(`{"title":"no id"}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := itemstore.New(ts.URL).CreateItem(context.Background(), model.Draft{Title: "x"})
	assert.True(t, itemstore.IsFetch(err))
	assert.Equal(t, http.StatusBadRequest, itemstore.StatusCode(err))

	_, err = itemstore.New(ts.URL, itemstore.WithUserAgent("broken")).CreateItem(context.Background(), model.Draft{Title: "x"})
	assert.True(t, itemstore.IsParse(err))
}

func TestMarkDone(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/board/5" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`"Not found"`))
			return
		}
		assert.Equal(t, http.MethodPut, r.Method)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":true}`, string(raw))
		w.Write([]byte(`{"id":"5","imageUrl":"a.jpg","title":"Umbrella","location":"Bus","date":"2025-08-04","type":false,"status":true}`))
	}))
	defer ts.Close()

	c := itemstore.New(ts.URL + "/board")

	it, err := c.MarkDone(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "5", it.ID)
	assert.True(t, it.Done())

	_, err = c.MarkDone(context.Background(), "404")
	require.Error(t, err)
	assert.True(t, itemstore.IsFetch(err))
	assert.Equal(t, http.StatusNotFound, itemstore.StatusCode(err))
	assert.Contains(t, err.Error(), "Not found")

	_, err = c.MarkDone(context.Background(), " ")
	assert.Error(t, err)
}

func TestCanceledContextIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := itemstore.New(ts.URL).ListItems(ctx)
	require.Error(t, err)
	assert.True(t, itemstore.IsFetch(err))
	assert.ErrorIs(t, err, context.Canceled)
}
