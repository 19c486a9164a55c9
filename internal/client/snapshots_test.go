package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

func TestLatestSnapshot_PicksMaximum(t *testing.T) {
	entries := []models.SnapshotEntry{{ID: 1, Snapshots: []int64{100, 300, 200}}}
	ts, err := LatestSnapshot(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(300), ts)
}

// Only the first device entry is inspected, even when several are listed.
func TestLatestSnapshot_FirstEntryOnly(t *testing.T) {
	entries := []models.SnapshotEntry{
		{ID: 1, Snapshots: []int64{100, 200}},
		{ID: 2, Snapshots: []int64{900}},
	}
	ts, err := LatestSnapshot(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(200), ts)
}

func TestLatestSnapshot_Empty(t *testing.T) {
	_, err := LatestSnapshot(nil)
	assert.ErrorIs(t, err, ErrNoSnapshots)

	_, err = LatestSnapshot([]models.SnapshotEntry{{ID: 1}})
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestListSnapshots_EmptyOrMissingResult(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty result", `{"result":[]}`},
		{"missing result", `{"something":"else"}`},
		{"not json", `oops`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			c := newTestClient(t, srv, 42)
			_, err := c.ListSnapshots(context.Background())
			assert.ErrorIs(t, err, ErrNoSnapshots)
		})
	}
}

// Auth failures on the listing surface as APIError, not as "no snapshots".
func TestListSnapshots_AuthFailureIsNotEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":[{"reason":"unauthorized request"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	_, err := c.ListSnapshots(context.Background())
	assert.False(t, errors.Is(err, ErrNoSnapshots))
	assert.True(t, IsAuthError(err))
}

func TestDownloadSnapshot_StreamsBody(t *testing.T) {
	payload := strings.Repeat("x", 3*copyChunkSize+17) // force several chunks
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/42/snapshots/1609578000", r.URL.Path)
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	var sink bytes.Buffer
	err := c.DownloadSnapshot(context.Background(), 1609578000, &sink)
	require.NoError(t, err)
	assert.Equal(t, payload, sink.String())
}

func TestDownloadSnapshot_NonOKWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors":[{"reason":"no ACL for snapshots"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	var sink bytes.Buffer
	err := c.DownloadSnapshot(context.Background(), 100, &sink)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, Forbidden, ae.Kind)
	assert.Equal(t, "no ACL for snapshots", ae.Reason)
	assert.Zero(t, sink.Len(), "no partial data on failure")
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDownloadSnapshot_SinkFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", copyChunkSize))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	err := c.DownloadSnapshot(context.Background(), 100, failingSink{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDownloadLatestSnapshot_Flow(t *testing.T) {
	var fetched []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = append(fetched, r.URL.Path)
		switch r.URL.Path {
		case "/devices/42/snapshots":
			fmt.Fprint(w, `{"result":[{"id":1,"snapshots":[100,300,200]}]}`)
		case "/devices/42/snapshots/300":
			fmt.Fprint(w, "binary-dump")
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	var sink bytes.Buffer
	ts, err := c.DownloadLatestSnapshot(context.Background(), &sink)
	require.NoError(t, err)
	assert.Equal(t, int64(300), ts)
	assert.Equal(t, "binary-dump", sink.String())
	assert.Equal(t, []string{"/devices/42/snapshots", "/devices/42/snapshots/300"}, fetched)
}

func TestDownloadLatestSnapshot_NoSnapshotsNeverFetches(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{"result":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	var sink bytes.Buffer
	_, err := c.DownloadLatestSnapshot(context.Background(), &sink)
	assert.ErrorIs(t, err, ErrNoSnapshots)
	assert.Zero(t, sink.Len())
	assert.Equal(t, []string{"/devices/42/snapshots"}, paths, "no snapshot fetch after an empty listing")
}
