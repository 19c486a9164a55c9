package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

// copyChunkSize bounds the buffer used when streaming a snapshot to a sink.
const copyChunkSize = 32 * 1024

// ListSnapshots returns the snapshot listing for the device. Snapshots are
// best-effort on the platform side: an empty listing, a missing result or an
// unexpected listing shape all come back as ErrNoSnapshots, which callers
// should treat as a normal outcome.
func (c *Client) ListSnapshots(ctx context.Context) ([]models.SnapshotEntry, error) {
	var entries []models.SnapshotEntry
	err := c.get(ctx, c.devicePath("snapshots"), nil, &entries)
	var ae *APIError
	if errors.As(err, &ae) && ae.Kind == MalformedResponse && ae.StatusCode == http.StatusOK {
		return nil, ErrNoSnapshots
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoSnapshots
	}
	return entries, nil
}

// LatestSnapshot picks the newest timestamp from a snapshot listing. Only
// the first device entry is inspected: the listing is device-scoped, so
// exactly one entry is expected. Timestamps are unique on the platform side.
func LatestSnapshot(entries []models.SnapshotEntry) (int64, error) {
	if len(entries) == 0 || len(entries[0].Snapshots) == 0 {
		return 0, ErrNoSnapshots
	}
	latest := entries[0].Snapshots[0]
	for _, ts := range entries[0].Snapshots[1:] {
		if ts > latest {
			latest = ts
		}
	}
	return latest, nil
}

// DownloadSnapshot streams the snapshot binary for the given timestamp into
// w. On a non-200 nothing is written and the classified error is returned; a
// failing write aborts the copy and is surfaced to the caller.
func (c *Client) DownloadSnapshot(ctx context.Context, timestamp int64, w io.Writer) error {
	path := c.devicePath(fmt.Sprintf("snapshots/%d", timestamp))
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(path)
	if err != nil {
		return &TransportError{URL: path, Err: err}
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
		return c.classifyFailure(resp.StatusCode(), raw, resp.Request.URL)
	}

	if _, err := io.CopyBuffer(w, body, make([]byte, copyChunkSize)); err != nil {
		return fmt.Errorf("flespi: streaming snapshot %d: %w", timestamp, err)
	}
	c.log.Debug("snapshot downloaded", "timestamp", timestamp)
	return nil
}

// DownloadLatestSnapshot resolves the most recent snapshot and streams it
// into w, returning the timestamp it chose.
func (c *Client) DownloadLatestSnapshot(ctx context.Context, w io.Writer) (int64, error) {
	entries, err := c.ListSnapshots(ctx)
	if err != nil {
		return 0, err
	}
	timestamp, err := LatestSnapshot(entries)
	if err != nil {
		return 0, err
	}
	if err := c.DownloadSnapshot(ctx, timestamp, w); err != nil {
		return 0, err
	}
	return timestamp, nil
}
