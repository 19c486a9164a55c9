package models

// SnapshotEntry lists the archival snapshot timestamps available for one
// device. Snapshots are diagnostic and short-lived; an empty list is a
// normal outcome.
type SnapshotEntry struct {
	ID        int64   `json:"id"`
	Snapshots []int64 `json:"snapshots"`
}
