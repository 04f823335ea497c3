// Package meta holds the model of the remote metadata protocol: requests
// addressed to the frontend's metadata service and the loosely typed row
// batches it returns.
package meta

import (
	"fmt"
)

// Kind selects which remote metadata table is requested.
type Kind int32

const (
	KindUnspecified Kind = iota
	KindTableSnapshots
)

func (k Kind) String() string {
	switch k {
	case KindTableSnapshots:
		return "TABLE_SNAPSHOTS"
	default:
		return "UNSPECIFIED"
	}
}

// SnapshotsParams narrows a snapshot history request. A zero SnapshotID
// requests the full history.
type SnapshotsParams struct {
	SnapshotID int64
}

// ScanRange describes the portion of remote metadata one scan instance
// is responsible for. It carries at most one kind-specific parameter
// block; an empty range requests nothing and yields an immediate
// end-of-stream.
type ScanRange struct {
	Snapshots *SnapshotsParams
}

func (r *ScanRange) Kind() Kind {
	if r == nil || r.Snapshots == nil {
		return KindUnspecified
	}

	return KindTableSnapshots
}

// FetchRequest is the single outbound call of a metadata scan.
type FetchRequest struct {
	Cluster  string // may be empty
	Kind     Kind
	Catalog  string
	Database string
	Table    string

	Snapshots *SnapshotsParams
}

func (r *FetchRequest) String() string {
	return fmt.Sprintf("%v for %s.%s.%s", r.Kind, r.Catalog, r.Database, r.Table)
}

// Value is one variant-typed cell of a remote row. The effective tag is
// implicit: the destination slot's declared type decides which field is
// read. Timestamps travel in Long with their bits reinterpreted as the
// engine's native uint64 encoding.
type Value struct {
	Long int64
	Text string
}

// Row is an ordered list of values aligned with the destination slot
// order declared in the request.
type Row struct {
	Values []Value
}

// FetchResult is the complete response of one fetch call. The service
// returns the whole result set at once; there is no continuation
// protocol.
type FetchResult struct {
	Status Status
	Rows   []Row
}
