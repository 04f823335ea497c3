package meta

import (
	"github.com/youtNa/doris/descriptor"
)

// SnapshotsTuple is the destination schema of the table snapshot history
// metadata table. Column order is part of the wire contract: the remote
// service emits row values in exactly this order.
func SnapshotsTuple(id int64) *descriptor.TupleDescriptor {
	return &descriptor.TupleDescriptor{
		ID: id,
		Slots: []*descriptor.SlotDescriptor{
			{Name: "committed_at", Type: descriptor.TypeTimestamp, Materialized: true},
			{Name: "snapshot_id", Type: descriptor.TypeBigInt, Materialized: true},
			{Name: "parent_id", Type: descriptor.TypeBigInt, Materialized: true},
			{Name: "operation", Type: descriptor.TypeString, Nullable: true, Materialized: true},
			{Name: "manifest_list", Type: descriptor.TypeString, Nullable: true, Materialized: true},
			{Name: "summary", Type: descriptor.TypeString, Nullable: true, Materialized: true},
		},
	}
}
