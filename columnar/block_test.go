package columnar

import (
	"testing"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/youtNa/doris/utils"
)

func testColumns(alloc memory.Allocator) ([]arrow.Field, []array.Builder) {
	fields := []arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}

	builders := []array.Builder{
		array.NewInt64Builder(alloc),
		array.NewStringBuilder(alloc),
	}

	return fields, builders
}

func TestBlockOwnershipRoundTrip(t *testing.T) {
	alloc := memory.NewGoAllocator()

	block := NewBlock()
	require.False(t, block.MemReuse())
	require.Nil(t, block.Detach())

	fields, builders := testColumns(alloc)

	builders[0].(*array.Int64Builder).Append(1)
	builders[1].(*array.StringBuilder).Append("a")

	require.NoError(t, block.Attach(fields, builders, 1))
	require.True(t, block.MemReuse())
	require.Equal(t, 1, block.Rows())
	require.Equal(t, 2, block.Columns())

	// detaching transfers ownership and leaves the block empty
	detached := block.Detach()
	require.Len(t, detached, 2)
	require.False(t, block.MemReuse())
	require.Equal(t, 0, block.Rows())

	for _, b := range detached {
		b.Release()
	}
}

func TestBlockAttachMismatchRejected(t *testing.T) {
	alloc := memory.NewGoAllocator()

	fields, builders := testColumns(alloc)

	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	block := NewBlock()

	err := block.Attach(fields[:1], builders, 0)
	require.ErrorIs(t, err, utils.ErrInvariantViolation)
}

func TestBlockRecordEmptiesBuilders(t *testing.T) {
	alloc := memory.NewGoAllocator()

	fields, builders := testColumns(alloc)

	builders[0].(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	builders[1].(*array.StringBuilder).AppendValues([]string{"a", "b"}, nil)

	block := NewBlock()
	require.NoError(t, block.Attach(fields, builders, 2))

	record, err := block.Record()
	require.NoError(t, err)

	defer record.Release()

	require.Equal(t, int64(2), record.NumRows())
	require.Equal(t, "id", record.ColumnName(0))
	require.Equal(t, int64(2), record.Column(0).(*array.Int64).Value(1))

	// builders stay attached but hold no rows, ready for reuse
	require.True(t, block.MemReuse())
	require.Equal(t, 0, block.Rows())

	reused := block.Detach()
	require.Equal(t, 0, reused[0].Len())
	require.Equal(t, 0, reused[1].Len())

	for _, b := range reused {
		b.Release()
	}
}

func TestBlockRecordPadsUnfilledColumns(t *testing.T) {
	alloc := memory.NewGoAllocator()

	fields, builders := testColumns(alloc)

	// only the first column received entries, as happens when the
	// planner prunes a slot
	builders[0].(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)

	block := NewBlock()
	require.NoError(t, block.Attach(fields, builders, 2))

	record, err := block.Record()
	require.NoError(t, err)

	defer record.Release()

	require.Equal(t, int64(2), record.NumRows())

	ids := record.Column(0).(*array.Int64)
	require.Equal(t, int64(1), ids.Value(0))
	require.Equal(t, int64(2), ids.Value(1))

	names := record.Column(1).(*array.String)
	require.Equal(t, 2, names.Len())
	require.True(t, names.IsNull(0))
	require.True(t, names.IsNull(1))
}

func TestBlockRecordWithoutColumns(t *testing.T) {
	block := NewBlock()

	_, err := block.Record()
	require.ErrorIs(t, err, utils.ErrInvariantViolation)
}
