package columnar

import (
	"fmt"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"

	"github.com/youtNa/doris/utils"
)

// Block is the destination columnar buffer of one scan batch: an ordered
// set of column builders aligned with the destination slot list.
//
// Ownership discipline: at any moment the backing builders have exactly
// one owner. A scanner takes them over with Detach before appending and
// hands them back with Attach once the batch is complete. Emitting a
// record empties the builders but keeps them attached, so the same block
// can be refilled without reallocation.
type Block struct {
	fields   []arrow.Field
	builders []array.Builder
	rows     int
}

func NewBlock() *Block { return &Block{} }

// MemReuse reports whether the block still carries builders from a
// previous fill that can be reused.
func (b *Block) MemReuse() bool { return len(b.builders) > 0 }

// Detach transfers exclusive ownership of the column builders to the
// caller. The block keeps no reference to them until they are attached
// back.
func (b *Block) Detach() []array.Builder {
	builders := b.builders

	b.fields = nil
	b.builders = nil
	b.rows = 0

	return builders
}

// Attach hands a filled column set back to the block. The composition
// must match the destination slot list the builders were created from.
func (b *Block) Attach(fields []arrow.Field, builders []array.Builder, rows int) error {
	if len(fields) != len(builders) {
		return fmt.Errorf(
			"%d fields against %d builders: %w",
			len(fields), len(builders), utils.ErrInvariantViolation)
	}

	b.fields = fields
	b.builders = builders
	b.rows = rows

	return nil
}

func (b *Block) Rows() int { return b.rows }

func (b *Block) Columns() int { return len(b.builders) }

func (b *Block) Field(i int) arrow.Field { return b.fields[i] }

// Record drains the builders into an immutable arrow record. The
// builders are left attached and empty, ready for reuse.
//
// Columns the scan never materialized hold no entries; they are padded
// with nulls up to the row count so every column of the record has the
// same length.
func (b *Block) Record() (arrow.Record, error) {
	if len(b.builders) == 0 {
		return nil, fmt.Errorf("block has no columns attached: %w", utils.ErrInvariantViolation)
	}

	chunk := make([]arrow.Array, 0, len(b.builders))

	for _, builder := range b.builders {
		if short := b.rows - builder.Len(); short > 0 {
			builder.AppendNulls(short)
		}

		chunk = append(chunk, builder.NewArray())
	}

	record := array.NewRecord(arrow.NewSchema(b.fields, nil), chunk, int64(b.rows))

	for _, col := range chunk {
		col.Release()
	}

	b.rows = 0

	return record, nil
}

// Release frees the builders. The block must not be reused afterwards.
func (b *Block) Release() {
	for _, builder := range b.builders {
		builder.Release()
	}

	b.fields = nil
	b.builders = nil
	b.rows = 0
}
