// Package block implements the protocol's transmission unit: a named,
// equal-length set of columns with a small info header, and its wire
// codec.
package block

import (
	"fmt"

	"github.com/tuannm99/novaclick/column"
)

// Info is the block header the server attaches to every data block.
type Info struct {
	IsOverflows uint8
	BucketNum   int32
}

func defaultInfo() Info {
	return Info{IsOverflows: 0, BucketNum: -1}
}

type item struct {
	name string
	col  column.Column
}

// Block is an ordered sequence of (name, column) entries. Every column
// holds the same number of rows.
type Block struct {
	info  Info
	items []item
	rows  int
}

func New() *Block {
	return &Block{info: defaultInfo()}
}

// AppendColumn appends (name, col). The first column fixes the block's
// row count; later columns must match it.
func (b *Block) AppendColumn(name string, col column.Column) error {
	if len(b.items) == 0 {
		b.rows = col.Size()
	} else if col.Size() != b.rows {
		return fmt.Errorf("%w: all columns in block must have same count of rows",
			column.ErrInvalidArgument)
	}
	b.items = append(b.items, item{name: name, col: col})
	return nil
}

// ColumnCount returns the number of columns.
func (b *Block) ColumnCount() int { return len(b.items) }

// RowCount returns the common row count of all columns.
func (b *Block) RowCount() int { return b.rows }

// Info returns the block header.
func (b *Block) Info() Info { return b.info }

// ColumnName returns the name of column i.
func (b *Block) ColumnName(i int) (string, error) {
	if i < 0 || i >= len(b.items) {
		return "", fmt.Errorf("%w: column index %d of %d", column.ErrOutOfRange, i, len(b.items))
	}
	return b.items[i].name, nil
}

// Column returns column i.
func (b *Block) Column(i int) (column.Column, error) {
	if i < 0 || i >= len(b.items) {
		return nil, fmt.Errorf("%w: column index %d of %d", column.ErrOutOfRange, i, len(b.items))
	}
	return b.items[i].col, nil
}

// SetColumnName renames column i. Used by the codec on the receive path.
func (b *Block) SetColumnName(i int, name string) error {
	if i < 0 || i >= len(b.items) {
		return fmt.Errorf("%w: column index %d of %d", column.ErrOutOfRange, i, len(b.items))
	}
	b.items[i].name = name
	return nil
}

// Clear resets the header and empties every column while keeping the
// column slots, so a receiver can reuse the block across many result
// fragments without reallocating.
func (b *Block) Clear() {
	b.info = defaultInfo()
	b.rows = 0
	for i := range b.items {
		b.items[i].col.Clear()
	}
}

// ReserveRows forwards the allocation hint to every column.
func (b *Block) ReserveRows(rows int) {
	for i := range b.items {
		b.items[i].col.ReserveRows(rows)
	}
}

// Iterator is a cursor over (name, type, column) in insertion order.
// Appending to the block invalidates it.
type Iterator struct {
	b   *Block
	idx int
}

func (b *Block) Iterate() *Iterator {
	return &Iterator{b: b}
}

func (it *Iterator) IsValid() bool { return it.idx < len(it.b.items) }

func (it *Iterator) Next() { it.idx++ }

func (it *Iterator) Name() string { return it.b.items[it.idx].name }

func (it *Iterator) Type() *column.Type { return it.b.items[it.idx].col.Type() }

func (it *Iterator) Column() column.Column { return it.b.items[it.idx].col }
