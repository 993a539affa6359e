package block

import (
	"fmt"

	"github.com/tuannm99/novaclick/column"
	"github.com/tuannm99/novaclick/internal/wire"
)

// Block info is a tagged field sequence: (field number, value) pairs
// terminated by field number 0.
const (
	infoFieldEnd         = 0
	infoFieldIsOverflows = 1
	infoFieldBucketNum   = 2
)

// Encode writes the block: info header, column count, row count, then
// per column the name, the canonical type name and the column body.
func (b *Block) Encode(w *wire.Writer) error {
	if err := b.encodeInfo(w); err != nil {
		return err
	}
	if err := w.WriteUvarint(uint64(len(b.items))); err != nil {
		return err
	}
	if err := w.WriteUvarint(uint64(b.rows)); err != nil {
		return err
	}
	for _, it := range b.items {
		if err := w.WriteString(it.name); err != nil {
			return err
		}
		if err := w.WriteString(it.col.Type().Name()); err != nil {
			return err
		}
		if err := it.col.Save(w); err != nil {
			return err
		}
	}
	return nil
}

func (b *Block) encodeInfo(w *wire.Writer) error {
	// Default field values are omitted.
	if b.info.IsOverflows != 0 {
		if err := w.WriteUvarint(infoFieldIsOverflows); err != nil {
			return err
		}
		if err := w.WriteUint8(b.info.IsOverflows); err != nil {
			return err
		}
	}
	if b.info.BucketNum != -1 {
		if err := w.WriteUvarint(infoFieldBucketNum); err != nil {
			return err
		}
		if err := w.WriteInt32(b.info.BucketNum); err != nil {
			return err
		}
	}
	return w.WriteUvarint(infoFieldEnd)
}

// Decode reads one block. Column slots whose descriptor matches the
// incoming type are reused and the freshly decoded rows append to them,
// so a caller can accumulate several result fragments in one block.
// Other slots are replaced by columns built from the parsed type name.
func (b *Block) Decode(r *wire.Reader) error {
	if err := b.decodeInfo(r); err != nil {
		return err
	}
	cols, err := r.ReadUvarint()
	if err != nil {
		return err
	}
	rows, err := r.ReadUvarint()
	if err != nil {
		return err
	}

	if cols == 0 {
		// Empty trailing block: end-of-stream marker.
		b.items = b.items[:0]
		b.rows = 0
		return nil
	}

	for i := 0; i < int(cols); i++ {
		name, err := r.ReadString()
		if err != nil {
			return err
		}
		typeName, err := r.ReadString()
		if err != nil {
			return err
		}
		t, err := column.ParseTypeName(typeName)
		if err != nil {
			return err
		}

		col, err := b.receiveColumn(i, t)
		if err != nil {
			return err
		}
		if err := col.Load(r, int(rows)); err != nil {
			return fmt.Errorf("block: load column %q: %w", name, err)
		}
		if err := b.SetColumnName(i, name); err != nil {
			return err
		}
	}
	if int(cols) < len(b.items) {
		b.items = b.items[:cols]
	}
	b.rows = b.items[0].col.Size()
	return nil
}

// receiveColumn returns the column for slot i, reusing an existing slot
// when its descriptor equals t.
func (b *Block) receiveColumn(i int, t *column.Type) (column.Column, error) {
	if i < len(b.items) && b.items[i].col.Type().Equal(t) {
		return b.items[i].col, nil
	}
	col, err := column.New(t)
	if err != nil {
		return nil, err
	}
	if i < len(b.items) {
		b.items[i] = item{col: col}
	} else {
		b.items = append(b.items, item{col: col})
	}
	return col, nil
}

func (b *Block) decodeInfo(r *wire.Reader) error {
	b.info = defaultInfo()
	for {
		field, err := r.ReadUvarint()
		if err != nil {
			return err
		}
		switch field {
		case infoFieldEnd:
			return nil
		case infoFieldIsOverflows:
			if b.info.IsOverflows, err = r.ReadUint8(); err != nil {
				return err
			}
		case infoFieldBucketNum:
			if b.info.BucketNum, err = r.ReadInt32(); err != nil {
				return err
			}
		default:
			// Field payload sizes are not self-describing, so an
			// unknown field cannot be skipped.
			return fmt.Errorf("%w: unknown block info field %d", column.ErrMalformedWire, field)
		}
	}
}
