package tiffmeta

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
	tiffMagic             = 0x2a

	// Limit the top level IFD count to defend against chain loops and
	// resource exhaustion.
	maxIFDCount = 8

	// An IFD entry is 12 bytes: tag u16, type u16, count u32 and 4 bytes
	// holding the value when it fits, otherwise its offset.
	entrySize = 12
)

// In is the number of an IFD in the top level chain. IFD0 describes the
// primary image, IFD1 the thumbnail.
type In uint16

const (
	// InPrimary is the IFD number of the primary image.
	InPrimary In = 0
	// InThumbnail is the IFD number of the thumbnail image.
	InThumbnail In = 1
)

func (n In) String() string {
	return fmt.Sprintf("IFD%d", uint16(n))
}

// Field is one decoded TIFF field.
type Field struct {
	// Tag identifies the field.
	Tag Tag

	// IFD is the number of the top level IFD this field belongs to. Fields
	// in a sub-IFD get the number of the top level IFD the pointer came from.
	IFD In

	// Value is the decoded value.
	Value any
}

func (f Field) String() string {
	return fmt.Sprintf("%s %s: %v", f.IFD, f.Tag, f.Value)
}

// IsTIFF reports whether buf starts with a TIFF header.
func IsTIFF(buf []byte) bool {
	return len(buf) >= 4 && (string(buf[:4]) == "MM\x00\x2a" || string(buf[:4]) == "II\x2a\x00")
}

// errorPolicy decides what happens to a structural error found inside the
// TIFF structure. In strict mode the first error aborts the parse. With
// continueOnError the error is logged and the caller resumes, skipping the
// faulty entry, child IFD or chain remainder.
type errorPolicy struct {
	continueOnError bool
	warnf           func(string, ...any)
	errs            *multierror.Error
}

func (p *errorPolicy) check(err error) error {
	if err == nil {
		return nil
	}
	// Nothing to resume when there is no Exif data at all.
	if !p.continueOnError || IsNotFound(err) {
		return err
	}
	p.warnf("tiffmeta: %v", err)
	p.errs = multierror.Append(p.errs, err)
	return nil
}

func (p *errorPolicy) errors() []error {
	if p.errs == nil {
		return nil
	}
	return p.errs.Errors
}

// tiffDecoder decodes a TIFF structured stream from an in memory buffer.
// Offsets inside the stream are absolute positions in data.
type tiffDecoder struct {
	data      []byte
	byteOrder binary.ByteOrder
	policy    *errorPolicy

	entries []*ifdEntry
}

// decode parses the IFD tree. The header must be intact in both error
// modes; once past it, structural errors are routed through the policy.
func (d *tiffDecoder) decode() error {
	if len(d.data) < 8 {
		return newInvalidFormatErrorf("truncated TIFF header")
	}
	switch binary.BigEndian.Uint16(d.data[:2]) {
	case byteOrderBigEndian:
		d.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		d.byteOrder = binary.LittleEndian
	default:
		return newInvalidFormatErrorf("invalid TIFF byte order")
	}
	if d.byteOrder.Uint16(d.data[2:4]) != tiffMagic {
		return newInvalidFormatErrorf("invalid TIFF magic")
	}
	ifdOffset := d.byteOrder.Uint32(d.data[4:8])

	if err := d.parseChain(ifdOffset); err != nil {
		return d.policy.check(err)
	}
	return nil
}

func (d *tiffDecoder) result() *DecodeResult {
	fields := make([]Field, len(d.entries))
	for i, entry := range d.entries {
		fields[i] = entry.field(d.data)
	}
	return &DecodeResult{
		Fields:    fields,
		ByteOrder: d.byteOrder,
		Errors:    d.policy.errors(),
	}
}

// parseChain walks the top level chain of IFDs. The cap check precedes the
// increment, so the IFD number cannot wrap.
func (d *tiffDecoder) parseChain(offset uint32) error {
	for num := uint16(0); offset != 0; num++ {
		if num >= maxIFDCount {
			return newInvalidFormatErrorf("too many IFDs")
		}
		next, err := d.parseIFD(ContextTIFF, In(num), offset)
		if err != nil {
			return err
		}
		offset = next
	}
	return nil
}

// parseIFD parses the directory at offset and returns the offset of the
// next IFD in its chain, 0 when the chain ends.
func (d *tiffDecoder) parseIFD(ctx Context, ifd In, offset uint32) (uint32, error) {
	ofs := uint64(offset)
	if ofs+2 > uint64(len(d.data)) {
		return 0, newInvalidFormatErrorf("truncated IFD count")
	}
	count := d.byteOrder.Uint16(d.data[ofs:])
	entriesEnd := ofs + 2 + uint64(count)*entrySize
	if entriesEnd > uint64(len(d.data)) {
		return 0, newInvalidFormatErrorf("truncated IFD")
	}

	for i := uint16(0); i < count; i++ {
		entry, err := d.parseEntry(ctx, ifd, ofs+2+uint64(i)*entrySize)
		if err != nil {
			if err := d.policy.check(err); err != nil {
				return 0, err
			}
			continue
		}

		// The tag carries the context it was scanned in, so the pointer
		// tags only match in the top level chain and the walk cannot
		// recurse deeper than one level.
		if childCtx, ok := childContext(entry.tag); ok {
			if err := d.policy.check(d.parseChildIFD(childCtx, ifd, entry)); err != nil {
				return 0, err
			}
			continue
		}

		d.entries = append(d.entries, entry)
	}

	if entriesEnd+4 > uint64(len(d.data)) {
		return 0, newInvalidFormatErrorf("truncated next IFD offset")
	}
	return d.byteOrder.Uint32(d.data[entriesEnd:]), nil
}

// parseEntry parses the 12 byte entry at offset into a deferred entry.
// The value bytes are bounds checked here, but not decoded.
func (d *tiffDecoder) parseEntry(ctx Context, ifd In, offset uint64) (*ifdEntry, error) {
	b := d.data[offset : offset+entrySize]
	entry := &ifdEntry{
		tag:       Tag{Context: ctx, ID: d.byteOrder.Uint16(b)},
		ifd:       ifd,
		typ:       exifType(d.byteOrder.Uint16(b[2:])),
		count:     d.byteOrder.Uint32(b[4:]),
		byteOrder: d.byteOrder,
	}

	info, known := exifTypeInfos[entry.typ]
	if !known {
		// An unrecognized type has no length to check; keep the inline
		// slot offset so the descriptor stays addressable.
		entry.valueOffset = uint32(offset) + 8
		return entry, nil
	}

	vallen := uint64(info.size) * uint64(entry.count)
	if vallen > math.MaxUint32 {
		return nil, newInvalidFormatErrorf("invalid entry count")
	}
	if vallen <= 4 {
		entry.valueOffset = uint32(offset) + 8
	} else {
		valueOffset := d.byteOrder.Uint32(b[8:])
		if uint64(valueOffset)+vallen > uint64(len(d.data)) {
			return nil, newInvalidFormatErrorf("truncated field value")
		}
		entry.valueOffset = valueOffset
	}
	return entry, nil
}

// parseChildIFD follows a pointer entry into its sub-IFD. A child IFD ends
// its own chain; a non zero next offset is an error.
func (d *tiffDecoder) parseChildIFD(ctx Context, ifd In, entry *ifdEntry) error {
	ofs, ok := entry.uintValue(d.data)
	if !ok {
		return newInvalidFormatErrorf("invalid pointer")
	}
	next, err := d.parseIFD(ctx, ifd, ofs)
	if err != nil {
		return err
	}
	if next != 0 {
		return newInvalidFormatErrorf("unexpected next IFD")
	}
	return nil
}

// ifdEntry is a parsed directory entry whose value has not necessarily
// been decoded yet. The descriptor (type, count, offset) is resolved into
// a concrete value at most once.
type ifdEntry struct {
	tag         Tag
	ifd         In
	typ         exifType
	count       uint32
	valueOffset uint32
	byteOrder   binary.ByteOrder

	materialized bool
	value        any
}

// materializeValue decodes the descriptor into its concrete value. It must
// not be called on an entry that already holds one.
func (e *ifdEntry) materializeValue(data []byte) {
	if e.materialized {
		panic("tiffmeta: value already materialized")
	}
	e.materialized = true

	info, known := exifTypeInfos[e.typ]
	if !known {
		e.value = UnknownValue{Type: uint16(e.typ), Count: e.count, Offset: e.valueOffset}
		return
	}
	vallen := uint64(info.size) * uint64(e.count)
	end := uint64(e.valueOffset) + vallen
	if end > uint64(len(data)) {
		e.value = UnknownValue{Type: uint16(e.typ), Count: e.count, Offset: e.valueOffset}
		return
	}
	e.value = unwrapSingle(info.decode(e.byteOrder, data[e.valueOffset:end], e.count))
}

// field returns the entry as a Field, decoding the value on first use.
func (e *ifdEntry) field(data []byte) Field {
	if !e.materialized {
		e.materializeValue(data)
	}
	return Field{Tag: e.tag, IFD: e.ifd, Value: e.value}
}

// uintValue returns the entry's value as a single unsigned int.
func (e *ifdEntry) uintValue(data []byte) (uint32, bool) {
	switch v := e.field(data).Value.(type) {
	case uint32:
		return v, true
	case uint16:
		return uint32(v), true
	case uint8:
		return uint32(v), true
	}
	return 0, false
}
