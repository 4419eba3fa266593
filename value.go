package tiffmeta

import (
	"encoding/binary"
	"math"
)

const (
	exitTypeUnsignedByte  exifType = 1
	exitTypeUnsignedASCII exifType = 2
	exitTypeUnsignedShort exifType = 3
	exitTypeUnsignedLong  exifType = 4
	exitTypeUnsignedRat   exifType = 5
	exitTypeSignedByte    exifType = 6
	exitTypeUndef         exifType = 7
	exitTypeSignedShort   exifType = 8
	exitTypeSignedLong    exifType = 9
	exitTypeSignedRat     exifType = 10
	exitTypeSignedFloat   exifType = 11
	exitTypeSignedDouble  exifType = 12
)

// exifType represents the basic TIFF field data types.
type exifType uint16

// UnknownValue preserves the raw descriptor of a field whose type is not in
// exifTypeInfos, so the caller can still get at the bytes if a later revision
// of the table learns how to decode it.
type UnknownValue struct {
	Type   uint16
	Count  uint32
	Offset uint32
}

type valueDecoderFunc func(byteOrder binary.ByteOrder, b []byte, count uint32) any

type exifTypeInfo struct {
	// Size in bytes of one element of this type.
	size   uint32
	decode valueDecoderFunc
}

var exifTypeInfos = map[exifType]exifTypeInfo{
	exitTypeUnsignedByte:  {1, decodeBytes},
	exitTypeUnsignedASCII: {1, decodeASCII},
	exitTypeUnsignedShort: {2, decodeUnsignedShorts},
	exitTypeUnsignedLong:  {4, decodeUnsignedLongs},
	exitTypeUnsignedRat:   {8, decodeUnsignedRats},
	exitTypeSignedByte:    {1, decodeSignedBytes},
	exitTypeUndef:         {1, decodeBytes},
	exitTypeSignedShort:   {2, decodeSignedShorts},
	exitTypeSignedLong:    {4, decodeSignedLongs},
	exitTypeSignedRat:     {8, decodeSignedRats},
	exitTypeSignedFloat:   {4, decodeFloats},
	exitTypeSignedDouble:  {8, decodeDoubles},
}

func decodeBytes(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]byte, count)
	copy(vs, b)
	return vs
}

func decodeASCII(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	return string(trimBytesNulls(b[:count]))
}

func decodeUnsignedShorts(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]uint16, count)
	for i := range vs {
		vs[i] = byteOrder.Uint16(b[i*2:])
	}
	return vs
}

func decodeUnsignedLongs(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]uint32, count)
	for i := range vs {
		vs[i] = byteOrder.Uint32(b[i*4:])
	}
	return vs
}

func decodeUnsignedRats(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]Rat[uint32], count)
	for i := range vs {
		num := byteOrder.Uint32(b[i*8:])
		den := byteOrder.Uint32(b[i*8+4:])
		vs[i] = &rat[uint32]{num: num, den: den}
	}
	return vs
}

func decodeSignedBytes(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]int8, count)
	for i := range vs {
		vs[i] = int8(b[i])
	}
	return vs
}

func decodeSignedShorts(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]int16, count)
	for i := range vs {
		vs[i] = int16(byteOrder.Uint16(b[i*2:]))
	}
	return vs
}

func decodeSignedLongs(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]int32, count)
	for i := range vs {
		vs[i] = int32(byteOrder.Uint32(b[i*4:]))
	}
	return vs
}

func decodeSignedRats(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]Rat[int32], count)
	for i := range vs {
		num := int32(byteOrder.Uint32(b[i*8:]))
		den := int32(byteOrder.Uint32(b[i*8+4:]))
		vs[i] = &rat[int32]{num: num, den: den}
	}
	return vs
}

func decodeFloats(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]float32, count)
	for i := range vs {
		vs[i] = math.Float32frombits(byteOrder.Uint32(b[i*4:]))
	}
	return vs
}

func decodeDoubles(byteOrder binary.ByteOrder, b []byte, count uint32) any {
	vs := make([]float64, count)
	for i := range vs {
		vs[i] = math.Float64frombits(byteOrder.Uint64(b[i*8:]))
	}
	return vs
}

// unwrapSingle collapses a one element slice to its scalar, which is what
// callers want for the common count==1 case. Strings are left alone.
func unwrapSingle(v any) any {
	switch vs := v.(type) {
	case []byte:
		if len(vs) == 1 {
			return vs[0]
		}
	case []uint16:
		if len(vs) == 1 {
			return vs[0]
		}
	case []uint32:
		if len(vs) == 1 {
			return vs[0]
		}
	case []int8:
		if len(vs) == 1 {
			return vs[0]
		}
	case []int16:
		if len(vs) == 1 {
			return vs[0]
		}
	case []int32:
		if len(vs) == 1 {
			return vs[0]
		}
	case []float32:
		if len(vs) == 1 {
			return vs[0]
		}
	case []float64:
		if len(vs) == 1 {
			return vs[0]
		}
	case []Rat[uint32]:
		if len(vs) == 1 {
			return vs[0]
		}
	case []Rat[int32]:
		if len(vs) == 1 {
			return vs[0]
		}
	}
	return v
}
