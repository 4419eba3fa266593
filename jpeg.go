package tiffmeta

import (
	"encoding/binary"
)

const (
	markerSOI      = 0xffd8
	markerEOI      = 0xffd9
	markerSOS      = 0xffda
	markerTEM      = 0xff01
	markerRST0     = 0xffd0
	markerRST7     = 0xffd7
	markerApp1EXIF = 0xffe1
	exifHeader     = 0x45786966
)

// IsJPEG reports whether buf starts with the JPEG SOI marker.
func IsJPEG(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xff && buf[1] == 0xd8
}

// jpegDecoder scans the segment list for the APP1 Exif segment.
type jpegDecoder struct {
	*streamReader
}

// extract returns the raw Exif stream stored in the JPEG, ErrNotFound when
// the image data starts without one. Running out of bytes mid structure and
// plain read failures both mean the scan cannot continue.
func (e *jpegDecoder) extract() ([]byte, error) {
	b, err := e.extractSub()
	if err != nil && !IsInvalidFormat(err) && !IsNotFound(err) {
		return nil, newInvalidFormatErrorf("broken JPEG file")
	}
	return b, err
}

func (e *jpegDecoder) extractSub() ([]byte, error) {
	soi, err := e.read2E()
	if err != nil {
		return nil, err
	}
	if soi != markerSOI {
		return nil, newInvalidFormatErrorf("not a JPEG file")
	}

	for {
		if e.isEOF() {
			return nil, ErrNotFound
		}
		marker, err := e.read2E()
		if err != nil {
			return nil, err
		}
		// Fill bytes are allowed before a marker.
		for marker == 0xffff {
			b, err := e.read1E()
			if err != nil {
				return nil, err
			}
			marker = marker<<8 | uint16(b)
		}
		if marker>>8 != 0xff {
			return nil, newInvalidFormatErrorf("invalid JPEG marker")
		}

		switch {
		case marker == markerSOS || marker == markerEOI:
			// Image data from here on; Exif segments only come before it.
			return nil, ErrNotFound
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			// Standalone markers carry no segment length.
			continue
		}

		// The 16-bit segment length includes its own two bytes.
		length, err := e.read2E()
		if err != nil {
			return nil, err
		}
		if length < 2 {
			return nil, newInvalidFormatErrorf("invalid JPEG segment length")
		}
		length -= 2

		if marker == markerApp1EXIF && length >= 6 {
			b, err := e.readBytesVolatileE(6)
			if err != nil {
				return nil, err
			}
			length -= 6
			if binary.BigEndian.Uint32(b) == exifHeader && b[4] == 0 && b[5] == 0 {
				return e.readBytesE(int64(length))
			}
			// Some other APP1 payload, e.g. XMP.
		}

		if err := e.skipE(int64(length)); err != nil {
			return nil, err
		}
	}
}
