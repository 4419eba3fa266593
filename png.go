package tiffmeta

import (
	"bytes"
	"math"
)

const pngEXIFMarker = 0x65584966

var pngSig = []byte("\x89PNG\r\n\x1a\n")

// IsPNG reports whether buf starts with the PNG signature.
func IsPNG(buf []byte) bool {
	return bytes.HasPrefix(buf, pngSig)
}

// pngDecoder locates the eXIf chunk and hands back its payload.
type pngDecoder struct {
	*streamReader
}

// extract returns the raw Exif stream stored in the PNG, ErrNotFound when
// there is no eXIf chunk. Running out of bytes mid structure and plain read
// failures both mean the container cannot be scanned any further.
func (e *pngDecoder) extract() ([]byte, error) {
	b, err := e.extractSub()
	if err != nil && !IsInvalidFormat(err) && !IsNotFound(err) {
		return nil, newInvalidFormatErrorf("broken PNG file")
	}
	return b, err
}

func (e *pngDecoder) extractSub() ([]byte, error) {
	sig, err := e.readBytesVolatileE(8)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSig) {
		return nil, newInvalidFormatErrorf("not a PNG file")
	}

	for {
		// A clean end of stream between chunks means a well formed file
		// without Exif data.
		if e.isEOF() {
			return nil, ErrNotFound
		}
		chunkLength, err := e.read4E()
		if err != nil {
			return nil, err
		}
		chunkType, err := e.read4E()
		if err != nil {
			return nil, err
		}
		if chunkType == pngEXIFMarker {
			// The CRC after the chunk data is left unread.
			return e.readBytesE(int64(chunkLength))
		}
		// Chunk data and CRC.
		if chunkLength > math.MaxUint32-4 {
			return nil, newInvalidFormatErrorf("invalid chunk length")
		}
		if err := e.skipE(int64(chunkLength) + 4); err != nil {
			return nil, err
		}
	}
}
