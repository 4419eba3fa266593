package tiffmeta

import (
	"bytes"
	"io"

	"golang.org/x/image/riff"
)

var (
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccEXIF = riff.FourCC{'E', 'X', 'I', 'F'}
)

// Some writers prefix the TIFF stream in the EXIF chunk with the JPEG
// style Exif header.
var exifPrefix = []byte("Exif\x00\x00")

// IsWebP reports whether buf starts with a RIFF/WEBP header.
func IsWebP(buf []byte) bool {
	return len(buf) >= 12 && string(buf[:4]) == "RIFF" && string(buf[8:12]) == "WEBP"
}

// webpDecoder walks the RIFF chunk list for the EXIF chunk.
type webpDecoder struct {
	r io.Reader
}

// extract returns the raw Exif stream stored in the WebP, ErrNotFound when
// the container has no EXIF chunk.
func (e *webpDecoder) extract() ([]byte, error) {
	formType, riffReader, err := riff.NewReader(e.r)
	if err != nil {
		return nil, newInvalidFormatErrorf("not a WebP file")
	}
	if formType != fccWEBP {
		return nil, newInvalidFormatErrorf("not a WebP file")
	}

	var buf [10]byte
	for {
		chunkID, chunkLen, chunkData, err := riffReader.Next()
		if err == io.EOF {
			// A fully framed file without an EXIF chunk.
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, newInvalidFormatErrorf("broken WebP file")
		}

		switch chunkID {
		case fccVP8X:
			if chunkLen != 10 {
				return nil, newInvalidFormatErrorf("invalid VP8X chunk")
			}
			const exifMetadataBit = 1 << 3
			if _, err := io.ReadFull(chunkData, buf[:10]); err != nil {
				return nil, newInvalidFormatErrorf("broken WebP file")
			}
			if buf[0]&exifMetadataBit == 0 {
				// The feature flags promise no Exif chunk.
				return nil, ErrNotFound
			}
		case fccEXIF:
			if chunkLen > maxBufSize {
				return nil, newInvalidFormatErrorf("length %d exceeds max %d", chunkLen, maxBufSize)
			}
			b, err := io.ReadAll(chunkData)
			if err != nil {
				return nil, newInvalidFormatErrorf("broken WebP file")
			}
			return bytes.TrimPrefix(b, exifPrefix), nil
		}
	}
}
