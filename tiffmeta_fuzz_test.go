// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta_test

import (
	"bytes"
	"testing"

	"github.com/bep/tiffmeta"
)

func FuzzDecodeTIFF(f *testing.F) {
	seeds := [][]byte{
		tiffBasicBE,
		tiffGPS,
		chainOfEmptyIFDs(8),
		[]byte("II\x2a\x00\x08\x00\x00\x00" +
			"\x01\x00" +
			"\x01\x01\x03\x00\x01\x00\x00\x00\x14\x00\x00\x00" +
			"\x00\x00\x00\x00"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzDecodeBytes(t, data, tiffmeta.TIFF)
	})
}

func FuzzDecodePNG(f *testing.F) {
	seeds := [][]byte{
		pngStream(pngChunk("IHDR", make([]byte, 13)), pngChunk("eXIf", tiffBasicBE)),
		pngStream(pngChunk("eXIf", nil)),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzDecodeBytes(t, data, tiffmeta.PNG)
	})
}

func FuzzDecodeJPEG(f *testing.F) {
	seeds := [][]byte{
		jpegStream(
			jpegSegment(0xffe0, append([]byte("JFIF\x00"), make([]byte, 9)...)),
			jpegSegment(0xffe1, append([]byte("Exif\x00\x00"), tiffGPS...)),
		),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzDecodeBytes(t, data, tiffmeta.JPEG)
	})
}

func FuzzDecodeWebP(f *testing.F) {
	seeds := [][]byte{
		webpStream(webpVP8X(1<<3), webpChunk("EXIF", tiffBasicBE)),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzDecodeBytes(t, data, tiffmeta.WebP)
	})
}

// fuzzDecodeBytes decodes data in both error modes. Malformed input must
// come back as one of the defined error kinds, never as a panic.
func fuzzDecodeBytes(t *testing.T, data []byte, imageFormat tiffmeta.ImageFormat) {
	for _, continueOnError := range []bool{false, true} {
		res, err := tiffmeta.Decode(tiffmeta.Options{R: bytes.NewReader(data), ImageFormat: imageFormat, ContinueOnError: continueOnError})
		if err != nil {
			if !tiffmeta.IsInvalidFormat(err) && !tiffmeta.IsNotFound(err) {
				t.Fatalf("unknown error in Decode: %v %T", err, err)
			}
			continue
		}
		for _, f := range res.Fields {
			_ = f.String()
		}
	}
}
