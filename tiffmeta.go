// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
)

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

var (
	// ErrInvalidFormat is returned when the stream is structurally broken for
	// the given image format.
	ErrInvalidFormat = errors.New("tiffmeta: invalid format")

	// ErrNotFound is returned when a well formed container holds no Exif data.
	ErrNotFound = errors.New("tiffmeta: no Exif data found")
)

func newInvalidFormatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFormat}, args...)...)
}

// IsInvalidFormat reports whether err originates from a malformed stream.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsNotFound reports whether err signals a container without Exif data.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const (
	// ImageFormatAuto signals that the image format should be detected automatically (not implemented yet).
	ImageFormatAuto ImageFormat = iota
	// JPEG is the JPEG image format.
	JPEG
	// TIFF is the TIFF image format, which also covers raw Exif streams.
	TIFF
	// PNG is the PNG image format.
	PNG
	// WebP is the WebP image format.
	WebP
)

// ImageFormat is the image format.
//
//go:generate stringer -type=ImageFormat
type ImageFormat int

// Options contains the options for the Decode function.
type Options struct {
	// The Reader to read the image or raw Exif stream from.
	R io.Reader

	// The image format in R.
	ImageFormat ImageFormat

	// When set, a structural error inside the TIFF structure does not abort
	// the parse; the faulty entry or directory is skipped and the error is
	// recorded in DecodeResult.Errors.
	// Errors in the container framing and containers without any Exif data
	// are not recoverable.
	ContinueOnError bool

	// Warnf will be called for each warning.
	Warnf func(string, ...any)
}

// Decode reads Exif metadata from r and returns the decoded fields.
func Decode(opts Options) (*DecodeResult, error) {
	if opts.R == nil {
		return nil, fmt.Errorf("no reader provided")
	}
	if opts.ImageFormat == ImageFormatAuto {
		return nil, fmt.Errorf("no image format provided; format detection not implemented yet")
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}

	var (
		data []byte
		err  error
	)

	switch opts.ImageFormat {
	case TIFF:
		data, err = readAllLimited(opts.R)
	case PNG:
		dec := &pngDecoder{streamReader: newStreamReader(opts.R)}
		data, err = dec.extract()
	case JPEG:
		dec := &jpegDecoder{streamReader: newStreamReader(opts.R)}
		data, err = dec.extract()
	case WebP:
		dec := &webpDecoder{r: opts.R}
		data, err = dec.extract()
	default:
		return nil, fmt.Errorf("unsupported image format")
	}
	if err != nil {
		return nil, err
	}

	dec := &tiffDecoder{
		data: data,
		policy: &errorPolicy{
			continueOnError: opts.ContinueOnError,
			warnf:           opts.Warnf,
		},
	}

	if err := dec.decode(); err != nil {
		return nil, err
	}

	return dec.result(), nil
}

// DecodeResult contains the result of a Decode operation.
type DecodeResult struct {
	// Fields holds the decoded fields in the order they were encountered.
	Fields []Field

	// ByteOrder is the byte order of the decoded TIFF stream.
	ByteOrder binary.ByteOrder

	// Errors holds the structural errors skipped while decoding with
	// ContinueOnError, in the order they were encountered.
	Errors []error
}

// Get returns the field identified by tag in the IFD with the given number.
// Fields in the Exif, GPS and Interop sub-IFDs carry the number of the
// top level IFD they hang off.
func (r *DecodeResult) Get(tag Tag, ifd In) (Field, bool) {
	for _, f := range r.Fields {
		if f.Tag == tag && f.IFD == ifd {
			return f, true
		}
	}
	return Field{}, false
}

// Err returns the folded error log, nil when the parse was clean.
func (r *DecodeResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &multierror.Error{Errors: r.Errors}
}

// GetLatLong returns the GPS latitude and longitude in decimal degrees,
// negative for south and west. Zero values are returned when the fields
// are missing.
func (r *DecodeResult) GetLatLong() (lat float64, long float64, err error) {
	longField, found := r.Get(TagGPSLongitude, InPrimary)
	if !found {
		return 0, 0, nil
	}
	latField, found := r.Get(TagGPSLatitude, InPrimary)
	if !found {
		return 0, 0, nil
	}

	lat, err = toDegrees(latField.Value)
	if err != nil {
		return 0, 0, err
	}
	long, err = toDegrees(longField.Value)
	if err != nil {
		return 0, 0, err
	}

	if f, found := r.Get(TagGPSLatitudeRef, InPrimary); found {
		if s, ok := f.Value.(string); ok && s == "S" {
			lat = -lat
		}
	}
	if f, found := r.Get(TagGPSLongitudeRef, InPrimary); found {
		if s, ok := f.Value.(string); ok && s == "W" {
			long = -long
		}
	}

	if math.IsNaN(lat) {
		lat = 0
	}
	if math.IsNaN(long) {
		long = 0
	}

	return lat, long, nil
}

// GetDateTime returns the date/time from the DateTimeOriginal field,
// falling back to DateTime, refined with the matching SubSecTime and
// OffsetTime fields when present. The zero time is returned when the
// fields are missing or blank.
func (r *DecodeResult) GetDateTime() (time.Time, error) {
	candidates := []struct {
		dateTime Tag
		subSec   Tag
		offset   Tag
	}{
		{TagDateTimeOriginal, TagSubSecTimeOriginal, TagOffsetTimeOriginal},
		{TagDateTime, TagSubSecTime, TagOffsetTime},
	}

	// Layout without timezone suffix.
	const layout = "2006:01:02 15:04:05"

	for _, candidate := range candidates {
		f, found := r.Get(candidate.dateTime, InPrimary)
		if !found {
			continue
		}
		s, ok := f.Value.(string)
		if !ok || isBlankDateTime(s) {
			continue
		}

		var tm time.Time
		if offsetField, found := r.Get(candidate.offset, InPrimary); found {
			if v, ok := offsetField.Value.(string); ok {
				// Common format: "2017:05:29 17:19:21" + "-04:00".
				tm, _ = time.Parse(layout+"-07:00", s+printableString(v))
			}
		}
		if tm.IsZero() {
			var err error
			tm, err = time.ParseInLocation(layout, s, time.Local)
			if err != nil {
				return time.Time{}, err
			}
		}

		if subSecField, found := r.Get(candidate.subSec, InPrimary); found {
			if v, ok := subSecField.Value.(string); ok {
				tm = tm.Add(parseSubSec(v))
			}
		}

		return tm, nil
	}

	return time.Time{}, nil
}

// GetUserComment returns the decoded UserComment field. The field's first
// eight bytes name the character set used for the remainder.
func (r *DecodeResult) GetUserComment() (string, error) {
	f, found := r.Get(TagUserComment, InPrimary)
	if !found {
		return "", nil
	}
	switch v := f.Value.(type) {
	case []byte:
		return decodeUserComment(v, r.ByteOrder)
	case string:
		return printableString(v), nil
	default:
		return "", nil
	}
}
