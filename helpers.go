package tiffmeta

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/encoding/japanese"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

var (
	_ encoding.TextUnmarshaler = (*rat[int32])(nil)
	_ encoding.TextMarshaler   = rat[int32]{}
	_ fmt.Formatter            = rat[int32]{}
)

// rat is a rational number.
// It's a lightweight version of math/big.Rat.
type rat[T int32 | uint32] struct {
	num T
	den T
}

// Num returns the numerator of the rational number.
func (r rat[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r rat[T]) Den() T {
	return r.den
}

// Float64 returns the float64 representation of the rational number.
func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r rat[T]) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Format implements fmt.Formatter.
func (r rat[T]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'f':
		fmt.Fprintf(f, "%f", r.Float64())
	default:
		fmt.Fprint(f, r.String())
	}
}

func (r *rat[T]) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.Contains(s, "/") {
		num, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
		}
		r.num = T(num)
		r.den = 1
		return nil
	}
	if _, err := fmt.Sscanf(s, "%d/%d", &r.num, &r.den); err != nil {
		return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
	}
	return nil
}

func (r rat[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

// NewRat returns a new Rat with the given numerator and denominator.
// The result is normalized: common factors are removed and the denominator
// is kept positive.
func NewRat[T int32 | uint32](num, den T) (Rat[T], error) {
	if den == 0 {
		return nil, errors.New("denominator must be non-zero")
	}

	// Remove the greatest common divisor.
	gcd := func(a, b T) T {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	d := gcd(num, den)
	if d != 1 {
		num, den = num/d, den/d
	}

	// Denominator must be positive.
	if den < 0 {
		num, den = -num, -den
	}

	return &rat[T]{num: num, den: den}, nil
}

// toDegrees converts a GPS coordinate value to decimal degrees. The value
// is either the usual triplet of rationals (degrees, minutes, seconds), a
// single rational, or the string form some writers use.
func toDegrees(v any) (float64, error) {
	switch v := v.(type) {
	case []Rat[uint32]:
		if len(v) != 3 {
			return 0, fmt.Errorf("expected 3 values, got %d", len(v))
		}
		return v[0].Float64() + v[1].Float64()/60 + v[2].Float64()/3600, nil
	case Rat[uint32]:
		return v.Float64(), nil
	case string:
		return parseDegrees(v)
	default:
		return 0, fmt.Errorf("unsupported degree type %T", v)
	}
}

// parseDegrees parses a string of comma separated degrees, minutes and
// optional seconds, e.g. "52,0.8333N". A trailing hemisphere letter is
// dropped; the sign is governed by the reference field.
func parseDegrees(s string) (float64, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "NSEW")
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("failed to parse %q as degrees", s)
	}
	var degs [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse %q as degrees: %w", s, err)
		}
		degs[i] = f
	}
	return degs[0] + degs[1]/60 + degs[2]/3600, nil
}

// parseSubSec converts a SubSecTime fraction string to a duration, e.g.
// "123" to 123 milliseconds.
func parseSubSec(s string) time.Duration {
	s = printableString(s)
	var nanos int64
	var ndigits int
	for _, r := range s {
		if r < '0' || r > '9' || ndigits >= 9 {
			break
		}
		nanos = nanos*10 + int64(r-'0')
		ndigits++
	}
	for ; ndigits < 9; ndigits++ {
		nanos *= 10
	}
	return time.Duration(nanos)
}

// isBlankDateTime reports whether s is one of the placeholder date/time
// strings some writers use for unset fields.
func isBlankDateTime(s string) bool {
	for _, r := range s {
		if r != ' ' && r != ':' && r != '0' {
			return false
		}
	}
	return true
}

var (
	userCommentJIS     = []byte("JIS\x00\x00\x00\x00\x00")
	userCommentUnicode = []byte("UNICODE\x00")
)

// decodeUserComment decodes a UserComment payload. The first eight bytes
// name the character set of the remainder; UNICODE means UTF-16 in the
// byte order of the TIFF stream.
func decodeUserComment(b []byte, byteOrder binary.ByteOrder) (string, error) {
	if len(b) < 8 {
		return "", nil
	}
	charset, payload := b[:8], b[8:]
	switch {
	case bytes.Equal(charset, userCommentUnicode):
		endianness := xunicode.BigEndian
		if byteOrder == binary.LittleEndian {
			endianness = xunicode.LittleEndian
		}
		s, err := xunicode.UTF16(endianness, xunicode.IgnoreBOM).NewDecoder().String(string(payload))
		if err != nil {
			return "", err
		}
		return printableString(s), nil
	case bytes.Equal(charset, userCommentJIS):
		s, err := japanese.ISO2022JP.NewDecoder().String(string(payload))
		if err != nil {
			return "", err
		}
		return printableString(s), nil
	default:
		// ASCII and the undefined charset.
		return printableString(string(trimBytesNulls(payload))), nil
	}
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b) - 1; hi >= 0 && b[hi] == 0; hi-- {
	}
	if lo > hi {
		return nil
	}
	return b[lo : hi+1]
}
