// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package tiffmeta

import (
	"bufio"
	"encoding/binary"
	"io"
)

// 10 MB should be plenty for image metadata.
const maxBufSize = 10 * 1024 * 1024

func newStreamReader(r io.Reader) *streamReader {
	return &streamReader{
		r:         bufio.NewReader(r),
		byteOrder: binary.BigEndian,
	}
}

// streamReader is a wrapper around a Reader that provides methods to read
// binary data from the image container formats. It reads forward only.
// Note that this is not thread safe.
type streamReader struct {
	r         *bufio.Reader
	byteOrder binary.ByteOrder

	buf []byte
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

// isEOF reports whether the stream is exhausted, without consuming any bytes.
func (e *streamReader) isEOF() bool {
	_, err := e.r.Peek(1)
	return err == io.EOF
}

func (e *streamReader) read1E() (uint8, error) {
	return e.r.ReadByte()
}

func (e *streamReader) read2E() (uint16, error) {
	const n = 2
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(e.buf[:n]), nil
}

func (e *streamReader) read4E() (uint32, error) {
	const n = 4
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint32(e.buf[:n]), nil
}

// readBytesVolatileE reads a slice of bytes from the stream
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatileE(n int) ([]byte, error) {
	if err := e.readNIntoBufE(n); err != nil {
		return nil, err
	}
	return e.buf[:n], nil
}

func (e *streamReader) readBytesE(length int64) ([]byte, error) {
	if length > maxBufSize {
		return nil, newInvalidFormatErrorf("length %d exceeds max %d", length, maxBufSize)
	}
	if length < 0 {
		return nil, newInvalidFormatErrorf("negative length")
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(e.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (e *streamReader) readNIntoBufE(n int) error {
	e.allocateBuf(n)
	_, err := io.ReadFull(e.r, e.buf[:n])
	return err
}

func (e *streamReader) skipE(n int64) error {
	_, err := io.CopyN(io.Discard, e.r, n)
	return err
}

// readAllLimited reads all of r, failing if it exceeds maxBufSize.
func readAllLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBufSize+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxBufSize {
		return nil, newInvalidFormatErrorf("length exceeds max %d", maxBufSize)
	}
	return b, nil
}
