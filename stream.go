// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package chunkcodec

import "io"

// Encoder writes a sequence of T values to an underlying io.Writer, one
// Marshal-style wire image per Encode call. Each image is framed with a
// big-endian u32 length prefix: unlike a self-delimiting format, a bare
// chunkcodec image carries no marker of its own end once several are
// concatenated back to back, so the frame length is what lets a Decoder
// reading the same stream find where one value's bytes stop and the
// next one's start.
type Encoder[T any] struct {
	w     io.Writer
	codec Codec[T]
	opts  Options
}

// NewEncoder returns an Encoder that writes to w, encoding each value
// with codec under opts.
func NewEncoder[T any](w io.Writer, codec Codec[T], opts Options) *Encoder[T] {
	return &Encoder[T]{w: w, codec: codec, opts: opts}
}

// Encode serializes v and appends it to the stream as one length-prefixed
// frame.
func (e *Encoder[T]) Encode(v T) error {
	data, err := Marshal(e.codec, v, e.opts)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	putUint32(lenBuf[:], uint32(len(data)))
	if _, err := e.w.Write(lenBuf[:]); err != nil {
		return WrapError(KindUnexpectedEndOfInput, err, "writing stream frame length")
	}
	if _, err := e.w.Write(data); err != nil {
		return WrapError(KindUnexpectedEndOfInput, err, "writing stream frame payload")
	}
	return nil
}

// Decoder reads a sequence of T values from an underlying io.Reader,
// each framed the way Encoder writes them.
type Decoder[T any] struct {
	r     io.Reader
	codec Codec[T]
	opts  Options
}

// NewDecoder returns a Decoder that reads from r, decoding each frame
// with codec under opts.
func NewDecoder[T any](r io.Reader, codec Codec[T], opts Options) *Decoder[T] {
	return &Decoder[T]{r: r, codec: codec, opts: opts}
}

// Decode reads and decodes the next frame. It returns io.EOF, unwrapped,
// when the stream ends cleanly on a frame boundary — the same convention
// encoding/gob's Decoder and json.Decoder follow — so callers can loop
// with `for { v, err := dec.Decode(); if err == io.EOF { break } }`. A
// stream that ends mid-frame is a malformed stream, not a clean end, and
// is reported as KindUnexpectedEndOfInput instead.
func (d *Decoder[T]) Decode() (T, error) {
	var zero T
	var lenBuf [4]byte
	if _, err := io.ReadFull(d.r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return zero, io.EOF
		}
		return zero, WrapError(KindUnexpectedEndOfInput, err, "reading stream frame length")
	}
	n := decodeUint32(lenBuf[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(d.r, data); err != nil {
		return zero, WrapError(KindUnexpectedEndOfInput, err, "reading %d stream frame bytes", n)
	}
	return Unmarshal(d.codec, data, d.opts)
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func decodeUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
