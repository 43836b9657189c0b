// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import (
	"hash/crc32"
	"io"
	"math"
	"unicode/utf8"
)

// MaxVarintLen is the largest number of bytes write_long ever emits: a
// full 64-bit magnitude after zig-zag encoding needs at most 10 groups
// of 7 bits.
const MaxVarintLen = 10

// Decoder is the primitive byte-level reader of spec §4.1. It wraps any
// io.Reader; when the underlying reader also implements io.Seeker, Skip
// advances without reading the skipped bytes, otherwise it falls back to
// read-and-discard (spec §5: "if the source is not seekable, skip must
// be implemented as read-and-discard").
type Decoder struct {
	r io.Reader
	s io.Seeker
}

// NewDecoder wraps r for primitive reads.
func NewDecoder(r io.Reader) *Decoder {
	d := &Decoder{r: r}
	if s, ok := r.(io.Seeker); ok {
		d.s = s
	}
	return d
}

// Read returns exactly n bytes from the source or a *TruncatedError.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, &TruncatedError{Reason: err.Error()}
	}
	return buf, nil
}

// ReadNull consumes zero bytes.
func (d *Decoder) ReadNull() error { return nil }

// SkipNull consumes zero bytes.
func (d *Decoder) SkipNull() error { return nil }

// ReadBoolean reads one byte. Strict Avro requires 0 or 1, and the
// reference Python implementation enforces that with `ord(self.read(1))
// == 1`; this decoder deliberately diverges and is lenient, treating any
// nonzero byte as true, for robustness against writers that emit a
// nonzero-but-not-1 true byte (spec §4.1, §9).
func (d *Decoder) ReadBoolean() (bool, error) {
	b, err := d.Read(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

// ReadLong decodes a zig-zag variable-length integer of up to
// MaxVarintLen bytes.
func (d *Decoder) ReadLong() (int64, error) {
	var n uint64
	var shift uint
	one := make([]byte, 1)
	for i := 0; i < MaxVarintLen; i++ {
		if _, err := io.ReadFull(d.r, one); err != nil {
			return 0, &TruncatedError{Reason: err.Error()}
		}
		b := one[0]
		n |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int64(n>>1) ^ -int64(n&1), nil
		}
		shift += 7
	}
	return 0, &TruncatedError{Reason: "varint exceeds maximum length"}
}

// ReadInt decodes a zig-zag varint and narrows it to int32. Avro encodes
// int and long identically on the wire; the declared width only bounds
// the values a well-formed writer emits.
func (d *Decoder) ReadInt() (int32, error) {
	n, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// ReadFloat decodes 4 little-endian bytes as IEEE-754 binary32.
func (d *Decoder) ReadFloat() (float32, error) {
	b, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits), nil
}

// ReadDouble decodes 8 little-endian bytes as IEEE-754 binary64.
func (d *Decoder) ReadDouble() (float64, error) {
	b, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	var bits uint64
	for i := 7; i >= 0; i-- {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits), nil
}

// ReadBytes reads a zig-zag length followed by that many raw bytes.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &TruncatedError{Reason: "negative byte-string length"}
	}
	return d.Read(int(n))
}

// ReadUTF8 reads a length-prefixed byte string and validates it as UTF-8.
func (d *Decoder) ReadUTF8() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &EncodingError{Reason: "invalid UTF-8 sequence"}
	}
	return string(b), nil
}

// Skip advances n bytes without materializing them, seeking when the
// underlying reader supports it.
func (d *Decoder) Skip(n int64) error {
	if n <= 0 {
		return nil
	}
	if d.s != nil {
		_, err := d.s.Seek(n, io.SeekCurrent)
		if err != nil {
			return &TruncatedError{Reason: err.Error()}
		}
		return nil
	}
	_, err := io.CopyN(io.Discard, d.r, n)
	if err != nil {
		return &TruncatedError{Reason: err.Error()}
	}
	return nil
}

// CheckCRC32 reads 4 big-endian bytes and fails ChecksumMismatchError
// unless they equal the IEEE CRC-32 of region. Used only by the
// object-container-file integration this package does not itself
// implement (spec §4.1).
func (d *Decoder) CheckCRC32(region []byte) error {
	b, err := d.Read(4)
	if err != nil {
		return err
	}
	stored := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	actual := crc32.ChecksumIEEE(region)
	if stored != actual {
		return &ChecksumMismatchError{Expected: stored, Actual: actual}
	}
	return nil
}

// Encoder is the primitive byte-level writer of spec §4.1. It wraps any
// io.Writer; writes are purely sequential.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w for primitive writes.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Write emits raw bytes unframed.
func (e *Encoder) Write(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// WriteNull emits zero bytes.
func (e *Encoder) WriteNull() error { return nil }

// WriteBoolean emits one byte, 0x00 or 0x01.
func (e *Encoder) WriteBoolean(v bool) error {
	if v {
		return e.Write([]byte{1})
	}
	return e.Write([]byte{0})
}

// WriteLong zig-zag-encodes x using an arithmetic right shift for the
// sign-extension term (spec §4.1, §9 — an unsigned shift would miscode
// negative values) and emits 7-bit groups, continuation bit set on all
// but the last.
func (e *Encoder) WriteLong(x int64) error {
	zz := uint64(x<<1) ^ uint64(x>>63)
	var buf [MaxVarintLen]byte
	n := 0
	for {
		b := byte(zz & 0x7f)
		zz >>= 7
		if zz != 0 {
			buf[n] = b | 0x80
			n++
		} else {
			buf[n] = b
			n++
			break
		}
	}
	return e.Write(buf[:n])
}

// WriteInt zig-zag-encodes x the same way as WriteLong; Avro's int and
// long share a wire encoding.
func (e *Encoder) WriteInt(x int32) error { return e.WriteLong(int64(x)) }

// WriteFloat emits the IEEE-754 binary32 bit pattern of v, little-endian.
func (e *Encoder) WriteFloat(v float32) error {
	bits := math.Float32bits(v)
	return e.Write([]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)})
}

// WriteDouble emits the IEEE-754 binary64 bit pattern of v, little-endian.
func (e *Encoder) WriteDouble(v float64) error {
	bits := math.Float64bits(v)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits)
		bits >>= 8
	}
	return e.Write(buf)
}

// WriteBytes emits write_long(len(b)) followed by the raw bytes.
func (e *Encoder) WriteBytes(b []byte) error {
	if err := e.WriteLong(int64(len(b))); err != nil {
		return err
	}
	return e.Write(b)
}

// WriteUTF8 encodes s as UTF-8 and writes it length-prefixed.
func (e *Encoder) WriteUTF8(s string) error { return e.WriteBytes([]byte(s)) }

// WriteCRC32 writes the IEEE CRC-32 of region as 4 big-endian bytes.
func (e *Encoder) WriteCRC32(region []byte) error {
	sum := crc32.ChecksumIEEE(region)
	return e.Write([]byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)})
}
