// Package codec defines the scanline protocol between pixel buffers and
// compressed image streams.
//
// A Codec creates one Decoder or Encoder per stream. Both walk the same
// sequence of states:
//
//	Created -> HeaderReady -> Started -> Transferring (one call per row) -> Finished -> Destroyed
//
// Decode and Encode drive that sequence for a [pixbuf.ByteBuffer] and close the
// decoder or encoder on every path, including early failures.
package codec

import (
	"io"

	"github.com/gogpu/pixbuf"
)

// Header describes the image carried by a stream.
type Header struct {
	Width      uint32
	Height     uint32
	ColorSpace pixbuf.ColorSpace
}

// Decoder reads one compressed stream, one scanline at a time.
type Decoder interface {
	// ReadHeader parses the stream header. The returned color space is the
	// color space scanlines will be delivered in.
	ReadHeader() (Header, error)

	// Start prepares the decoder for scanline transfer.
	Start() error

	// ReadScanline decodes the next row, top to bottom, into dst.
	// dst holds exactly Width*Channels values.
	ReadScanline(dst []byte) error

	// Finish completes decoding after the last row.
	Finish() error

	// Close releases the decoder. It must be called once on every path.
	Close() error
}

// Encoder writes one compressed stream, one scanline at a time.
type Encoder interface {
	// Configure sets the image layout and the compression quality (0..100).
	Configure(h Header, quality int) error

	// Start writes the stream preamble.
	Start() error

	// WriteScanline encodes the next row, top to bottom, from src.
	// src holds exactly Width*Channels values.
	WriteScanline(src []byte) error

	// Finish completes the stream after the last row.
	Finish() error

	// Close releases the encoder. It must be called once on every path.
	Close() error
}

// Codec converts between compressed streams and scanlines of a single
// format.
type Codec interface {
	// Name returns a short name for the format, used in errors and logs.
	Name() string

	// Supports reports whether the codec can represent a color space.
	Supports(cs pixbuf.ColorSpace) bool

	// NewDecoder creates a decoder reading from r.
	NewDecoder(r io.Reader) (Decoder, error)

	// NewEncoder creates an encoder writing to w.
	NewEncoder(w io.Writer) (Encoder, error)
}

// Quality bounds. Quality controls compression strength only.
const (
	MinQuality = 0
	MaxQuality = 100
)

// ClampQuality limits q to [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	return min(max(q, MinQuality), MaxQuality)
}
