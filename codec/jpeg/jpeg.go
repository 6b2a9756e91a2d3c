// Package jpeg implements the codec scanline protocol for JPEG streams.
//
// Decoding delivers Grayscale and RGB scanlines. Encoding accepts Grayscale,
// RGB and RGBA buffers; alpha is not stored since JPEG has no alpha channel.
//
// # Memory
//
// The image/jpeg backend works on whole frames. A decoder holds the decoded
// frame (about width*height bytes for Grayscale streams and 1.5 to 3 times
// that for YCbCr streams, depending on chroma subsampling) from Start until
// Finish or Close, plus one pooled RGBA row of 4*width bytes. An encoder
// collects the scanlines into a frame of width*height bytes for Grayscale and
// 4*width*height bytes for RGB and RGBA, released by Close.
package jpeg

import (
	"io"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/codec"
)

// Name is the codec name used in errors and logs.
const Name = "jpeg"

// Option configures a Codec.
type Option func(*options)

type options struct {
	raw bool
}

func defaultOptions() options {
	return options{raw: false}
}

// WithRawColorSpace makes decoders deliver scanlines in the component space
// of the stream instead of converting YCbCr to RGB. Streams that are not
// Grayscale or RGB then fail with codec.ErrUnsupportedColorSpace.
func WithRawColorSpace(raw bool) Option {
	return func(o *options) {
		o.raw = raw
	}
}

// Codec is a codec.Codec for JPEG streams. The zero value is ready to use.
type Codec struct {
	opts options
}

var _ codec.Codec = (*Codec)(nil)

// New creates a JPEG codec.
func New(opts ...Option) *Codec {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Codec{opts: o}
}

// Name returns "jpeg".
func (c *Codec) Name() string {
	return Name
}

// Supports reports whether cs can be written to or read from a JPEG stream.
func (c *Codec) Supports(cs pixbuf.ColorSpace) bool {
	_, ok := FromColorSpace(cs)
	return ok
}

// NewDecoder creates a decoder reading a JPEG stream from r.
func (c *Codec) NewDecoder(r io.Reader) (codec.Decoder, error) {
	return newDecoder(r, c.opts.raw), nil
}

// NewEncoder creates an encoder writing a JPEG stream to w.
func (c *Codec) NewEncoder(w io.Writer) (codec.Encoder, error) {
	return newEncoder(w), nil
}
