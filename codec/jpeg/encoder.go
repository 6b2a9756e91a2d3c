package jpeg

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/codec"
)

// maxDimension is the largest width or height a JPEG frame header can hold.
const maxDimension = 1<<16 - 1

var (
	errNotConfigured = errors.New("jpeg: encoder not configured")
	errWritePastEnd  = errors.New("jpeg: write past last scanline")
	errRowsMissing   = errors.New("jpeg: finish before last scanline")
)

// encoder implements codec.Encoder on top of the image/jpeg backend.
//
// Scanlines are collected into a frame in the backend's input layout and the
// stream is emitted by Finish.
type encoder struct {
	w       io.Writer
	header  codec.Header
	space   Space
	quality int

	gray *image.Gray
	rgba *image.RGBA
	row  uint32
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: w}
}

// Configure validates the layout and stores the quality.
func (e *encoder) Configure(h codec.Header, quality int) error {
	space, ok := FromColorSpace(h.ColorSpace)
	if !ok {
		return fmt.Errorf("%w: jpeg cannot encode %s", codec.ErrUnsupportedColorSpace, h.ColorSpace)
	}
	if h.Width == 0 || h.Height == 0 || h.Width > maxDimension || h.Height > maxDimension {
		return fmt.Errorf("jpeg: invalid dimensions %dx%d", h.Width, h.Height)
	}

	e.header = h
	e.space = space
	e.quality = codec.ClampQuality(quality)
	pixbuf.Logger().Debug("jpeg: configure",
		"width", h.Width, "height", h.Height, "input", space, "quality", e.quality)
	return nil
}

// Start allocates the frame scanlines are written into.
func (e *encoder) Start() error {
	rect := image.Rect(0, 0, int(e.header.Width), int(e.header.Height))
	switch e.space {
	case SpaceGrayscale:
		e.gray = image.NewGray(rect)
	case SpaceRGB, SpaceExtRGBA:
		e.rgba = image.NewRGBA(rect)
	default:
		return errNotConfigured
	}
	return nil
}

// WriteScanline stores the next row. Alpha values are not encoded.
func (e *encoder) WriteScanline(src []byte) error {
	if e.gray == nil && e.rgba == nil {
		return errNotConfigured
	}
	if e.row >= e.header.Height {
		return errWritePastEnd
	}
	w := int(e.header.Width)
	if len(src) < w*e.header.ColorSpace.Channels() {
		return errShortRow
	}
	y := int(e.row)

	switch e.space {
	case SpaceGrayscale:
		copy(e.gray.Pix[y*e.gray.Stride:y*e.gray.Stride+w], src)

	case SpaceRGB:
		dst := e.rgba.Pix[y*e.rgba.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}

	case SpaceExtRGBA:
		// The backend reads only R, G and B from an RGBA frame.
		copy(e.rgba.Pix[y*e.rgba.Stride:y*e.rgba.Stride+4*w], src)
	}

	e.row++
	return nil
}

// Finish encodes the collected frame to the writer.
func (e *encoder) Finish() error {
	if e.row != e.header.Height {
		return errRowsMissing
	}

	var frame image.Image
	if e.gray != nil {
		frame = e.gray
	} else {
		frame = e.rgba
	}
	return jpeg.Encode(e.w, frame, &jpeg.Options{Quality: e.quality})
}

// Close drops the frame. Safe to call more than once.
func (e *encoder) Close() error {
	e.gray = nil
	e.rgba = nil
	return nil
}
