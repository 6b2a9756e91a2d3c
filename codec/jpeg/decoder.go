package jpeg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/codec"
)

var (
	errNotStarted   = errors.New("jpeg: decoder not started")
	errPastLastRow  = errors.New("jpeg: read past last scanline")
	errRowsPending  = errors.New("jpeg: finish before last scanline")
	errShortRow     = errors.New("jpeg: scanline buffer too small")
	errFrameMissize = errors.New("jpeg: frame size differs from header")
)

// rowPool holds RGBA scratch rows used to convert color scanlines.
var rowPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 4*1024)
		return &buf
	},
}

func borrowRow(size int) *[]byte {
	buf := rowPool.Get().(*[]byte)
	if cap(*buf) < size {
		*buf = make([]byte, size)
	}
	*buf = (*buf)[:size]
	return buf
}

func releaseRow(buf *[]byte) {
	if buf == nil {
		return
	}
	rowPool.Put(buf)
}

// decoder implements codec.Decoder on top of the image/jpeg backend.
//
// The backend decodes a whole frame at Start; ReadScanline converts one row
// of that frame at a time into the caller's row slot.
type decoder struct {
	r   io.Reader
	raw bool

	head   bytes.Buffer // bytes consumed while parsing the header
	header codec.Header
	stream Space
	out    Space

	frame   image.Image
	scratch *image.RGBA
	pooled  *[]byte // backing store of scratch
	row     uint32
}

func newDecoder(r io.Reader, raw bool) *decoder {
	return &decoder{r: r, raw: raw}
}

// ReadHeader parses the frame header and picks the output color space.
func (d *decoder) ReadHeader() (codec.Header, error) {
	cfg, err := jpeg.DecodeConfig(io.TeeReader(d.r, &d.head))
	if err != nil {
		return codec.Header{}, err
	}

	d.stream = streamSpace(cfg.ColorModel)
	d.out = outputSpace(d.stream, d.raw)

	cs, ok := ToColorSpace(d.out)
	if !ok {
		return codec.Header{}, fmt.Errorf("%w: jpeg %s stream delivered as %s",
			codec.ErrUnsupportedColorSpace, d.stream, d.out)
	}

	d.header = codec.Header{
		Width:      uint32(cfg.Width),
		Height:     uint32(cfg.Height),
		ColorSpace: cs,
	}
	pixbuf.Logger().Debug("jpeg: header",
		"width", cfg.Width, "height", cfg.Height, "stream", d.stream, "output", d.out)
	return d.header, nil
}

// Start decodes the frame. The bytes already consumed by ReadHeader are
// replayed ahead of the rest of the stream.
func (d *decoder) Start() error {
	frame, err := jpeg.Decode(io.MultiReader(&d.head, d.r))
	if err != nil {
		return err
	}
	b := frame.Bounds()
	if uint32(b.Dx()) != d.header.Width || uint32(b.Dy()) != d.header.Height {
		return errFrameMissize
	}
	d.frame = frame

	if d.header.ColorSpace != pixbuf.ColorSpaceGrayscale {
		w := int(d.header.Width)
		d.pooled = borrowRow(4 * w)
		d.scratch = &image.RGBA{
			Pix:    *d.pooled,
			Stride: 4 * w,
			Rect:   image.Rect(0, 0, w, 1),
		}
	}
	return nil
}

// ReadScanline converts the next frame row into dst.
func (d *decoder) ReadScanline(dst []byte) error {
	if d.frame == nil {
		return errNotStarted
	}
	if d.row >= d.header.Height {
		return errPastLastRow
	}
	w := int(d.header.Width)
	ch := d.header.ColorSpace.Channels()
	if len(dst) < w*ch {
		return errShortRow
	}

	b := d.frame.Bounds()
	sp := image.Pt(b.Min.X, b.Min.Y+int(d.row))

	switch d.header.ColorSpace {
	case pixbuf.ColorSpaceGrayscale:
		row := &image.Gray{Pix: dst, Stride: w, Rect: image.Rect(0, 0, w, 1)}
		draw.Draw(row, row.Rect, d.frame, sp, draw.Src)

	case pixbuf.ColorSpaceRGB:
		draw.Draw(d.scratch, d.scratch.Rect, d.frame, sp, draw.Src)
		src := d.scratch.Pix
		for x := 0; x < w; x++ {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}

	case pixbuf.ColorSpaceRGBA:
		draw.Draw(d.scratch, d.scratch.Rect, d.frame, sp, draw.Src)
		copy(dst, d.scratch.Pix)
	}

	d.row++
	return nil
}

// Finish checks that every row was read and drops the frame.
func (d *decoder) Finish() error {
	if d.row != d.header.Height {
		return errRowsPending
	}
	d.frame = nil
	return nil
}

// Close releases the frame and scratch row. Safe to call more than once.
func (d *decoder) Close() error {
	d.frame = nil
	if d.pooled != nil {
		releaseRow(d.pooled)
		d.pooled = nil
	}
	d.scratch = nil
	d.head.Reset()
	return nil
}
