// Package imagefile loads and saves pixel buffers as image files.
//
// The format of a file is chosen from its path and the matching codec is
// driven through the codec scanline protocol. Load and Save report a boolean
// only; LoadFile and SaveFile return the error instead.
package imagefile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/codec"
)

// Dispatcher routes load and save calls to the codec bound to a file format.
//
// A Dispatcher holds no mutable state after creation and is safe for
// concurrent use on distinct buffers.
type Dispatcher struct {
	opts options
}

// New creates a dispatcher. Without options JPEG files are handled by the
// jpeg codec and saved at DefaultQuality.
func New(opts ...Option) *Dispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{opts: o}
}

// Quality returns the compression quality used by Save.
func (d *Dispatcher) Quality() int {
	return d.opts.quality
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.opts.logger != nil {
		return d.opts.logger
	}
	return pixbuf.Logger()
}

// codecFor returns the codec bound to the format of path.
func (d *Dispatcher) codecFor(path string) (codec.Codec, error) {
	f := DetectFormat(path)
	c, ok := d.opts.codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", codec.ErrUnsupportedFormat, path, f)
	}
	return c, nil
}

// LoadFile decodes the image file at path into a new buffer.
func (d *Dispatcher) LoadFile(path string) (*pixbuf.ByteBuffer, error) {
	c, err := d.codecFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrFileOpen, err)
	}
	defer func() { _ = f.Close() }()

	buf, err := codec.Decode(c, f)
	if err != nil {
		return nil, fmt.Errorf("imagefile: load %s: %w", path, err)
	}

	d.logger().Debug("imagefile: loaded",
		"path", path, "width", buf.Width(), "height", buf.Height(),
		"colorSpace", buf.ColorSpace(), "rowSize", buf.RowSize())
	return buf, nil
}

// SaveFile encodes buf into the image file at path.
//
// The buffer is checked before the file is created, so a nil or empty buffer
// or one the codec cannot represent leaves the file system untouched.
func (d *Dispatcher) SaveFile(path string, buf *pixbuf.ByteBuffer) (err error) {
	c, err := d.codecFor(path)
	if err != nil {
		return err
	}
	if buf == nil {
		return fmt.Errorf("%w: imagefile: save %s: nil buffer", codec.ErrCodec, path)
	}
	if cs := buf.ColorSpace(); !cs.IsValid() || !c.Supports(cs) {
		return fmt.Errorf("%w: %s cannot save %s", codec.ErrUnsupportedColorSpace, c.Name(), cs)
	}
	if buf.IsEmpty() {
		return fmt.Errorf("%w: imagefile: save %s: empty buffer", codec.ErrCodec, path)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %w", codec.ErrFileOpen, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: imagefile: close %s: %w", codec.ErrCodec, path, cerr))
		}
	}()

	if err := codec.Encode(c, f, buf, d.opts.quality); err != nil {
		return fmt.Errorf("imagefile: save %s: %w", path, err)
	}

	d.logger().Debug("imagefile: saved",
		"path", path, "width", buf.Width(), "height", buf.Height(), "quality", d.opts.quality)
	return nil
}

// Load decodes the image file at path into buf and reports success.
// On failure buf is left untouched. A nil buf reports false.
func (d *Dispatcher) Load(path string, buf *pixbuf.ByteBuffer) bool {
	if buf == nil {
		d.logger().Warn("imagefile: load failed", "path", path, "err", "nil buffer")
		return false
	}
	loaded, err := d.LoadFile(path)
	if err != nil {
		d.logger().Warn("imagefile: load failed", "path", path, "err", err)
		return false
	}
	*buf = *loaded
	return true
}

// Save encodes buf into the image file at path and reports success.
// A nil buf reports false.
func (d *Dispatcher) Save(path string, buf *pixbuf.ByteBuffer) bool {
	if err := d.SaveFile(path, buf); err != nil {
		d.logger().Warn("imagefile: save failed", "path", path, "err", err)
		return false
	}
	return true
}

// defaultDispatcher serves the package-level functions.
var defaultDispatcher = New()

// Load decodes the image file at path into buf using the default dispatcher.
func Load(path string, buf *pixbuf.ByteBuffer) bool {
	return defaultDispatcher.Load(path, buf)
}

// Save encodes buf into the image file at path using the default dispatcher.
func Save(path string, buf *pixbuf.ByteBuffer) bool {
	return defaultDispatcher.Save(path, buf)
}

// LoadFile decodes the image file at path using the default dispatcher.
func LoadFile(path string) (*pixbuf.ByteBuffer, error) {
	return defaultDispatcher.LoadFile(path)
}

// SaveFile encodes buf into the image file at path using the default
// dispatcher.
func SaveFile(path string, buf *pixbuf.ByteBuffer) error {
	return defaultDispatcher.SaveFile(path, buf)
}

// IsNotExist reports whether err was caused by a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, codec.ErrFileOpen) && errors.Is(err, os.ErrNotExist)
}
