package pixbuf

import "unsafe"

// Channel is the storage type of a single color channel value.
type Channel interface {
	~uint8 | ~float32 | ~float64
}

// Pre-defined buffer types.
type (
	// ByteBuffer stores 8-bit channels. It is the only type the codecs read and write.
	ByteBuffer = Buffer[uint8]

	// FloatBuffer stores 32-bit floating point channels.
	FloatBuffer = Buffer[float32]

	// DoubleBuffer stores 64-bit floating point channels.
	DoubleBuffer = Buffer[float64]
)

// Buffer holds one image in a contiguous slice with scanlines padded to
// 32-bit boundaries.
//
// The origin is the top-left pixel. Row y starts RowSize()*y bytes into the
// storage; the bytes between the last pixel of a row and the start of the
// next row are padding.
//
// The zero value is an empty buffer (0x0, ColorSpaceUnknown, no storage).
// A Buffer exclusively owns its storage: Clone and CopyFrom always copy.
//
// Thread safety: a Buffer must not be used from more than one goroutine at a
// time.
type Buffer[C Channel] struct {
	data       []C
	width      uint32
	height     uint32
	stride     uint32 // bytes per row, including padding
	bpp        int
	channels   int
	colorSpace ColorSpace
}

// NewBuffer creates a buffer and optionally fills it from src.
// See Create for the layout src must have.
func NewBuffer[C Channel](width, height uint32, cs ColorSpace, src []C) *Buffer[C] {
	b := &Buffer[C]{}
	b.Create(width, height, cs, src)
	return b
}

// RowSizeFor returns the length of a scanline in bytes, including padding to
// the next 32-bit boundary, for the given width and bits per pixel.
func RowSizeFor(width uint32, bpp int) uint32 {
	return ((width*uint32(bpp) + 31) &^ 31) >> 3
}

// BitsPerPixel returns the bits per pixel of a color space stored with
// channel type C.
func BitsPerPixel[C Channel](cs ColorSpace) int {
	return ChannelCount(cs) * channelBytes[C]() * 8
}

// channelBytes returns the size in bytes of one channel value.
func channelBytes[C Channel]() int {
	var zero C
	return int(unsafe.Sizeof(zero))
}

// Create discards any existing storage and allocates a new buffer of
// RowSize()*height bytes.
//
// When src is non-nil it is copied into the new storage. src must use the
// same row size and height as the buffer being created; shorter input only
// fills the leading part of the storage and the remainder stays zero.
func (b *Buffer[C]) Create(width, height uint32, cs ColorSpace, src []C) {
	b.Destroy()

	b.colorSpace = cs
	b.channels = ChannelCount(cs)
	b.bpp = BitsPerPixel[C](cs)
	b.width = width
	b.height = height
	b.stride = RowSizeFor(width, b.bpp)

	// stride is a multiple of 4 bytes, and of 8 bytes when C is float64,
	// so the division is exact.
	b.data = make([]C, int(b.stride)*int(height)/channelBytes[C]())

	if src != nil {
		copy(b.data, src)
	}
}

// Destroy releases the storage and resets the buffer to the empty state.
// It is safe to call on an already empty buffer.
func (b *Buffer[C]) Destroy() {
	b.data = nil
	b.width = 0
	b.height = 0
	b.stride = 0
	b.bpp = 0
	b.channels = 0
	b.colorSpace = ColorSpaceUnknown
}

// Width returns the image width in pixels.
func (b *Buffer[C]) Width() uint32 {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer[C]) Height() uint32 {
	return b.height
}

// RowSize returns the length of a scanline in bytes, including padding.
func (b *Buffer[C]) RowSize() uint32 {
	return b.stride
}

// ColorSpace returns the color space of the buffer.
func (b *Buffer[C]) ColorSpace() ColorSpace {
	return b.colorSpace
}

// Channels returns the number of channels per pixel.
func (b *Buffer[C]) Channels() int {
	return b.channels
}

// BitsPerPixel returns the number of bits per pixel.
func (b *Buffer[C]) BitsPerPixel() int {
	return b.bpp
}

// ByteSize returns the size of the storage in bytes (RowSize()*Height()).
func (b *Buffer[C]) ByteSize() int {
	return len(b.data) * channelBytes[C]()
}

// IsEmpty returns true if the buffer has zero dimensions.
func (b *Buffer[C]) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// Data returns the raw storage, padding included.
// Modifying this data modifies the image.
func (b *Buffer[C]) Data() []C {
	return b.data
}

// rowElems returns the row stride in channel values.
func (b *Buffer[C]) rowElems() int {
	return int(b.stride) / channelBytes[C]()
}

// PixelAt returns the channel values of the pixel at (row, col).
// The returned slice aliases the buffer and has exactly Channels() elements.
// Returns nil if the coordinates are outside the image.
func (b *Buffer[C]) PixelAt(row, col uint32) []C {
	if row >= b.height || col >= b.width || b.channels == 0 {
		return nil
	}
	off := int(row)*b.rowElems() + int(col)*b.channels
	end := off + b.channels
	return b.data[off:end:end]
}

// Row returns the channel values of scanline y, without padding.
// The returned slice aliases the buffer. Returns nil if y is out of range.
func (b *Buffer[C]) Row(y uint32) []C {
	if y >= b.height {
		return nil
	}
	start := int(y) * b.rowElems()
	end := start + int(b.width)*b.channels
	return b.data[start:end:end]
}

// Clone creates an independent deep copy of the buffer.
func (b *Buffer[C]) Clone() *Buffer[C] {
	c := &Buffer[C]{}
	c.CopyFrom(b)
	return c
}

// CopyFrom makes b an independent copy of src with identical layout and
// contents. The existing storage of b is reused when its size in bytes equals
// the size of src; otherwise it is reallocated.
func (b *Buffer[C]) CopyFrom(src *Buffer[C]) {
	if b == src {
		return
	}

	if src.data == nil {
		b.Destroy()
		return
	}

	if len(b.data) != len(src.data) {
		b.data = make([]C, len(src.data))
	}
	copy(b.data, src.data)

	b.width = src.width
	b.height = src.height
	b.stride = src.stride
	b.bpp = src.bpp
	b.channels = src.channels
	b.colorSpace = src.colorSpace
}
