package codec

import "errors"

// Errors reported by codecs and the file layer built on them.
// Everything a codec returns wraps exactly one of these.
var (
	// ErrFileOpen is returned when a path cannot be opened for reading or
	// created for writing.
	ErrFileOpen = errors.New("codec: cannot open file")

	// ErrUnsupportedFormat is returned when no codec handles a file format.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrUnsupportedColorSpace is returned when a codec cannot represent the
	// color space of a stream or of a buffer.
	ErrUnsupportedColorSpace = errors.New("codec: unsupported color space")

	// ErrCodec is returned when decoding or encoding fails at any stage.
	ErrCodec = errors.New("codec: stream error")
)
