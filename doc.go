// Package pixbuf provides an in-memory pixel buffer with 32-bit aligned
// scanlines.
//
// # Overview
//
// A [Buffer] stores one image as a contiguous slice. Each scanline occupies
// RowSize() bytes: the pixel values followed by zero to three bytes of
// padding so that every row starts on a 32-bit boundary:
//
//	RowSize = ((width*bitsPerPixel + 31) &^ 31) >> 3
//
// The channel storage type is fixed per buffer type: [ByteBuffer] (uint8),
// [FloatBuffer] (float32) and [DoubleBuffer] (float64). The number of channels
// per pixel follows from the [ColorSpace].
//
// # Quick Start
//
//	buf := pixbuf.NewBuffer[uint8](4, 2, pixbuf.ColorSpaceRGB, nil)
//	px := buf.PixelAt(1, 3) // row 1, column 3
//	px[0], px[1], px[2] = 255, 128, 0
//
// Loading and saving files is done by the imagefile sub-package:
//
//	var img pixbuf.ByteBuffer
//	if !imagefile.Load("photo.jpg", &img) {
//	    log.Fatal("load failed")
//	}
//	imagefile.Save("copy.jpg", &img)
//
// # Coordinate System
//
// The origin (0,0) is the top-left pixel. PixelAt takes (row, column); rows
// grow downwards.
//
// # Operators
//
// [Add], [Subtract], [Multiply], [Scale] and [Luminance] operate on whole
// buffers. Byte channels use saturating arithmetic.
package pixbuf
