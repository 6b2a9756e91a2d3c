package pixbuf

import (
	"errors"
	"math"
)

// Operator errors.
var (
	// ErrIncompatible is returned when two input buffers differ in width,
	// height or color space.
	ErrIncompatible = errors.New("pixbuf: incompatible buffers")

	// ErrColorSpace is returned when an operator does not accept the color
	// space of its input.
	ErrColorSpace = errors.New("pixbuf: unsupported color space for operation")
)

// Rec. 709 luma coefficients.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Compatible reports whether a and b have the same width, height and color
// space.
func Compatible[C Channel](a, b *Buffer[C]) bool {
	return a.width == b.width &&
		a.height == b.height &&
		a.colorSpace == b.colorSpace
}

// Add computes out = a + b for every channel value.
// Byte channels saturate at 0 and 255.
// out may be a or b; it is re-created with the layout of a if it is not
// compatible with a.
func Add[C Channel](out, a, b *Buffer[C]) error {
	return binary(out, a, b, func(x, y float64) float64 { return x + y })
}

// Subtract computes out = a - b for every channel value.
// Byte channels saturate at 0 and 255.
// out may be a or b; it is re-created with the layout of a if it is not
// compatible with a.
func Subtract[C Channel](out, a, b *Buffer[C]) error {
	return binary(out, a, b, func(x, y float64) float64 { return x - y })
}

// Multiply computes out = a * b pixel by pixel, channel by channel.
// Byte channels saturate at 255.
func Multiply[C Channel](out, a, b *Buffer[C]) error {
	return binary(out, a, b, func(x, y float64) float64 { return x * y })
}

// Scale computes out = in * s for every channel value.
// Byte channels saturate at 0 and 255 and round to the nearest value.
func Scale[C Channel](out, in *Buffer[C], s float64) error {
	if in.colorSpace == ColorSpaceUnknown {
		return ErrColorSpace
	}
	if !Compatible(out, in) {
		out.Create(in.width, in.height, in.colorSpace, nil)
	}

	for y := uint32(0); y < in.height; y++ {
		src := in.Row(y)
		dst := out.Row(y)
		for i, v := range src {
			dst[i] = saturate[C](float64(v) * s)
		}
	}
	return nil
}

// Luminance computes a grayscale image from an RGB or RGBA image:
//
//	g(x, y) = 0.2126*R(x, y) + 0.7152*G(x, y) + 0.0722*B(x, y)
//
// If out does not have the dimensions of in, it is re-created as a
// Grayscale buffer. Otherwise its color space is kept and only the first
// channel of each pixel receives the result. out may be in.
func Luminance[C Channel](out, in *Buffer[C]) error {
	if in.colorSpace != ColorSpaceRGB && in.colorSpace != ColorSpaceRGBA {
		return ErrColorSpace
	}
	if out.width != in.width || out.height != in.height || out.channels == 0 {
		out.Create(in.width, in.height, ColorSpaceGrayscale, nil)
	}

	sc := in.channels
	dc := out.channels
	for y := uint32(0); y < in.height; y++ {
		src := in.Row(y)
		dst := out.Row(y)
		for x := 0; x < int(in.width); x++ {
			p := src[x*sc : x*sc+3]
			g := lumaR*float64(p[0]) + lumaG*float64(p[1]) + lumaB*float64(p[2])
			dst[x*dc] = saturate[C](g)
		}
	}
	return nil
}

// binary applies op to every channel value of a and b and stores the result
// in out.
func binary[C Channel](out, a, b *Buffer[C], op func(x, y float64) float64) error {
	if !Compatible(a, b) {
		return ErrIncompatible
	}
	if a.colorSpace == ColorSpaceUnknown {
		return ErrColorSpace
	}
	if !Compatible(out, a) {
		out.Create(a.width, a.height, a.colorSpace, nil)
	}

	for y := uint32(0); y < a.height; y++ {
		ra := a.Row(y)
		rb := b.Row(y)
		dst := out.Row(y)
		for i := range ra {
			dst[i] = saturate[C](op(float64(ra[i]), float64(rb[i])))
		}
	}
	return nil
}

// saturate converts v to the channel type. Byte channels are rounded and
// clamped to [0, 255]; floating point channels are stored unchanged.
func saturate[C Channel](v float64) C {
	if channelBytes[C]() != 1 {
		return C(v)
	}
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= math.MaxUint8:
		return C(math.MaxUint8)
	default:
		return C(math.Round(v))
	}
}
