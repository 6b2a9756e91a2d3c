package jpeg

import (
	"image/color"

	"github.com/gogpu/pixbuf"
)

// Space is a color space as a JPEG codec sees it, covering both the
// components stored in a stream and the layouts a decoder can deliver.
type Space uint8

const (
	SpaceUnknown   Space = iota
	SpaceGrayscale       // one luminance component
	SpaceRGB             // red/green/blue
	SpaceYCbCr           // Y/Cb/Cr, also known as YUV
	SpaceCMYK            // C/M/Y/K
	SpaceYCCK            // Y/Cb/Cr/K
	SpaceExtRGB          // red/green/blue
	SpaceExtRGBA         // red/green/blue/alpha
	SpaceExtBGR          // blue/green/red
	SpaceExtBGRA         // blue/green/red/alpha
	SpaceExtABGR         // alpha/blue/green/red
	SpaceExtARGB         // alpha/red/green/blue
)

// String returns a string representation of the space.
func (s Space) String() string {
	switch s {
	case SpaceGrayscale:
		return "Grayscale"
	case SpaceRGB:
		return "RGB"
	case SpaceYCbCr:
		return "YCbCr"
	case SpaceCMYK:
		return "CMYK"
	case SpaceYCCK:
		return "YCCK"
	case SpaceExtRGB:
		return "ExtRGB"
	case SpaceExtRGBA:
		return "ExtRGBA"
	case SpaceExtBGR:
		return "ExtBGR"
	case SpaceExtBGRA:
		return "ExtBGRA"
	case SpaceExtABGR:
		return "ExtABGR"
	case SpaceExtARGB:
		return "ExtARGB"
	default:
		return "Unknown"
	}
}

// ToColorSpace maps a codec space onto a buffer color space.
// Only channel orders a buffer can hold directly are accepted: BGR orderings,
// alpha-first layouts, YCbCr, CMYK and YCCK report false.
func ToColorSpace(s Space) (pixbuf.ColorSpace, bool) {
	switch s {
	case SpaceGrayscale:
		return pixbuf.ColorSpaceGrayscale, true
	case SpaceRGB, SpaceExtRGB:
		return pixbuf.ColorSpaceRGB, true
	case SpaceExtRGBA:
		return pixbuf.ColorSpaceRGBA, true
	default:
		return pixbuf.ColorSpaceUnknown, false
	}
}

// FromColorSpace maps a buffer color space onto the space an encoder is fed
// with. Unknown reports false.
func FromColorSpace(cs pixbuf.ColorSpace) (Space, bool) {
	switch cs {
	case pixbuf.ColorSpaceGrayscale:
		return SpaceGrayscale, true
	case pixbuf.ColorSpaceRGB:
		return SpaceRGB, true
	case pixbuf.ColorSpaceRGBA:
		return SpaceExtRGBA, true
	default:
		return SpaceUnknown, false
	}
}

// streamSpace returns the component space of a stream from the color model
// reported by its header.
func streamSpace(m color.Model) Space {
	switch m {
	case color.GrayModel:
		return SpaceGrayscale
	case color.YCbCrModel:
		return SpaceYCbCr
	case color.RGBAModel:
		// Three components flagged as untransformed RGB by an Adobe marker.
		return SpaceRGB
	case color.CMYKModel:
		// Four-component streams; YCCK is converted to CMYK by the backend.
		return SpaceCMYK
	default:
		return SpaceUnknown
	}
}

// outputSpace returns the space scanlines are delivered in. Unless raw output
// is requested, YCbCr streams are converted to RGB.
func outputSpace(stream Space, raw bool) Space {
	if !raw && stream == SpaceYCbCr {
		return SpaceRGB
	}
	return stream
}
