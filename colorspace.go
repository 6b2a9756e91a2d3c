package pixbuf

// ColorSpace describes the channel semantics of a pixel.
type ColorSpace uint8

const (
	// ColorSpaceUnknown is the color space of an empty buffer. It has no channels.
	ColorSpaceUnknown ColorSpace = iota

	// ColorSpaceGrayscale is a single luminance channel.
	ColorSpaceGrayscale

	// ColorSpaceRGB is red, green, blue in that order.
	ColorSpaceRGB

	// ColorSpaceRGBA is red, green, blue, alpha in that order (non-premultiplied).
	ColorSpaceRGBA

	// colorSpaceCount is the number of color spaces (for internal use).
	colorSpaceCount
)

// colorSpaceInfo contains metadata about a color space.
type colorSpaceInfo struct {
	name     string
	channels int
	hasAlpha bool
}

// colorSpaceTable contains metadata for each color space.
var colorSpaceTable = [colorSpaceCount]colorSpaceInfo{
	ColorSpaceUnknown:   {name: "Unknown", channels: 0},
	ColorSpaceGrayscale: {name: "Grayscale", channels: 1},
	ColorSpaceRGB:       {name: "RGB", channels: 3},
	ColorSpaceRGBA:      {name: "RGBA", channels: 4, hasAlpha: true},
}

func (cs ColorSpace) info() colorSpaceInfo {
	if cs >= colorSpaceCount {
		return colorSpaceTable[ColorSpaceUnknown]
	}
	return colorSpaceTable[cs]
}

// ChannelCount returns the number of channels per pixel for a color space.
// Unknown and unrecognized values have zero channels.
func ChannelCount(cs ColorSpace) int {
	return cs.info().channels
}

// Channels returns the number of channels per pixel.
func (cs ColorSpace) Channels() int {
	return ChannelCount(cs)
}

// HasAlpha reports whether the color space carries an alpha channel.
func (cs ColorSpace) HasAlpha() bool {
	return cs.info().hasAlpha
}

// IsValid reports whether cs is a known color space other than Unknown.
func (cs ColorSpace) IsValid() bool {
	return cs > ColorSpaceUnknown && cs < colorSpaceCount
}

// String returns a string representation of the color space.
func (cs ColorSpace) String() string {
	return cs.info().name
}
