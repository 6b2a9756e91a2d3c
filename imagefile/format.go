package imagefile

// Format is an image file format.
type Format uint8

const (
	// FormatUnknown is a path that cannot be classified.
	FormatUnknown Format = iota

	// FormatJPEG is a JPEG-compatible file.
	FormatJPEG
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}

// DetectFormat classifies a file path.
//
// JPEG is the only format wired up, so every non-empty path is classified as
// FormatJPEG and the extension is not inspected. The empty path is
// FormatUnknown.
func DetectFormat(path string) Format {
	if path == "" {
		return FormatUnknown
	}
	return FormatJPEG
}
