package imagefile

import (
	"log/slog"

	"github.com/gogpu/pixbuf/codec"
	"github.com/gogpu/pixbuf/codec/jpeg"
)

// DefaultQuality is the compression quality Save uses unless configured.
const DefaultQuality = 100

// Option configures a Dispatcher during creation.
//
// Example:
//
//	d := imagefile.New(imagefile.WithQuality(85))
type Option func(*options)

// options holds optional configuration for a Dispatcher.
type options struct {
	quality int
	codecs  map[Format]codec.Codec
	logger  *slog.Logger
}

// defaultOptions returns the default dispatcher options.
func defaultOptions() options {
	return options{
		quality: DefaultQuality,
		codecs: map[Format]codec.Codec{
			FormatJPEG: jpeg.New(),
		},
		logger: nil, // pixbuf.Logger() at call time
	}
}

// WithQuality sets the compression quality used by Save. Values outside
// 0..100 are clamped.
func WithQuality(q int) Option {
	return func(o *options) {
		o.quality = codec.ClampQuality(q)
	}
}

// WithCodec binds a codec to a format, replacing the default binding.
// A nil codec removes the binding.
func WithCodec(f Format, c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			delete(o.codecs, f)
			return
		}
		o.codecs[f] = c
	}
}

// WithLogger sets the logger of the dispatcher. By default the dispatcher
// logs through pixbuf.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
