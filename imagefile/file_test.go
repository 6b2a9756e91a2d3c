package imagefile

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/pixbuf"
	"github.com/gogpu/pixbuf/codec"
	"github.com/gogpu/pixbuf/codec/jpeg"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"photo.jpg", FormatJPEG},
		{"photo.JPEG", FormatJPEG},
		{"image.png", FormatJPEG},
		{"noext", FormatJPEG},
		{"", FormatUnknown},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func gradient(w, h uint32, cs pixbuf.ColorSpace) *pixbuf.ByteBuffer {
	b := pixbuf.NewBuffer[uint8](w, h, cs, nil)
	for y := uint32(0); y < h; y++ {
		row := b.Row(y)
		for i := range row {
			row[i] = uint8(40 + y*10)
		}
	}
	return b
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cs   pixbuf.ColorSpace
		want pixbuf.ColorSpace
	}{
		{"gray", pixbuf.ColorSpaceGrayscale, pixbuf.ColorSpaceGrayscale},
		{"rgb", pixbuf.ColorSpaceRGB, pixbuf.ColorSpaceRGB},
		{"rgba", pixbuf.ColorSpaceRGBA, pixbuf.ColorSpaceRGB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.jpg")
			src := gradient(6, 4, tt.cs)

			if !Save(path, src) {
				t.Fatal("Save() = false")
			}
			if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
				t.Fatalf("saved file: %v", err)
			}

			var got pixbuf.ByteBuffer
			if !Load(path, &got) {
				t.Fatal("Load() = false")
			}
			if got.Width() != 6 || got.Height() != 4 || got.ColorSpace() != tt.want {
				t.Errorf("loaded %dx%d %v, want 6x4 %v", got.Width(), got.Height(), got.ColorSpace(), tt.want)
			}
			if got.RowSize() != pixbuf.RowSizeFor(6, tt.want.Channels()*8) {
				t.Errorf("RowSize() = %d", got.RowSize())
			}
		})
	}
}

func TestLoadMissingFileLeavesBuffer(t *testing.T) {
	buf := gradient(3, 2, pixbuf.ColorSpaceRGB)
	before := buf.Clone()

	path := filepath.Join(t.TempDir(), "missing.jpg")
	if Load(path, buf) {
		t.Fatal("Load() of a missing file = true")
	}
	if buf.Width() != before.Width() || buf.ColorSpace() != before.ColorSpace() ||
		!bytes.Equal(buf.Data(), before.Data()) {
		t.Error("failed Load should leave the buffer untouched")
	}

	_, err := LoadFile(path)
	if !errors.Is(err, codec.ErrFileOpen) {
		t.Errorf("LoadFile() = %v, want ErrFileOpen", err)
	}
	if !IsNotExist(err) {
		t.Error("IsNotExist() = false for a missing file")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(path, []byte("definitely not a jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf pixbuf.ByteBuffer
	if Load(path, &buf) {
		t.Fatal("Load() of a corrupt file = true")
	}
	if !buf.IsEmpty() {
		t.Error("failed Load should leave the buffer empty")
	}
	if _, err := LoadFile(path); !errors.Is(err, codec.ErrCodec) {
		t.Errorf("LoadFile() = %v, want ErrCodec", err)
	}
}

func TestSaveUnknownColorSpaceWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jpg")

	var buf pixbuf.ByteBuffer
	if Save(path, &buf) {
		t.Fatal("Save() of an empty buffer = true")
	}
	if err := SaveFile(path, &buf); !errors.Is(err, codec.ErrUnsupportedColorSpace) {
		t.Errorf("SaveFile() = %v, want ErrUnsupportedColorSpace", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Save of an Unknown buffer created %s", path)
	}
}

func TestSaveEmptyBufferKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.jpg")
	want := []byte("previous contents")
	if err := os.WriteFile(path, want, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		buf  *pixbuf.ByteBuffer
	}{
		{"0x0 rgb", pixbuf.NewBuffer[uint8](0, 0, pixbuf.ColorSpaceRGB, nil)},
		{"0x3 gray", pixbuf.NewBuffer[uint8](0, 3, pixbuf.ColorSpaceGrayscale, nil)},
		{"4x0 rgba", pixbuf.NewBuffer[uint8](4, 0, pixbuf.ColorSpaceRGBA, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Save(path, tt.buf) {
				t.Fatal("Save() of an empty buffer = true")
			}
			if err := SaveFile(path, tt.buf); !errors.Is(err, codec.ErrCodec) {
				t.Errorf("SaveFile() = %v, want ErrCodec", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("file contents = %q, want %q", got, want)
			}
		})
	}
}

func TestNilBuffer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	if err := SaveFile(src, gradient(2, 2, pixbuf.ColorSpaceRGB)); err != nil {
		t.Fatal(err)
	}

	if Load(src, nil) {
		t.Error("Load(path, nil) = true")
	}

	dst := filepath.Join(dir, "dst.jpg")
	if Save(dst, nil) {
		t.Error("Save(path, nil) = true")
	}
	if err := SaveFile(dst, nil); !errors.Is(err, codec.ErrCodec) {
		t.Errorf("SaveFile(path, nil) = %v, want ErrCodec", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Error("Save of a nil buffer created a file")
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.jpg")
	err := SaveFile(path, gradient(2, 2, pixbuf.ColorSpaceGrayscale))
	if !errors.Is(err, codec.ErrFileOpen) {
		t.Errorf("SaveFile() = %v, want ErrFileOpen", err)
	}
}

func TestEmptyPathUnsupported(t *testing.T) {
	if _, err := LoadFile(""); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Errorf("LoadFile(\"\") = %v, want ErrUnsupportedFormat", err)
	}
	if err := SaveFile("", gradient(1, 1, pixbuf.ColorSpaceRGB)); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Errorf("SaveFile(\"\") = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDispatcherOptions(t *testing.T) {
	if q := New().Quality(); q != DefaultQuality {
		t.Errorf("default Quality() = %d, want %d", q, DefaultQuality)
	}
	if q := New(WithQuality(-3)).Quality(); q != 0 {
		t.Errorf("WithQuality(-3) = %d, want 0", q)
	}
	if q := New(WithQuality(140)).Quality(); q != 100 {
		t.Errorf("WithQuality(140) = %d, want 100", q)
	}

	d := New(WithCodec(FormatJPEG, nil))
	if _, err := d.LoadFile("x.jpg"); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Errorf("LoadFile() without a codec = %v, want ErrUnsupportedFormat", err)
	}

	// Options of one dispatcher must not leak into the next.
	if _, err := New().codecFor("x.jpg"); err != nil {
		t.Errorf("default codecFor() = %v", err)
	}
}

func TestDispatcherQualityReachesCodec(t *testing.T) {
	dir := t.TempDir()
	src := pixbuf.NewBuffer[uint8](32, 32, pixbuf.ColorSpaceRGB, nil)
	for y := uint32(0); y < src.Height(); y++ {
		for x := uint32(0); x < src.Width(); x++ {
			copy(src.PixelAt(y, x), []uint8{uint8(x * 8), uint8(y * 8), uint8((x + y) * 4)})
		}
	}

	low := filepath.Join(dir, "low.jpg")
	high := filepath.Join(dir, "high.jpg")
	if err := New(WithQuality(10)).SaveFile(low, src); err != nil {
		t.Fatal(err)
	}
	if err := New(WithCodec(FormatJPEG, jpeg.New())).SaveFile(high, src); err != nil {
		t.Fatal(err)
	}

	lf, _ := os.Stat(low)
	hf, _ := os.Stat(high)
	if lf.Size() >= hf.Size() {
		t.Errorf("quality 10 size %d should be below quality 100 size %d", lf.Size(), hf.Size())
	}
}

func TestDispatcherLogsFailures(t *testing.T) {
	var out bytes.Buffer
	d := New(WithLogger(slog.New(slog.NewTextHandler(&out, nil))))

	var buf pixbuf.ByteBuffer
	d.Load(filepath.Join(t.TempDir(), "missing.jpg"), &buf)
	if !strings.Contains(out.String(), "load failed") {
		t.Errorf("log output = %q, want a load failure warning", out.String())
	}

	out.Reset()
	if !d.Save(filepath.Join(t.TempDir(), "ok.jpg"), gradient(2, 2, pixbuf.ColorSpaceRGB)) {
		t.Fatal("Save() = false")
	}
	if out.Len() != 0 {
		t.Errorf("successful Save logged at info level: %q", out.String())
	}
}
