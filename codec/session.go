package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gogpu/pixbuf"
)

// State is a step in the lifecycle of a decoder or encoder.
type State uint8

const (
	// StateCreated is the state right after the codec context is created.
	StateCreated State = iota

	// StateHeaderReady means the header was read (decode) or configured (encode).
	StateHeaderReady

	// StateStarted means scanline transfer may begin.
	StateStarted

	// StateTransferring means at least one scanline was transferred.
	StateTransferring

	// StateFinished means all scanlines were transferred and the stream completed.
	StateFinished

	// StateDestroyed means the codec context was released. It is terminal.
	StateDestroyed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateHeaderReady:
		return "HeaderReady"
	case StateStarted:
		return "Started"
	case StateTransferring:
		return "Transferring"
	case StateFinished:
		return "Finished"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// next reports whether to may follow s.
// Destroyed may follow any state except itself.
func (s State) next(to State) bool {
	switch to {
	case StateHeaderReady:
		return s == StateCreated
	case StateStarted:
		return s == StateHeaderReady
	case StateTransferring:
		return s == StateStarted || s == StateTransferring
	case StateFinished:
		return s == StateStarted || s == StateTransferring
	case StateDestroyed:
		return s != StateDestroyed
	default:
		return false
	}
}

// session tracks the state of one decode or encode run.
type session struct {
	state State
	op    string // "decode" or "encode"
	codec string
	rows  uint32
	log   *slog.Logger
}

func newSession(op, codec string) *session {
	return &session{
		state: StateCreated,
		op:    op,
		codec: codec,
		log:   pixbuf.Logger().With("op", op, "codec", codec),
	}
}

// advance moves the session to the given state.
func (s *session) advance(to State) error {
	if !s.state.next(to) {
		return fmt.Errorf("%w: %s: %s after %s", ErrCodec, s.op, to, s.state)
	}
	if to == StateTransferring {
		s.rows++
	} else {
		s.log.Debug("codec state", "from", s.state, "to", to, "rows", s.rows)
	}
	s.state = to
	return nil
}

// destroy moves the session to Destroyed. Safe to call more than once.
func (s *session) destroy() {
	if s.state == StateDestroyed {
		return
	}
	if s.state != StateFinished {
		s.log.Debug("codec aborted", "state", s.state, "rows", s.rows)
	}
	_ = s.advance(StateDestroyed)
}

// fail wraps err as a codec error for the given stage unless it already
// belongs to the error taxonomy.
func (s *session) fail(stage string, err error) error {
	if errors.Is(err, ErrCodec) || errors.Is(err, ErrUnsupportedColorSpace) {
		return fmt.Errorf("%s %s: %s: %w", s.codec, s.op, stage, err)
	}
	return fmt.Errorf("%w: %s %s: %s: %w", ErrCodec, s.codec, s.op, stage, err)
}

// Decode reads a complete image from r using c.
//
// The stream is decoded row by row straight into the returned buffer.
// The decoder is closed before Decode returns, whether it succeeds or not.
func Decode(c Codec, r io.Reader) (buf *pixbuf.ByteBuffer, err error) {
	s := newSession("decode", c.Name())

	dec, err := c.NewDecoder(r)
	if err != nil {
		s.destroy()
		return nil, s.fail("create", err)
	}
	defer func() {
		if cerr := dec.Close(); cerr != nil {
			buf, err = nil, errors.Join(err, s.fail("close", cerr))
		}
		s.destroy()
	}()

	h, err := dec.ReadHeader()
	if err != nil {
		return nil, s.fail("read header", err)
	}
	if err := s.advance(StateHeaderReady); err != nil {
		return nil, err
	}
	if !h.ColorSpace.IsValid() || !c.Supports(h.ColorSpace) {
		return nil, fmt.Errorf("%w: %s stream is %s", ErrUnsupportedColorSpace, c.Name(), h.ColorSpace)
	}
	s.log.Debug("header", "width", h.Width, "height", h.Height, "colorSpace", h.ColorSpace)

	if err := dec.Start(); err != nil {
		return nil, s.fail("start", err)
	}
	if err := s.advance(StateStarted); err != nil {
		return nil, err
	}

	out := pixbuf.NewBuffer[uint8](h.Width, h.Height, h.ColorSpace, nil)
	for y := uint32(0); y < h.Height; y++ {
		if err := dec.ReadScanline(out.Row(y)); err != nil {
			return nil, s.fail(fmt.Sprintf("scanline %d", y), err)
		}
		if err := s.advance(StateTransferring); err != nil {
			return nil, err
		}
	}

	if err := dec.Finish(); err != nil {
		return nil, s.fail("finish", err)
	}
	if err := s.advance(StateFinished); err != nil {
		return nil, err
	}
	return out, nil
}

// Encode writes buf to w using c at the given quality (clamped to 0..100).
//
// Scanlines are read straight from buf, top to bottom. The encoder is closed
// before Encode returns, whether it succeeds or not.
func Encode(c Codec, w io.Writer, buf *pixbuf.ByteBuffer, quality int) (err error) {
	if buf == nil {
		return fmt.Errorf("%w: %s encode: nil buffer", ErrCodec, c.Name())
	}
	cs := buf.ColorSpace()
	if !cs.IsValid() || !c.Supports(cs) {
		return fmt.Errorf("%w: %s cannot encode %s", ErrUnsupportedColorSpace, c.Name(), cs)
	}
	if buf.IsEmpty() {
		return fmt.Errorf("%w: %s encode: empty buffer", ErrCodec, c.Name())
	}

	s := newSession("encode", c.Name())

	enc, err := c.NewEncoder(w)
	if err != nil {
		s.destroy()
		return s.fail("create", err)
	}
	defer func() {
		if cerr := enc.Close(); cerr != nil {
			err = errors.Join(err, s.fail("close", cerr))
		}
		s.destroy()
	}()

	h := Header{Width: buf.Width(), Height: buf.Height(), ColorSpace: cs}
	if err := enc.Configure(h, ClampQuality(quality)); err != nil {
		return s.fail("configure", err)
	}
	if err := s.advance(StateHeaderReady); err != nil {
		return err
	}

	if err := enc.Start(); err != nil {
		return s.fail("start", err)
	}
	if err := s.advance(StateStarted); err != nil {
		return err
	}

	for y := uint32(0); y < h.Height; y++ {
		if err := enc.WriteScanline(buf.Row(y)); err != nil {
			return s.fail(fmt.Sprintf("scanline %d", y), err)
		}
		if err := s.advance(StateTransferring); err != nil {
			return err
		}
	}

	if err := enc.Finish(); err != nil {
		return s.fail("finish", err)
	}
	return s.advance(StateFinished)
}
