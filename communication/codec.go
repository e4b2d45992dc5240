package communication

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrFraming reports a malformed or truncated length-prefixed message.
var ErrFraming = errors.New("framing error")

// maxMessage bounds the declared length of a single message.
const maxMessage = 1 << 30

// Encode renders v as a length-prefixed JSON frame: <decimal length>:<json>.
func Encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	frame := strconv.AppendInt(nil, int64(len(payload)), 10)
	frame = append(frame, ':')
	return append(frame, payload...), nil
}

// Writer writes frames to an underlying stream, flushing after every message.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(v any) ([]byte, error) {
	frame, err := Encode(v)
	if err != nil {
		return nil, err
	}
	if _, err := w.w.Write(frame); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush message: %w", err)
	}
	return frame, nil
}

// Reader reads whole frames from an underlying stream.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadFrame returns the next payload. It returns io.EOF only if the stream ends cleanly before a
// new frame starts; any other short read is a framing error.
func (r *Reader) ReadFrame() ([]byte, error) {
	var digits []byte
	for {
		b, err := r.r.ReadByte()
		if err == io.EOF && len(digits) == 0 {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading length: %v", ErrFraming, err)
		}
		switch {
		case b == ':':
			if len(digits) == 0 {
				return nil, fmt.Errorf("%w: empty length", ErrFraming)
			}
			n, err := strconv.Atoi(string(digits))
			if err != nil || n > maxMessage {
				return nil, fmt.Errorf("%w: bad length %q", ErrFraming, digits)
			}
			// The buffer grows with the bytes that arrive, not with the declared length.
			var payload bytes.Buffer
			if _, err := io.CopyN(&payload, r.r, int64(n)); err != nil {
				return nil, fmt.Errorf("%w: read %d byte payload: %v", ErrFraming, n, err)
			}
			return payload.Bytes(), nil
		case b >= '0' && b <= '9':
			digits = append(digits, b)
		case len(digits) == 0 && (b == ' ' || b == '\n' || b == '\r' || b == '\t'):
			// whitespace between frames
		default:
			return nil, fmt.Errorf("%w: unexpected byte %q in length", ErrFraming, b)
		}
	}
}

// Read decodes the next frame into v. Unknown fields are ignored.
func (r *Reader) Read(v any) ([]byte, error) {
	payload, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return payload, fmt.Errorf("failed to decode message: %w", err)
	}
	return payload, nil
}
