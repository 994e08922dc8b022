package message

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds the declared length of one frame (id + payload).
// A peer claiming more is broken or hostile; the frame is rejected
// before any allocation.
const MaxFrameSize = 1 << 16

// ErrFrameTooLarge ...
var ErrFrameTooLarge = errors.New("message: frame too large")

// Write frames m onto w: length(4, big-endian, = 1+payload) | id | payload.
func Write(w io.Writer, id MsgID, m Marshaler) error {
	b, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("message: marshal %v: %v", id, err)
	}
	if 1+len(b) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, 1+len(b))
	}
	buf := make([]byte, 4+1+len(b))
	binary.BigEndian.PutUint32(buf, 1+uint32(len(b)))
	buf[4] = byte(id)
	copy(buf[5:], b)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("message: write %v: %w", id, err)
	}
	return nil
}

// WriteKeepAlive writes a zero-length frame.
func WriteKeepAlive(w io.Writer) error {
	if _, err := w.Write([]byte{0, 0, 0, 0}); err != nil {
		return fmt.Errorf("message: write keep-alive: %w", err)
	}
	return nil
}

// Read decodes the next framed message from r. Keep-alive frames are
// consumed here and never surfaced. Partial frames block until the
// stream delivers the rest or fails.
func Read(r io.Reader) (MsgID, Message, error) {
	sizeBuf := []byte{0, 0, 0, 0}
	for {
		if _, err := io.ReadFull(r, sizeBuf); err != nil {
			return 0, nil, fmt.Errorf("message: read size: %w", err)
		}
		size := binary.BigEndian.Uint32(sizeBuf)
		if size == 0 {
			// keep alive
			continue
		}
		if size > MaxFrameSize {
			return 0, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, nil, fmt.Errorf("message: read frame: %w", err)
		}

		id, err := ParseMsgID(buf[0])
		if err != nil {
			return 0, nil, err
		}
		msg, err := New(id)
		if err != nil {
			return 0, nil, err
		}
		if err := msg.Unmarshal(buf[1:]); err != nil {
			return 0, nil, fmt.Errorf("message: unmarshal %v: %v", id, err)
		}
		return id, msg, nil
	}
}
