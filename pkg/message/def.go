package message

import (
	"errors"
	"fmt"
)

// Message is a BitTorrent message sent between peers.
type Message interface {
	Marshaler
	Unmarshaler
}

// Marshaler ...
type Marshaler interface {
	Marshal() ([]byte, error)
}

// Unmarshaler ...
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// MsgID ...
type MsgID byte

// Known message list
const (
	MsgChoke         = MsgID(0)
	MsgUnChoke       = MsgID(1)
	MsgInterested    = MsgID(2)
	MsgNotInterested = MsgID(3)
	MsgHave          = MsgID(4)
	MsgBitField      = MsgID(5)
	MsgRequest       = MsgID(6)
	MsgPiece         = MsgID(7)
	MsgCancel        = MsgID(8)
)

// ErrUnknownMessage ...
var ErrUnknownMessage = errors.New("message: unknown message id")

// ParseMsgID converts a wire byte into a MsgID. Bytes outside the
// known range fail instead of defaulting.
func ParseMsgID(b byte) (MsgID, error) {
	if b > byte(MsgCancel) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMessage, b)
	}
	return MsgID(b), nil
}

func (id MsgID) String() string {
	names := [...]string{
		`choke`, `unchoke`, `interested`, `not interested`,
		`have`, `bitfield`, `request`, `piece`, `cancel`,
	}
	if int(id) < len(names) {
		return names[id]
	}
	return fmt.Sprintf("unknown(%d)", byte(id))
}

// New returns a zero message of the given id, ready to Unmarshal.
func New(id MsgID) (Message, error) {
	switch id {
	case MsgChoke:
		return &Choke{}, nil
	case MsgUnChoke:
		return &UnChoke{}, nil
	case MsgInterested:
		return &Interested{}, nil
	case MsgNotInterested:
		return &NotInterested{}, nil
	case MsgHave:
		return &Have{}, nil
	case MsgBitField:
		return &BitField{}, nil
	case MsgRequest:
		return &Request{}, nil
	case MsgPiece:
		return &Piece{}, nil
	case MsgCancel:
		return &Cancel{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, byte(id))
}
