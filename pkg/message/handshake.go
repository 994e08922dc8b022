package message

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"

	"github.com/mberes/torrent/pkg/common"
)

// ErrBadHandshake ...
var ErrBadHandshake = errors.New("message: bad handshake")

// Handshake is the fixed 68-byte exchange preceding framed messages.
// It is not itself a framed message; it lives here because it shares
// the Marshal/Unmarshal shape.
type Handshake struct {
	InfoHash common.Hash
	PeerID   common.PeerID
}

var (
	handshakeStart    = byte(19)
	handshakeString   = `BitTorrent protocol`
	handshakeReserved = [8]byte{}

	// HandshakeLength ...
	HandshakeLength        = 1 + len(handshakeString) + len(handshakeReserved) + sha1.Size + common.PeerIDLength
	handshakeInfoHashStart = HandshakeLength - sha1.Size - common.PeerIDLength
	handshakePeerIDStart   = HandshakeLength - common.PeerIDLength
)

// Marshal ...
func (m *Handshake) Marshal() ([]byte, error) {
	b := bytes.NewBuffer(nil)
	b.Grow(HandshakeLength)
	b.WriteByte(handshakeStart)
	b.WriteString(handshakeString)
	b.Write(handshakeReserved[:])
	b.Write(m.InfoHash[:])
	b.Write(m.PeerID[:])
	return b.Bytes(), nil
}

// Unmarshal parses the fixed layout. It surfaces the remote info-hash
// and peer id; equality checks are the caller's business.
func (m *Handshake) Unmarshal(r []byte) error {
	if len(r) != HandshakeLength {
		return fmt.Errorf("%w: length %d", ErrBadHandshake, len(r))
	}
	if startChar := r[0]; startChar != handshakeStart {
		return fmt.Errorf("%w: start byte %d", ErrBadHandshake, startChar)
	}
	if btProto := string(r[1 : 1+len(handshakeString)]); btProto != handshakeString {
		return fmt.Errorf("%w: protocol %q", ErrBadHandshake, btProto)
	}

	copy(m.InfoHash[:], r[handshakeInfoHashStart:handshakeInfoHashStart+sha1.Size])
	copy(m.PeerID[:], r[handshakePeerIDStart:handshakePeerIDStart+common.PeerIDLength])
	return nil
}
