package common

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Hash is a 20-byte SHA-1 digest (info-hash or piece hash).
type Hash [sha1.Size]byte

// Equal ...
func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h[:], other[:])
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// URLEncoded percent-encodes every byte of the hash as %xx,
// unconditionally. Trackers require this exact form for info_hash.
func (h Hash) URLEncoded() string {
	return URLEncodeBytes(h[:])
}

// URLEncodeBytes renders b as %xx for each byte.
func URLEncodeBytes(b []byte) string {
	buf := bytes.Buffer{}
	buf.Grow(len(b) * 3)
	for _, c := range b {
		fmt.Fprintf(&buf, "%%%02x", c)
	}
	return buf.String()
}

// PeerIDLength ...
const PeerIDLength = 20

// PeerID identifies a client on the wire. It is an explicit value
// handed to the handshake so that concurrent sessions don't alias a
// shared constant.
type PeerID [PeerIDLength]byte

// NewPeerID generates a fresh peer id: Azureus-style client prefix
// followed by random bytes from a UUID.
func NewPeerID() PeerID {
	var id PeerID
	copy(id[:], `-MB0001-`)
	u := uuid.New()
	copy(id[8:], u[:])
	return id
}

func (p PeerID) String() string {
	return fmt.Sprintf("%s%x", p[:8], p[8:])
}

// Equal ...
func (p PeerID) Equal(other PeerID) bool {
	return bytes.Equal(p[:], other[:])
}

// PieceHashes is the raw `pieces` byte string from the metainfo,
// 20 bytes per piece.
type PieceHashes []byte

// Len ...
func (p PieceHashes) Len() int {
	return len(p) / sha1.Size
}

// Index returns the 20-byte hash of the piece at index.
func (p PieceHashes) Index(index int) []byte {
	return p[index*sha1.Size : (index+1)*sha1.Size]
}
