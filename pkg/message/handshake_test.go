package message

import (
	"errors"
	"testing"

	"github.com/mberes/torrent/pkg/common"
)

func TestHandshakeRoundTrip(t *testing.T) {
	m := Handshake{}
	copy(m.InfoHash[:], "00112233445566778899")
	copy(m.PeerID[:], "-MB0001-aabbccddeeff")

	b, err := m.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != HandshakeLength || HandshakeLength != 68 {
		t.Fatalf("length: got %d", len(b))
	}
	if b[0] != 19 || string(b[1:20]) != `BitTorrent protocol` {
		t.Fatalf("bad prefix: %q", b[:20])
	}

	var back Handshake
	if err := back.Unmarshal(b); err != nil {
		t.Fatal(err)
	}
	if !back.InfoHash.Equal(m.InfoHash) || !back.PeerID.Equal(m.PeerID) {
		t.Errorf("got %+v", back)
	}
}

func TestHandshakeUnmarshalErrors(t *testing.T) {
	var m Handshake

	if err := m.Unmarshal(make([]byte, 67)); !errors.Is(err, ErrBadHandshake) {
		t.Errorf("short: got %v", err)
	}

	b := make([]byte, HandshakeLength)
	b[0] = 18
	if err := m.Unmarshal(b); !errors.Is(err, ErrBadHandshake) {
		t.Errorf("bad start byte: got %v", err)
	}

	ok, _ := (&Handshake{InfoHash: common.Hash{1}, PeerID: common.PeerID{2}}).Marshal()
	ok[5] ^= 0xff
	if err := m.Unmarshal(ok); !errors.Is(err, ErrBadHandshake) {
		t.Errorf("bad protocol string: got %v", err)
	}
}
