package peer

import (
	"fmt"
	"io"
	"net"

	"github.com/mberes/torrent/pkg/common"
	"github.com/mberes/torrent/pkg/message"
	"github.com/mberes/torrent/pkg/utils"
)

// HandshakeOutgoing sends our handshake and reads the peer's. The
// remote handshake is returned as parsed; whether its info-hash matches
// is the caller's call.
func HandshakeOutgoing(conn net.Conn, timeout int, infoHash common.Hash, myPeerID common.PeerID) (*message.Handshake, error) {
	defer utils.SetDeadlineSeconds(conn, 0)

	if err := handshakeSend(conn, timeout, infoHash, myPeerID); err != nil {
		return nil, err
	}
	return handshakeRecv(conn, timeout)
}

// HandshakeIncoming reads the initiator's handshake first, lets onRecv
// veto it, then replies with the same info-hash.
func HandshakeIncoming(conn net.Conn, timeout int, myPeerID common.PeerID, onRecv func(*message.Handshake) error) (*message.Handshake, error) {
	defer utils.SetDeadlineSeconds(conn, 0)

	m, err := handshakeRecv(conn, timeout)
	if err != nil {
		return nil, err
	}
	if onRecv != nil {
		if err := onRecv(m); err != nil {
			return nil, err
		}
	}
	if err := handshakeSend(conn, timeout, m.InfoHash, myPeerID); err != nil {
		return nil, err
	}
	return m, nil
}

func handshakeSend(conn net.Conn, timeout int, infoHash common.Hash, myPeerID common.PeerID) error {
	m := message.Handshake{
		InfoHash: infoHash,
		PeerID:   myPeerID,
	}
	b, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("peer: handshake marshal failed: %v", err)
	}
	utils.SetDeadlineSeconds(conn, timeout)
	if _, err := conn.Write(b); err != nil {
		return fmt.Errorf("peer: handshake write failed: %w", err)
	}
	return nil
}

func handshakeRecv(conn net.Conn, timeout int) (*message.Handshake, error) {
	m := message.Handshake{}
	b := make([]byte, message.HandshakeLength)
	utils.SetDeadlineSeconds(conn, timeout)
	if _, err := io.ReadFull(conn, b); err != nil {
		return nil, fmt.Errorf("peer: handshake read failed: %w", err)
	}
	if err := m.Unmarshal(b); err != nil {
		return nil, err
	}
	return &m, nil
}
