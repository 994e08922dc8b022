package peer

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/mberes/torrent/pkg/common"
	"github.com/mberes/torrent/pkg/message"
	"github.com/mberes/torrent/pkg/utils"
)

// ErrIntegrity means a reassembled piece does not hash to the value
// the metainfo promised. The piece data is discarded.
var ErrIntegrity = errors.New("peer: piece hash mismatch")

// SinglePieceData ...
type SinglePieceData struct {
	Index  int
	Hash   []byte
	Length int
	Data   []byte
}

// Client drives the peer-wire protocol over one TCP connection.
// All calls are strictly sequential; a Client is not for concurrent use.
type Client struct {
	InfoHash  common.Hash
	MyPeerID  common.PeerID
	HerPeerID common.PeerID
	PeerAddr  string

	// Timeout is the per-operation deadline in seconds. Zero disables
	// deadlines (a stalled peer then blocks forever).
	Timeout int

	// BlockSize is the request granularity. Zero means 16 KiB.
	BlockSize int

	HerBitField *message.BitField

	conn     net.Conn
	rw       *bufio.ReadWriter
	unchoked bool
}

// Dial connects to PeerAddr.
func (c *Client) Dial() error {
	conn, err := net.DialTimeout(`tcp`, c.PeerAddr, utils.SecondsDuration(c.Timeout))
	if err != nil {
		return fmt.Errorf("peer: connect %s: %w", c.PeerAddr, err)
	}
	c.SetConn(conn)
	return nil
}

// SetConn adopts an established connection (tests, incoming peers).
func (c *Client) SetConn(conn net.Conn) {
	c.conn = conn
	c.rw = bufio.NewReadWriter(
		bufio.NewReader(conn),
		bufio.NewWriter(conn),
	)
}

// Close ...
func (c *Client) Close() error {
	if c.conn != nil {
		c.rw.Flush()
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

// Handshake runs the outgoing 68-byte exchange and records the remote
// peer id.
func (c *Client) Handshake() error {
	m, err := HandshakeOutgoing(c.conn, c.Timeout, c.InfoHash, c.MyPeerID)
	if err != nil {
		return err
	}
	c.HerPeerID = m.PeerID
	return nil
}

// Send frames one message and flushes it.
func (c *Client) Send(id message.MsgID, m message.Marshaler) error {
	utils.SetDeadlineSeconds(c.conn, c.Timeout)
	if err := message.Write(c.rw, id, m); err != nil {
		return err
	}
	if err := c.rw.Flush(); err != nil {
		return fmt.Errorf("peer: flush: %w", err)
	}
	return nil
}

// Recv reads the next framed message. Keep-alives never surface.
func (c *Client) Recv() (message.MsgID, message.Message, error) {
	utils.SetDeadlineSeconds(c.conn, c.Timeout)
	return message.Read(c.rw)
}

// RecvBitField reads the one message a peer sends right after the
// handshake and requires it to be a bitfield. Its content is kept but
// not interpreted here.
func (c *Client) RecvBitField() error {
	id, msg, err := c.Recv()
	if err != nil {
		return err
	}
	if id != message.MsgBitField {
		return fmt.Errorf("peer: expected bitfield, got %v", id)
	}
	c.HerBitField = msg.(*message.BitField)
	return nil
}

// WaitUnchoke declares interest and blocks until the peer unchokes us.
// Anything else arriving in the meantime is consumed and dropped.
func (c *Client) WaitUnchoke() error {
	if err := c.Send(message.MsgInterested, &message.Interested{}); err != nil {
		return err
	}
	for {
		id, _, err := c.Recv()
		if err != nil {
			return err
		}
		if id == message.MsgUnChoke {
			c.unchoked = true
			return nil
		}
		log.Printf("peer %s: ignoring %v while awaiting unchoke", c.PeerAddr, id)
	}
}

func (c *Client) blockSize() int {
	if c.BlockSize > 0 {
		return c.BlockSize
	}
	return message.MaxRequestLength
}

// DownloadPiece fetches one piece with a synchronous request/response
// loop: one outstanding request, blocks appended in request order, the
// whole piece verified against its SHA-1 before it is handed back.
func (c *Client) DownloadPiece(piece *SinglePieceData) error {
	piece.Data = make([]byte, 0, piece.Length)

	begin := 0
	for remaining := piece.Length; remaining > 0; {
		blockSize := c.blockSize()
		if remaining < blockSize {
			blockSize = remaining
		}

		if err := c.Send(message.MsgRequest, &message.Request{
			Index:  piece.Index,
			Begin:  begin,
			Length: blockSize,
		}); err != nil {
			return err
		}

		block, err := c.awaitBlock(piece.Index, begin, blockSize)
		if err != nil {
			return err
		}

		piece.Data = append(piece.Data, block...)
		begin += blockSize
		remaining -= blockSize
	}

	if len(piece.Data) != piece.Length {
		return fmt.Errorf("peer: piece %d: got %d bytes, want %d", piece.Index, len(piece.Data), piece.Length)
	}

	if len(piece.Hash) > 0 {
		got := sha1.Sum(piece.Data)
		if !bytes.Equal(piece.Hash, got[:]) {
			piece.Data = nil
			return fmt.Errorf("%w: piece %d", ErrIntegrity, piece.Index)
		}
	}

	return nil
}

// awaitBlock reads until the requested block arrives. Other message
// kinds are consumed and ignored; the request stays pending.
func (c *Client) awaitBlock(index, begin, length int) ([]byte, error) {
	for {
		id, msg, err := c.Recv()
		if err != nil {
			return nil, err
		}

		switch typed := msg.(type) {
		case *message.Choke:
			c.unchoked = false
		case *message.UnChoke:
			c.unchoked = true
		case *message.Have:
			if c.HerBitField != nil {
				c.HerBitField.SetPiece(typed.Index)
			}
		case *message.Piece:
			if typed.Index != index || typed.Begin != begin {
				return nil, fmt.Errorf("peer: unexpected block %d/%d, want %d/%d",
					typed.Index, typed.Begin, index, begin)
			}
			if len(typed.Data) != length {
				return nil, fmt.Errorf("peer: block %d/%d: got %d bytes, want %d",
					index, begin, len(typed.Data), length)
			}
			return typed.Data, nil
		default:
			log.Printf("peer %s: ignoring %v while awaiting block", c.PeerAddr, id)
		}
	}
}
