package peer

import (
	"fmt"

	"github.com/mberes/torrent/pkg/torrent"
)

// Connect runs the full pre-download sequence against one peer:
// dial, handshake, bitfield, interested, unchoke.
func (c *Client) Connect() error {
	if err := c.Dial(); err != nil {
		return err
	}
	if err := c.Handshake(); err != nil {
		return err
	}
	if err := c.RecvBitField(); err != nil {
		return err
	}
	return c.WaitUnchoke()
}

// PieceAt builds the download descriptor for one piece of f.
func PieceAt(f *torrent.File, index int) (*SinglePieceData, error) {
	if index < 0 || index >= f.PieceCount() {
		return nil, fmt.Errorf("peer: piece index %d out of range [0, %d)", index, f.PieceCount())
	}
	return &SinglePieceData{
		Index:  index,
		Hash:   f.PieceHashes.Index(index),
		Length: f.PieceSize(index),
	}, nil
}

// DownloadAll downloads every piece of f sequentially over this
// connection and concatenates them in index order. The connection must
// already be unchoked (see Connect). onPiece, if set, observes each
// verified piece as it completes.
func (c *Client) DownloadAll(f *torrent.File, onPiece func(p *SinglePieceData)) ([]byte, error) {
	buf := make([]byte, 0, f.Length)
	for i := 0; i < f.PieceCount(); i++ {
		piece, err := PieceAt(f, i)
		if err != nil {
			return nil, err
		}
		if err := c.DownloadPiece(piece); err != nil {
			return nil, fmt.Errorf("peer: download piece %d: %w", i, err)
		}
		buf = append(buf, piece.Data...)
		if onPiece != nil {
			onPiece(piece)
		}
	}
	if int64(len(buf)) != f.Length {
		return nil, fmt.Errorf("peer: downloaded %d bytes, want %d", len(buf), f.Length)
	}
	return buf, nil
}
