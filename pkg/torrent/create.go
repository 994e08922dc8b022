package torrent

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/bencode"
)

// Creator builds a single-file .torrent for a file on disk.
type Creator struct {
	path        string
	announce    string
	pieceLength int
}

type _CreateFile struct {
	Announce string      `bencode:"announce"`
	Info     _CreateInfo `bencode:"info"`
}

type _CreateInfo struct {
	Name        string `bencode:"name"`
	Length      int64  `bencode:"length"`
	PieceLength int    `bencode:"piece length"`
	Pieces      []byte `bencode:"pieces"`
}

// DefaultPieceLength ...
const DefaultPieceLength = 256 << 10

// NewCreator ...
func NewCreator(path, announce string, pieceLength int) *Creator {
	if pieceLength <= 0 {
		pieceLength = DefaultPieceLength
	}
	return &Creator{
		path:        path,
		announce:    announce,
		pieceLength: pieceLength,
	}
}

// Create hashes the file piece by piece and writes the bencoded
// metainfo to w. zeebo/bencode emits dict keys sorted, so the encoded
// info dict is already canonical.
func (c *Creator) Create(w io.Writer) error {
	stat, err := os.Stat(c.path)
	if err != nil {
		return fmt.Errorf("creator: stat failed: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return fmt.Errorf("creator: not a regular file: %s", c.path)
	}

	fp, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("creator: open failed: %w", err)
	}
	defer fp.Close()

	f := _CreateFile{
		Announce: c.announce,
		Info: _CreateInfo{
			Name:        filepath.Base(c.path),
			Length:      stat.Size(),
			PieceLength: c.pieceLength,
		},
	}

	piece := make([]byte, c.pieceLength)
	for {
		n, err := io.ReadFull(fp, piece)
		if n > 0 {
			sum := sha1.Sum(piece[:n])
			f.Info.Pieces = append(f.Info.Pieces, sum[:]...)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return fmt.Errorf("creator: read failed: %w", err)
		}
	}

	if int64(len(f.Info.Pieces)/sha1.Size) != (stat.Size()+int64(c.pieceLength)-1)/int64(c.pieceLength) {
		return fmt.Errorf("creator: file size changed while hashing")
	}

	return bencode.NewEncoder(w).Encode(f)
}
