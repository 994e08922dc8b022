package torrent

import (
	"github.com/mberes/torrent/pkg/common"
)

// File is the parsed, immutable view of a single-file metainfo.
type File struct {
	Announce string
	Name     string

	Length      int64
	PieceLength int
	PieceHashes common.PieceHashes

	infoHash common.Hash
}

// InfoHash is the SHA-1 of the canonically re-encoded info dictionary.
func (f *File) InfoHash() common.Hash {
	return f.infoHash
}

// PieceCount ...
func (f *File) PieceCount() int {
	return f.PieceHashes.Len()
}

// PieceSize returns the byte length of the piece at index. Every piece
// is PieceLength long except possibly the last; when the file length is
// an exact multiple the last piece is full-sized, not zero.
func (f *File) PieceSize(index int) int {
	if index < f.PieceCount()-1 {
		return f.PieceLength
	}
	if remain := int(f.Length % int64(f.PieceLength)); remain != 0 {
		return remain
	}
	return f.PieceLength
}
