package torrent

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/mberes/torrent/pkg/bencode"
	"github.com/mberes/torrent/pkg/common"
)

// ErrInvalidMetainfo is wrapped by every error about a structurally
// valid bencode document that is not a usable metainfo.
var ErrInvalidMetainfo = errors.New("torrent: invalid metainfo")

// ParseFile reads and parses a .torrent file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("torrent: read %q: %w", path, err)
	}
	return ParseBytes(data)
}

// ParseBytes parses single-file metainfo. The info-hash is computed
// over the canonical re-encoding of the info dictionary, never over the
// source bytes, so field order in the source cannot affect it.
func ParseBytes(data []byte) (*File, error) {
	root, _, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != bencode.Dict {
		return nil, fmt.Errorf("%w: top-level value is not a dict", ErrInvalidMetainfo)
	}

	announce, err := requireString(root, "announce")
	if err != nil {
		return nil, err
	}

	info := root.Get("info")
	if info == nil || info.Kind != bencode.Dict {
		return nil, fmt.Errorf("%w: missing info dict", ErrInvalidMetainfo)
	}

	name, err := requireString(info, "name")
	if err != nil {
		return nil, err
	}
	length, err := requireInteger(info, "length")
	if err != nil {
		return nil, err
	}
	pieceLength, err := requireInteger(info, "piece length")
	if err != nil {
		return nil, err
	}
	pieces := info.Get("pieces")
	if pieces == nil || pieces.Kind != bencode.String {
		return nil, fmt.Errorf("%w: missing pieces", ErrInvalidMetainfo)
	}

	f := &File{
		Announce:    string(announce),
		Name:        string(name),
		Length:      length,
		PieceLength: int(pieceLength),
		PieceHashes: common.PieceHashes(pieces.Str),
		infoHash:    sha1.Sum(bencode.Encode(info)),
	}

	if pieceLength <= 0 {
		return nil, fmt.Errorf("%w: piece length %d", ErrInvalidMetainfo, pieceLength)
	}
	if len(pieces.Str)%sha1.Size != 0 {
		return nil, fmt.Errorf("%w: pieces length %d is not a multiple of 20", ErrInvalidMetainfo, len(pieces.Str))
	}
	calcNumPieces := int(math.Ceil(float64(length) / float64(pieceLength)))
	if calcNumPieces != f.PieceCount() {
		return nil, fmt.Errorf("%w: %d piece hashes for %d pieces", ErrInvalidMetainfo, f.PieceCount(), calcNumPieces)
	}

	return f, nil
}

func requireString(dict *bencode.Value, key string) ([]byte, error) {
	v := dict.Get(key)
	if v == nil || v.Kind != bencode.String {
		return nil, fmt.Errorf("%w: %q is missing or not a string", ErrInvalidMetainfo, key)
	}
	return v.Str, nil
}

func requireInteger(dict *bencode.Value, key string) (int64, error) {
	v := dict.Get(key)
	if v == nil || v.Kind != bencode.Integer {
		return 0, fmt.Errorf("%w: %q is missing or not an integer", ErrInvalidMetainfo, key)
	}
	return v.Int, nil
}
