package torrent

import (
	"crypto/sha1"
	"errors"
	"testing"

	"github.com/mberes/torrent/pkg/bencode"
	"github.com/mberes/torrent/pkg/common"
)

func testMetainfo(t *testing.T) []byte {
	t.Helper()
	pieces := make([]byte, 60)
	for i := range pieces {
		pieces[i] = byte(i)
	}
	// Deliberately non-canonical key order; the info-hash must come out
	// of the re-encoding, not these bytes.
	doc := []byte("d4:infod6:pieces60:")
	doc = append(doc, pieces...)
	doc = append(doc, "6:lengthi1000e4:name8:blob.bin12:piece lengthi400ee"...)
	doc = append(doc, "8:announce31:http://tracker.example/announcee"...)
	return doc
}

func TestParseBytes(t *testing.T) {
	f, err := ParseBytes(testMetainfo(t))
	if err != nil {
		t.Fatal(err)
	}
	if f.Announce != "http://tracker.example/announce" {
		t.Errorf("announce: got %q", f.Announce)
	}
	if f.Name != "blob.bin" {
		t.Errorf("name: got %q", f.Name)
	}
	if f.Length != 1000 || f.PieceLength != 400 {
		t.Errorf("sizes: got %d/%d", f.Length, f.PieceLength)
	}
	if f.PieceCount() != 3 {
		t.Errorf("piece count: got %d", f.PieceCount())
	}
}

func TestInfoHashCanonical(t *testing.T) {
	f, err := ParseBytes(testMetainfo(t))
	if err != nil {
		t.Fatal(err)
	}
	// SHA-1 over the canonical (key-sorted) info encoding.
	if got := f.InfoHash().String(); got != "914160d8573c568b79ae1563bae7a78577d5f93a" {
		t.Errorf("info hash: got %s", got)
	}
}

func TestInfoHashMinimalDict(t *testing.T) {
	info := bencode.NewDict(map[string]*bencode.Value{
		"pieces":       bencode.NewString([]byte("aabbcc")),
		"length":       bencode.NewInteger(5),
		"piece length": bencode.NewInteger(3),
	})
	enc := bencode.Encode(info)
	if string(enc) != "d6:lengthi5e12:piece lengthi3e6:pieces6:aabbcce" {
		t.Fatalf("canonical encoding: got %q", enc)
	}
	sum := sha1.Sum(enc)
	const want = "fbb86544531d4181ed7ace8030210f683a85f35b"
	if got := common.Hash(sum).String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPieceSize(t *testing.T) {
	f := &File{Length: 1000, PieceLength: 400, PieceHashes: make([]byte, 60)}
	for i, want := range []int{400, 400, 200} {
		if got := f.PieceSize(i); got != want {
			t.Errorf("piece %d: got %d, want %d", i, got, want)
		}
	}

	// Exact multiple: the last piece is full-sized, not zero.
	f = &File{Length: 900, PieceLength: 300, PieceHashes: make([]byte, 60)}
	if got := f.PieceSize(2); got != 300 {
		t.Errorf("last piece of exact multiple: got %d, want 300", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"not a dict":       "le",
		"missing info":     "d8:announce3:urle",
		"missing length":   "d8:announce3:url4:infod4:name1:n12:piece lengthi3e6:pieces0:ee",
		"bad pieces count": "d8:announce3:url4:infod6:lengthi1000e4:name1:n12:piece lengthi400e6:pieces20:aaaaaaaaaaaaaaaaaaaaee",
	}
	for name, doc := range cases {
		_, err := ParseBytes([]byte(doc))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !errors.Is(err, ErrInvalidMetainfo) {
			t.Errorf("%s: error %v is not ErrInvalidMetainfo", name, err)
		}
	}

	if _, err := ParseBytes([]byte("d8:announce")); !errors.Is(err, bencode.ErrSyntax) {
		t.Errorf("truncated document: got %v, want ErrSyntax", err)
	}
}
