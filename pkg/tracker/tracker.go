package tracker

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mberes/torrent/pkg/bencode"
	"github.com/mberes/torrent/pkg/common"
)

// ErrAnnounce is wrapped by every announce failure, including a
// `failure reason` sent by the tracker itself.
var ErrAnnounce = errors.New("tracker: announce failed")

// Peer is one endpoint from a compact peer list.
type Peer struct {
	IP   net.IP
	Port uint16
}

// Addr ...
func (p Peer) Addr() string {
	return fmt.Sprintf("%s:%d", p.IP, p.Port)
}

func (p Peer) String() string {
	return p.Addr()
}

// AnnounceResponse ...
type AnnounceResponse struct {
	Interval int
	Peers    []Peer
}

// HTTPTracker announces to an HTTP(S) tracker and decodes the compact
// peer list it returns.
type HTTPTracker struct {
	Address  string
	InfoHash common.Hash
	MyPeerID common.PeerID

	// Port is the listen port reported to the tracker.
	Port int

	// Left is the number of bytes this client still wants,
	// normally the full file length.
	Left int64

	// Timeout bounds the whole HTTP exchange. Zero means no timeout.
	Timeout time.Duration
}

// Announce ...
func (t *HTTPTracker) Announce() (*AnnounceResponse, error) {
	u, err := url.Parse(t.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: bad url %q: %v", ErrAnnounce, t.Address, err)
	}

	a := url.Values{}
	a.Set(`port`, strconv.Itoa(t.Port))
	a.Set(`uploaded`, `0`)
	a.Set(`downloaded`, `0`)
	a.Set(`left`, strconv.FormatInt(t.Left, 10))
	a.Set(`compact`, `1`)

	// info_hash and peer_id are raw bytes and must be percent-encoded
	// byte by byte, so they bypass url.Values. Announce URLs may carry
	// their own query parameters; keep them.
	query := `info_hash=` + t.InfoHash.URLEncoded() +
		`&peer_id=` + common.URLEncodeBytes(t.MyPeerID[:]) +
		`&` + a.Encode()
	if u.RawQuery != `` {
		query = u.RawQuery + `&` + query
	}
	u.RawQuery = query

	client := &http.Client{Timeout: t.Timeout}
	resp, err := client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnnounce, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrAnnounce, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrAnnounce, err)
	}

	return parseResponse(body)
}

func parseResponse(body []byte) (*AnnounceResponse, error) {
	root, _, err := bencode.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnnounce, err)
	}
	if root.Kind != bencode.Dict {
		return nil, fmt.Errorf("%w: response is not a dict", ErrAnnounce)
	}

	if reason := root.Get(`failure reason`); reason != nil && reason.Kind == bencode.String {
		return nil, fmt.Errorf("%w: %s", ErrAnnounce, reason.Str)
	}

	r := &AnnounceResponse{}
	if interval := root.Get(`interval`); interval != nil && interval.Kind == bencode.Integer {
		r.Interval = int(interval.Int)
	}

	peers := root.Get(`peers`)
	if peers == nil || peers.Kind != bencode.String {
		return nil, fmt.Errorf("%w: missing compact peers", ErrAnnounce)
	}
	r.Peers, err = ParseCompactPeers(peers.Str)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// ParseCompactPeers splits a compact peer list: 6 bytes per peer,
// 4-byte IPv4 followed by a big-endian port.
func ParseCompactPeers(b []byte) ([]Peer, error) {
	if len(b)%6 != 0 {
		return nil, fmt.Errorf("%w: compact peers length %d is not a multiple of 6", ErrAnnounce, len(b))
	}
	peers := make([]Peer, 0, len(b)/6)
	for i := 0; i < len(b); i += 6 {
		peers = append(peers, Peer{
			IP:   net.IPv4(b[i], b[i+1], b[i+2], b[i+3]),
			Port: binary.BigEndian.Uint16(b[i+4 : i+6]),
		})
	}
	return peers, nil
}
