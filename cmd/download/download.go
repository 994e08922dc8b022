package download

import (
	"fmt"
	"log"
	"os"

	"github.com/mberes/torrent/pkg/common"
	"github.com/mberes/torrent/pkg/peer"
	"github.com/mberes/torrent/pkg/torrent"
	"github.com/mberes/torrent/pkg/tracker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// AddCommands ...
func AddCommands(root *cobra.Command) {
	downloadCmd := &cobra.Command{
		Use:   `download <torrent>`,
		Short: `Download the specified torrent.`,
		Args:  cobra.ExactArgs(1),
		RunE:  downloadTorrent,
	}
	downloadCmd.Flags().StringP(`tracker`, `t`, ``, `announce to this tracker instead of the metainfo one`)
	downloadCmd.Flags().StringP(`output`, `o`, ``, `output path (defaults to the name in the metainfo)`)
	downloadCmd.Flags().IntP(`port`, `p`, 6881, `listen port reported to the tracker`)
	downloadCmd.Flags().Int(`piece`, -1, `download a single piece index instead of the whole file`)
	downloadCmd.Flags().Int(`block-size`, 0, `request block size in bytes (default 16 KiB)`)
	downloadCmd.Flags().Int(`timeout`, 15, `per-operation network timeout in seconds (0 to disable)`)
	root.AddCommand(downloadCmd)
}

func downloadTorrent(cmd *cobra.Command, args []string) error {
	f, err := torrent.ParseFile(args[0])
	if err != nil {
		return err
	}

	trackerURL := f.Announce
	if t, _ := cmd.Flags().GetString(`tracker`); t != `` {
		trackerURL = t
	}
	port, _ := cmd.Flags().GetInt(`port`)
	timeout, _ := cmd.Flags().GetInt(`timeout`)
	blockSize, _ := cmd.Flags().GetInt(`block-size`)
	pieceIndex, _ := cmd.Flags().GetInt(`piece`)

	myPeerID := common.NewPeerID()

	t := tracker.HTTPTracker{
		Address:  trackerURL,
		InfoHash: f.InfoHash(),
		MyPeerID: myPeerID,
		Port:     port,
		Left:     f.Length,
	}
	r, err := t.Announce()
	if err != nil {
		return err
	}
	if len(r.Peers) == 0 {
		return fmt.Errorf("download: tracker returned no peers")
	}
	log.Printf("tracker returned %d peers, interval %ds", len(r.Peers), r.Interval)

	output, _ := cmd.Flags().GetString(`output`)
	if output == `` {
		output = f.Name
		if pieceIndex >= 0 {
			output = fmt.Sprintf("%s.piece%d", f.Name, pieceIndex)
		}
	}

	// Peers are tried in order; the first one that completes wins.
	var lastErr error
	for _, p := range r.Peers {
		data, err := downloadFromPeer(f, p.Addr(), myPeerID, timeout, blockSize, pieceIndex)
		if err != nil {
			log.Printf("peer %s: %v", p.Addr(), err)
			lastErr = err
			continue
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("download: write %q: %w", output, err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(data), output)
		return nil
	}
	return fmt.Errorf("download: all %d peers failed: %w", len(r.Peers), lastErr)
}

func downloadFromPeer(f *torrent.File, addr string, myPeerID common.PeerID, timeout, blockSize, pieceIndex int) ([]byte, error) {
	c := &peer.Client{
		InfoHash:  f.InfoHash(),
		MyPeerID:  myPeerID,
		PeerAddr:  addr,
		Timeout:   timeout,
		BlockSize: blockSize,
	}
	defer c.Close()

	if err := c.Connect(); err != nil {
		return nil, err
	}
	log.Printf("peer %s: handshake ok, remote id %s", addr, c.HerPeerID)

	if pieceIndex >= 0 {
		piece, err := peer.PieceAt(f, pieceIndex)
		if err != nil {
			return nil, err
		}
		if err := c.DownloadPiece(piece); err != nil {
			return nil, err
		}
		return piece.Data, nil
	}

	bar := progressbar.DefaultBytes(f.Length, `downloading`)
	defer bar.Finish()

	return c.DownloadAll(f, func(p *peer.SinglePieceData) {
		bar.Add(len(p.Data))
	})
}
