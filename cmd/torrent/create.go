package torrent

import (
	"os"

	"github.com/mberes/torrent/pkg/torrent"
	"github.com/spf13/cobra"
)

// AddCommands ...
func AddCommands(root *cobra.Command) {
	torrentCmd := &cobra.Command{
		Use:   `torrent`,
		Short: `Torrent creation commands`,
	}
	root.AddCommand(torrentCmd)

	createCmd := &cobra.Command{
		Use:   `create <file>`,
		Short: `Create a torrent from a file. Writes the metainfo to stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE:  createTorrent,
	}
	createCmd.Flags().StringP(`announce`, `a`, ``, `tracker announce URL`)
	createCmd.Flags().Int(`piece-length`, 0, `piece length in bytes (default 256 KiB)`)
	torrentCmd.AddCommand(createCmd)
}

func createTorrent(cmd *cobra.Command, args []string) error {
	announce, _ := cmd.Flags().GetString(`announce`)
	pieceLength, _ := cmd.Flags().GetInt(`piece-length`)

	c := torrent.NewCreator(args[0], announce, pieceLength)
	return c.Create(os.Stdout)
}
