package file

import (
	"fmt"
	"os"

	"github.com/mberes/torrent/pkg/torrent"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// AddCommands ...
func AddCommands(root *cobra.Command) {
	fileCmd := &cobra.Command{
		Use:   `file`,
		Short: `Torrent file related commands`,
	}
	root.AddCommand(fileCmd)

	infoCmd := &cobra.Command{
		Use:   `info <torrent-file>`,
		Short: `Show info about a torrent file`,
		Args:  cobra.ExactArgs(1),
		RunE:  fileInfo,
	}
	fileCmd.AddCommand(infoCmd)

	hashCmd := &cobra.Command{
		Use:   `hash <torrent-file>...`,
		Short: `Print the info-hash of torrent files`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  fileHash,
	}
	fileCmd.AddCommand(hashCmd)
}

func fileInfo(cmd *cobra.Command, args []string) error {
	tf, err := torrent.ParseFile(args[0])
	if err != nil {
		return err
	}
	return yaml.NewEncoder(os.Stdout).Encode(map[string]interface{}{
		`Name`:        tf.Name,
		`Announce`:    tf.Announce,
		`Length`:      tf.Length,
		`PieceLength`: tf.PieceLength,
		`PieceCount`:  tf.PieceCount(),
		`InfoHash`:    tf.InfoHash().String(),
	})
}

func fileHash(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		tf, err := torrent.ParseFile(path)
		if err != nil {
			return err
		}
		fmt.Println(tf.InfoHash(), path)
	}
	return nil
}
