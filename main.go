package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mberes/torrent/cmd/download"
	cmdFile "github.com/mberes/torrent/cmd/file"
	cmdTorrent "github.com/mberes/torrent/cmd/torrent"
	"github.com/mberes/torrent/cmd/tools"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   filepath.Base(os.Args[0]),
		Short: `A BitTorrent client.`,
	}

	cmdFile.AddCommands(rootCmd)
	cmdTorrent.AddCommands(rootCmd)
	download.AddCommands(rootCmd)
	tools.AddCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
