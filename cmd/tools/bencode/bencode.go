package bencode

import (
	"fmt"
	"io"
	"os"

	"github.com/mberes/torrent/pkg/bencode"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func decode(cmd *cobra.Command, args []string) error {
	var r io.ReadCloser
	switch path := args[0]; path {
	case `-`:
		r = io.NopCloser(os.Stdin)
	default:
		fp, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", path, err)
		}
		r = fp
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)

	// A file may hold several consecutive top-level values.
	for rest := data; len(rest) > 0; {
		v, remain, err := bencode.Decode(rest)
		if err != nil {
			return err
		}
		if err := enc.Encode(v.Interface()); err != nil {
			return err
		}
		rest = remain
	}
	return enc.Close()
}
