package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"soundcore/internal/asset"
)

var clipsCmd = &cobra.Command{
	Use:   "clips",
	Short: "List the procedural clips usable as synth:<name>",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClips(cmd.OutOrStdout(), cfg.Output.SampleRate)
	},
}

func init() {
	rootCmd.AddCommand(clipsCmd)
}

func runClips(out io.Writer, rate int) error {
	for _, name := range asset.SynthNames() {
		c, err := asset.Synthesize(name, rate)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-12s %6.2fs  %s\n", asset.SynthPrefix+name, c.Length(), humanize.IBytes(uint64(c.Bytes())))
	}
	return nil
}
