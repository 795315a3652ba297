package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"soundcore/internal/asset"
	"soundcore/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog>",
	Short: "Load a catalog, decode its clips and check the authoring rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), args[0], cfg.Output.SampleRate)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(out io.Writer, path string, rate int) error {
	bank := asset.NewBank(filepath.Dir(path), rate)
	cat, err := catalog.Load(path, bank)
	if err != nil {
		return err
	}
	problems := catalog.ValidateCatalog(cat)
	for _, p := range problems {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintf(out, "%d sounds, %d clips, %s of sample data\n",
		len(cat), bank.Len(), humanize.IBytes(uint64(bank.Bytes())))
	if len(problems) > 0 {
		return fmt.Errorf("%d %s", len(problems), plural(len(problems), "problem", "problems"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
