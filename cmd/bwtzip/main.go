// Command bwtzip reads a file, applies either the Huffman codec alone or
// the full Huffman(MTF(BWT(x))) pipeline, and writes the result. It also
// offers an inspect subcommand for dumping encoded headers without a full
// decode, and a batch subcommand for running the same codec concurrently
// over several independent files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	infile   string
	outfile  string
	decode   bool
	useBWT   bool
	blockPow uint
	checksum bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "bwtzip",
		Short: "compress or decompress a file with Huffman, optionally preceded by BWT+MTF",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(f.verbose)
			return runCodec(f)
		},
	}
	cmd.Flags().StringVar(&f.infile, "infile", "", "input file path (required)")
	cmd.Flags().StringVar(&f.outfile, "outfile", "", "output file path (required)")
	cmd.Flags().BoolVar(&f.decode, "decode", false, "decode instead of encode")
	cmd.Flags().BoolVar(&f.useBWT, "bwt", false, "run the full BWT+MTF+Huffman pipeline instead of Huffman alone")
	cmd.Flags().UintVar(&f.blockPow, "block-pow", 20, "log2 of the BWT block size, in [0, 32]")
	cmd.Flags().BoolVar(&f.checksum, "checksum", false, "log an xxhash64 digest of the plaintext")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "enable debug-level logging")
	_ = cmd.MarkFlagRequired("infile")
	_ = cmd.MarkFlagRequired("outfile")

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newBatchCmd())
	return cmd
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
