package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/colinbeck/bwtzip"
)

// newBatchCmd runs the same codec over several independent files
// concurrently. Each file is encoded or decoded in isolation — there is no
// cross-file state — so the only concurrency in the whole program lives
// here, fanned out across files with an errgroup rather than inside any
// single codec call.
func newBatchCmd() *cobra.Command {
	var (
		outdir   string
		decode   bool
		useBWT   bool
		blockPow uint
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "encode or decode several independent files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outdir, 0o755); err != nil {
				return fmt.Errorf("creating outdir: %w", err)
			}

			codec, err := codecFor(useBWT, blockPow)
			if err != nil {
				return fmt.Errorf("configuring codec: %w", err)
			}

			g, _ := errgroup.WithContext(context.Background())
			g.SetLimit(parallel)
			for _, path := range args {
				path := path
				g.Go(func() error {
					return batchOne(codec, path, outdir, decode)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&outdir, "outdir", ".", "directory to write output files into")
	cmd.Flags().BoolVar(&decode, "decode", false, "decode instead of encode")
	cmd.Flags().BoolVar(&useBWT, "bwt", false, "run the full BWT+MTF+Huffman pipeline instead of Huffman alone")
	cmd.Flags().UintVar(&blockPow, "block-pow", 20, "log2 of the BWT block size, in [0, 32]")
	cmd.Flags().IntVar(&parallel, "parallel", runtime.GOMAXPROCS(0), "maximum number of files processed concurrently")
	return cmd
}

func batchOne(codec bwtzip.Coder, path, outdir string, decode bool) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var output []byte
	if decode {
		output, err = codec.Decode(contents)
	} else {
		output, err = codec.Encode(contents)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", path, verb(decode), err)
	}

	dest := filepath.Join(outdir, filepath.Base(path))
	if err := os.WriteFile(dest, output, 0o644); err != nil {
		return fmt.Errorf("%s: writing %s: %w", path, dest, err)
	}
	slog.Info("batch file complete", slog.String("path", path), slog.String("dest", dest), slog.Int("output_bytes", len(output)))
	return nil
}
