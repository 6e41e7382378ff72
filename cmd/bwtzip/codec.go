package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/colinbeck/bwtzip"
	"github.com/colinbeck/bwtzip/bwt"
	"github.com/colinbeck/bwtzip/huffman"
	"github.com/colinbeck/bwtzip/mtf"
)

// StageDuration is the wall-clock time one transform stage took, either on
// its own (bare Huffman) or as one leg of the full pipeline.
type StageDuration struct {
	Stage    string
	Duration time.Duration
}

// RunStats is the small set of diagnostics the CLI driver accumulates
// around a single encode/decode run: byte counts, a wall-clock duration
// per stage run, and an optional plaintext checksum. It exists purely for
// structured log output and is never fed back into the codecs themselves.
type RunStats struct {
	InputBytes       int
	OutputBytes      int
	Stages           []StageDuration
	ChecksumXXHash64 *uint64
}

// LogValue implements slog.LogValuer, so a RunStats logs as a single
// grouped attribute rather than a generic struct dump.
func (s RunStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("input_bytes", s.InputBytes),
		slog.Int("output_bytes", s.OutputBytes),
	}
	for _, sd := range s.Stages {
		attrs = append(attrs, slog.Duration(sd.Stage, sd.Duration))
	}
	if s.ChecksumXXHash64 != nil {
		attrs = append(attrs, slog.String("plaintext_xxhash64", fmt.Sprintf("%016x", *s.ChecksumXXHash64)))
	}
	return slog.GroupValue(attrs...)
}

// codecFor returns the Coder the driver should run: the bare Huffman coder,
// or the full BWT+MTF+Huffman pipeline, per the --bwt flag.
func codecFor(useBWT bool, blockPow uint) (bwtzip.Coder, error) {
	if !useBWT {
		return huffmanCoder{}, nil
	}
	return bwtzip.NewPipeline(blockPow)
}

// huffmanCoder adapts the huffman package's package-level functions to
// bwtzip.Coder, the way mtfCoder/huffmanCoder do in the library's own
// tests, so the driver can treat "just Huffman" and "the full pipeline"
// uniformly.
type huffmanCoder struct{}

func (huffmanCoder) Encode(input []byte) ([]byte, error) { return huffman.Encode(input) }
func (huffmanCoder) Decode(input []byte) ([]byte, error) { return huffman.Decode(input) }

func runCodec(f *rootFlags) error {
	contents, err := readAllWithProgress(f.infile)
	if err != nil {
		return fmt.Errorf("reading infile: %w", err)
	}

	stats := RunStats{InputBytes: len(contents)}
	if f.checksum && !f.decode {
		sum := xxhash.Sum64(contents)
		stats.ChecksumXXHash64 = &sum
	}

	output, err := runStages(f, contents, &stats.Stages)
	if err != nil {
		return fmt.Errorf("%s: %w", verb(f.decode), err)
	}
	stats.OutputBytes = len(output)

	if f.checksum && f.decode {
		sum := xxhash.Sum64(output)
		stats.ChecksumXXHash64 = &sum
	}

	if err := os.WriteFile(f.outfile, output, 0o644); err != nil {
		return fmt.Errorf("writing outfile: %w", err)
	}

	slog.Info("bwtzip run complete", slog.Bool("bwt", f.useBWT), slog.Bool("decode", f.decode), slog.Any("stats", stats))
	return nil
}

// runStages runs the configured codec one transform at a time, so each
// stage's wall-clock duration can be recorded into *durations. Without
// --bwt there is a single "huffman" stage; with it, the full
// bwt/mtf/huffman pipeline runs as three separately timed stages, in
// pipeline order for encode and reverse order for decode.
func runStages(f *rootFlags, contents []byte, durations *[]StageDuration) ([]byte, error) {
	if !f.useBWT {
		if f.decode {
			return timeStage("huffman_decode", durations, func() ([]byte, error) { return huffman.Decode(contents) })
		}
		return timeStage("huffman_encode", durations, func() ([]byte, error) { return huffman.Encode(contents) })
	}

	bwtCodec, err := bwt.New(f.blockPow)
	if err != nil {
		return nil, fmt.Errorf("configuring bwt codec: %w", err)
	}

	if f.decode {
		huffOut, err := timeStage("huffman_decode", durations, func() ([]byte, error) { return huffman.Decode(contents) })
		if err != nil {
			return nil, err
		}
		mtfOut, err := timeStage("mtf_decode", durations, func() ([]byte, error) { return mtf.Decode(huffOut) })
		if err != nil {
			return nil, err
		}
		return timeStage("bwt_decode", durations, func() ([]byte, error) { return bwtCodec.Decode(mtfOut) })
	}

	bwtOut, err := timeStage("bwt_encode", durations, func() ([]byte, error) { return bwtCodec.Encode(contents) })
	if err != nil {
		return nil, err
	}
	mtfOut, err := timeStage("mtf_encode", durations, func() ([]byte, error) { return mtf.Encode(bwtOut) })
	if err != nil {
		return nil, err
	}
	return timeStage("huffman_encode", durations, func() ([]byte, error) { return huffman.Encode(mtfOut) })
}

// timeStage runs fn, appending its wall-clock duration under name to
// *durations regardless of whether fn succeeds.
func timeStage(name string, durations *[]StageDuration, fn func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	out, err := fn()
	*durations = append(*durations, StageDuration{Stage: name, Duration: time.Since(start)})
	return out, err
}

func verb(decode bool) string {
	if decode {
		return "decode"
	}
	return "encode"
}

// readAllWithProgress reads path fully into memory, driving a byte-count
// progress bar while it does so. The bar is suppressed when stdout is not
// a terminal, matching the teacher CLI's IsTerminal gate.
func readAllWithProgress(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if terminal.IsTerminal(int(os.Stdout.Fd())) {
		bar = progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetBytes64(info.Size()),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(true))
	}

	out := make([]byte, 0, info.Size())
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			if bar != nil {
				_ = bar.Add(n)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
