package main_test

import (
	"bytes"
	"crypto/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runBwtzip invokes `go run .` with the given arguments, the way the
// teacher's own command-line test drives its CLI as a real subprocess
// rather than calling its internals directly.
func runBwtzip(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", "run", ".")
	cmd.Args = append(cmd.Args, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestCmdRoundTripPlainHuffman(t *testing.T) {
	tmpdir := t.TempDir()
	infile := filepath.Join(tmpdir, "in.txt")
	encfile := filepath.Join(tmpdir, "enc.bin")
	decfile := filepath.Join(tmpdir, "dec.txt")

	want := []byte("the quick brown fox jumps over the lazy dog, repeated. " +
		"the quick brown fox jumps over the lazy dog, repeated.")
	if err := os.WriteFile(infile, want, 0o600); err != nil {
		t.Fatal(err)
	}

	if out, err := runBwtzip(t, "--infile="+infile, "--outfile="+encfile); err != nil {
		t.Fatalf("encode: %v: %s", err, out)
	}
	if out, err := runBwtzip(t, "--infile="+encfile, "--outfile="+decfile, "--decode"); err != nil {
		t.Fatalf("decode: %v: %s", err, out)
	}

	got, err := os.ReadFile(decfile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, want)
	}
}

func TestCmdRoundTripWithBWTPipeline(t *testing.T) {
	tmpdir := t.TempDir()
	infile := filepath.Join(tmpdir, "in.bin")
	encfile := filepath.Join(tmpdir, "enc.bin")
	decfile := filepath.Join(tmpdir, "dec.bin")

	want := make([]byte, 64*1024)
	if _, err := rand.Read(want); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(infile, want, 0o600); err != nil {
		t.Fatal(err)
	}

	if out, err := runBwtzip(t, "--infile="+infile, "--outfile="+encfile, "--bwt", "--block-pow=14", "--checksum"); err != nil {
		t.Fatalf("encode: %v: %s", err, out)
	}
	if out, err := runBwtzip(t, "--infile="+encfile, "--outfile="+decfile, "--decode", "--bwt", "--block-pow=14"); err != nil {
		t.Fatalf("decode: %v: %s", err, out)
	}

	got, err := os.ReadFile(decfile)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("pipeline round trip mismatch over the CLI")
	}
}

func TestCmdInspectReportsFrequencyTable(t *testing.T) {
	tmpdir := t.TempDir()
	infile := filepath.Join(tmpdir, "in.txt")
	encfile := filepath.Join(tmpdir, "enc.bin")

	if err := os.WriteFile(infile, []byte("aaaaabbbbc"), 0o600); err != nil {
		t.Fatal(err)
	}
	if out, err := runBwtzip(t, "--infile="+infile, "--outfile="+encfile); err != nil {
		t.Fatalf("encode: %v: %s", err, out)
	}

	out, err := runBwtzip(t, "inspect", "--infile="+encfile)
	if err != nil {
		t.Fatalf("inspect: %v: %s", err, out)
	}
	if !bytes.Contains([]byte(out), []byte("distinct symbols: 3")) {
		t.Fatalf("inspect output missing expected summary line: %s", out)
	}
}

func TestCmdBatchProcessesIndependentFiles(t *testing.T) {
	tmpdir := t.TempDir()
	outdir := filepath.Join(tmpdir, "out")

	files := []string{"a.txt", "b.txt"}
	contents := map[string][]byte{
		"a.txt": []byte("alpha alpha alpha"),
		"b.txt": []byte("bravo bravo bravo bravo"),
	}
	var paths []string
	for _, name := range files {
		p := filepath.Join(tmpdir, name)
		if err := os.WriteFile(p, contents[name], 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	args := append([]string{"batch", "--outdir=" + outdir}, paths...)
	if out, err := runBwtzip(t, args...); err != nil {
		t.Fatalf("batch encode: %v: %s", err, out)
	}

	encoded := []string{}
	for _, name := range files {
		encoded = append(encoded, filepath.Join(outdir, name))
	}
	decdir := filepath.Join(tmpdir, "decoded")
	args = append([]string{"batch", "--decode", "--outdir=" + decdir}, encoded...)
	if out, err := runBwtzip(t, args...); err != nil {
		t.Fatalf("batch decode: %v: %s", err, out)
	}

	for _, name := range files {
		got, err := os.ReadFile(filepath.Join(decdir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, contents[name]) {
			t.Fatalf("%s: round trip mismatch via batch", name)
		}
	}
}
