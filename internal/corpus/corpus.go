// Package corpus reads parallel corpora and gold alignments from a data folder.
package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/happyhackingspace/wordalign/ibm1"
	"github.com/happyhackingspace/wordalign/internal/textutil"
)

// maxLineSize bounds a single corpus line.
const maxLineSize = 16 * 1024 * 1024

// Storage wraps the corpus data folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given data folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// Files names the corpus files as <Prefix>.<Ext> inside the data folder.
type Files struct {
	Prefix    string
	SourceExt string
	TargetExt string
	AlignExt  string
}

// DefaultFiles returns the Hansards layout: hansards.f (source),
// hansards.e (target) and hansards.a (gold alignments).
func DefaultFiles() Files {
	return Files{
		Prefix:    "hansards",
		SourceExt: "f",
		TargetExt: "e",
		AlignExt:  "a",
	}
}

// LoadOptions controls how sentences are read.
type LoadOptions struct {
	Sentences int // 0 reads every line
	Lowercase bool
}

// Path returns the path of the file with the given extension.
func (s *Storage) Path(files Files, ext string) string {
	return filepath.Join(s.Folder, files.Prefix+"."+ext)
}

// LoadBitext reads the source and target files line by line into sentence
// pairs. Both files are read concurrently; they must have the same number of
// lines within the sentence limit.
func (s *Storage) LoadBitext(ctx context.Context, files Files, opts LoadOptions) (ibm1.Bitext, error) {
	var sourceLines, targetLines []string
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lines, err := readLines(ctx, s.Path(files, files.SourceExt), opts.Sentences)
		sourceLines = lines
		return err
	})
	g.Go(func() error {
		lines, err := readLines(ctx, s.Path(files, files.TargetExt), opts.Sentences)
		targetLines = lines
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(sourceLines) != len(targetLines) {
		return nil, fmt.Errorf("line count mismatch: %s has %d, %s has %d",
			s.Path(files, files.SourceExt), len(sourceLines),
			s.Path(files, files.TargetExt), len(targetLines))
	}

	bitext := make(ibm1.Bitext, len(sourceLines))
	for i := range sourceLines {
		bitext[i] = ibm1.SentencePair{
			Source: textutil.Fields(sourceLines[i], opts.Lowercase),
			Target: textutil.Fields(targetLines[i], opts.Lowercase),
		}
	}
	slog.Debug("Corpus loaded", "folder", s.Folder, "prefix", files.Prefix, "pairs", len(bitext))
	return bitext, nil
}

// ReadBitext reads "source ||| target" lines.
func ReadBitext(r io.Reader, opts LoadOptions) (ibm1.Bitext, error) {
	var bitext ibm1.Bitext
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if opts.Sentences > 0 && len(bitext) >= opts.Sentences {
			break
		}
		source, target, _, ok := textutil.SplitParallel(scanner.Text())
		if !ok {
			return nil, fmt.Errorf("line %d: missing %q separator", lineNo, textutil.ParallelSeparator)
		}
		bitext = append(bitext, ibm1.SentencePair{
			Source: textutil.Fields(source, opts.Lowercase),
			Target: textutil.Fields(target, opts.Lowercase),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return bitext, nil
}

// readLines reads up to limit lines of a file (all when limit is 0).
func readLines(ctx context.Context, path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if limit > 0 && len(lines) >= limit {
			break
		}
		if len(lines)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
