// Package meteor runs the external METEOR scorer over n-best translation lists.
package meteor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/happyhackingspace/wordalign/internal/textutil"
)

// DefaultNBestSize is the number of hypotheses per source sentence.
const DefaultNBestSize = 100

// Runner invokes the METEOR jar through the Java runtime.
type Runner struct {
	Java    string // java executable
	Jar     string // path to meteor-*.jar
	MaxHeap string // passed as -Xmx
}

// NewRunner creates a Runner for the given jar with a 1G heap.
func NewRunner(jar string) *Runner {
	return &Runner{
		Java:    "java",
		Jar:     jar,
		MaxHeap: "1G",
	}
}

// ExpandNBest reads an n-best list ("id ||| hypothesis ||| features") with
// size hypotheses per sentence and the matching references, one per line.
// It returns one hypothesis per line and, aligned with it, the reference of
// the sentence the hypothesis belongs to.
func ExpandNBest(nbest, references io.Reader, size int) (hyps, refs []string, err error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("n-best size must be positive, got %d", size)
	}

	var all []string
	scanner := bufio.NewScanner(nbest)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		_, hyp, _, ok := textutil.SplitParallel(scanner.Text())
		if !ok {
			return nil, nil, fmt.Errorf("n-best line %d: missing %q separator", lineNo, textutil.ParallelSeparator)
		}
		all = append(all, textutil.NormalizeWhitespaces(hyp))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	var allRefs []string
	scanner = bufio.NewScanner(references)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		allRefs = append(allRefs, strings.TrimSpace(textutil.NormalizeWhitespaces(scanner.Text())))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	numSents := len(all) / size
	if rem := len(all) % size; rem != 0 {
		slog.Warn("Ignoring incomplete n-best block", "hypotheses", rem)
	}
	if len(allRefs) < numSents {
		return nil, nil, fmt.Errorf("%d sentences in n-best list but only %d references", numSents, len(allRefs))
	}

	hyps = make([]string, 0, numSents*size)
	refs = make([]string, 0, numSents*size)
	for s := 0; s < numSents; s++ {
		for _, hyp := range all[s*size : (s+1)*size] {
			hyps = append(hyps, hyp)
			refs = append(refs, allRefs[s])
		}
	}
	return hyps, refs, nil
}

// Score writes hypotheses and references to temporary files, runs METEOR
// on them and returns its standard output.
func (r *Runner) Score(ctx context.Context, hyps, refs []string) (string, error) {
	if len(hyps) != len(refs) {
		return "", fmt.Errorf("meteor: %d hypotheses but %d references", len(hyps), len(refs))
	}

	hypPath, err := writeTemp("meteor-hyps-*.txt", hyps)
	if err != nil {
		return "", fmt.Errorf("meteor: %w", err)
	}
	defer func() { _ = os.Remove(hypPath) }()

	refPath, err := writeTemp("meteor-refs-*.txt", refs)
	if err != nil {
		return "", fmt.Errorf("meteor: %w", err)
	}
	defer func() { _ = os.Remove(refPath) }()

	args := []string{"-Xmx" + r.MaxHeap, "-jar", r.Jar, hypPath, refPath}
	slog.Debug("Running METEOR", "java", r.Java, "args", args)

	cmd := exec.CommandContext(ctx, r.Java, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("meteor: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("meteor: %w", err)
	}
	return string(out), nil
}

func writeTemp(pattern string, lines []string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
