// Package textutil provides tokenization helpers for parallel corpora.
package textutil

import (
	"regexp"
	"strings"
)

// ParallelSeparator splits the two sides of a parallel corpus line.
const ParallelSeparator = "|||"

// Fields splits a line into whitespace-separated tokens, optionally lowercased.
func Fields(line string, lowercase bool) []string {
	if lowercase {
		line = Normalize(line)
	}
	return strings.Fields(line)
}

// SplitParallel splits a "source ||| target" line. Fields after the second
// separator (features in an n-best list) are returned in rest.
func SplitParallel(line string) (source, target string, rest []string, ok bool) {
	parts := strings.Split(line, ParallelSeparator)
	if len(parts) < 2 {
		return "", "", nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts[0], parts[1], parts[2:], true
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// Normalize lowercases text and normalizes whitespace.
func Normalize(text string) string {
	return NormalizeWhitespaces(strings.ToLower(text))
}
