package ibm1

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String renders the alignment as space-separated "source-target" links.
func (a Alignment) String() string {
	parts := make([]string, len(a))
	for i, l := range a {
		parts[i] = fmt.Sprintf("%d-%d", l.Source, l.Target)
	}
	return strings.Join(parts, " ")
}

// Format renders one line per alignment. Every line, the last included, is
// terminated by a newline.
func Format(alignments []Alignment) string {
	var b strings.Builder
	for _, a := range alignments {
		b.WriteString(a.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteAlignments writes alignments to w in the Format layout.
func WriteAlignments(w io.Writer, alignments []Alignment) error {
	bw := bufio.NewWriter(w)
	for _, a := range alignments {
		if _, err := bw.WriteString(a.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Reference is a gold alignment. Possible includes every sure link.
type Reference struct {
	Sure     Alignment
	Possible Alignment
}

// ParseReference parses one gold alignment line.
func ParseReference(line string) (Reference, error) {
	sure, possible, err := ParseLinks(line)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Sure: sure, Possible: possible}, nil
}

// ParseLinks parses one alignment line. "i-j" is a sure link and "i?j" a
// possible one; sure links are also returned among the possible links.
func ParseLinks(line string) (sure, possible Alignment, err error) {
	for _, tok := range strings.Fields(line) {
		sep := strings.IndexAny(tok, "-?")
		if sep <= 0 || sep == len(tok)-1 {
			return nil, nil, fmt.Errorf("malformed link %q", tok)
		}
		src, err := strconv.Atoi(tok[:sep])
		if err != nil {
			return nil, nil, fmt.Errorf("malformed link %q: %w", tok, err)
		}
		tgt, err := strconv.Atoi(tok[sep+1:])
		if err != nil {
			return nil, nil, fmt.Errorf("malformed link %q: %w", tok, err)
		}
		if src < 0 || tgt < 0 {
			return nil, nil, fmt.Errorf("malformed link %q: negative index", tok)
		}
		l := Link{Source: src, Target: tgt}
		if tok[sep] == '-' {
			sure = append(sure, l)
		}
		possible = append(possible, l)
	}
	return sure, possible, nil
}

// Parse reads alignments in the Format layout, one per line. Possible
// ("i?j") links are dropped.
func Parse(r io.Reader) ([]Alignment, error) {
	var out []Alignment
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		sure, _, err := ParseLinks(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, sure)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
