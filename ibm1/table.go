package ibm1

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIterationCount is returned when the EM iteration count is negative.
	ErrInvalidIterationCount = errors.New("invalid iteration count")
	// ErrMalformedCounts reports a pair expectation without a positive source
	// marginal. It indicates a bug in count accumulation, not bad input.
	ErrMalformedCounts = errors.New("malformed pair expectation")
)

// Pair keys a (source ID, target ID) entry.
type Pair struct {
	F int
	E int
}

// Table holds p(e|f) keyed by (source ID, target ID). Absent keys have
// probability 0.
type Table map[Pair]float64

// Get returns p(e|f), or 0 for an absent entry.
func (t Table) Get(f, e int) float64 {
	return t[Pair{F: f, E: e}]
}

// Counts holds the expected counts gathered by one pass over the corpus.
// Pair and Source are always updated together.
type Counts struct {
	Pair   map[Pair]float64
	Source map[int]float64
}

// NewCounts creates empty expected counts.
func NewCounts() *Counts {
	return &Counts{
		Pair:   make(map[Pair]float64),
		Source: make(map[int]float64),
	}
}

// Add adds v to the expectation of (f, e) and to the marginal of f.
func (c *Counts) Add(f, e int, v float64) {
	k := Pair{F: f, E: e}
	c.Pair[k] = c.Pair[k] + v
	c.Source[f] = c.Source[f] + v
}

// Normalize turns expected counts into translation probabilities:
// table[(f,e)] = Pair[(f,e)] / Source[f].
func Normalize(counts *Counts) (Table, error) {
	table := make(Table, len(counts.Pair))
	for k, exp := range counts.Pair {
		total, ok := counts.Source[k.F]
		if !ok || total == 0 {
			return nil, fmt.Errorf("%w: source %d has no marginal", ErrMalformedCounts, k.F)
		}
		table[k] = exp / total
	}
	return table, nil
}
