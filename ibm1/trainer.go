package ibm1

import (
	"fmt"
	"log/slog"
	"time"
)

// Method selects how the E-step turns the current table into expected counts.
type Method int

const (
	// MethodDirect adds p(e|f) itself to the expected counts, with no
	// per-target-word normalization.
	MethodDirect Method = iota
	// MethodPosterior adds the alignment posterior p(e|f) / sum_f' p(e|f'),
	// summed over the source words of the sentence.
	MethodPosterior
)

// String returns the flag name of the method.
func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodPosterior:
		return "posterior"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses a method name as returned by Method.String.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "direct", "":
		return MethodDirect, nil
	case "posterior":
		return MethodPosterior, nil
	}
	return 0, fmt.Errorf("unknown method %q (want direct or posterior)", s)
}

// TrainerConfig holds EM training parameters.
type TrainerConfig struct {
	Iterations int
	Method     Method
	Logger     *slog.Logger // nil means slog.Default()
}

// DefaultTrainerConfig returns the default training config.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Iterations: 5,
		Method:     MethodDirect,
	}
}

// Train runs exactly config.Iterations EM rounds starting from initial and
// returns the final table. With zero iterations initial is returned as is.
// Each round builds a new table; initial is never modified.
func Train(c *Corpus, initial Table, config TrainerConfig) (Table, error) {
	if config.Iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterationCount, config.Iterations)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	table := initial
	for iter := 0; iter < config.Iterations; iter++ {
		start := time.Now()
		var counts *Counts
		switch config.Method {
		case MethodPosterior:
			counts = expectPosterior(c, table)
		default:
			counts = expectDirect(c, table)
		}
		next, err := Normalize(counts)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter+1, err)
		}
		table = next

		logger.Debug("EM iteration",
			"iteration", iter+1,
			"method", config.Method.String(),
			"pairs", c.Len(),
			"entries", len(table),
			"duration", time.Since(start))
	}
	return table, nil
}

// expectDirect is the E-step of MethodDirect.
func expectDirect(c *Corpus, table Table) *Counts {
	counts := NewCounts()
	for _, p := range c.pairs {
		for _, e := range p.target {
			for _, f := range p.source {
				if prob := table.Get(f, e); prob > 0 {
					counts.Add(f, e, prob)
				}
			}
		}
	}
	return counts
}

// expectPosterior is the E-step of MethodPosterior.
func expectPosterior(c *Corpus, table Table) *Counts {
	counts := NewCounts()
	for _, p := range c.pairs {
		for _, e := range p.target {
			total := 0.0
			for _, f := range p.source {
				total += table.Get(f, e)
			}
			if total == 0 {
				continue
			}
			for _, f := range p.source {
				if prob := table.Get(f, e); prob > 0 {
					counts.Add(f, e, prob/total)
				}
			}
		}
	}
	return counts
}
