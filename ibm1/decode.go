package ibm1

// Link aligns the source word at Source to the target word at Target. Both
// indices are 0-based positions in the original sentences.
type Link struct {
	Source int
	Target int
}

// Alignment is the list of links for one sentence pair, in target order.
type Alignment []Link

// Decode aligns each target word to the source word with the highest
// translation probability. source must start with the null ID.
//
// Only a strictly greater probability replaces the current best, so ties go
// to the leftmost candidate and the null word wins ties it takes part in.
// Target words whose best candidate is null, or that have no candidate with
// positive probability, are left out.
func Decode(source, target []int, table Table) Alignment {
	var out Alignment
	for i, e := range target {
		best := -1
		bestProb := 0.0
		for j, f := range source {
			if f < 0 {
				continue
			}
			if p := table.Get(f, e); p > bestProb {
				bestProb = p
				best = j
			}
		}
		if best > 0 {
			out = append(out, Link{Source: best - 1, Target: i})
		}
	}
	return out
}

// Model is a trained translation table together with its vocabularies.
type Model struct {
	Source *Vocab
	Target *Vocab
	Table  Table
}

// Prob returns p(target|source) for two tokens. Unknown tokens give 0.
func (m *Model) Prob(source, target string) float64 {
	f := m.Source.Get(source)
	e := m.Target.Get(target)
	if f < 0 || e < 0 {
		return 0
	}
	return m.Table.Get(f, e)
}

// Align decodes one sentence pair. Tokens missing from the vocabularies
// never win a target word.
func (m *Model) Align(pair SentencePair) Alignment {
	source := make([]int, len(pair.Source)+1)
	source[0] = nullID
	for j, tok := range pair.Source {
		source[j+1] = m.Source.Get(tok)
	}
	target := make([]int, len(pair.Target))
	for i, tok := range pair.Target {
		target[i] = m.Target.Get(tok)
	}
	return Decode(source, target, m.Table)
}

// AlignAll decodes every pair of the bitext in corpus order.
func (m *Model) AlignAll(bitext Bitext) []Alignment {
	out := make([]Alignment, len(bitext))
	for i, p := range bitext {
		out[i] = m.Align(p)
	}
	return out
}

// AlignCorpus decodes every pair of an encoded corpus in corpus order.
func AlignCorpus(c *Corpus, table Table) []Alignment {
	out := make([]Alignment, len(c.pairs))
	for i, p := range c.pairs {
		out[i] = Decode(p.source, p.target, table)
	}
	return out
}
