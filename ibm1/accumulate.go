package ibm1

// Accumulate counts every (source, target) co-occurrence instance in the
// corpus, the null source word included. Repeated tokens count once per
// occurrence.
func Accumulate(c *Corpus) *Counts {
	counts := NewCounts()
	for _, p := range c.pairs {
		for _, f := range p.source {
			for _, e := range p.target {
				counts.Add(f, e, 1)
			}
		}
	}
	return counts
}

// InitialTable returns the uniform starting estimates: co-occurrence counts
// normalized by source occurrence.
func InitialTable(c *Corpus) (Table, error) {
	return Normalize(Accumulate(c))
}
