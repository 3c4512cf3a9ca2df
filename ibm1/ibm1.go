// Package ibm1 implements IBM Model 1 lexical translation training and
// word alignment decoding over a parallel corpus.
package ibm1

// NullToken is the synthetic source word that stands for "no real source
// word generated this target word". It is never a real token.
const NullToken = ""

// nullID is the source vocabulary id reserved for NullToken.
const nullID = 0

// Sentence is an ordered sequence of tokens.
type Sentence []string

// SentencePair is one source sentence and its translation.
type SentencePair struct {
	Source Sentence
	Target Sentence
}

// Bitext is a parallel corpus in corpus order.
type Bitext []SentencePair

// Vocab maps between tokens and dense integer IDs.
type Vocab struct {
	ToID  map[string]int
	ToStr []string
}

// NewVocab creates an empty vocabulary.
func NewVocab() *Vocab {
	return &Vocab{
		ToID: make(map[string]int),
	}
}

// newSourceVocab creates a vocabulary whose ID 0 is NullToken.
func newSourceVocab() *Vocab {
	v := NewVocab()
	v.Add(NullToken)
	return v
}

// Add adds a token if not already present and returns its ID.
func (v *Vocab) Add(s string) int {
	if id, ok := v.ToID[s]; ok {
		return id
	}
	id := len(v.ToStr)
	v.ToID[s] = id
	v.ToStr = append(v.ToStr, s)
	return id
}

// Get returns the ID for a token, or -1 if not found.
func (v *Vocab) Get(s string) int {
	if id, ok := v.ToID[s]; ok {
		return id
	}
	return -1
}

// Size returns the number of entries.
func (v *Vocab) Size() int {
	return len(v.ToStr)
}

// encodedPair holds one sentence pair as vocabulary IDs. Source always
// starts with nullID; it is built fresh and never shares memory with the
// caller's Sentence.
type encodedPair struct {
	source []int
	target []int
}

// Corpus is a Bitext interned into integer IDs.
type Corpus struct {
	Source *Vocab
	Target *Vocab
	pairs  []encodedPair
}

// Encode interns every token of the bitext. The bitext is not modified.
func Encode(bitext Bitext) *Corpus {
	c := &Corpus{
		Source: newSourceVocab(),
		Target: NewVocab(),
		pairs:  make([]encodedPair, len(bitext)),
	}
	for i, p := range bitext {
		src := make([]int, len(p.Source)+1)
		src[0] = nullID
		for j, tok := range p.Source {
			src[j+1] = c.Source.Add(tok)
		}
		tgt := make([]int, len(p.Target))
		for j, tok := range p.Target {
			tgt[j] = c.Target.Add(tok)
		}
		c.pairs[i] = encodedPair{source: src, target: tgt}
	}
	return c
}

// Len returns the number of sentence pairs.
func (c *Corpus) Len() int {
	return len(c.pairs)
}
