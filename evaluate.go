package wordalign

import (
	"context"
	"fmt"

	"github.com/happyhackingspace/wordalign/ibm1"
	"github.com/happyhackingspace/wordalign/internal/corpus"
)

// DataConfig locates a corpus on disk as <Folder>/<Prefix>.<Ext>.
type DataConfig struct {
	Folder    string
	Prefix    string
	SourceExt string
	TargetExt string
	AlignExt  string
	Sentences int // 0 reads every sentence
	Lowercase bool
}

// DefaultDataConfig returns the Hansards layout under "data".
func DefaultDataConfig() DataConfig {
	files := corpus.DefaultFiles()
	return DataConfig{
		Folder:    "data",
		Prefix:    files.Prefix,
		SourceExt: files.SourceExt,
		TargetExt: files.TargetExt,
		AlignExt:  files.AlignExt,
	}
}

func (d DataConfig) files() corpus.Files {
	return corpus.Files{
		Prefix:    d.Prefix,
		SourceExt: d.SourceExt,
		TargetExt: d.TargetExt,
		AlignExt:  d.AlignExt,
	}
}

// LoadBitext reads the parallel corpus described by data.
func LoadBitext(ctx context.Context, data DataConfig) (ibm1.Bitext, error) {
	store := corpus.NewStorage(data.Folder)
	bitext, err := store.LoadBitext(ctx, data.files(), corpus.LoadOptions{
		Sentences: data.Sentences,
		Lowercase: data.Lowercase,
	})
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	return bitext, nil
}

// EvalResult holds alignment quality against gold alignments.
type EvalResult struct {
	Precision float64
	Recall    float64
	AER       float64

	Sentences          int
	Proposed           int // |A|
	Sure               int // |S|
	ProposedInSure     int // |A ∩ S|
	ProposedInPossible int // |A ∩ P|
}

// Score compares proposed alignments with gold references sentence by
// sentence. Only the first min(len(alignments), len(refs)) sentences count.
//
//	precision = |A∩P| / |A|
//	recall    = |A∩S| / |S|
//	AER       = 1 - (|A∩S| + |A∩P|) / (|A| + |S|)
func Score(alignments []ibm1.Alignment, refs []ibm1.Reference) *EvalResult {
	n := min(len(alignments), len(refs))
	result := &EvalResult{Sentences: n}
	for i := 0; i < n; i++ {
		sure := linkSet(refs[i].Sure)
		possible := linkSet(refs[i].Possible)
		for l := range sure {
			possible[l] = true
		}
		proposed := linkSet(alignments[i])

		result.Proposed += len(proposed)
		result.Sure += len(sure)
		for l := range proposed {
			if sure[l] {
				result.ProposedInSure++
			}
			if possible[l] {
				result.ProposedInPossible++
			}
		}
	}

	if result.Proposed > 0 {
		result.Precision = float64(result.ProposedInPossible) / float64(result.Proposed)
	}
	if result.Sure > 0 {
		result.Recall = float64(result.ProposedInSure) / float64(result.Sure)
	}
	if denom := result.Proposed + result.Sure; denom > 0 {
		result.AER = 1 - float64(result.ProposedInSure+result.ProposedInPossible)/float64(denom)
	}
	return result
}

func linkSet(a ibm1.Alignment) map[ibm1.Link]bool {
	set := make(map[ibm1.Link]bool, len(a))
	for _, l := range a {
		set[l] = true
	}
	return set
}

// Evaluate trains on the corpus described by data, aligns it and scores
// the alignments against the gold file.
func Evaluate(ctx context.Context, data DataConfig, config *TrainConfig) (*EvalResult, error) {
	bitext, err := LoadBitext(ctx, data)
	if err != nil {
		return nil, err
	}
	aligner, err := Train(bitext, config)
	if err != nil {
		return nil, err
	}
	return EvaluateAlignments(ctx, data, aligner.AlignAll(bitext))
}

// EvaluateAlignments scores already computed alignments against the gold
// file described by data.
func EvaluateAlignments(ctx context.Context, data DataConfig, alignments []ibm1.Alignment) (*EvalResult, error) {
	store := corpus.NewStorage(data.Folder)
	refs, err := store.LoadGold(ctx, data.files(), 0)
	if err != nil {
		return nil, fmt.Errorf("wordalign: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("wordalign: no gold alignments in %s", store.Path(data.files(), data.AlignExt))
	}
	if len(alignments) < len(refs) {
		return nil, fmt.Errorf("wordalign: %d gold alignments but only %d aligned sentences", len(refs), len(alignments))
	}
	return Score(alignments, refs), nil
}
