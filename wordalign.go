// Package wordalign learns word alignments for parallel corpora.
//
// It trains IBM Model 1 translation probabilities with EM and aligns each
// target word to its most probable source word.
//
//	bitext := ibm1.Bitext{
//	    {Source: ibm1.Sentence{"la"}, Target: ibm1.Sentence{"the"}},
//	    {Source: ibm1.Sentence{"maison"}, Target: ibm1.Sentence{"house"}},
//	}
//	out, _ := wordalign.Align(bitext, 5)
//	fmt.Print(out) // "0-0\n0-0\n"
package wordalign

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/happyhackingspace/wordalign/ibm1"
)

// Aligner wraps a trained translation model.
type Aligner struct {
	model *ibm1.Model
}

// TrainConfig holds configuration for training.
type TrainConfig struct {
	Iterations int
	Method     ibm1.Method
	Logger     *slog.Logger // nil means slog.Default()
}

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() *TrainConfig {
	tc := ibm1.DefaultTrainerConfig()
	return &TrainConfig{
		Iterations: tc.Iterations,
		Method:     tc.Method,
	}
}

// Align trains on the bitext for the given number of EM iterations and
// returns the alignment of every sentence pair, one line per pair in corpus
// order, each line terminated by a newline.
func Align(bitext ibm1.Bitext, iterations int) (string, error) {
	config := DefaultTrainConfig()
	config.Iterations = iterations
	model, c, err := train(bitext, config)
	if err != nil {
		return "", err
	}
	return ibm1.Format(ibm1.AlignCorpus(c, model.Table)), nil
}

// Train trains an aligner on the bitext.
func Train(bitext ibm1.Bitext, config *TrainConfig) (*Aligner, error) {
	model, _, err := train(bitext, config)
	if err != nil {
		return nil, err
	}
	return &Aligner{model: model}, nil
}

func train(bitext ibm1.Bitext, config *TrainConfig) (*ibm1.Model, *ibm1.Corpus, error) {
	if config == nil {
		config = DefaultTrainConfig()
	}
	if config.Iterations < 0 {
		return nil, nil, fmt.Errorf("wordalign: %w: %d", ibm1.ErrInvalidIterationCount, config.Iterations)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	c := ibm1.Encode(bitext)
	initial, err := ibm1.InitialTable(c)
	if err != nil {
		return nil, nil, fmt.Errorf("wordalign: %w", err)
	}
	logger.Debug("Initial table built",
		"pairs", c.Len(),
		"source_vocab", c.Source.Size(),
		"target_vocab", c.Target.Size(),
		"entries", len(initial))

	table, err := ibm1.Train(c, initial, ibm1.TrainerConfig{
		Iterations: config.Iterations,
		Method:     config.Method,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wordalign: %w", err)
	}
	logger.Info("Training finished",
		"iterations", config.Iterations,
		"method", config.Method.String(),
		"pairs", c.Len(),
		"duration", time.Since(start))

	return &ibm1.Model{Source: c.Source, Target: c.Target, Table: table}, c, nil
}

// Align aligns a single sentence pair.
func (a *Aligner) Align(pair ibm1.SentencePair) ibm1.Alignment {
	return a.model.Align(pair)
}

// AlignAll aligns every pair of the bitext in corpus order.
func (a *Aligner) AlignAll(bitext ibm1.Bitext) []ibm1.Alignment {
	return a.model.AlignAll(bitext)
}

// Prob returns the trained probability p(target|source). Use ibm1.NullToken
// as source for the null word.
func (a *Aligner) Prob(source, target string) float64 {
	return a.model.Prob(source, target)
}

// Model returns the underlying translation model.
func (a *Aligner) Model() *ibm1.Model {
	return a.model
}
