package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm1"
	"github.com/happyhackingspace/wordalign/internal/corpus"
	"github.com/spf13/cobra"
)

// trainFlags holds the flags shared by commands that train a model.
type trainFlags struct {
	data       wordalign.DataConfig
	iterations int
	method     string
}

func (c *CLI) addTrainFlags(cmd *cobra.Command, tf *trainFlags) {
	tf.data = c.env.data
	cmd.Flags().StringVar(&tf.data.Folder, "data-folder", tf.data.Folder, "Path to corpus data folder")
	cmd.Flags().StringVar(&tf.data.Prefix, "prefix", tf.data.Prefix, "Corpus file prefix inside the data folder")
	cmd.Flags().StringVar(&tf.data.SourceExt, "source-ext", tf.data.SourceExt, "Source language file extension")
	cmd.Flags().StringVar(&tf.data.TargetExt, "target-ext", tf.data.TargetExt, "Target language file extension")
	cmd.Flags().StringVar(&tf.data.AlignExt, "align-ext", tf.data.AlignExt, "Gold alignment file extension")
	cmd.Flags().IntVarP(&tf.data.Sentences, "sentences", "n", tf.data.Sentences, "Number of sentence pairs to use (0 = all)")
	cmd.Flags().BoolVar(&tf.data.Lowercase, "lowercase", false, "Lowercase tokens before training")
	cmd.Flags().IntVarP(&tf.iterations, "iterations", "i", c.env.iterations, "Number of EM iterations")
	cmd.Flags().StringVar(&tf.method, "method", c.env.method, "E-step method: direct or posterior")
}

func (tf *trainFlags) trainConfig() (*wordalign.TrainConfig, error) {
	if tf.iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ibm1.ErrInvalidIterationCount, tf.iterations)
	}
	method, err := ibm1.ParseMethod(tf.method)
	if err != nil {
		return nil, err
	}
	return &wordalign.TrainConfig{
		Iterations: tf.iterations,
		Method:     method,
	}, nil
}

func (c *CLI) newAlignCommand() *cobra.Command {
	var tf trainFlags
	var outputPath string

	cmd := &cobra.Command{
		Use:   "align [bitext-file]",
		Short: "Train IBM Model 1 and print word alignments",
		Long: `Train IBM Model 1 on a parallel corpus and print one alignment line per
sentence pair. Each line holds space-separated "i-j" links where i is the
source word position and j the target word position, both 0-based.

The corpus is read from <data-folder>/<prefix>.<source-ext> and
<prefix>.<target-ext>, one sentence per line. A file argument with
"source ||| target" lines is used instead when given; "-" reads it from stdin.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # Align the first 1000 Hansards sentences
  wordalign align -n 1000 > ibm1.a

  # Ten iterations of textbook EM
  wordalign align -i 10 --method posterior

  # Align "source ||| target" lines from a file or stdin
  wordalign align corpus.txt
  cat corpus.txt | wordalign align -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := tf.trainConfig()
			if err != nil {
				return err
			}

			bitext, source, err := loadBitext(cmd, args, tf.data)
			if err != nil {
				return err
			}
			slog.Info("Training aligner", "source", source, "pairs", len(bitext),
				"iterations", config.Iterations, "method", config.Method.String())

			start := time.Now()
			aligner, err := wordalign.Train(bitext, config)
			if err != nil {
				return err
			}
			alignments := aligner.AlignAll(bitext)
			slog.Debug("Alignment completed", "pairs", len(alignments), "duration", time.Since(start))

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}
			if err := ibm1.WriteAlignments(out, alignments); err != nil {
				return fmt.Errorf("write alignments: %w", err)
			}
			if outputPath != "" {
				slog.Info("Alignments saved", "path", outputPath)
			}
			return nil
		},
	}

	c.addTrainFlags(cmd, &tf)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write alignments to a file instead of stdout")
	return cmd
}

// loadBitext reads the corpus from the file argument ("-" for stdin) or,
// without an argument, from the data folder. It also returns a description
// of where the corpus came from.
func loadBitext(cmd *cobra.Command, args []string, data wordalign.DataConfig) (ibm1.Bitext, string, error) {
	opts := corpus.LoadOptions{Sentences: data.Sentences, Lowercase: data.Lowercase}

	if len(args) == 0 {
		bitext, err := wordalign.LoadBitext(cmd.Context(), data)
		if err != nil {
			return nil, "", err
		}
		return bitext, data.Folder, nil
	}

	if args[0] == "-" {
		slog.Debug("Reading bitext from stdin")
		bitext, err := corpus.ReadBitext(cmd.InOrStdin(), opts)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return bitext, "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	bitext, err := corpus.ReadBitext(f, opts)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return bitext, args[0], nil
}
