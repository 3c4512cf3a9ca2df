package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/wordalign"
	"github.com/happyhackingspace/wordalign/ibm1"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var tf trainFlags
	var alignmentsPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score alignments against gold alignments (precision, recall, AER)",
		Example: `  # Train on the data folder and score against hansards.a
  wordalign evaluate -n 1000 -i 5

  # Score an existing alignment file
  wordalign evaluate --alignments ibm1.a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *wordalign.EvalResult
			start := time.Now()

			if alignmentsPath != "" {
				alignments, err := readAlignments(alignmentsPath)
				if err != nil {
					return err
				}
				slog.Info("Scoring alignments", "path", alignmentsPath, "sentences", len(alignments))
				result, err = wordalign.EvaluateAlignments(cmd.Context(), tf.data, alignments)
				if err != nil {
					return err
				}
			} else {
				config, err := tf.trainConfig()
				if err != nil {
					return err
				}
				slog.Info("Evaluating", "data-folder", tf.data.Folder, "iterations", config.Iterations,
					"method", config.Method.String())
				result, err = wordalign.Evaluate(cmd.Context(), tf.data, config)
				if err != nil {
					return err
				}
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			printEvalResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	c.addTrainFlags(cmd, &tf)
	cmd.Flags().StringVar(&alignmentsPath, "alignments", "", "Score this alignment file instead of training")
	return cmd
}

func readAlignments(path string) ([]ibm1.Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read alignments: %w", err)
	}
	defer func() { _ = f.Close() }()
	alignments, err := ibm1.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read alignments %s: %w", path, err)
	}
	return alignments, nil
}

func printEvalResult(w io.Writer, r *wordalign.EvalResult) {
	fmt.Fprintf(w, "Sentences: %d\n", r.Sentences)
	fmt.Fprintf(w, "Precision = %.3f (%d/%d)\n", r.Precision, r.ProposedInPossible, r.Proposed)
	fmt.Fprintf(w, "Recall = %.3f (%d/%d)\n", r.Recall, r.ProposedInSure, r.Sure)
	fmt.Fprintf(w, "AER = %.3f\n", r.AER)
}
