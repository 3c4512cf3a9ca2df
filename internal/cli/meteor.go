package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/happyhackingspace/wordalign/internal/meteor"
	"github.com/spf13/cobra"
)

func (c *CLI) newMeteorCommand() *cobra.Command {
	var nbestPath, refsPath, java, maxHeap string
	var size int
	jar := c.env.meteorJar

	cmd := &cobra.Command{
		Use:   "meteor",
		Short: "Score an n-best list with the external METEOR jar",
		Long: `Expand an n-best list ("id ||| hypothesis ||| features", a fixed number of
hypotheses per sentence) against its references and run METEOR on the
result. Requires a Java runtime.`,
		Example: `  wordalign meteor --nbest data/dev.100best --refs data/dev.ref
  wordalign meteor --nbest dev.10best --refs dev.ref --size 10 --jar meteor-1.5.jar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			nbest, err := os.Open(nbestPath)
			if err != nil {
				return fmt.Errorf("read n-best list: %w", err)
			}
			defer func() { _ = nbest.Close() }()
			refs, err := os.Open(refsPath)
			if err != nil {
				return fmt.Errorf("read references: %w", err)
			}
			defer func() { _ = refs.Close() }()

			hyps, expanded, err := meteor.ExpandNBest(nbest, refs, size)
			if err != nil {
				return err
			}
			slog.Info("Running METEOR", "jar", jar, "hypotheses", len(hyps))

			runner := meteor.NewRunner(jar)
			runner.Java = java
			runner.MaxHeap = maxHeap
			out, err := runner.Score(cmd.Context(), hyps, expanded)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&nbestPath, "nbest", "data/dev.100best", "Path to the n-best list")
	cmd.Flags().StringVar(&refsPath, "refs", "data/dev.ref", "Path to the references, one per sentence")
	cmd.Flags().IntVar(&size, "size", meteor.DefaultNBestSize, "Hypotheses per sentence")
	cmd.Flags().StringVar(&jar, "jar", jar, "Path to the METEOR jar")
	cmd.Flags().StringVar(&java, "java", "java", "Java executable")
	cmd.Flags().StringVar(&maxHeap, "max-heap", "1G", "JVM maximum heap size")
	return cmd
}
