package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tagger/internal/ui/output"
	"go.trai.ch/tagger/internal/ui/report"
	"go.trai.ch/tagger/internal/ui/style"
)

func (c *CLI) newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Segment the corpus, fit the vocabularies and train the tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.Epochs, _ = cmd.Flags().GetInt("epochs")
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				opts.Seed = &seed
			}

			res, err := c.app.Train(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			out := output.New(w)
			summary := fmt.Sprintf("%s trained %d instances for %d epochs (%d batches)",
				style.Check, res.Instances, res.Epochs, res.Batches)
			if res.Stopped {
				summary += ", stopped early"
			}
			_, _ = fmt.Fprintln(w, out.String(summary).Bold())
			if len(res.Scores) > 0 {
				_, _ = fmt.Fprintln(w, report.Scores(res.Scores))
			}
			_, _ = fmt.Fprintln(w, report.Schedule(res.States))
			return nil
		},
	}
	cmd.Flags().Int("epochs", 0, "Override the number of training epochs")
	cmd.Flags().Int64("seed", 0, "Override the random seed")
	cmd.Flags().BoolP("no-cache", "n", false, "Refit the vocabularies even when a stored artifact matches")
	return cmd
}
