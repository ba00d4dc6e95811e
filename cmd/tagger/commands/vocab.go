package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tagger/internal/ui/report"
	"go.trai.ch/tagger/internal/ui/style"
)

func (c *CLI) newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Fit and store the vocabularies of the training corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := options(cmd)
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")

			res, err := c.app.Vocab(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			state := "fitted"
			if res.Cached {
				state = "cached"
			}
			if res.Fingerprint != "" {
				_, _ = fmt.Fprintf(w, "%s vocabularies %s (artifact %s)\n", style.Check, state, res.Fingerprint)
			} else {
				_, _ = fmt.Fprintf(w, "%s vocabularies %s\n", style.Check, state)
			}
			_, _ = fmt.Fprintln(w, report.Sizes(res.Names, res.Sizes))
			return nil
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Refit the vocabularies even when a stored artifact matches")
	return cmd
}
