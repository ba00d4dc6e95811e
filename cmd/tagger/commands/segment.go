package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// histogramWidth is the length of the longest histogram bar.
const histogramWidth = 40

func (c *CLI) newSegmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segment",
		Short: "Segment the training corpus and summarize the instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.app.Segment(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "instances: %d\ntokens: %d\nlength: min %d, mean %.2f, max %d\n",
				stats.Instances, stats.Tokens, stats.MinLen, stats.MeanLen(), stats.MaxLen)

			peak := 0
			for _, n := range stats.Lengths {
				peak = max(peak, n)
			}
			for _, l := range stats.SortedLengths() {
				n := stats.Lengths[l]
				bar := max(1, n*histogramWidth/max(peak, 1))
				_, _ = fmt.Fprintf(w, "%5d | %s %d\n", l, strings.Repeat("#", bar), n)
			}
			return nil
		},
	}
}
