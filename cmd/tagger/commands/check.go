package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/tagger/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := c.app.Check(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s settings are valid: target %s, tasks %s\n",
				style.Check, settings.TargetTask(), strings.Join(settings.TaskNames(), ", "))
			return nil
		},
	}
}
