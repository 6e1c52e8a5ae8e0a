package commands

import (
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/services/window"
	"github.com/spf13/cobra"
)

func NewWindowCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Print the current report window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := window.Current(rt.now(), rt.UTCOffsetHours)
			fmt.Fprintf(cmd.OutOrStdout(), "From: %s\nTo:   %s\n",
				w.Begin.Format("2006-01-02"), w.End.Format("2006-01-02"))
			return nil
		},
	}
}
