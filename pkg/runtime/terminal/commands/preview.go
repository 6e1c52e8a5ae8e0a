package commands

import (
	"fmt"

	"github.com/DLICWCPA/monday-report-app/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type PreviewCmd struct {
	windowFlags
	runtime *Runtime
}

func NewPreviewCmd(rt *Runtime) *cobra.Command {
	pc := &PreviewCmd{runtime: rt}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the report sections as text tables",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}

	pc.register(cmd)
	return cmd
}

func (pc *PreviewCmd) run(cmd *cobra.Command, _ []string) error {
	w, err := pc.window(pc.runtime)
	if err != nil {
		return err
	}

	ctx, cancel := pc.runtime.context(cmd)
	defer cancel()

	report, err := pc.runtime.Service.Run(ctx, pc.profile, w)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return export.NewReporter(cmd.OutOrStdout()).Handle(report)
}
