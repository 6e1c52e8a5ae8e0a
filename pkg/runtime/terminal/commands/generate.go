package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DLICWCPA/monday-report-app/pkg/render/xlsx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	windowFlags
	output   string
	runtime  *Runtime
	renderer *xlsx.Renderer
}

func NewGenerateCmd(rt *Runtime, renderer *xlsx.Renderer) *cobra.Command {
	gc := &GenerateCmd{runtime: rt, renderer: renderer}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the weekly report workbook",
		Args:  cobra.NoArgs,
		RunE:  gc.run,
	}

	gc.register(cmd)
	cmd.Flags().StringVarP(&gc.output, "output", "o", "", "Output file or directory (defaults to the report file name in the working directory)")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	w, err := gc.window(gc.runtime)
	if err != nil {
		return err
	}

	ctx, cancel := gc.runtime.context(cmd)
	defer cancel()

	report, err := gc.runtime.Service.Run(ctx, gc.profile, w)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	path := gc.output
	if path == "" {
		path = xlsx.FileName(w)
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, xlsx.FileName(w))
	}

	var buf bytes.Buffer
	if err := gc.renderer.Write(report, &buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			zerolog.Ctx(ctx).Warn().Err(rmErr).Str("path", path).Msg("failed to remove partial report")
		}
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Str("run_id", report.RunID).Msg("report written")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
