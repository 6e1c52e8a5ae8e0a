package commands

import (
	"context"
	"time"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
	"github.com/DLICWCPA/monday-report-app/pkg/services/pipeline"
	"github.com/DLICWCPA/monday-report-app/pkg/services/window"
	"github.com/spf13/cobra"
)

// Runtime is filled in by the root command before any subcommand runs.
type Runtime struct {
	Service        pipeline.Service
	UTCOffsetHours int
	Timeout        time.Duration
	Now            func() time.Time
}

func (rt *Runtime) now() time.Time {
	if rt.Now == nil {
		return time.Now()
	}
	return rt.Now()
}

func (rt *Runtime) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if rt.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rt.Timeout)
}

// windowFlags are shared by the commands that run a report.
type windowFlags struct {
	from    string
	to      string
	profile string
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "First day of the report window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Day after the report window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Board profile to read (defaults to the configured one)")
}

func (f *windowFlags) window(rt *Runtime) (domain.ReportWindow, error) {
	return window.Parse(f.from, f.to, rt.now(), rt.UTCOffsetHours)
}
