package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	runtime *Runtime
}

func NewProfilesCmd(rt *Runtime) *cobra.Command {
	pc := &ProfilesCmd{runtime: rt}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured board profiles",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	profiles, err := pc.runtime.Service.Profiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configured profiles:\n%s\n", strings.Join(profiles, "\n"))
	return nil
}
