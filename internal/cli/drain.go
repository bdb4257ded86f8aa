package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnau/data-standards-authority/internal/store"
)

// DrainResult reports how many trail rows were removed.
type DrainResult struct {
	Session string `json:"session"`
	Drained int64  `json:"drained"`
}

// WriteText renders the result for humans.
func (r *DrainResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "drained %d trail rows older than session %s\n", r.Drained, r.Session)
	return err
}

// NewDrainCommand creates the drain command.
func NewDrainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Drop trail rows from every session but the latest",
		Long: `Delete the session trail rows recorded by any session other than the most
recent one. Draining never touches cards.

Example:
  hammer drain --cache ./cache.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrain(rootOpts, cmd)
		},
	}

	return cmd
}

func runDrain(opts *RootOptions, cmd *cobra.Command) error {
	if err := requireDisk(opts, "drain"); err != nil {
		return err
	}

	return withSession(opts, []store.Option{store.WithLatestSession()}, func(s *session) error {
		n, err := s.reconciler.DrainTrail(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to drain trail", err)
		}
		return opts.output(cmd).Success(&DrainResult{Session: s.store.Session(), Drained: n})
	})
}
