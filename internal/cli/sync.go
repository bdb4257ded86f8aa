package cli

import (
	"github.com/spf13/cobra"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
	NoPrune bool
	NoDrain bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the cache with the source tree",
		Long: `Read every card in the source tree and reconcile it with the cache:
new cards are created, changed cards replaced and unchanged cards confirmed.
After a clean pass, cards the source no longer holds are swept and trail rows
from earlier sessions are drained.

Example:
  hammer sync --source ../corpus --cache ./cache.db
  hammer sync --no-prune --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoPrune, "no-prune", false, "do not sweep cards missing from the source")
	cmd.Flags().BoolVar(&opts.NoDrain, "no-drain", false, "keep trail rows from earlier sessions")

	return cmd
}

func runSync(opts *SyncOptions, cmd *cobra.Command) error {
	return withSession(opts.RootOptions, nil, func(s *session) error {
		result, err := s.sync(cmd.Context(), passOptions{sweep: !opts.NoPrune, drain: !opts.NoDrain})
		if err != nil {
			return err
		}
		if err := opts.output(cmd).Success(result); err != nil {
			return err
		}
		return result.failures()
	})
}
