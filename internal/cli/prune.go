package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/reconcile"
	"github.com/arnau/data-standards-authority/internal/store"
)

// PruneOptions holds flags for the prune command.
type PruneOptions struct {
	*RootOptions
	All bool
}

// PruneResult lists the swept cards.
type PruneResult struct {
	Session string            `json:"session"`
	Swept   []reconcile.Swept `json:"swept"`
}

// WriteText renders the result for humans.
func (r *PruneResult) WriteText(w io.Writer) error {
	for _, sw := range r.Swept {
		fmt.Fprintf(w, "swept %s %s\n", sw.Kind, sw.ID)
	}
	_, err := fmt.Fprintf(w, "%d cards swept from session %s\n", len(r.Swept), r.Session)
	return err
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PruneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Sweep cards the last sync did not confirm",
		Long: `Delete the cards whose fingerprint was not recorded in the trail by the
most recent session. Only standards are swept unless --all is given.

Run it after "hammer sync --no-prune". A session whose sync had parse
failures is incomplete and is never pruned.

Example:
  hammer prune --cache ./cache.db
  hammer prune --cache ./cache.db --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "sweep every kind, not only standards")

	return cmd
}

func runPrune(opts *PruneOptions, cmd *cobra.Command) error {
	if err := requireDisk(opts.RootOptions, "prune"); err != nil {
		return err
	}

	return withSession(opts.RootOptions, []store.Option{store.WithLatestSession()}, func(s *session) error {
		ctx := cmd.Context()
		result := &PruneResult{Session: s.store.Session()}

		complete, err := s.reconciler.Complete(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read session", err)
		}
		if !complete {
			return NewExitError(ExitFailure, fmt.Sprintf(
				"session %s is incomplete: run a sync without parse failures before pruning", result.Session))
		}

		if opts.All {
			swept, err := s.reconciler.PruneAll(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to prune cache", err)
			}
			result.Swept = swept
		} else {
			ids, err := s.reconciler.Prune(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to prune cache", err)
			}
			result.Swept = make([]reconcile.Swept, 0, len(ids))
			for _, id := range ids {
				result.Swept = append(result.Swept, reconcile.Swept{Kind: card.KindStandard, ID: id})
			}
		}

		return opts.output(cmd).Success(result)
	})
}
