package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arnau/data-standards-authority/internal/watch"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	NoPrune bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync now and again whenever the source tree changes",
		Long: `Run a sync, then watch the source tree and run another sync once it has
been quiet for the configured debounce period. Each pass opens a new session,
so cards deleted from the source are swept on the next pass.

Example:
  hammer watch --source ../corpus --cache ./cache.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoPrune, "no-prune", false, "do not sweep cards missing from the source")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	if err := requireDisk(opts.RootOptions, "watch"); err != nil {
		return err
	}
	cfg := opts.Config

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			opts.Logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	w, err := watch.New(cfg.Source,
		watch.WithDebounce(cfg.Debounce),
		watch.WithIgnore(cfg.Ignore...),
		watch.WithLogger(opts.Logger),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to watch source", err)
	}

	pass := func(ctx context.Context) error {
		return withSession(opts.RootOptions, nil, func(s *session) error {
			result, err := s.sync(ctx, passOptions{sweep: !opts.NoPrune, drain: true})
			if err != nil {
				return err
			}
			return opts.output(cmd).Success(result)
		})
	}

	if err := pass(ctx); err != nil {
		w.Close()
		return err
	}
	if err := w.Run(ctx, pass); err != nil {
		return err
	}

	opts.Logger.Info("watch stopped")
	return nil
}
