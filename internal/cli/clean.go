package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnau/data-standards-authority/internal/store"
)

// CleanResult lists the files removed.
type CleanResult struct {
	Removed []string `json:"removed"`
}

// WriteText renders the result for humans.
func (r *CleanResult) WriteText(w io.Writer) error {
	for _, path := range r.Removed {
		fmt.Fprintf(w, "removed %s\n", path)
	}
	_, err := fmt.Fprintln(w, "cleaning completed")
	return err
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the artefacts created by sync",
		Long: `Remove the disk cache (with its WAL and shared-memory files) and the
configured metrics and report files. Missing files are ignored.

Example:
  hammer clean --cache ./cache.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(rootOpts, cmd)
		},
	}

	return cmd
}

func runClean(opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.Config

	var paths []string
	if store.StrategyFor(cfg.Cache) == store.Disk {
		paths = append(paths, cfg.Cache, cfg.Cache+"-wal", cfg.Cache+"-shm")
	}
	for _, path := range []string{cfg.MetricsFile, cfg.ReportFile} {
		if path != "" {
			paths = append(paths, path)
		}
	}

	result := &CleanResult{Removed: []string{}}
	for _, path := range paths {
		err := os.Remove(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			opts.Logger.Debug("nothing to remove", "path", path)
		case err != nil:
			return WrapExitError(ExitCommandError, "failed to clean", err)
		default:
			result.Removed = append(result.Removed, path)
		}
	}

	return opts.output(cmd).Success(result)
}
