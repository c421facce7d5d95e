package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var watchSave bool

func init() {
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "save every re-analysis to the cache")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <score.musicxml>",
	Short: "Re-analyzes a score whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		w, err := newScoreWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()

		run := func() {
			s, err := analyze(path, watchSave)
			if err != nil {
				slog.Warn("analysis failed", "path", path, "err", err)
				return
			}
			if err := render(cmd.OutOrStdout(), s); err != nil {
				slog.Warn("rendering summary", "err", err)
			}
		}
		run()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		debounced := debounce.New(cfg.Watch.Debounce)
		slog.Info("watching", "path", path)
		return watchScore(ctx, w, path, func() { debounced(run) })
	},
}

// newScoreWatcher watches the directory holding path, so a save that
// replaces the file is still seen.
func newScoreWatcher(path string) (*fsnotify.Watcher, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "watching %v", path)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watching %v", filepath.Dir(path))
	}
	return w, nil
}

// watchScore calls onChange for every write to path or file moved onto
// it. It returns nil when ctx is done.
func watchScore(ctx context.Context, w *fsnotify.Watcher, path string, onChange func()) error {
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			slog.Debug("score changed", "path", path, "op", ev.Op)
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "path", path, "err", err)
		}
	}
}
