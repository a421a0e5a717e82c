package main

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"fixit/internal/config"
	"fixit/internal/driver"
)

const watchDebounce = 150 * time.Millisecond

// watchPaths lints paths once, then re-lints Python files as they change.
// A changed config file drops the config cache and re-lints everything.
// Runs until the command context is cancelled.
func watchPaths(cmd *cobra.Command, paths []string, configs *config.Cache, rf runFlags) error {
	ctx := cmd.Context()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, err := driver.Dirs(paths)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return err
		}
	}
	logger.WithField("dirs", len(dirs)).Info("watching for changes")

	lintAll := func() {
		files, err := driver.Discover(paths, configs)
		if err != nil {
			logger.WithError(err).Error("discover failed")
			return
		}
		lintBatch(cmd, files, rf)
	}
	lintAll()

	var (
		pending = make(map[string]bool)
		reload  bool
		timer   = time.NewTimer(time.Hour)
	)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("watch error")
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case config.IsConfigFile(ev.Name):
				reload = true
			case ev.Has(fsnotify.Create) && isDir(ev.Name):
				// новые каталоги тоже отслеживаем
				if err := watcher.Add(ev.Name); err != nil {
					logger.WithError(err).WithField("path", ev.Name).Warn("cannot watch directory")
				}
				continue
			case driver.IsPython(ev.Name) && ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename):
				pending[ev.Name] = true
			default:
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			if reload {
				logger.Info("config changed, re-linting everything")
				configs.Invalidate()
				reload = false
				clear(pending)
				lintAll()
				continue
			}
			files := make([]string, 0, len(pending))
			for p := range pending {
				if _, err := os.Stat(p); err == nil {
					files = append(files, filepath.Clean(p))
				}
			}
			clear(pending)
			sort.Strings(files)
			if len(files) > 0 {
				logger.WithField("files", len(files)).Info("changed")
				lintBatch(cmd, files, rf)
			}
		}
	}
}

func lintBatch(cmd *cobra.Command, files []string, rf runFlags) {
	results, err := collect(cmd.Context(), files, rf.opts, uiOff, "linting")
	if err != nil {
		return
	}
	if _, err := render(cmd, cmd.OutOrStdout(), results, rf.format, false); err != nil {
		logger.WithError(err).Error("render failed")
	}
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
