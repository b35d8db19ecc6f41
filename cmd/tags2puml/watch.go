package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tags2puml/internal/puml"
)

const watchDebounce = 250 * time.Millisecond

// watchAndGenerate runs one generation up front and then regenerates every
// time the tag file changes, until interrupted. The watch sits on the tag
// file's directory so that editors replacing the file via rename are seen.
func watchAndGenerate(cmd *cobra.Command, opts generateOptions, style puml.Style) error {
	if err := generateOnce(opts, style); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(opts.tagsPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	if !opts.quiet {
		fmt.Fprintf(os.Stderr, "watching %s (Ctrl-C to stop)\n", opts.tagsPath)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watchLoop(ctx, watcher, opts.tagsPath, func() {
			if err := generateOnce(opts, style); err != nil {
				fprintColored(os.Stderr, warnColor, opts.color, "warning: %v\n", err)
			}
		})
	})
	return g.Wait()
}

// watchLoop debounces change events for the target file and fires onChange
// once per burst.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, onChange func()) error {
	target = filepath.Clean(target)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	resetDebounce := func() {
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(watchDebounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
				continue
			}
			resetDebounce()
		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
