// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - Live re-validation of a board file.
//
// Watches the file's parent directory rather than the file itself: most
// editors save by writing a temp file and renaming over the original, which
// drops a direct file watch. Changes are debounced so a burst of events from
// one save triggers a single re-validation.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/boardforge/internal/config"
)

const watchDebounce = 300 * time.Millisecond

// HandleWatch handles the "watch" command.
func HandleWatch(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if args.File == "" {
		return &UsageError{Command: "watch", Reason: "a board file is required"}
	}

	path, err := filepath.Abs(args.File)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch %s: %w", args.File, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bw, err := newBoardWatcher(path, watchDebounce, func() {
		watchCycle(ctx, cfg, args, path)
	})
	if err != nil {
		return err
	}
	defer bw.Close()

	if err := bw.Watch(ctx); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println(DimStyle.Render("watching " + path + "  (ctrl-c to stop)"))
	}

	// Initial pass so the first result doesn't wait for a save.
	watchCycle(ctx, cfg, args, path)

	<-ctx.Done()
	return nil
}

// watchCycle runs one validate (and optional export) pass. Failures are
// reported and the watch keeps running.
func watchCycle(ctx context.Context, cfg *config.Config, args Args, path string) {
	fmt.Println(RenderSeparator(40))

	b, err := loadBoardFile(path)
	if err != nil {
		fmt.Printf("%s %v\n", RenderStatus("error"), err)
		return
	}

	if args.Options["export"] == "true" {
		paths, err := exportBoard(ctx, cfg, args, b)
		if err != nil {
			fmt.Printf("%s %v\n", RenderStatus("error"), err)
			return
		}
		for _, p := range paths {
			fmt.Printf("%s %s\n", RenderStatus("ok"), p)
		}
		return
	}

	validateArgs := args
	validateArgs.File = path
	if err := HandleValidate(validateArgs); err != nil {
		log.Debug().Err(err).Msg("watch validation failed")
	}
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// boardWatcher debounces fsnotify events for a single file and invokes a
// callback once per settled change.
type boardWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()

	mu      sync.Mutex
	pending time.Time
}

// newBoardWatcher creates a watcher for one board file.
func newBoardWatcher(path string, debounce time.Duration, onChange func()) (*boardWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &boardWatcher{
		path:     path,
		watcher:  watcher,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Watch starts watching for file changes until ctx is cancelled.
func (bw *boardWatcher) Watch(ctx context.Context) error {
	if err := bw.watcher.Add(filepath.Dir(bw.path)); err != nil {
		return err
	}

	go bw.processEvents(ctx)
	go bw.processPending(ctx)
	return nil
}

// Close stops watching and releases resources.
func (bw *boardWatcher) Close() error {
	return bw.watcher.Close()
}

func (bw *boardWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != bw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				bw.mu.Lock()
				bw.pending = time.Now()
				bw.mu.Unlock()
			}

		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watch error")
		}
	}
}

// processPending fires the callback once a pending change has been quiet for
// the debounce window.
func (bw *boardWatcher) processPending(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			bw.mu.Lock()
			fire := !bw.pending.IsZero() && time.Since(bw.pending) >= bw.debounce
			if fire {
				bw.pending = time.Time{}
			}
			bw.mu.Unlock()

			if fire {
				bw.onChange()
			}
		}
	}
}
