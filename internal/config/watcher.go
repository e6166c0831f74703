// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// defaultWatchDebounce coalesces editor write bursts into a single reload.
const defaultWatchDebounce = 250 * time.Millisecond

// Watcher reloads the configuration when the config file changes on disk.
type Watcher struct {
	path     string
	onChange func(*Config)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	pending  time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher creates a watcher for the given config file path. onChange is
// called with the freshly loaded config after each successful reload.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     path,
		onChange: onChange,
		watcher:  fsw,
		debounce: defaultWatchDebounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for config file changes.
// Watches the containing directory: editors commonly replace the file via
// rename, which drops a watch placed on the file itself.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// processEvents marks the config as dirty on relevant filesystem events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}

// processPending reloads the config once changes have settled.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			dirty := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if dirty {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if !dirty {
				continue
			}

			cfg, err := LoadFromPath(w.path)
			if err != nil {
				log.Printf("config: reload skipped: %v", err)
				continue
			}
			SetGlobal(cfg)
			if w.onChange != nil {
				w.onChange(cfg)
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
