package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andrieee44/dualkey/engine"
	"github.com/andrieee44/dualkey/rule"
	"github.com/andrieee44/dualkey/xdg"
)

// reloadDebounce coalesces the burst of fsnotify events a single save
// produces, matching witnessd's loader debounce window.
const reloadDebounce = 100 * time.Millisecond

// Loader resolves the config file's location and loads/reloads it. The
// primary location is always beside the running executable, matching the
// original tool's put_config_path; the XDG-style user config directory
// (adapted in package xdg) is a secondary fallback for a config file the
// user wants to share across installs.
type Loader struct {
	primaryPath string
}

// NewLoader resolves the primary config path from the running executable's
// own directory.
func NewLoader() (*Loader, error) {
	var (
		exe string
		err error
	)

	exe, err = os.Executable()
	if err != nil {
		return nil, fmt.Errorf("config.NewLoader: %w", err)
	}

	return &Loader{primaryPath: filepath.Join(filepath.Dir(exe), "config.txt")}, nil
}

// Path returns the primary config file path.
func (l *Loader) Path() string {
	return l.primaryPath
}

func (l *Loader) open() (io.ReadCloser, error) {
	var (
		f   *os.File
		err error
	)

	f, err = os.Open(l.primaryPath)
	if err == nil {
		return f, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	f, err = xdg.ConfigFile(filepath.Join("dualkey", "config.txt"))
	if err != nil {
		return nil, fmt.Errorf("config.Loader.open: no config beside executable and no fallback: %w", err)
	}

	return f, nil
}

// Load parses and builds the current config file into a fresh rule set.
// The caller supplies the LayerManager so that gate/channel layer names
// resolve into it (a reload typically passes a brand-new LayerManager so
// stale layers never leak across reloads).
func (l *Loader) Load(layers *engine.LayerManager) (*rule.RuleSet, Options, error) {
	var (
		f   io.ReadCloser
		doc *Doc
		rs  *rule.RuleSet
		err error
	)

	f, err = l.open()
	if err != nil {
		return nil, Options{}, fmt.Errorf("config.Loader.Load: %w", err)
	}

	defer f.Close()

	doc, err = Parse(f)
	if err != nil {
		return nil, Options{}, err
	}

	rs, err = Build(doc, layers)
	if err != nil {
		return nil, Options{}, err
	}

	return rs, doc.Options, nil
}

// ReloadEvent is one result of a hot-reload cycle: either a freshly built
// rule set/layer manager/options, or a parse/build error that leaves the
// engine's current configuration untouched.
type ReloadEvent struct {
	Rules   *rule.RuleSet
	Layers  *engine.LayerManager
	Options Options
	Err     error
}

// Watch starts an fsnotify watch on the config file's directory
// ((expansion) §6.3) and emits a ReloadEvent on every debounced change,
// until ctx is canceled. Only enabled when the caller's Options.WatchConfig
// (or the DUALKEY_WATCH_CONFIG env var) is set; the original tool only
// loads once, and callers that never call Watch get that exact behavior.
func (l *Loader) Watch(ctx context.Context) (<-chan ReloadEvent, error) {
	var (
		watcher *fsnotify.Watcher
		out     chan ReloadEvent
		err     error
	)

	watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config.Loader.Watch: %w", err)
	}

	err = watcher.Add(filepath.Dir(l.primaryPath))
	if err != nil {
		watcher.Close()

		return nil, fmt.Errorf("config.Loader.Watch: %w", err)
	}

	out = make(chan ReloadEvent)

	go l.watchLoop(ctx, watcher, out)

	return out, nil
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- ReloadEvent) {
	var timer *time.Timer

	defer watcher.Close()
	defer close(out)

	reload := func() {
		var (
			layers *engine.LayerManager
			rs     *rule.RuleSet
			opts   Options
			err    error
		)

		layers = engine.NewLayerManager()
		rs, opts, err = l.Load(layers)
		out <- ReloadEvent{Rules: rs, Layers: layers, Options: opts, Err: err}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(ev.Name) != filepath.Clean(l.primaryPath) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(reloadDebounce, reload)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}

			out <- ReloadEvent{Err: werr}
		}
	}
}
