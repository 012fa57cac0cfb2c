// Command dualkey runs the dual-role key remapper: it loads config.txt from
// beside the executable, registers the low-level keyboard/mouse hooks, and
// blocks until signaled.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/andrieee44/dualkey/config"
	"github.com/andrieee44/dualkey/diag"
	"github.com/andrieee44/dualkey/engine"
	"github.com/andrieee44/dualkey/hook"
	"github.com/andrieee44/dualkey/rule"
)

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func toEngineOptions(o config.Options) engine.Options {
	return engine.Options{
		Debug:              o.Debug,
		HoldDelay:          o.HoldDelay,
		TapTimeout:         o.TapTimeout,
		DoublePressTimeout: o.DoublePressTimeout,
		RehookTimeout:      o.RehookTimeout,
		UnlockTimeout:      o.UnlockTimeout,
		ScanCode:           o.ScanCode,
		Priority:           o.Priority,
	}
}

func main() {
	var (
		loader *config.Loader
		layers *engine.LayerManager
		rs     *rule.RuleSet
		opts   config.Options
		log    *diag.Logger
		eng    *engine.Engine
		ctx    context.Context
		cancel context.CancelFunc
		err    error
		debug  bool
	)

	if !acquireSingleInstance() {
		fmt.Fprintln(os.Stderr, "dualkey: another instance is already running")
		os.Exit(1)
	}

	debug = os.Getenv("DEBUG") != ""

	if debug {
		allocConsole()
		defer freeConsole()
	}

	loader, err = config.NewLoader()
	exitIf(err)

	layers = engine.NewLayerManager()

	rs, opts, err = loader.Load(layers)
	exitIf(err)

	if debug {
		opts.Debug = true
	}

	log = diag.New(opts.Debug, os.Getenv("DUALKEY_LOG_JSON") != "")
	eng = engine.New(rs, layers, toEngineOptions(opts))

	ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if opts.WatchConfig || os.Getenv("DUALKEY_WATCH_CONFIG") != "" {
		startWatch(ctx, loader, eng, log)
	}

	adapter := hook.New(hook.Config{
		Engine:        eng,
		Log:           log,
		RehookTimeout: opts.RehookTimeout,
		ScanCodeMode:  opts.ScanCode,
	})

	err = adapter.Run(ctx)
	if err != nil {
		log.Raw().Error().Err(err).Msg("hook adapter exited")
		os.Exit(1)
	}
}

func startWatch(ctx context.Context, loader *config.Loader, eng *engine.Engine, log *diag.Logger) {
	var (
		reloads <-chan config.ReloadEvent
		err     error
	)

	reloads, err = loader.Watch(ctx)
	if err != nil {
		log.Raw().Warn().Err(err).Msg("config watch disabled")

		return
	}

	go func() {
		for revt := range reloads {
			if revt.Err != nil {
				log.Raw().Error().Err(revt.Err).Msg("config reload failed, keeping current configuration")

				continue
			}

			eng.Swap(revt.Rules, revt.Layers, toEngineOptions(revt.Options))
			log.Raw().Info().Msg("config reloaded")
		}
	}()
}
