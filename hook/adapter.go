// Package hook is the HookAdapter (§4.6): the external boundary that
// registers the OS low-level keyboard/mouse hooks, normalizes callbacks
// into rule.InputEvent, drives engine.Engine.Handle, and flushes its
// synthetic outputs back into the OS input stream via the injection tag of
// package inject.
//
// Only adapter_windows.go talks to real Win32 hooks (the spec is
// Windows-only); adapter_stub.go satisfies the same Adapter interface on
// every other GOOS so the rest of the module — and its tests — build and
// run anywhere.
package hook

import (
	"context"

	"github.com/andrieee44/dualkey/diag"
	"github.com/andrieee44/dualkey/engine"
)

// Adapter runs the hook event loop until ctx is canceled or registration
// fails.
type Adapter interface {
	Run(ctx context.Context) error
}

// Config bundles what an Adapter needs beyond the engine itself.
type Config struct {
	Engine        *engine.Engine
	Log           *diag.Logger
	RehookTimeout uint32
	ScanCodeMode  bool
}
