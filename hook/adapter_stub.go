//go:build !windows

package hook

import (
	"context"
	"fmt"
	"runtime"
)

// stubAdapter satisfies Adapter on non-Windows GOOS so the rest of the
// module builds and tests everywhere; the real low-level hooks are a
// Windows-only external collaborator (§1 Out of scope).
type stubAdapter struct {
	cfg Config
}

// New returns a stub Adapter. Run always fails fast with a clear message
// rather than pretending to register a hook that does not exist here.
func New(cfg Config) Adapter {
	return &stubAdapter{cfg: cfg}
}

func (a *stubAdapter) Run(ctx context.Context) error {
	return fmt.Errorf("hook.Run: low-level keyboard/mouse hooks are only available on windows, not %s", runtime.GOOS)
}
