//go:build !windows

package main

// allocConsole/freeConsole are no-ops off Windows: stdout/stderr are
// already whatever terminal launched the process.
func allocConsole() {}

func freeConsole() {}
