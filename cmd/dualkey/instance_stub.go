//go:build !windows

package main

// acquireSingleInstance is a no-op off Windows: the named-mutex guard is a
// Win32-specific mechanism (§1 Out of scope), not meaningfully portable.
func acquireSingleInstance() bool {
	return true
}
