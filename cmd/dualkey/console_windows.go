//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// allocConsole mirrors the original tool's create_console: attach a fresh
// console window and redirect stdout/stderr to it, so debug logging has
// somewhere visible to go when the process has none (it is normally
// started detached, with no console of its own).
func allocConsole() {
	var err error

	err = windows.AllocConsole()
	if err != nil {
		return
	}

	conout, err := os.OpenFile("CONOUT$", os.O_RDWR, 0)
	if err != nil {
		return
	}

	os.Stdout = conout
	os.Stderr = conout
}

func freeConsole() {
	windows.FreeConsole()
}
