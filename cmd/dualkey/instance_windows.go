//go:build windows

package main

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

// mutexName matches the original tool's single-instance guard: a named
// cross-process mutex (§1, §5 "Single-instance is enforced externally by a
// named mutex").
const mutexName = "Global\\dualkey-single-instance"

var instanceMutex windows.Handle

// acquireSingleInstance creates (or opens) the named mutex and reports
// whether this process is the first to hold it.
func acquireSingleInstance() bool {
	var (
		namePtr *uint16
		h       windows.Handle
		err     error
	)

	namePtr, err = syscall.UTF16PtrFromString(mutexName)
	if err != nil {
		return true
	}

	h, err = windows.CreateMutex(nil, false, namePtr)
	if h == 0 {
		return false
	}

	instanceMutex = h

	return !errors.Is(err, windows.ERROR_ALREADY_EXISTS)
}
