//go:build windows

package hook

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// user32 hook/input procs. golang.org/x/sys/windows does not wrap the
// hook family (SetWindowsHookEx/CallNextHookEx/UnhookWindowsHookEx) or
// SendInput, so they are declared here the same way the other_examples
// hook files do: NewLazySystemDLL + NewProc.
var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procSendInput           = user32.NewProc("SendInput")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit = 0x0012
)

// call is the generalized form of the teacher's ioctl.Any[T]: one typed
// helper wrapping a raw syscall, here over a *windows.LazyProc instead of a
// file descriptor. Returns an error built from the last Win32 error when
// the proc reports failure, exactly as ioctl.Any wraps a nonzero errno.
func call(proc *windows.LazyProc, args ...uintptr) (uintptr, error) {
	var (
		r1  uintptr
		err error
	)

	r1, _, err = proc.Call(args...)
	if r1 == 0 {
		return 0, fmt.Errorf("hook.call(%s): %w", proc.Name, err)
	}

	return r1, nil
}

func setWindowsHookEx(idHook int, callback uintptr) (windows.Handle, error) {
	var (
		r1  uintptr
		err error
	)

	r1, _, err = procSetWindowsHookExW.Call(uintptr(idHook), callback, 0, 0)
	if r1 == 0 {
		return 0, fmt.Errorf("hook.setWindowsHookEx(%d): %w", idHook, err)
	}

	return windows.Handle(r1), nil
}

func unhookWindowsHookEx(h windows.Handle) {
	procUnhookWindowsHookEx.Call(uintptr(h))
}

func callNextHookEx(h windows.Handle, code int, wParam, lParam uintptr) uintptr {
	r1, _, _ := procCallNextHookEx.Call(uintptr(h), uintptr(code), wParam, lParam)

	return r1
}
