//go:build windows

package hook

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/andrieee44/dualkey/inject"
	"github.com/andrieee44/dualkey/keydef"
	"github.com/andrieee44/dualkey/rule"
)

const (
	llkhfExtended = 0x01
	llkhfInjected = 0x10
	llkhfUp       = 0x80

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmLButtonDown = 0x0201
	wmRButtonDown = 0x0204
	wmMButtonDown = 0x0207
	wmXButtonDown = 0x020B

	inputKeyboard     = 1
	keyeventfExtended = 0x0001
	keyeventfKeyUp    = 0x0002
	keyeventfScancode = 0x0008
)

type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type point struct {
	X, Y int32
}

type msllhookstruct struct {
	Pt          point
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors Win32's INPUT union specialized to the keyboard member; the
// trailing padding keeps the struct's size correct on amd64, where the
// union's widest member (MOUSEINPUT) is larger than KEYBDINPUT.
type input struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// windowsAdapter is the real HookAdapter (§4.6), grounded on the
// other_examples clipQueue/vkvm hook files generalized to a two-hook
// (keyboard + mouse) pair and wired to engine.Engine.
type windowsAdapter struct {
	cfg             Config
	kbHook          windows.Handle
	msHook          windows.Handle
	kbCallback      uintptr
	msCallback      uintptr
	threadID        uint32
	lastGenuineTime uint32
}

// New returns the Windows HookAdapter.
func New(cfg Config) Adapter {
	return &windowsAdapter{cfg: cfg}
}

func (a *windowsAdapter) Run(ctx context.Context) error {
	var err error

	a.kbCallback = windows.NewCallback(a.keyboardProc)
	a.msCallback = windows.NewCallback(a.mouseProc)

	a.kbHook, err = setWindowsHookEx(whKeyboardLL, a.kbCallback)
	if err != nil {
		return fmt.Errorf("hook.Run: %w", err)
	}

	defer unhookWindowsHookEx(a.kbHook)

	a.msHook, err = setWindowsHookEx(whMouseLL, a.msCallback)
	if err != nil {
		return fmt.Errorf("hook.Run: %w", err)
	}

	defer unhookWindowsHookEx(a.msHook)

	a.threadID = windows.GetCurrentThreadId()

	go func() {
		<-ctx.Done()
		call(procPostThreadMessageW, uintptr(a.threadID), wmQuit, 0, 0)
	}()

	return a.pump()
}

func (a *windowsAdapter) pump() error {
	var (
		m  msg
		r1 uintptr
	)

	for {
		r1, _, _ = procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if r1 == 0 {
			return nil
		}

		if int32(r1) == -1 {
			return fmt.Errorf("hook.pump: GetMessage failed")
		}

		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (a *windowsAdapter) keyboardProc(code int, wParam, lParam uintptr) uintptr {
	var (
		kb *kbdllhookstruct
		ev rule.InputEvent
	)

	if code < 0 {
		return callNextHookEx(a.kbHook, code, wParam, lParam)
	}

	kb = (*kbdllhookstruct)(unsafe.Pointer(lParam))

	ev = rule.InputEvent{
		ScanCode:    uint16(kb.ScanCode),
		VirtualCode: uint16(kb.VkCode),
		Direction:   directionOf(wParam),
		TimeMS:      kb.Time,
		IsInjected:  kb.Flags&llkhfInjected != 0,
		ExtraInfo:   uint32(kb.DwExtraInfo),
	}

	a.checkRehook(ev)
	a.cfg.Log.Input(ev)

	result := a.cfg.Engine.Handle(ev)

	a.flush(result.Outputs)
	a.cfg.Log.Decision(result.Block)

	if result.Block {
		return 1
	}

	return callNextHookEx(a.kbHook, code, wParam, lParam)
}

// checkRehook implements the rehook_timeout workaround of §4.6: on a long
// gap between genuine (non-injected) inputs, unregister and re-register
// both hooks, in case the OS silently dropped a slow hook.
func (a *windowsAdapter) checkRehook(ev rule.InputEvent) {
	if ev.IsInjected {
		return
	}

	if a.cfg.RehookTimeout > 0 && a.lastGenuineTime != 0 && ev.TimeMS-a.lastGenuineTime > a.cfg.RehookTimeout {
		a.rehook()
	}

	a.lastGenuineTime = ev.TimeMS
}

func (a *windowsAdapter) rehook() {
	var (
		h   windows.Handle
		err error
	)

	unhookWindowsHookEx(a.kbHook)
	unhookWindowsHookEx(a.msHook)

	h, err = setWindowsHookEx(whKeyboardLL, a.kbCallback)
	if err == nil {
		a.kbHook = h
	}

	h, err = setWindowsHookEx(whMouseLL, a.msCallback)
	if err == nil {
		a.msHook = h
	}
}

func directionOf(wParam uintptr) rule.Direction {
	switch wParam {
	case wmKeyUp, wmSysKeyUp:
		return rule.Up
	default:
		return rule.Down
	}
}

func (a *windowsAdapter) mouseProc(code int, wParam, lParam uintptr) uintptr {
	var (
		ms *msllhookstruct
		ev rule.InputEvent
	)

	if code < 0 || !isMouseButtonDown(wParam) {
		return callNextHookEx(a.msHook, code, wParam, lParam)
	}

	ms = (*msllhookstruct)(unsafe.Pointer(lParam))

	ev = rule.InputEvent{
		VirtualCode: keydef.Placeholder.VirtualCode,
		Direction:   rule.Down,
		TimeMS:      ms.Time,
		IsInjected:  ms.Flags&llkhfInjected != 0,
		ExtraInfo:   uint32(ms.DwExtraInfo),
	}

	a.cfg.Log.Input(ev)

	result := a.cfg.Engine.Handle(ev)
	a.flush(result.Outputs)

	return callNextHookEx(a.msHook, code, wParam, lParam)
}

func isMouseButtonDown(wParam uintptr) bool {
	switch wParam {
	case wmLButtonDown, wmRButtonDown, wmMButtonDown, wmXButtonDown:
		return true
	default:
		return false
	}
}

func (a *windowsAdapter) flush(outs []rule.SyntheticEvent) {
	var se rule.SyntheticEvent

	for _, se = range outs {
		a.cfg.Log.Output(se)
		a.sendOne(se)
	}
}

func (a *windowsAdapter) sendOne(se rule.SyntheticEvent) {
	var (
		in    input
		flags uint32
		err   error
	)

	if se.Direction == rule.Up {
		flags |= keyeventfKeyUp
	}

	if se.Descriptor.IsExtended {
		flags |= keyeventfExtended
	}

	in.Type = inputKeyboard

	if a.cfg.ScanCodeMode {
		in.Ki = keybdInput{
			WScan:       se.Descriptor.ScanCode,
			DwFlags:     flags | keyeventfScancode,
			DwExtraInfo: uintptr(inject.Encode(se.RuleID)),
		}
	} else {
		in.Ki = keybdInput{
			WVk:         se.Descriptor.VirtualCode,
			WScan:       se.Descriptor.ScanCode,
			DwFlags:     flags,
			DwExtraInfo: uintptr(inject.Encode(se.RuleID)),
		}
	}

	_, err = call(procSendInput, 1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if err != nil {
		a.cfg.Log.Raw().Debug().Err(err).Str("key", se.Descriptor.Name).Msg("SendInput failed")
	}
}
