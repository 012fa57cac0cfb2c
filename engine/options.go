package engine

// Options carries the global config settings that condition FSM timing and
// output shape (§6). All durations are in milliseconds, compared directly
// against InputEvent.TimeMS; zero disables the corresponding check.
type Options struct {
	Debug               bool
	HoldDelay           uint32
	TapTimeout          uint32
	DoublePressTimeout  uint32
	RehookTimeout       uint32
	UnlockTimeout       uint32
	ScanCode            bool
	Priority            bool // advisory only; see §9 open question 2
}
