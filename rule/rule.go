// Package rule holds the spec's data model: key sequences, layers, remap
// rules, the compiled RuleSet, the active-remap set, and the normalized
// input/output event shapes the StateEngine consumes and produces.
package rule

import "github.com/andrieee44/dualkey/keydef"

// Direction is a key event's direction.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}

	return "up"
}

// KeySequence is a non-empty, ordered chord: Down emission traverses it in
// order, Up emission traverses it in reverse.
type KeySequence []keydef.Descriptor

// Layer is a named gate/output target. The invariant Locked ⇒ Active is
// maintained by every mutator in package engine; Layer itself is inert data.
type Layer struct {
	Name   string
	Active bool
	Locked bool
}

// Channel is one of a Remap's five output channels: a tagged variant that is
// either a KeySequence, a Layer reference, or empty. Exactly one of Keys,
// Layer should be set; both nil/empty means the channel is unused.
type Channel struct {
	Keys  KeySequence
	Layer *Layer
}

// IsEmpty reports whether the channel has no key sequence and no layer.
func (c Channel) IsEmpty() bool {
	return len(c.Keys) == 0 && c.Layer == nil
}

// IsKeySequence reports whether the channel carries a non-empty key
// sequence (as opposed to a layer reference or nothing).
func (c Channel) IsKeySequence() bool {
	return len(c.Keys) > 0
}

// AllModifier reports whether every key in the channel's sequence is a
// modifier. An empty or layer-only channel is vacuously true, matching the
// cached *_is_modifier semantics of §3 (only computed for key-sequence
// channels, consulted only when IsKeySequence is also true).
func (c Channel) AllModifier() bool {
	var d keydef.Descriptor

	for _, d = range c.Keys {
		if !d.IsModifier {
			return false
		}
	}

	return true
}

// State is the per-rule FSM state (§3 RemapState).
type State int

const (
	Idle State = iota
	HeldAlone
	HeldWithOther
	Tap
	Tapped
	DoubleTap
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case HeldAlone:
		return "held_alone"
	case HeldWithOther:
		return "held_with_other"
	case Tap:
		return "tap"
	case Tapped:
		return "tapped"
	case DoubleTap:
		return "double_tap"
	default:
		return "unknown"
	}
}

// Remap is one compiled rule (§3).
type Remap struct {
	ID        uint8
	From      keydef.Descriptor
	GateLayer *Layer

	WhenAlone         Channel
	WithOther         Channel
	WhenDoublePress   Channel
	WhenTapLock       Channel
	WhenDoubleTapLock Channel

	WhenAloneIsModifier       bool
	WhenDoublePressIsModifier bool

	State              State
	LastTransitionTime uint32
	TapLock            bool
	DoubleTapLock      bool
}

// InputEvent is the normalized event HookAdapter hands to the StateEngine.
type InputEvent struct {
	ScanCode    uint16
	VirtualCode uint16
	Direction   Direction
	TimeMS      uint32
	IsInjected  bool
	ExtraInfo   uint32
}

// SyntheticEvent is one output of a StateEngine transition, ready for
// InjectionTagger to stamp and HookAdapter to send.
type SyntheticEvent struct {
	Descriptor keydef.Descriptor
	Direction  Direction
	RuleID     uint8
}
