package engine

import (
	"sync/atomic"

	"github.com/andrieee44/dualkey/inject"
	"github.com/andrieee44/dualkey/rule"
)

// Result is what Engine.Handle returns: the block/pass decision and the
// ordered synthetic events to flush before that decision is reported to the
// OS hook chain (§4.4 entry point, §5 ordering guarantees).
type Result struct {
	Block   bool
	Outputs []rule.SyntheticEvent
}

type snapshot struct {
	rules  *rule.RuleSet
	layers *LayerManager
	opts   Options
}

// Engine is the single process-wide StateEngine value (§9 "process-wide
// mutable state confined to a single Engine value"). It is not safe for
// concurrent use by design: every call must come from the hook thread,
// except Swap, which an independent config-reload goroutine may call — the
// atomic pointer swap is the only concurrency primitive the engine needs.
type Engine struct {
	cur           atomic.Pointer[snapshot]
	active        *rule.ActiveSet
	lastInputTime uint32
	started       bool
}

// New builds an Engine over the given compiled rule set, layers, and
// options.
func New(rules *rule.RuleSet, layers *LayerManager, opts Options) *Engine {
	var e Engine

	e.active = rule.NewActiveSet()
	e.cur.Store(&snapshot{rules: rules, layers: layers, opts: opts})

	return &e
}

// Swap installs a new rule set/layer set/options, first running UnlockAll
// against the outgoing configuration so a mid-edit reload can never leave a
// layer or a lock stuck (§6.3 expansion: config hot-reload).
func (e *Engine) Swap(rules *rule.RuleSet, layers *LayerManager, opts Options) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	out = e.UnlockAll()
	e.cur.Store(&snapshot{rules: rules, layers: layers, opts: opts})

	return out
}

// Handle is the StateEngine entry point (§4.4): the idle-unlock sweep, then
// dispatch by injection origin, then by rule lookup.
func (e *Engine) Handle(ev rule.InputEvent) Result {
	var (
		snap   *snapshot
		out    []rule.SyntheticEvent
		origin inject.Origin
		r      *rule.Remap
		ok     bool
		res    Result
	)

	snap = e.cur.Load()

	if e.started && snap.opts.UnlockTimeout > 0 && ev.TimeMS-e.lastInputTime > snap.opts.UnlockTimeout {
		out = append(out, e.unlockAll(snap)...)
	}

	e.lastInputTime = ev.TimeMS
	e.started = true

	origin = inject.Classify(ev.IsInjected, ev.ExtraInfo)
	if origin != inject.OriginGenuine {
		return Result{Block: false, Outputs: out}
	}

	r, ok = snap.rules.Lookup(ev.VirtualCode)
	if !ok {
		res = e.handleOther(snap, ev)
		res.Outputs = append(out, res.Outputs...)

		return res
	}

	if ev.Direction == rule.Down {
		res = e.handleDown(snap, r, ev)
	} else {
		res = e.handleUp(snap, r, ev)
	}

	res.Outputs = append(out, res.Outputs...)

	return res
}

// UnlockAll implements §4.4.5: for every rule in the active set, close its
// open channels, clear its locks and return it to Idle; then clear every
// layer. A Tapped rule that holds no lock is no longer in the active set
// and keeps its Tapped state. Idempotent (§8): a second
// call finds an empty ActiveSet and already-cleared layers, and emits
// nothing.
func (e *Engine) UnlockAll() []rule.SyntheticEvent {
	return e.unlockAll(e.cur.Load())
}

func (e *Engine) unlockAll(snap *snapshot) []rule.SyntheticEvent {
	var (
		out []rule.SyntheticEvent
		r   *rule.Remap
		l   *rule.Layer
		ch  rule.Channel
	)

	for _, r = range e.active.Items() {
		switch r.State {
		case rule.HeldWithOther:
			out = append(out, emitUp(r.WithOther, r.ID)...)
		case rule.Tap:
			out = append(out, emitUp(r.WhenAlone, r.ID)...)
		case rule.DoubleTap:
			ch = r.WhenDoublePress
			if ch.IsEmpty() {
				ch = r.WhenAlone
			}

			out = append(out, emitUp(ch, r.ID)...)
		case rule.HeldAlone, rule.Idle, rule.Tapped:
			// HeldAlone emits nothing on unlock (§8 scenario 6); Idle/
			// Tapped hold no open channel to close.
		}

		if r.TapLock && r.WhenTapLock.IsKeySequence() {
			out = append(out, emitUp(r.WhenTapLock, r.ID)...)
		}

		if r.DoubleTapLock && r.WhenDoubleTapLock.IsKeySequence() {
			out = append(out, emitUp(r.WhenDoubleTapLock, r.ID)...)
		}

		r.TapLock = false
		r.DoubleTapLock = false
		r.State = rule.Idle
	}

	e.active.Clear()

	for _, l = range snap.layers.All() {
		l.Active = false
		l.Locked = false
	}

	return out
}

func emitDown(ch rule.Channel, ruleID uint8) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if len(ch.Keys) == 0 {
		return nil
	}

	out = make([]rule.SyntheticEvent, 0, len(ch.Keys))
	for _, k := range ch.Keys {
		out = append(out, rule.SyntheticEvent{Descriptor: k, Direction: rule.Down, RuleID: ruleID})
	}

	return out
}

func emitUp(ch rule.Channel, ruleID uint8) []rule.SyntheticEvent {
	var (
		out []rule.SyntheticEvent
		i   int
	)

	if len(ch.Keys) == 0 {
		return nil
	}

	out = make([]rule.SyntheticEvent, 0, len(ch.Keys))
	for i = len(ch.Keys) - 1; i >= 0; i-- {
		out = append(out, rule.SyntheticEvent{Descriptor: ch.Keys[i], Direction: rule.Up, RuleID: ruleID})
	}

	return out
}
