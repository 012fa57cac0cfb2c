package engine

import "github.com/andrieee44/dualkey/rule"

// handleUp implements §4.4.2: the per-rule FSM transitions on a remapped
// key's Up event. Block is always true.
func (e *Engine) handleUp(snap *snapshot, r *rule.Remap, ev rule.InputEvent) Result {
	var out []rule.SyntheticEvent

	switch r.State {
	case rule.HeldAlone:
		out = e.upFromHeldAlone(snap, r, ev)
	case rule.HeldWithOther:
		out = e.upFromHeldWithOther(snap, r)
	case rule.Tap:
		out = e.upFromTap(snap, r, ev)
	case rule.DoubleTap:
		out = e.upFromDoubleTap(snap, r, ev)
	case rule.Idle, rule.Tapped:
		// No Up row for Idle/Tapped: nothing to close.
	}

	if !r.TapLock && !r.DoubleTapLock {
		e.active.Remove(r)
	}

	return Result{Block: true, Outputs: out}
}

func withinTapTimeout(snap *snapshot, r *rule.Remap, ev rule.InputEvent) bool {
	return snap.opts.TapTimeout == 0 || ev.TimeMS-r.LastTransitionTime < snap.opts.TapTimeout
}

func (e *Engine) toggleTapLock(snap *snapshot, r *rule.Remap) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	r.TapLock = !r.TapLock

	if r.TapLock && r.WhenTapLock.IsKeySequence() {
		out = append(out, emitDown(r.WhenTapLock, r.ID)...)
	} else if !r.TapLock && r.WhenTapLock.IsKeySequence() {
		out = append(out, emitUp(r.WhenTapLock, r.ID)...)
	}

	if r.WhenTapLock.Layer != nil {
		snap.layers.ToggleLock(r.WhenTapLock.Layer)
	}

	return out
}

func (e *Engine) upFromHeldAlone(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if withinTapTimeout(snap, r, ev) {
		out = emitDown(r.WhenAlone, r.ID)
		out = append(out, emitUp(r.WhenAlone, r.ID)...)
		out = append(out, e.toggleTapLock(snap, r)...)
		r.LastTransitionTime = ev.TimeMS
		r.State = rule.Tapped
	} else {
		r.State = rule.Idle
	}

	if r.WithOther.Layer != nil {
		snap.layers.RestoreToLockedBaseline(r.WithOther.Layer)
	}

	return out
}

func (e *Engine) upFromHeldWithOther(snap *snapshot, r *rule.Remap) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	out = emitUp(r.WithOther, r.ID)
	if r.WithOther.Layer != nil {
		snap.layers.RestoreToLockedBaseline(r.WithOther.Layer)
	}

	r.State = rule.Idle

	return out
}

func (e *Engine) upFromTap(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if withinTapTimeout(snap, r, ev) {
		out = emitUp(r.WhenAlone, r.ID)
		out = append(out, e.toggleTapLock(snap, r)...)
		r.LastTransitionTime = ev.TimeMS
		r.State = rule.Tapped
	} else {
		out = emitUp(r.WhenAlone, r.ID)
		r.State = rule.Idle
	}

	if r.WhenAlone.Layer != nil {
		snap.layers.RestoreToLockedBaseline(r.WhenAlone.Layer)
	}

	return out
}

func (e *Engine) upFromDoubleTap(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	out = emitUp(doublePressChannel(r), r.ID)

	if withinTapTimeout(snap, r, ev) {
		r.DoubleTapLock = !r.DoubleTapLock
		if r.WhenDoubleTapLock.Layer != nil {
			snap.layers.ToggleLock(r.WhenDoubleTapLock.Layer)
		}
	}

	if r.WhenDoublePress.Layer != nil {
		snap.layers.RestoreToLockedBaseline(r.WhenDoublePress.Layer)
	}

	r.State = rule.Idle

	return out
}
