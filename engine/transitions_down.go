package engine

import "github.com/andrieee44/dualkey/rule"

// handleDown implements §4.4.1: the per-rule FSM transitions on a
// remapped key's Down event. Block is always true (the physical key is
// always swallowed).
func (e *Engine) handleDown(snap *snapshot, r *rule.Remap, ev rule.InputEvent) Result {
	var out []rule.SyntheticEvent

	switch r.State {
	case rule.Idle:
		out = e.downFromIdle(snap, r, ev)
	case rule.HeldWithOther:
		out = emitDown(r.WithOther, r.ID)
	case rule.Tap:
		out = emitDown(r.WhenAlone, r.ID)
	case rule.Tapped:
		out = e.downFromTapped(snap, r, ev)
	case rule.DoubleTap:
		out = emitDown(doublePressChannel(r), r.ID)
	case rule.HeldAlone:
		// No Down row for HeldAlone: auto-repeat Downs while the key is
		// held alone are swallowed without output.
	}

	return Result{Block: true, Outputs: out}
}

func (e *Engine) downFromIdle(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if !r.WithOther.IsEmpty() {
		r.LastTransitionTime = ev.TimeMS
		if r.WithOther.Layer != nil {
			snap.layers.SetActive(r.WithOther.Layer, true)
		}

		r.State = rule.HeldAlone
		e.active.Append(r)

		return nil
	}

	out = emitDown(r.WhenAlone, r.ID)
	if r.WhenAlone.Layer != nil {
		snap.layers.SetActive(r.WhenAlone.Layer, true)
	}

	r.State = rule.Tap
	r.LastTransitionTime = ev.TimeMS
	e.active.Append(r)

	return out
}

func (e *Engine) downFromTapped(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if snap.opts.DoublePressTimeout == 0 || ev.TimeMS-r.LastTransitionTime >= snap.opts.DoublePressTimeout {
		// Timed out: treat as a fresh Idle press.
		r.State = rule.Idle

		return e.downFromIdle(snap, r, ev)
	}

	if r.TapLock && r.WhenTapLock.IsKeySequence() {
		out = append(out, emitUp(r.WhenTapLock, r.ID)...)
	}

	r.TapLock = !r.TapLock

	if r.WhenTapLock.Layer != nil {
		snap.layers.ToggleLock(r.WhenTapLock.Layer)
	}

	if r.WhenDoublePress.Layer != nil {
		snap.layers.SetActive(r.WhenDoublePress.Layer, true)
	}

	out = append(out, emitDown(doublePressChannel(r), r.ID)...)

	r.State = rule.DoubleTap
	r.LastTransitionTime = ev.TimeMS
	e.active.Append(r)

	return out
}

// doublePressChannel returns when_doublepress, falling back to when_alone
// when the rule declares no doublepress channel (§4.4.1, §4.4.2).
func doublePressChannel(r *rule.Remap) rule.Channel {
	if r.WhenDoublePress.IsEmpty() {
		return r.WhenAlone
	}

	return r.WhenDoublePress
}

func doublePressIsModifier(r *rule.Remap) bool {
	if r.WhenDoublePress.IsEmpty() {
		return r.WhenAloneIsModifier
	}

	return r.WhenDoublePressIsModifier
}
