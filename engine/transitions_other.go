package engine

import (
	"github.com/andrieee44/dualkey/keydef"
	"github.com/andrieee44/dualkey/rule"
)

// handleOther implements §4.4.3: the "other input" broadcast to every
// currently-active remap, for an event that matched no rule (or the mouse
// placeholder). Block is always false — a foreign event is never swallowed,
// only possibly preceded by synthetic Downs that the rules it passes
// through want reaffirmed first (§5 ordering guarantees).
func (e *Engine) handleOther(snap *snapshot, ev rule.InputEvent) Result {
	var (
		out []rule.SyntheticEvent
		r   *rule.Remap
	)

	if ev.Direction != rule.Down || keydef.IsModifierCode(ev.VirtualCode) {
		return Result{Block: false}
	}

	for _, r = range e.active.Items() {
		out = append(out, e.broadcastOther(snap, r, ev)...)
		r.LastTransitionTime = 0
	}

	return Result{Block: false, Outputs: out}
}

func (e *Engine) broadcastOther(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	switch r.State {
	case rule.HeldAlone:
		return e.otherFromHeldAlone(snap, r, ev)
	case rule.HeldWithOther:
		if r.WithOther.IsKeySequence() {
			return emitDown(r.WithOther, r.ID)
		}
	case rule.Tap:
		if r.WhenAloneIsModifier {
			return emitDown(r.WhenAlone, r.ID)
		}
	case rule.DoubleTap:
		if doublePressIsModifier(r) {
			return emitDown(doublePressChannel(r), r.ID)
		}
	case rule.Idle:
		if r.TapLock && r.WhenTapLock.IsKeySequence() {
			return emitDown(r.WhenTapLock, r.ID)
		}

		if r.DoubleTapLock && r.WhenDoubleTapLock.IsKeySequence() {
			return emitDown(r.WhenDoubleTapLock, r.ID)
		}
	case rule.Tapped:
		// Not addressed by §4.4.3: a quiescent Tapped rule does not react
		// to other input.
	}

	return nil
}

func (e *Engine) otherFromHeldAlone(snap *snapshot, r *rule.Remap, ev rule.InputEvent) []rule.SyntheticEvent {
	var out []rule.SyntheticEvent

	if snap.opts.HoldDelay > 0 && ev.TimeMS-r.LastTransitionTime < snap.opts.HoldDelay && r.WhenAlone.IsKeySequence() {
		out = emitDown(r.WhenAlone, r.ID)
		r.State = rule.Tap

		return out
	}

	if r.WithOther.IsKeySequence() {
		out = emitDown(r.WithOther, r.ID)
	}

	r.State = rule.HeldWithOther

	return out
}
