// Package engine is the StateEngine and LayerManager: the per-rule finite
// state machines, the cross-rule "other input" coordinator, and the layer
// active/locked bookkeeping they mutate. This is the core subject of the
// whole module — everything else exists to get real Windows key events into
// Engine.Handle and its outputs back out to the OS.
package engine

import "github.com/andrieee44/dualkey/rule"

// LayerManager owns every named Layer and the two mutating operations the
// StateEngine is allowed to perform on them (§4.5). All access happens from
// the single hook thread; no locking.
type LayerManager struct {
	layers map[string]*rule.Layer
	order  []string
}

// NewLayerManager returns an empty LayerManager.
func NewLayerManager() *LayerManager {
	return &LayerManager{layers: make(map[string]*rule.Layer)}
}

// GetOrCreate returns the named layer, creating it (Active=false,
// Locked=false) on first reference. Used at config-load time so that a
// layer named by any rule's gate or channel resolves to the same *Layer.
func (lm *LayerManager) GetOrCreate(name string) *rule.Layer {
	var (
		l  *rule.Layer
		ok bool
	)

	l, ok = lm.layers[name]
	if ok {
		return l
	}

	l = &rule.Layer{Name: name}
	lm.layers[name] = l
	lm.order = append(lm.order, name)

	return l
}

// SetActive sets l.Active directly. Used for plain activation (Idle→Tap/
// HeldAlone transitions) and for restoring a layer to its locked baseline.
func (lm *LayerManager) SetActive(l *rule.Layer, active bool) {
	l.Active = active
}

// RestoreToLockedBaseline implements the repeated "layer.active :=
// layer.locked" assignment of §4.4.2: once a hold/tap ends, a layer falls
// back to active only if it is still locked.
func (lm *LayerManager) RestoreToLockedBaseline(l *rule.Layer) {
	l.Active = l.Locked
}

// ToggleLock flips l.Locked and mirrors it into Active, maintaining the
// Locked ⇒ Active invariant in both directions (§3, §4.5).
func (lm *LayerManager) ToggleLock(l *rule.Layer) {
	l.Locked = !l.Locked
	l.Active = l.Locked
}

// IsActive reports whether l is active; a nil layer is never active.
func (lm *LayerManager) IsActive(l *rule.Layer) bool {
	return l != nil && l.Active
}

// All returns every layer the manager has created, in first-reference
// order.
func (lm *LayerManager) All() []*rule.Layer {
	var (
		out []*rule.Layer
		n   string
	)

	out = make([]*rule.Layer, 0, len(lm.order))
	for _, n = range lm.order {
		out = append(out, lm.layers[n])
	}

	return out
}
