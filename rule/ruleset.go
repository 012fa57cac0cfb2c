package rule

import "fmt"

// MaxRules is the 255-rule cap from §4.2 (rule id 0 is reserved for "no
// rule", so ids 1..255 are available).
const MaxRules = 255

// RuleSet is the compiled, immutable-after-load table of remap rules
// (§3): a 256-slot array indexed by virtual_code & 0xFF, each slot an
// ordered list with layer-gated rules before unconditional ones.
type RuleSet struct {
	slots [256][]*Remap
	seen  map[gateFrom]struct{}
	count int
}

type gateFrom struct {
	gate *Layer
	from uint16
}

// NewRuleSet returns an empty RuleSet ready for Add.
func NewRuleSet() *RuleSet {
	return &RuleSet{seen: make(map[gateFrom]struct{})}
}

// Add inserts r into its slot, ordering gated rules before unconditional
// ones, and rejects duplicate (gate_layer, from) pairs and a rule count
// beyond MaxRules (§4.2).
func (rs *RuleSet) Add(r *Remap) error {
	var (
		key  gateFrom
		slot int
	)

	if rs.count >= MaxRules {
		return fmt.Errorf("RuleSet.Add: rule limit (%d) exceeded", MaxRules)
	}

	key = gateFrom{gate: r.GateLayer, from: r.From.VirtualCode}
	if _, ok := rs.seen[key]; ok {
		return fmt.Errorf("RuleSet.Add: duplicate rule for key %q under the same gate layer", r.From.Name)
	}

	slot = int(r.From.VirtualCode & 0xFF)
	if r.GateLayer != nil {
		rs.slots[slot] = append([]*Remap{r}, rs.slots[slot]...)
	} else {
		rs.slots[slot] = append(rs.slots[slot], r)
	}

	rs.seen[key] = struct{}{}
	rs.count++

	return nil
}

// Lookup returns the first rule in virtualCode's slot whose gate layer is
// nil or active (§4.2).
func (rs *RuleSet) Lookup(virtualCode uint16) (*Remap, bool) {
	var r *Remap

	for _, r = range rs.slots[virtualCode&0xFF] {
		if r.GateLayer == nil || r.GateLayer.Active {
			return r, true
		}
	}

	return nil, false
}

// Count reports how many rules have been added.
func (rs *RuleSet) Count() int {
	return rs.count
}

// ActiveSet is ActiveRemaps (§3): an ordered set of rules currently
// non-Idle or holding a lock, append-at-tail, O(n) removal.
type ActiveSet struct {
	items []*Remap
}

// NewActiveSet returns an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{}
}

// Append adds r at the tail if absent, or moves it to the tail if already
// present (§9 open question 3: re-activation moves to tail).
func (as *ActiveSet) Append(r *Remap) {
	as.Remove(r)
	as.items = append(as.items, r)
}

// Remove deletes r if present; a no-op otherwise.
func (as *ActiveSet) Remove(r *Remap) {
	var i int

	for i = range as.items {
		if as.items[i] == r {
			as.items = append(as.items[:i], as.items[i+1:]...)

			return
		}
	}
}

// Clear empties the set.
func (as *ActiveSet) Clear() {
	as.items = as.items[:0]
}

// Items returns the current members in insertion (tail-append) order. The
// caller must not mutate the returned slice.
func (as *ActiveSet) Items() []*Remap {
	return as.items
}

// Contains reports whether r is a current member.
func (as *ActiveSet) Contains(r *Remap) bool {
	var m *Remap

	for _, m = range as.items {
		if m == r {
			return true
		}
	}

	return false
}
