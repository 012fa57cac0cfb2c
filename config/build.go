package config

import (
	"strings"

	"github.com/andrieee44/dualkey/engine"
	"github.com/andrieee44/dualkey/keydef"
	"github.com/andrieee44/dualkey/rule"
)

// Build resolves a parsed Doc's key and layer names against keydef.Catalog
// and layers into a compiled *rule.RuleSet, applying the §4.2 load-time
// normalizations. Rule ids are assigned 1..N in file order.
func Build(doc *Doc, layers *engine.LayerManager) (*rule.RuleSet, error) {
	var (
		rs     *rule.RuleSet
		rr     *RawRule
		ruleID int
		remap  *rule.Remap
		gate   *rule.Layer
		from   keydef.Descriptor
		ok     bool
		err    error
	)

	rs = rule.NewRuleSet()
	ruleID = 1

	for _, rr = range doc.Rules {
		from, ok = keydef.Find(rr.FromName)
		if !ok {
			return nil, parseErrorf(rr.Line, "unknown key %q in remap_key", rr.FromName)
		}

		gate = nil
		if rr.GateLayerName != "" {
			gate = layers.GetOrCreate(rr.GateLayerName)
		}

		if ruleID > rule.MaxRules {
			return nil, parseErrorf(rr.Line, "rule limit (%d) exceeded", rule.MaxRules)
		}

		remap = &rule.Remap{ID: uint8(ruleID), From: from, GateLayer: gate}

		err = resolveChannel(rr.Line, rr.WhenAlone, layers, &remap.WhenAlone)
		if err != nil {
			return nil, err
		}

		err = resolveChannel(rr.Line, rr.WithOther, layers, &remap.WithOther)
		if err != nil {
			return nil, err
		}

		err = resolveChannel(rr.Line, rr.WhenDoublePress, layers, &remap.WhenDoublePress)
		if err != nil {
			return nil, err
		}

		err = resolveChannel(rr.Line, rr.WhenTapLock, layers, &remap.WhenTapLock)
		if err != nil {
			return nil, err
		}

		err = resolveChannel(rr.Line, rr.WhenDoubleTapLock, layers, &remap.WhenDoubleTapLock)
		if err != nil {
			return nil, err
		}

		normalize(remap)

		err = rs.Add(remap)
		if err != nil {
			return nil, parseErrorf(rr.Line, "%s", err)
		}

		ruleID++
	}

	return rs, nil
}

func resolveChannel(lineNo int, rc *RawChannel, layers *engine.LayerManager, out *rule.Channel) error {
	var (
		keys rule.KeySequence
		name string
		d    keydef.Descriptor
		ok   bool
	)

	if rc == nil {
		*out = rule.Channel{}

		return nil
	}

	if rc.isLayer() {
		*out = rule.Channel{Layer: layers.GetOrCreate(rc.LayerName)}

		return nil
	}

	keys = make(rule.KeySequence, 0, len(rc.KeyNames))

	for _, name = range rc.KeyNames {
		d, ok = keydef.Find(strings.TrimSpace(name))
		if !ok {
			return parseErrorf(lineNo, "unknown key %q", name)
		}

		keys = append(keys, d)
	}

	*out = rule.Channel{Keys: keys}

	return nil
}

// normalize applies §4.2's load-time normalizations, in order.
func normalize(r *rule.Remap) {
	if channelEqual(r.WhenAlone, r.WithOther) {
		r.WithOther = rule.Channel{}
	}

	if channelEqual(r.WhenAlone, r.WhenDoublePress) {
		r.WhenDoublePress = rule.Channel{}
	}

	if r.WithOther.IsKeySequence() && !r.WithOther.AllModifier() {
		r.WithOther = rule.Channel{}
	}

	r.WhenAloneIsModifier = r.WhenAlone.IsKeySequence() && r.WhenAlone.AllModifier()
	r.WhenDoublePressIsModifier = r.WhenDoublePress.IsKeySequence() && r.WhenDoublePress.AllModifier()
}

func channelEqual(a, b rule.Channel) bool {
	var i int

	if a.Layer != b.Layer {
		return false
	}

	if len(a.Keys) != len(b.Keys) {
		return false
	}

	for i = range a.Keys {
		if a.Keys[i] != b.Keys[i] {
			return false
		}
	}

	return true
}
