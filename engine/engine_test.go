package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrieee44/dualkey/engine"
	"github.com/andrieee44/dualkey/inject"
	"github.com/andrieee44/dualkey/keydef"
	"github.com/andrieee44/dualkey/rule"
)

// newScenarioRule builds the rule §8 uses for every numbered scenario:
// from=Space, when_alone=[A], with_other=[LShift], id=1.
func newScenarioRule() *rule.Remap {
	var (
		space, a, lshift keydef.Descriptor
		ok               bool
	)

	space, ok = keydef.Find("space")
	if !ok {
		panic("space missing from catalog")
	}

	a, ok = keydef.Find("a")
	if !ok {
		panic("a missing from catalog")
	}

	lshift, ok = keydef.Find("lshift")
	if !ok {
		panic("lshift missing from catalog")
	}

	return &rule.Remap{
		ID:                  1,
		From:                space,
		WhenAlone:           rule.Channel{Keys: rule.KeySequence{a}},
		WithOther:           rule.Channel{Keys: rule.KeySequence{lshift}},
		WhenAloneIsModifier: false,
	}
}

func newScenarioEngine(r *rule.Remap, opts engine.Options) (*engine.Engine, *rule.RuleSet) {
	var (
		rs  *rule.RuleSet
		lm  *engine.LayerManager
		err error
	)

	rs = rule.NewRuleSet()
	err = rs.Add(r)
	if err != nil {
		panic(err)
	}

	lm = engine.NewLayerManager()

	return engine.New(rs, lm, opts), rs
}

func ev(virtualCode uint16, dir rule.Direction, t uint32) rule.InputEvent {
	return rule.InputEvent{VirtualCode: virtualCode, Direction: dir, TimeMS: t}
}

func injectedEv(virtualCode uint16, dir rule.Direction, t uint32, extraInfo uint32) rule.InputEvent {
	return rule.InputEvent{VirtualCode: virtualCode, Direction: dir, TimeMS: t, IsInjected: true, ExtraInfo: extraInfo}
}

func TestPureTap(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

	res1 := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, res1.Block)
	require.Empty(t, res1.Outputs)

	res2 := eng.Handle(ev(0x20, rule.Up, 150))
	require.True(t, res2.Block)
	require.Len(t, res2.Outputs, 2)
	require.Equal(t, rule.Down, res2.Outputs[0].Direction)
	require.Equal(t, uint8(1), res2.Outputs[0].RuleID)
	require.Equal(t, "a", res2.Outputs[0].Descriptor.Name)
	require.Equal(t, rule.Up, res2.Outputs[1].Direction)
	require.Equal(t, rule.Tapped, r.State)
}

func TestHoldWithOther(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

	down := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, down.Block)
	require.Empty(t, down.Outputs)
	require.Equal(t, rule.HeldAlone, r.State)

	foreignDown := eng.Handle(ev(0x41, rule.Down, 150))
	require.False(t, foreignDown.Block)
	require.Len(t, foreignDown.Outputs, 1)
	require.Equal(t, "lshift", foreignDown.Outputs[0].Descriptor.Name)
	require.Equal(t, rule.Down, foreignDown.Outputs[0].Direction)
	require.Equal(t, rule.HeldWithOther, r.State)

	foreignUp := eng.Handle(ev(0x41, rule.Up, 160))
	require.False(t, foreignUp.Block)
	require.Empty(t, foreignUp.Outputs)

	up := eng.Handle(ev(0x20, rule.Up, 200))
	require.True(t, up.Block)
	require.Len(t, up.Outputs, 1)
	require.Equal(t, "lshift", up.Outputs[0].Descriptor.Name)
	require.Equal(t, rule.Up, up.Outputs[0].Direction)
	require.Equal(t, rule.Idle, r.State)
}

func TestDoublePress(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

	eng.Handle(ev(0x20, rule.Down, 100))
	eng.Handle(ev(0x20, rule.Up, 150))
	require.Equal(t, rule.Tapped, r.State)

	res := eng.Handle(ev(0x20, rule.Down, 200))
	require.True(t, res.Block)
	require.Len(t, res.Outputs, 1)
	require.Equal(t, "a", res.Outputs[0].Descriptor.Name)
	require.Equal(t, rule.Down, res.Outputs[0].Direction)
	require.Equal(t, rule.DoubleTap, r.State)
}

func TestHoldPastTapTimeout(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

	down := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, down.Block)

	up := eng.Handle(ev(0x20, rule.Up, 400))
	require.True(t, up.Block)
	require.Empty(t, up.Outputs)
	require.Equal(t, rule.Idle, r.State)
}

func TestForeignModifierReaffirm(t *testing.T) {
	var (
		lctrl, x keydef.Descriptor
		ok       bool
		r        *rule.Remap
		eng      *engine.Engine
	)

	lctrl, ok = keydef.Find("lctrl")
	require.True(t, ok)

	x, ok = keydef.Find("x")
	require.True(t, ok)
	_ = x

	r = &rule.Remap{
		ID:                  1,
		From:                mustFind("space"),
		WhenAlone:           rule.Channel{Keys: rule.KeySequence{lctrl}},
		WhenAloneIsModifier: true,
	}

	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 0})

	down := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, down.Block)
	require.Equal(t, rule.Tap, r.State)
	require.Len(t, down.Outputs, 1)
	require.Equal(t, "lctrl", down.Outputs[0].Descriptor.Name)

	foreign := eng.Handle(ev(0x58, rule.Down, 150))
	require.False(t, foreign.Block)
	require.Len(t, foreign.Outputs, 1)
	require.Equal(t, "lctrl", foreign.Outputs[0].Descriptor.Name)
	require.Equal(t, rule.Down, foreign.Outputs[0].Direction)
	require.Equal(t, rule.Tap, r.State)
}

func TestIdleUnlock(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250, UnlockTimeout: 1000})

	down := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, down.Block)
	require.Equal(t, rule.HeldAlone, r.State)

	later := eng.Handle(ev(0x41, rule.Down, 2000))
	require.False(t, later.Block)
	require.Empty(t, later.Outputs)
	require.Equal(t, rule.Idle, r.State)
	require.False(t, r.TapLock)
	require.False(t, r.DoubleTapLock)
}

func TestUnlockAllIdempotent(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = newScenarioRule()
	eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

	eng.Handle(ev(0x20, rule.Down, 100))

	first := eng.UnlockAll()
	require.Equal(t, rule.Idle, r.State)

	second := eng.UnlockAll()
	require.Empty(t, second)
	_ = first
}

func TestPureTapUnaffectedByHoldDelayAndDoublePress(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	r = &rule.Remap{
		ID:        1,
		From:      mustFind("space"),
		WhenAlone: rule.Channel{Keys: rule.KeySequence{mustFind("a")}},
	}

	eng, _ = newScenarioEngine(r, engine.Options{HoldDelay: 500, DoublePressTimeout: 500})

	down := eng.Handle(ev(0x20, rule.Down, 100))
	require.True(t, down.Block)
	require.Len(t, down.Outputs, 1)
	require.Equal(t, rule.Down, down.Outputs[0].Direction)

	up := eng.Handle(ev(0x20, rule.Up, 105))
	require.True(t, up.Block)
	require.Len(t, up.Outputs, 1)
	require.Equal(t, rule.Up, up.Outputs[0].Direction)
}

// TestInjectedEventNeverTransitions covers the §8 invariant that no event
// with is_injected=true causes any FSM transition, whether it carries a
// foreign tag, our own passthrough tag (rule id 0), or our own rule tag —
// only OriginGenuine (is_injected=false) reaches rule dispatch.
func TestInjectedEventNeverTransitions(t *testing.T) {
	var (
		r   *rule.Remap
		eng *engine.Engine
	)

	cases := []struct {
		name      string
		extraInfo uint32
	}{
		{name: "foreign tag", extraInfo: 0xDEAD0000},
		{name: "no tag", extraInfo: 0},
		{name: "self passthrough", extraInfo: inject.Encode(0)},
		{name: "self rule", extraInfo: inject.Encode(1)},
	}

	for _, c := range cases {
		r = newScenarioRule()
		eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: 200, DoublePressTimeout: 250})

		res := eng.Handle(injectedEv(0x20, rule.Down, 100, c.extraInfo))
		require.False(t, res.Block, c.name)
		require.Empty(t, res.Outputs, c.name)
		require.Equal(t, rule.Idle, r.State, c.name)
	}
}

// TestHandleInvariantsAcrossSequences is a small property-style check: for
// many (rule, event-sequence) combinations, two invariants must hold after
// every step — Handle never panics, and a matched-rule event always blocks
// while an unmatched one never does.
func TestHandleInvariantsAcrossSequences(t *testing.T) {
	var (
		timeouts  = []uint32{0, 50, 200, 1000}
		sequences = [][]uint16{
			{0x20, 0x20},
			{0x20, 0x41, 0x20},
			{0x20, 0x20, 0x20, 0x20},
			{0x41, 0x20, 0x41, 0x20},
		}
		tt  uint32
		seq []uint16
		vc  uint16
		t0  uint32
		r   *rule.Remap
		eng *engine.Engine
		dir rule.Direction
	)

	for _, tt = range timeouts {
		for _, seq = range sequences {
			r = newScenarioRule()
			eng, _ = newScenarioEngine(r, engine.Options{TapTimeout: tt, DoublePressTimeout: tt})

			t0 = 0
			dir = rule.Down

			for _, vc = range seq {
				res := eng.Handle(ev(vc, dir, t0))

				if vc == r.From.VirtualCode {
					require.True(t, res.Block)
				} else {
					require.False(t, res.Block)
				}

				if dir == rule.Down {
					dir = rule.Up
				} else {
					dir = rule.Down
				}

				t0 += 10
			}
		}
	}
}

func mustFind(name string) keydef.Descriptor {
	var (
		d  keydef.Descriptor
		ok bool
	)

	d, ok = keydef.Find(name)
	if !ok {
		panic("missing key: " + name)
	}

	return d
}
