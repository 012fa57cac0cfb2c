package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrieee44/dualkey/config"
	"github.com/andrieee44/dualkey/engine"
)

const sampleConfig = `
# comment line
debug=1
tap_timeout=200
doublepress_timeout=250

remap_key=space
when_alone=a
with_other=lshift

remap_key=capslock
layer=nav
when_alone=esc
`

func TestParseAndBuild(t *testing.T) {
	var (
		doc *config.Doc
		err error
		lm  *engine.LayerManager
	)

	doc, err = config.Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.True(t, doc.Options.Debug)
	require.Equal(t, uint32(200), doc.Options.TapTimeout)
	require.Len(t, doc.Rules, 2)

	lm = engine.NewLayerManager()

	rs, err := config.Build(doc, lm)
	require.NoError(t, err)
	require.Equal(t, 2, rs.Count())

	r, ok := rs.Lookup(0x20) // space
	require.True(t, ok)
	require.Equal(t, uint8(1), r.ID)
	require.Equal(t, "a", r.WhenAlone.Keys[0].Name)
	require.Equal(t, "lshift", r.WithOther.Keys[0].Name)
}

func TestBuildGateLayer(t *testing.T) {
	var (
		doc *config.Doc
		err error
		lm  *engine.LayerManager
	)

	doc, err = config.Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	lm = engine.NewLayerManager()

	rs, err := config.Build(doc, lm)
	require.NoError(t, err)

	nav := lm.GetOrCreate("nav")
	require.False(t, nav.Active)

	_, ok := rs.Lookup(0x14) // capslock, gated by the inactive layer "nav"
	require.False(t, ok)

	lm.SetActive(nav, true)

	r, ok := rs.Lookup(0x14) // capslock
	require.True(t, ok)
	require.NotNil(t, r.GateLayer)
	require.Equal(t, "nav", r.GateLayer.Name)
}

func TestParseRejectsEmptyBlock(t *testing.T) {
	var err error

	_, err = config.Parse(strings.NewReader("remap_key=space\n"))
	require.Error(t, err)
}

func TestParseRejectsUnknownOption(t *testing.T) {
	var err error

	_, err = config.Parse(strings.NewReader("frobnicate=1\n"))
	require.Error(t, err)
}

func TestParseLayerChannelValue(t *testing.T) {
	var (
		doc *config.Doc
		err error
		lm  *engine.LayerManager
	)

	doc, err = config.Parse(strings.NewReader("remap_key=capslock\nwhen_alone=layernav\n"))
	require.NoError(t, err)

	lm = engine.NewLayerManager()

	built, err := config.Build(doc, lm)
	require.NoError(t, err)

	r, ok := built.Lookup(0x14)
	require.True(t, ok)
	require.Nil(t, r.WhenAlone.Keys)
	require.NotNil(t, r.WhenAlone.Layer)
	require.Equal(t, "nav", r.WhenAlone.Layer.Name)
}
