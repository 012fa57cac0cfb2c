package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/andrieee44/dualkey/keydef"
)

// MaxLineBytes is the 255-byte-per-line cap (§6).
const MaxLineBytes = 255

// Options is the set of global integer options (§6).
type Options struct {
	Debug              bool
	HoldDelay          uint32
	TapTimeout         uint32
	DoublePressTimeout uint32
	RehookTimeout      uint32
	UnlockTimeout      uint32
	ScanCode           bool
	Priority           bool
	// WatchConfig is the (expansion) watch_config=1 option enabling
	// hot-reload (§6.3); off by default, matching the original's
	// load-once behavior.
	WatchConfig bool
}

// RawChannel is a parsed-but-unresolved channel value: either a layer
// reference or an ordered, possibly chorded, list of key names.
type RawChannel struct {
	LayerName string
	KeyNames  []string
}

func (c *RawChannel) isLayer() bool {
	return c != nil && c.LayerName != ""
}

// RawRule is one parsed remap_key block, names not yet resolved.
type RawRule struct {
	Line              int
	FromName          string
	GateLayerName     string
	WhenAlone         *RawChannel
	WithOther         *RawChannel
	WhenDoublePress   *RawChannel
	WhenTapLock       *RawChannel
	WhenDoubleTapLock *RawChannel
}

func (r *RawRule) hasAnyChannel() bool {
	return r.WhenAlone != nil || r.WithOther != nil || r.WhenDoublePress != nil ||
		r.WhenTapLock != nil || r.WhenDoubleTapLock != nil
}

// Doc is the full parsed config: global options plus the rule blocks, in
// file order, names not yet resolved against the key/layer catalogs.
type Doc struct {
	Options Options
	Rules   []*RawRule
}

// Parse reads the line-oriented config grammar of §6 from r.
func Parse(r io.Reader) (*Doc, error) {
	var (
		scanner *bufio.Scanner
		doc     Doc
		cur     *RawRule
		lineNo  int
		line    string
		trimmed string
		key     string
		value   string
		ok      bool
		err     error
	)

	scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, MaxLineBytes+16), MaxLineBytes+16)

	for scanner.Scan() {
		lineNo++
		line = scanner.Text()

		if len(line) > MaxLineBytes {
			return nil, parseErrorf(lineNo, "line exceeds %d bytes", MaxLineBytes)
		}

		trimmed = strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok = strings.Cut(trimmed, "=")
		if !ok {
			return nil, parseErrorf(lineNo, "malformed line %q: expected key=value", trimmed)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		cur, err = applyLine(&doc, cur, lineNo, key, value)
		if err != nil {
			return nil, err
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, parseErrorf(lineNo, "reading config: %s", err)
	}

	if cur != nil {
		if err = finalizeBlock(&doc, cur); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}

func applyLine(doc *Doc, cur *RawRule, lineNo int, key, value string) (*RawRule, error) {
	var err error

	switch key {
	case "debug", "hold_delay", "tap_timeout", "doublepress_timeout",
		"rehook_timeout", "unlock_timeout", "scancode", "priority", "watch_config":
		err = applyGlobalOption(&doc.Options, lineNo, key, value)

		return cur, err
	case "remap_key":
		if cur != nil {
			if err = finalizeBlock(doc, cur); err != nil {
				return nil, err
			}
		}

		return &RawRule{Line: lineNo, FromName: value}, nil
	case "layer":
		if cur == nil {
			return nil, parseErrorf(lineNo, "layer= outside of a remap_key block")
		}

		cur.GateLayerName = value

		return cur, nil
	case "when_alone", "with_other", "when_doublepress", "when_tap_lock", "when_double_tap_lock":
		if cur == nil {
			return nil, parseErrorf(lineNo, "%s= outside of a remap_key block", key)
		}

		assignChannel(cur, key, parseChannelValue(value))

		return cur, nil
	default:
		return nil, parseErrorf(lineNo, "unknown option %q", key)
	}
}

func assignChannel(r *RawRule, key string, ch *RawChannel) {
	switch key {
	case "when_alone":
		r.WhenAlone = ch
	case "with_other":
		r.WithOther = ch
	case "when_doublepress":
		r.WhenDoublePress = ch
	case "when_tap_lock":
		r.WhenTapLock = ch
	case "when_double_tap_lock":
		r.WhenDoubleTapLock = ch
	}
}

func finalizeBlock(doc *Doc, r *RawRule) error {
	if !r.hasAnyChannel() {
		return parseErrorf(r.Line, "remap_key=%s has no output channel", r.FromName)
	}

	doc.Rules = append(doc.Rules, r)

	return nil
}

// parseChannelValue splits a channel value into a chord of key names, or
// recognizes it as a layer reference when it begins with the reserved
// "layer" prefix (§4.1, §6): "layernav" / "layer_nav" both name layer "nav".
// The prefix match and the resulting name are case-sensitive.
func parseChannelValue(value string) *RawChannel {
	var rest string

	if strings.HasPrefix(value, keydef.LayerPrefix) {
		rest = strings.TrimPrefix(value, keydef.LayerPrefix)
		rest = strings.TrimPrefix(rest, "_")

		return &RawChannel{LayerName: rest}
	}

	return &RawChannel{KeyNames: strings.Split(value, "+")}
}

func applyGlobalOption(opts *Options, lineNo int, key, value string) error {
	var (
		n   int64
		err error
	)

	n, err = strconv.ParseInt(value, 10, 32)
	if err != nil {
		return parseErrorf(lineNo, "%s=%q: not an integer", key, value)
	}

	switch key {
	case "debug":
		opts.Debug = n != 0
	case "hold_delay":
		opts.HoldDelay = uint32(n)
	case "tap_timeout":
		opts.TapTimeout = uint32(n)
	case "doublepress_timeout":
		opts.DoublePressTimeout = uint32(n)
	case "rehook_timeout":
		opts.RehookTimeout = uint32(n)
	case "unlock_timeout":
		opts.UnlockTimeout = uint32(n)
	case "scancode":
		opts.ScanCode = n != 0
	case "priority":
		opts.Priority = n != 0
	case "watch_config":
		opts.WatchConfig = n != 0
	}

	return nil
}
