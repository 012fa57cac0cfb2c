// Package keydef is the KeyCatalog: a read-only lookup from a symbolic key
// name to the descriptor the rest of the module needs to emit or match an
// input event, plus the synthetic mouse-button placeholder.
package keydef

import "strings"

// Descriptor mirrors the KeyDescriptor of the spec: a scan code, a virtual
// code, and whether the key participates in modifier bookkeeping. Equality
// is structural, so two Descriptor values compare equal with ==.
//
// VirtualCode is wider than the nominal 8 bits of a real Windows virtual-key
// code so that Placeholder can hold a value (0x100) outside the real
// 0x00-0xFF key space, exactly as the spec requires for MOUSE_PLACEHOLDER.
type Descriptor struct {
	Name        string
	ScanCode    uint16
	VirtualCode uint16
	IsModifier  bool
	IsExtended  bool
}

// Placeholder is MOUSE_PLACEHOLDER: never injected, used only to drive the
// "other input occurred" broadcast for mouse button events.
var Placeholder = Descriptor{Name: "mouse", VirtualCode: 0x100}

// LayerPrefix is the reserved name prefix that marks a config value as a
// layer reference rather than a key name (spec §4.1, §6).
const LayerPrefix = "layer"

// Catalog is populated once at package init from table.go's literal data
// and never mutated afterward.
var Catalog = buildCatalog()

// byVirtualCode supports the reverse lookup used by the StateEngine's
// "other input" broadcast, which needs to know whether the foreign event's
// virtual code belongs to a modifier key.
var byVirtualCode = buildReverse()

func buildCatalog() map[string]Descriptor {
	var (
		m map[string]Descriptor
		d Descriptor
	)

	m = make(map[string]Descriptor, len(table))
	for _, d = range table {
		m[d.Name] = d
	}

	return m
}

func buildReverse() map[uint16]Descriptor {
	var (
		m map[uint16]Descriptor
		d Descriptor
	)

	m = make(map[uint16]Descriptor, len(table))
	for _, d = range table {
		m[d.VirtualCode] = d
	}

	return m
}

// Find looks up name in the catalog. Names beginning with LayerPrefix are
// reserved for layer references and always report "not found" here, so
// callers (the config loader) treat them as layer names instead of keys.
func Find(name string) (Descriptor, bool) {
	var (
		d  Descriptor
		ok bool
	)

	if strings.HasPrefix(name, LayerPrefix) {
		return Descriptor{}, false
	}

	d, ok = Catalog[name]

	return d, ok
}

// IsModifierCode reports whether virtualCode names a known modifier key.
// Unknown codes (including Placeholder's) are never modifiers.
func IsModifierCode(virtualCode uint16) bool {
	var (
		d  Descriptor
		ok bool
	)

	d, ok = byVirtualCode[virtualCode]

	return ok && d.IsModifier
}
