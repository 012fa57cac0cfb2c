// Package config is the external config-file interface (§6): a
// line-oriented, UTF-8 grammar of global options and remap-rule blocks. It
// parses the text into an intermediate Doc, then Build resolves key and
// layer names against keydef.Catalog and an engine.LayerManager into a
// compiled *rule.RuleSet.
//
// Loader adds (expansion) file-location resolution and optional hot-reload
// on top of Parse/Build, grounded on writerslogic-witnessd's
// internal/config/loader.go shape.
package config
