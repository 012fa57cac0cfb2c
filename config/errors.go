package config

import "fmt"

// ParseError is ConfigParseError (§7): a malformed line, unknown key name,
// duplicate rule, too many rules, or an incomplete block. It carries the
// 1-based line number so the CLI can report it the way the original tool
// does.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config error (line %d): %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
