package parser

import "fmt"

// ParseError describes one syntax failure reported by the parsing front-end.
type ParseError struct {
	Line int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("Syntax error at line %d: %s", e.Line, e.Msg)
}
