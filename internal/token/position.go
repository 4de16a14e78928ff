package token

import "fmt"

// Position represents a position in a statement line.
type Position struct {
	// Line number of the script line (1-indexed, 0 when unknown).
	Line int
	// Column is the byte offset on the line (1-indexed).
	Column int
	// Offset is the byte offset from the start of the statement (0-indexed).
	Offset int
}

// String returns a string representation of the position.
// Format: "line:column", or "column N" when the line is unknown.
func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("column %d", p.Column)
}

// IsValid returns true if the position points into a statement.
func (p Position) IsValid() bool {
	return p.Column > 0
}

// Before returns true if p is before other in the source.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}
