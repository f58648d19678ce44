package transport

import "fmt"

// SchemaError reports a dataset that does not match the expected columns or types.
// Line is 1-based and counts the header; it is 0 for header problems.
type SchemaError struct {
	Column string
	Line   int
	Value  string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("schema: column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("schema: line %d column %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
