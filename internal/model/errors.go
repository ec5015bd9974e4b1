package model

import "fmt"

// InvalidEnumValueError reports a field value outside its documented domain.
// Row is the 1-based record number in the source file (the header row counts
// as record 1); zero means the value did not come from a file.
type InvalidEnumValueError struct {
	Field string
	Value string
	Row   int
}

// Error returns a human-readable description of the invalid value.
func (e *InvalidEnumValueError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: invalid %s value %q", e.Row, e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
}
