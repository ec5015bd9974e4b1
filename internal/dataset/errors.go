package dataset

import "fmt"

// MissingFieldError reports a required column absent from the CSV header.
type MissingFieldError struct {
	Field string
}

// Error returns a human-readable description of the missing column.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Field)
}

// DuplicateIDError reports a customer_id that appears more than once in a
// dataset. Row is the record number of the second occurrence, counting the
// header as record 1.
type DuplicateIDError struct {
	CustomerID string
	Row        int
}

// Error returns a human-readable description of the duplicate.
func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("row %d: duplicate customer_id %q", e.Row, e.CustomerID)
}
