package domain

import "fmt"

// FetchError reports a failure retrieving items from an upstream source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SchemaError reports an item that is missing a mandatory field.
type SchemaError struct {
	Index int
	ID    string
	Field string
}

func (e *SchemaError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("item %d (%s): missing %s", e.Index, e.ID, e.Field)
	}
	return fmt.Sprintf("item %d: missing %s", e.Index, e.Field)
}

// ValidationError reports malformed request input such as an empty report window.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}
