package warehouse

import "fmt"

// ResolutionError reports a natural key that has no corresponding
// dimension row. It indicates an inconsistency between the raw set the
// dimensions were built from and the raw set being assembled, and is
// never silently coerced to a default key.
type ResolutionError struct {
	Column string
	Value  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolved natural key: no %s dimension row for %q", e.Column, e.Value)
}

// LoadError reports a persistence failure during the warehouse rebuild.
// The whole rebuild runs in one transaction, so a LoadError means the
// warehouse was rolled back to its prior state.
type LoadError struct {
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("warehouse load failed at stage %s: %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
