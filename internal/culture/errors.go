package culture

import "fmt"

// FetchError is returned when the knowledge service could not supply a
// cuisine after the retry budget was exhausted. When a stale pool exists it
// is returned alongside this error so callers may serve stale data instead
// of failing the whole plan.
type FetchError struct {
	Cuisine  string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch cuisine %q after %d attempts: %v", e.Cuisine, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
