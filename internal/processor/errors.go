package processor

import "fmt"

// SourceUnavailableError is returned when a local input cannot be read,
// converted or uploaded.
type SourceUnavailableError struct {
	Episode string
	Input   string
	Err     error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source for %s unavailable (%s): %v", e.Episode, e.Input, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }
