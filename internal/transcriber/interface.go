// Package transcriber turns an audio URL into a diarized raw transcript.
package transcriber

import (
	"context"
	"fmt"
)

// Request describes one transcription job.
type Request struct {
	AudioURL    string
	Prompt      string
	NumSpeakers int
	Episode     string
}

// Transcriber returns the provider's raw transcript document. The document
// is guaranteed to carry a segments list.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) ([]byte, error)
}

// TranscriptionFailedError is returned when the provider errors or answers
// with a document that has no segments.
type TranscriptionFailedError struct {
	Episode string
	Err     error
}

func (e *TranscriptionFailedError) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", e.Episode, e.Err)
}

func (e *TranscriptionFailedError) Unwrap() error { return e.Err }
