// Package processor drives one episode through the pipeline: source,
// transcription, normalization, generation and results.
package processor

import (
	"context"

	"github.com/nguyentantai21042004/podcast-flow/internal/report"
)

// Processor runs the pipeline for one input path or URL.
type Processor interface {
	Process(ctx context.Context, input string) (Result, error)
}

// Result describes a completed run.
type Result struct {
	Episode string
	// Results is the location of the results document.
	Results string
	// Docx is the path of the Word export, empty when disabled.
	Docx string
	// Transcribed and Normalized report whether those stages ran in this
	// run rather than being served from the cache.
	Transcribed bool
	Normalized  bool
	Sections    report.Sections
}
