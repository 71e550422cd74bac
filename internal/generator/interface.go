// Package generator produces the text artifacts of an episode from its
// normalized transcript.
package generator

import "context"

// Input is what every generator receives.
type Input struct {
	Transcript  string
	PriorTitles []string
}

// Generator produces one artifact section.
type Generator interface {
	// Name is the artifact key: chapters, show_notes, titles or tweets.
	Name() string
	Generate(ctx context.Context, in Input) (string, error)
}

// Artifact keys, in results order.
const (
	Chapters  = "chapters"
	ShowNotes = "show_notes"
	Titles    = "titles"
	Tweets    = "tweets"
)

// Options tune provider requests.
type Options struct {
	Temperature float64
}
