// Package report assembles the generated artifacts into the results
// document.
package report

import (
	"fmt"
	"strings"
)

// Sections holds the four generated artifacts.
type Sections struct {
	Chapters  string
	ShowNotes string
	Titles    string
	Tweets    string
}

type section struct {
	heading string
	key     string
	text    string
}

// ordered lists the sections in results order.
func (s Sections) ordered() []section {
	return []section{
		{"Chapters", "chapters", s.Chapters},
		{"Show Notes", "show_notes", s.ShowNotes},
		{"Title Suggestions", "titles", s.Titles},
		{"Tweet Suggestions", "tweets", s.Tweets},
	}
}

// Set stores text under the artifact key produced by a generator.
func (s *Sections) Set(key, text string) error {
	switch key {
	case "chapters":
		s.Chapters = text
	case "show_notes":
		s.ShowNotes = text
	case "titles":
		s.Titles = text
	case "tweets":
		s.Tweets = text
	default:
		return fmt.Errorf("unknown section %q", key)
	}
	return nil
}

// Render produces the results document: each heading on its own line, its
// text, and a blank line between sections.
func Render(s Sections) string {
	parts := s.ordered()
	blocks := make([]string, len(parts))
	for i, p := range parts {
		blocks[i] = p.heading + ":\n" + p.text
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
