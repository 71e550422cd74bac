// Package episode derives and validates episode names and models the
// lifecycle an episode moves through in the pipeline.
package episode

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	reURL  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://.+`)
)

// InvalidNameError is returned when an episode name contains characters
// outside [A-Za-z0-9_-]. The name is used to build file paths.
type InvalidNameError struct {
	Input string
	Name  string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid episode name %q derived from %q: only letters, digits, '-' and '_' are allowed", e.Name, e.Input)
}

// Source describes what the pipeline was asked to process.
type Source struct {
	Input string // path or URL exactly as given
	Name  string // validated episode name
	IsURL bool
}

// IsURL reports whether input looks like scheme://...
func IsURL(input string) bool {
	return reURL.MatchString(input)
}

// ValidateName checks name against the allowed character set.
func ValidateName(name string) error {
	if !reName.MatchString(name) {
		return &InvalidNameError{Input: name, Name: name}
	}
	return nil
}

// FromInput resolves the episode name for a local path or URL: the last path
// element with one extension stripped. Query strings and fragments of URLs
// are ignored.
func FromInput(input string) (Source, error) {
	src := Source{Input: input, IsURL: IsURL(input)}

	base := filepath.Base(input)
	if src.IsURL {
		u, err := url.Parse(input)
		if err != nil {
			return Source{}, &InvalidNameError{Input: input, Name: input}
		}
		base = path.Base(u.Path)
	}
	src.Name = strings.TrimSuffix(base, path.Ext(base))

	if !reName.MatchString(src.Name) {
		return Source{}, &InvalidNameError{Input: input, Name: src.Name}
	}
	return src, nil
}
