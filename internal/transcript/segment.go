// Package transcript models diarized transcripts and renders them into the
// canonical timestamped script.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingSegments is returned when a raw provider document has no
// "segments" field.
var ErrMissingSegments = errors.New("transcript has no segments field")

// Seconds is a whole number of seconds. Providers send it either as a
// JSON string ("3251") or a number; fractions are truncated.
type Seconds int64

func (s *Seconds) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		*s = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse seconds %q: %w", raw, err)
	}
	if f < 0 || f >= math.MaxInt64 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("parse seconds %q: out of range", raw)
	}
	*s = Seconds(int64(f))
	return nil
}

// Segment is one speaker-attributed utterance.
type Segment struct {
	Start   Seconds `json:"start"`
	End     Seconds `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}

type document struct {
	Segments json.RawMessage `json:"segments"`
}

// Parse decodes the raw provider document. The document must carry a
// non-null segments array; an empty array is valid.
func Parse(raw []byte) ([]Segment, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if len(doc.Segments) == 0 || string(bytes.TrimSpace(doc.Segments)) == "null" {
		return nil, ErrMissingSegments
	}

	var segments []Segment
	if err := json.Unmarshal(doc.Segments, &segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if segments == nil {
		segments = []Segment{}
	}
	return segments, nil
}

