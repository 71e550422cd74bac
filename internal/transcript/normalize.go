package transcript

import (
	"fmt"
	"strings"
)

// Normalize renders segments as "**speaker**: text [HH:MM:SS]" blocks
// separated by blank lines. The timestamp is taken from each segment's end.
// Text is kept as received, including leading whitespace.
func Normalize(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("**%s**: %s %s", s.Speaker, s.Text, FormatTimestamp(s.End)))
	}
	return strings.Join(lines, "\n\n")
}

// FormatTimestamp formats whole seconds as [HH:MM:SS]. Hours are not
// wrapped: 360000 renders as [100:00:00].
func FormatTimestamp(sec Seconds) string {
	total := int64(sec)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("[%02d:%02d:%02d]", hours, minutes, seconds)
}
