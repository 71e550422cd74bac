package transcript

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		sec  Seconds
		want string
	}{
		{3251, "[00:54:11]"},
		{0, "[00:00:00]"},
		{59, "[00:00:59]"},
		{3600, "[01:00:00]"},
		{359999, "[99:59:59]"},
		{360000, "[100:00:00]"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.sec); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 4, Speaker: "SPEAKER 0", Text: " Hey everyone, welcome."},
		{Start: 3249, End: 3251, Speaker: "SPEAKER 1", Text: " This was great.  Yeah, this has been really fun."},
	}

	want := "**SPEAKER 0**:  Hey everyone, welcome. [00:00:04]\n\n" +
		"**SPEAKER 1**:  This was great.  Yeah, this has been really fun. [00:54:11]"

	got := Normalize(segments)
	if got != want {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
	if again := Normalize(segments); again != got {
		t.Error("Normalize() is not deterministic")
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(nil); got != "" {
		t.Errorf("Normalize(nil) = %q, want empty", got)
	}
	if got := Normalize([]Segment{}); got != "" {
		t.Errorf("Normalize([]) = %q, want empty", got)
	}
}

func TestParse(t *testing.T) {
	raw := []byte(`{
		"language": "en",
		"num_speakers": 2,
		"segments": [
			{"start": "0", "end": "4", "speaker": "SPEAKER 0", "text": " Hi."},
			{"start": 3249, "end": 3251.9, "speaker": "SPEAKER 1", "text": " Bye."}
		]
	}`)

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []Segment{
		{Start: 0, End: 4, Speaker: "SPEAKER 0", Text: " Hi."},
		{Start: 3249, End: 3251, Speaker: "SPEAKER 1", Text: " Bye."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantMissing bool
	}{
		{"missing segments", `{"language": "en"}`, true},
		{"null segments", `{"segments": null}`, true},
		{"not json", `segments`, false},
		{"bad seconds", `{"segments": [{"start": "x", "end": "1", "speaker": "A", "text": "t"}]}`, false},
		{"negative seconds", `{"segments": [{"start": "0", "end": "-1", "speaker": "A", "text": "t"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if got := errors.Is(err, ErrMissingSegments); got != tt.wantMissing {
				t.Errorf("errors.Is(err, ErrMissingSegments) = %v, want %v (err: %v)", got, tt.wantMissing, err)
			}
		})
	}
}

func TestParseEmptySegments(t *testing.T) {
	got, err := Parse([]byte(`{"segments": []}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Parse() = %v, want no segments", got)
	}
}

func TestParseRejectsOverflowingSeconds(t *testing.T) {
	for _, raw := range []string{
		`{"segments":[{"start":"0","end":"1e19","speaker":"A","text":"x"}]}`,
		`{"segments":[{"start":0,"end":9223372036854775808,"speaker":"A","text":"x"}]}`,
	} {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Errorf("Parse(%s) expected out of range error", raw)
		}
	}

	got, err := Parse([]byte(`{"segments":[{"start":"0","end":"1e15","speaker":"A","text":"x"}]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got[0].End != 1e15 {
		t.Errorf("End = %d, want 1e15", got[0].End)
	}
}
