package episode

// Status is a point in an episode's lifecycle.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUploaded    Status = "uploaded"
	StatusTranscribed Status = "transcribed"
	StatusNormalized  Status = "normalized"
	StatusEnriched    Status = "enriched"
	StatusComplete    Status = "complete"
	StatusFailed      Status = "failed"
)

var order = map[Status]int{
	StatusPending:     0,
	StatusUploaded:    1,
	StatusTranscribed: 2,
	StatusNormalized:  3,
	StatusEnriched:    4,
	StatusComplete:    5,
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// Before reports whether s comes strictly earlier in the lifecycle than o.
// Failed is not ordered against anything.
func (s Status) Before(o Status) bool {
	a, okA := order[s]
	b, okB := order[o]
	return okA && okB && a < b
}
