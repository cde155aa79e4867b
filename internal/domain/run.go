package domain

import "time"

// SolveRun is the persisted record of one build-and-solve invocation.
// The Plan payload is the JSON document returned to the caller.
type SolveRun struct {
	RunID     string
	Kind      string
	Instance  string
	Status    string
	Objective int
	Plan      []byte
	CreatedAt time.Time
}
