package encoding

import "roster-routing-service/internal/ports"

// NegatedBoundedSpan builds the clause that forbids works[start:start+length]
// from being an entire maximal run of true values.
//
// The literals inside the window are negated; the variables immediately
// before and after the window (when they exist) are included un-negated, so
// a longer run that merely contains the window satisfies the clause through
// its boundary literal and is not independently flagged.
func NegatedBoundedSpan(works []ports.BoolVar, start, length int) []ports.BoolVar {
	clause := make([]ports.BoolVar, 0, length+2)
	if start > 0 {
		clause = append(clause, works[start-1])
	}
	for i := start; i < start+length; i++ {
		clause = append(clause, works[i].Not())
	}
	if start+length < len(works) {
		clause = append(clause, works[start+length])
	}
	return clause
}
