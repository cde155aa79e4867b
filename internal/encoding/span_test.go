package encoding

import (
	"testing"

	"roster-routing-service/internal/ports"
)

func TestNegatedBoundedSpan(t *testing.T) {
	m := newFakeModel()
	works := make([]ports.BoolVar, 5)
	for i := range works {
		works[i] = m.NewBoolVar("w")
	}

	cases := []struct {
		name          string
		start, length int
		want          []fakeLit
	}{
		{
			"interior window keeps both boundaries",
			1, 2,
			[]fakeLit{{id: 0}, {id: 1, neg: true}, {id: 2, neg: true}, {id: 3}},
		},
		{
			"window at the front has only a right boundary",
			0, 2,
			[]fakeLit{{id: 0, neg: true}, {id: 1, neg: true}, {id: 2}},
		},
		{
			"window at the back has only a left boundary",
			3, 2,
			[]fakeLit{{id: 2}, {id: 3, neg: true}, {id: 4, neg: true}},
		},
		{
			"full-width window has no boundaries",
			0, 5,
			[]fakeLit{{id: 0, neg: true}, {id: 1, neg: true}, {id: 2, neg: true}, {id: 3, neg: true}, {id: 4, neg: true}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NegatedBoundedSpan(works, tc.start, tc.length)
			if len(got) != len(tc.want) {
				t.Fatalf("clause has %d literals, want %d", len(got), len(tc.want))
			}
			for i, v := range got {
				if v.(fakeLit) != tc.want[i] {
					t.Fatalf("literal %d = %+v, want %+v", i, v, tc.want[i])
				}
			}
		})
	}
}

func TestNegatedBoundedSpanIgnoresLongerRuns(t *testing.T) {
	m := newFakeModel()
	works := make([]ports.BoolVar, 7)
	for i := range works {
		works[i] = m.NewBoolVar("w")
	}

	// A window of length 2 inside a maximal run of 4: the boundary literal at
	// either side satisfies the clause, so the containing run is not flagged.
	clause := NegatedBoundedSpan(works, 2, 2)
	assign := []bool{false, true, true, true, true, false, false}
	for _, v := range clause {
		if val, ok := holds(v.(fakeLit), assign); ok && val {
			return
		}
	}
	t.Fatalf("clause %v violated by a longer containing run", clause)
}
