package encoding

import (
	"testing"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
)

func sequenceSetup(t *testing.T, days int, p domain.BoundPolicy) (*fakeModel, *Objective, []ports.BoolVar) {
	t.Helper()
	m := newFakeModel()
	works := make([]ports.BoolVar, days)
	for i := range works {
		works[i] = m.NewBoolVar("w")
	}
	obj := &Objective{}
	if err := AddSoftSequence(m, works, p, "seq", obj); err != nil {
		t.Fatalf("AddSoftSequence: %v", err)
	}
	return m, obj, works
}

func TestSoftSequencePenalties(t *testing.T) {
	// Runs of 2-3 are free, a run of 1 costs 20, a run of 4 costs 5,
	// anything longer is forbidden.
	policy := domain.BoundPolicy{HardMin: 1, SoftMin: 2, MinPenalty: 20, SoftMax: 3, HardMax: 4, MaxPenalty: 5}

	cases := []struct {
		name     string
		assign   []bool
		wantCost int
		feasible bool
	}{
		{"run inside the soft band", []bool{false, false, true, true, true, false, false}, 0, true},
		{"isolated day pays the under penalty", []bool{false, true, false, false, false, false, false}, 20, true},
		{"run of four pays the over penalty", []bool{true, true, true, true, false, false, false}, 5, true},
		{"run of five is forbidden", []bool{true, true, true, true, true, false, false}, 0, false},
		{"two short runs pay twice", []bool{true, false, false, true, false, false, false}, 40, true},
		{"all off costs nothing", []bool{false, false, false, false, false, false, false}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, obj, _ := sequenceSetup(t, 7, policy)
			cost, feasible := minPenaltyCost(m, obj, tc.assign)
			if feasible != tc.feasible {
				t.Fatalf("feasible = %v, want %v", feasible, tc.feasible)
			}
			if feasible && cost != tc.wantCost {
				t.Fatalf("penalty = %d, want %d", cost, tc.wantCost)
			}
		})
	}
}

func TestSoftSequenceHardOnly(t *testing.T) {
	// With zero penalties the soft bands vanish: only the short-run clauses
	// and the ceiling remain, and nothing lands in the objective.
	policy := domain.BoundPolicy{HardMin: 3, SoftMin: 3, SoftMax: 4, HardMax: 4}
	m, obj, _ := sequenceSetup(t, 7, policy)

	// Lengths 1 and 2 each forbidden at every offset, no ceiling fits in 7
	// days below hardMax+1=5 windows of length 5.
	wantClauses := 7 + 6 + 3
	if len(m.clauses) != wantClauses {
		t.Fatalf("posted %d clauses, want %d", len(m.clauses), wantClauses)
	}
	if len(obj.Bools) != 0 || len(obj.Ints) != 0 {
		t.Fatalf("hard-only policy added objective terms: %+v", obj)
	}
	if m.nextBool != 7 {
		t.Fatalf("hard-only policy allocated %d extra literals", m.nextBool-7)
	}

	if _, feasible := minPenaltyCost(m, obj, []bool{false, true, true, false, false, false, false}); feasible {
		t.Fatal("run of two below the hard minimum was accepted")
	}
	if cost, feasible := minPenaltyCost(m, obj, []bool{true, true, true, false, false, false, false}); !feasible || cost != 0 {
		t.Fatalf("run of three rejected: cost=%d feasible=%v", cost, feasible)
	}
}

func TestSoftSequenceMaxPenaltyZeroKeepsCeiling(t *testing.T) {
	// A zero max penalty collapses the soft maximum into the hard one: runs
	// up to hardMax stay free and hardMax+1 is still forbidden outright.
	policy := domain.BoundPolicy{HardMin: 1, SoftMin: 1, SoftMax: 2, HardMax: 4, MaxPenalty: 0}
	m, obj, _ := sequenceSetup(t, 6, policy)

	if cost, feasible := minPenaltyCost(m, obj, []bool{true, true, true, true, false, false}); !feasible || cost != 0 {
		t.Fatalf("run of four: cost=%d feasible=%v, want free", cost, feasible)
	}
	if _, feasible := minPenaltyCost(m, obj, []bool{true, true, true, true, true, false}); feasible {
		t.Fatal("run of five above the hard maximum was accepted")
	}
}

func TestSoftSequenceRejectsBadInput(t *testing.T) {
	m := newFakeModel()
	obj := &Objective{}
	if err := AddSoftSequence(m, nil, domain.BoundPolicy{}, "empty", obj); err == nil {
		t.Fatal("empty sequence accepted")
	}
	works := []ports.BoolVar{m.NewBoolVar("w")}
	bad := domain.BoundPolicy{HardMin: 2, SoftMin: 1, SoftMax: 3, HardMax: 3}
	if err := AddSoftSequence(m, works, bad, "bad", obj); err == nil {
		t.Fatal("inverted policy accepted")
	}
}
