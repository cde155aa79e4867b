package encoding

import "roster-routing-service/internal/ports"

// fakeLit and fakeModel record builder calls so encoder tests can inspect the
// posted clauses without a real engine.
type fakeLit struct {
	id  int
	neg bool
}

func (l fakeLit) Not() ports.BoolVar { return fakeLit{id: l.id, neg: !l.neg} }

type fakeIntVar struct {
	id, lo, hi int
}

func (v *fakeIntVar) Bounds() (int, int) { return v.lo, v.hi }

type fakeModel struct {
	nextBool    int
	clauses     [][]fakeLit
	intVars     []*fakeIntVar
	countCalls  int
	rangeCalls  int
	maxCalls    int
	minCalls    int
	equivCalls  int
	minimizedAt bool
}

func newFakeModel() *fakeModel { return &fakeModel{} }

func (m *fakeModel) NewBoolVar(string) ports.BoolVar {
	l := fakeLit{id: m.nextBool}
	m.nextBool++
	return l
}

func (m *fakeModel) NewIntVar(_ string, lo, hi int) ports.IntVar {
	v := &fakeIntVar{id: len(m.intVars), lo: lo, hi: hi}
	m.intVars = append(m.intVars, v)
	return v
}

func (m *fakeModel) AddClause(lits ...ports.BoolVar) {
	row := make([]fakeLit, 0, len(lits))
	for _, v := range lits {
		row = append(row, v.(fakeLit))
	}
	m.clauses = append(m.clauses, row)
}

func (m *fakeModel) AddBoolSumRange([]ports.BoolVar, int, int)       {}
func (m *fakeModel) AddBoolLinearRange([]ports.BoolTerm, int, int)   {}
func (m *fakeModel) AddCountEquals([]ports.BoolVar, ports.IntVar)    { m.countCalls++ }
func (m *fakeModel) AddLinearRange([]ports.Term, int, int)           { m.rangeCalls++ }
func (m *fakeModel) AddLinearAtLeastIf(ports.BoolVar, []ports.Term, int) {
}
func (m *fakeModel) AddLinearEqualsIf(ports.BoolVar, []ports.Term, int) {
}
func (m *fakeModel) AddMaxEquality(ports.IntVar, []ports.IntVar) { m.maxCalls++ }
func (m *fakeModel) AddMinEquality(ports.IntVar, []ports.IntVar) { m.minCalls++ }
func (m *fakeModel) AddEquivalence(ports.BoolVar, ports.BoolVar) { m.equivCalls++ }
func (m *fakeModel) TightenBounds(ports.IntVar, int, int)        {}
func (m *fakeModel) Minimize([]ports.BoolTerm, []ports.Term, int) {
	m.minimizedAt = true
}
func (m *fakeModel) MarkForMinimization(ports.IntVar) {}

// holds evaluates a literal under an assignment over the base variables.
// Literals allocated after the base block (penalty literals) are reported
// through the ok flag instead.
func holds(l fakeLit, assign []bool) (value, ok bool) {
	if l.id >= len(assign) {
		return false, false
	}
	v := assign[l.id]
	if l.neg {
		v = !v
	}
	return v, true
}

// minPenaltyCost computes the cheapest total penalty the recorded clauses
// force under the assignment, and whether some clause cannot be satisfied at
// any price.
func minPenaltyCost(m *fakeModel, obj *Objective, assign []bool) (cost int, feasible bool) {
	weights := make(map[int]int)
	for _, t := range obj.Bools {
		weights[t.Lit.(fakeLit).id] = t.Weight
	}
	for _, clause := range m.clauses {
		satisfied := false
		cheapest := -1
		for _, l := range clause {
			if v, ok := holds(l, assign); ok {
				if v {
					satisfied = true
					break
				}
				continue
			}
			if w, isPenalty := weights[l.id]; isPenalty && !l.neg {
				if cheapest < 0 || w < cheapest {
					cheapest = w
				}
			}
		}
		if satisfied {
			continue
		}
		if cheapest < 0 {
			return 0, false
		}
		cost += cheapest
	}
	return cost, true
}
