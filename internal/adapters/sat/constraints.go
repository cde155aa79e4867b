package sat

import (
	"github.com/crillab/gophersat/maxsat"

	"roster-routing-service/internal/ports"
)

// linear builds one pseudo-boolean at-least constraint. Negative
// coefficients are normalized onto negated literals (c·x == -|c|·x ==
// |c|·¬x - |c|), and integer variables contribute their order-encoding bits
// with the lower bound folded into the threshold.
type linear struct {
	lits   []maxsat.Lit
	coeffs []int
	k      int // required minimum after normalization
}

func (l *linear) addBool(b boolVar, coeff int) {
	if coeff == 0 {
		return
	}
	if coeff < 0 {
		b = b.negated()
		coeff = -coeff
		l.k += coeff
	}
	l.lits = append(l.lits, b.lit())
	l.coeffs = append(l.coeffs, coeff)
}

func (l *linear) addInt(x *intVar, coeff int) {
	l.k -= coeff * x.lo
	for _, b := range x.bits {
		l.addBool(b, coeff)
	}
}

func (m *Model) postAtLeast(l *linear) {
	if l.k <= 0 {
		return // trivially satisfied
	}
	if len(l.lits) == 0 {
		m.fail("linear constraint requires %d from an empty expression", l.k)
		return
	}
	m.constrs = append(m.constrs, maxsat.HardPBConstr(l.lits, l.coeffs, l.k))
}

func (m *Model) AddClause(lits ...ports.BoolVar) {
	clause := make([]maxsat.Lit, 0, len(lits))
	for _, v := range lits {
		b, ok := m.asBool(v)
		if !ok {
			return
		}
		clause = append(clause, b.lit())
	}
	if len(clause) == 0 {
		m.fail("empty clause")
		return
	}
	m.constrs = append(m.constrs, maxsat.HardClause(clause...))
}

func (m *Model) AddBoolSumRange(lits []ports.BoolVar, lo, hi int) {
	terms := make([]ports.BoolTerm, 0, len(lits))
	for _, v := range lits {
		terms = append(terms, ports.BoolTerm{Lit: v, Weight: 1})
	}
	m.AddBoolLinearRange(terms, lo, hi)
}

func (m *Model) AddBoolLinearRange(terms []ports.BoolTerm, lo, hi int) {
	if lo > hi {
		m.fail("boolean linear range [%d,%d] is empty", lo, hi)
		return
	}
	atLeast := &linear{k: lo}
	atMost := &linear{k: -hi}
	for _, t := range terms {
		b, ok := m.asBool(t.Lit)
		if !ok {
			return
		}
		atLeast.addBool(b, t.Weight)
		atMost.addBool(b, -t.Weight)
	}
	m.postAtLeast(atLeast)
	m.postAtLeast(atMost)
}

func (m *Model) AddCountEquals(lits []ports.BoolVar, total ports.IntVar) {
	x, ok := m.asInt(total)
	if !ok {
		return
	}
	atLeast := &linear{}
	atMost := &linear{}
	for _, v := range lits {
		b, okb := m.asBool(v)
		if !okb {
			return
		}
		atLeast.addBool(b, 1)
		atMost.addBool(b, -1)
	}
	atLeast.addInt(x, -1)
	atMost.addInt(x, 1)
	m.postAtLeast(atLeast)
	m.postAtLeast(atMost)
}

func (m *Model) AddLinearRange(terms []ports.Term, lo, hi int) {
	if lo > hi {
		m.fail("linear range [%d,%d] is empty", lo, hi)
		return
	}
	atLeast := &linear{k: lo}
	atMost := &linear{k: -hi}
	for _, t := range terms {
		x, ok := m.asInt(t.Var)
		if !ok {
			return
		}
		atLeast.addInt(x, t.Coeff)
		atMost.addInt(x, -t.Coeff)
	}
	m.postAtLeast(atLeast)
	m.postAtLeast(atMost)
}

func (m *Model) AddLinearAtLeastIf(cond ports.BoolVar, terms []ports.Term, min int) {
	b, ok := m.asBool(cond)
	if !ok {
		return
	}
	m.addAtLeastIf(b, terms, min)
}

// AddLinearEqualsIf posts the equality as a pair of conditional at-least
// constraints over the terms and their negation.
func (m *Model) AddLinearEqualsIf(cond ports.BoolVar, terms []ports.Term, value int) {
	b, ok := m.asBool(cond)
	if !ok {
		return
	}
	m.addAtLeastIf(b, terms, value)
	neg := make([]ports.Term, len(terms))
	for i, t := range terms {
		neg[i] = ports.Term{Var: t.Var, Coeff: -t.Coeff}
	}
	m.addAtLeastIf(b, neg, -value)
}

func (m *Model) addAtLeastIf(b boolVar, terms []ports.Term, min int) {
	// The expression's worst case decides the slack needed to switch the
	// constraint off while cond is false.
	worst := 0
	for _, t := range terms {
		x, okx := m.asInt(t.Var)
		if !okx {
			return
		}
		if t.Coeff > 0 {
			worst += t.Coeff * x.lo
		} else {
			worst += t.Coeff * x.hi
		}
	}
	slack := min - worst
	if slack <= 0 {
		return // holds regardless of cond
	}
	l := &linear{k: min}
	for _, t := range terms {
		x, _ := m.asInt(t.Var)
		l.addInt(x, t.Coeff)
	}
	l.addBool(b.negated(), slack)
	m.postAtLeast(l)
}

// AddMaxEquality posts target == max(operands). The target's domain must
// cover the operands' reachable values.
func (m *Model) AddMaxEquality(target ports.IntVar, operands []ports.IntVar) {
	t, ok := m.asInt(target)
	if !ok {
		return
	}
	if len(operands) == 0 {
		m.fail("max equality over no operands")
		return
	}
	ops := make([]*intVar, 0, len(operands))
	for _, o := range operands {
		x, okx := m.asInt(o)
		if !okx {
			return
		}
		ops = append(ops, x)
		// target >= operand
		l := &linear{}
		l.addInt(t, 1)
		l.addInt(x, -1)
		m.postAtLeast(l)
	}
	// target >= j only when some operand reaches j.
	for j := t.lo + 1; j <= t.hi; j++ {
		clause := []maxsat.Lit{t.bits[j-t.lo-1].negated().lit()}
		trivial := false
		for _, x := range ops {
			b, state := bitGE(x, j)
			switch state {
			case bitTrue:
				trivial = true
			case bitOpen:
				clause = append(clause, b.lit())
			}
		}
		if !trivial {
			m.constrs = append(m.constrs, maxsat.HardClause(clause...))
		}
	}
}

// AddMinEquality posts target == min(operands), symmetric to AddMaxEquality.
func (m *Model) AddMinEquality(target ports.IntVar, operands []ports.IntVar) {
	t, ok := m.asInt(target)
	if !ok {
		return
	}
	if len(operands) == 0 {
		m.fail("min equality over no operands")
		return
	}
	ops := make([]*intVar, 0, len(operands))
	for _, o := range operands {
		x, okx := m.asInt(o)
		if !okx {
			return
		}
		ops = append(ops, x)
		// operand >= target
		l := &linear{}
		l.addInt(x, 1)
		l.addInt(t, -1)
		m.postAtLeast(l)
	}
	// target reaches j whenever every operand does.
	for j := t.lo + 1; j <= t.hi; j++ {
		clause := []maxsat.Lit{t.bits[j-t.lo-1].lit()}
		trivial := false
		for _, x := range ops {
			b, state := bitGE(x, j)
			switch state {
			case bitFalse:
				trivial = true
			case bitOpen:
				clause = append(clause, b.negated().lit())
			}
		}
		if !trivial {
			m.constrs = append(m.constrs, maxsat.HardClause(clause...))
		}
	}
}

func (m *Model) AddEquivalence(a, b ports.BoolVar) {
	ba, oka := m.asBool(a)
	bb, okb := m.asBool(b)
	if !oka || !okb {
		return
	}
	m.constrs = append(m.constrs,
		maxsat.HardClause(ba.negated().lit(), bb.lit()),
		maxsat.HardClause(ba.lit(), bb.negated().lit()),
	)
}

func (m *Model) TightenBounds(v ports.IntVar, lo, hi int) {
	x, ok := m.asInt(v)
	if !ok {
		return
	}
	if lo < x.lo {
		lo = x.lo
	}
	if hi > x.hi {
		hi = x.hi
	}
	if lo > hi {
		m.fail("tighten bounds: [%d,%d] empties the domain of %q", lo, hi, x.name)
		return
	}
	for j := x.lo + 1; j <= lo; j++ {
		m.constrs = append(m.constrs, maxsat.HardClause(x.bits[j-x.lo-1].lit()))
	}
	for j := hi + 1; j <= x.hi; j++ {
		m.constrs = append(m.constrs, maxsat.HardClause(x.bits[j-x.lo-1].negated().lit()))
	}
}

func (m *Model) Minimize(bools []ports.BoolTerm, ints []ports.Term, offset int) {
	if m.objSet {
		m.fail("objective set twice")
		return
	}
	m.objSet = true
	m.objBools = bools
	m.objInts = ints
	m.objOffset = offset
}

// MarkForMinimization accepts and drops the hint, as the port allows: the
// backend has no post-search tightening pass. Foreign variables still
// invalidate the model.
func (m *Model) MarkForMinimization(v ports.IntVar) {
	m.asInt(v)
}
