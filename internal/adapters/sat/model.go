// Package sat implements the solver engine ports on top of the gophersat
// MaxSAT solver.
//
// Booleans map straight to named literals. Bounded integers use the order
// encoding: one bit per threshold, bit(j) meaning value >= j, chained by a
// ladder so the bits stay monotone. Linear constraints normalize to
// pseudo-boolean at-least constraints over the bits, and the objective
// becomes weighted soft clauses plus a tracked constant offset.
package sat

import (
	"fmt"

	"github.com/crillab/gophersat/maxsat"

	"roster-routing-service/internal/ports"
)

// Engine creates gophersat-backed models.
type Engine struct{}

func (Engine) NewModel() ports.ModelBuilder { return NewModel() }

type boolVar struct {
	name string
	neg  bool
}

func (b boolVar) Not() ports.BoolVar { return boolVar{name: b.name, neg: !b.neg} }

func (b boolVar) negated() boolVar { return boolVar{name: b.name, neg: !b.neg} }

func (b boolVar) lit() maxsat.Lit { return maxsat.Lit{Var: b.name, Negated: b.neg} }

type intVar struct {
	name string
	lo   int
	hi   int
	// bits[k] holds iff the value is at least lo+k+1.
	bits []boolVar
}

func (x *intVar) Bounds() (int, int) { return x.lo, x.hi }

// Model accumulates constraints until Solve is called. Malformed builder
// calls record the first error and surface it at solve time as an invalid
// model; subsequent calls still run so var handles stay usable.
type Model struct {
	serial    int
	constrs   []maxsat.Constr
	objBools  []ports.BoolTerm
	objInts   []ports.Term
	objOffset int
	objSet    bool
	err       error
}

func NewModel() *Model { return &Model{} }

func (m *Model) fail(format string, args ...any) {
	if m.err == nil {
		m.err = fmt.Errorf(format, args...)
	}
}

// newBool allocates a literal with a unique engine-level name. The serial
// suffix keeps caller-supplied names from colliding.
func (m *Model) newBool(name string) boolVar {
	b := boolVar{name: fmt.Sprintf("%s@%d", name, m.serial)}
	m.serial++
	return b
}

func (m *Model) NewBoolVar(name string) ports.BoolVar {
	return m.newBool(name)
}

func (m *Model) NewIntVar(name string, lo, hi int) ports.IntVar {
	if lo > hi {
		m.fail("new int var %q: empty domain [%d,%d]", name, lo, hi)
		return &intVar{name: name, lo: lo, hi: lo}
	}
	x := &intVar{name: name, lo: lo, hi: hi, bits: make([]boolVar, 0, hi-lo)}
	for j := lo + 1; j <= hi; j++ {
		x.bits = append(x.bits, m.newBool(fmt.Sprintf("%s>=%d", name, j)))
	}
	// Ladder: value >= j+1 implies value >= j.
	for k := 1; k < len(x.bits); k++ {
		m.constrs = append(m.constrs, maxsat.HardClause(x.bits[k].negated().lit(), x.bits[k-1].lit()))
	}
	return x
}

func (m *Model) asBool(v ports.BoolVar) (boolVar, bool) {
	b, ok := v.(boolVar)
	if !ok {
		m.fail("foreign boolean variable %T", v)
	}
	return b, ok
}

func (m *Model) asInt(v ports.IntVar) (*intVar, bool) {
	x, ok := v.(*intVar)
	if !ok {
		m.fail("foreign integer variable %T", v)
	}
	return x, ok
}

// bitState classifies the threshold test value >= j for an order-encoded
// variable: fixed true, fixed false, or decided by a bit.
const (
	bitFalse = -1
	bitOpen  = 0
	bitTrue  = 1
)

func bitGE(x *intVar, j int) (boolVar, int) {
	if j <= x.lo {
		return boolVar{}, bitTrue
	}
	if j > x.hi {
		return boolVar{}, bitFalse
	}
	return x.bits[j-x.lo-1], bitOpen
}
