package ports

// BoolVar is an opaque handle to a boolean decision variable owned by the
// solver engine. Not returns the negated literal of the same variable.
type BoolVar interface {
	Not() BoolVar
}

// IntVar is an opaque handle to a bounded integer decision variable.
type IntVar interface {
	Bounds() (lo, hi int)
}

// Term is one weighted integer variable inside a linear expression.
type Term struct {
	Var   IntVar
	Coeff int
}

// BoolTerm is one weighted boolean literal, used in pseudo-boolean
// constraints and in the objective.
type BoolTerm struct {
	Lit    BoolVar
	Weight int
}

// ModelBuilder is the capability contract of the external constraint engine.
//
// Builder calls do not return errors: a malformed call (contradictory
// bounds, nil operands) marks the whole model invalid, and the failure
// surfaces when the model is solved. This mirrors validate-at-solve engines
// and keeps encoder code free of per-call error plumbing.
type ModelBuilder interface {
	NewBoolVar(name string) BoolVar
	NewIntVar(name string, lo, hi int) IntVar

	// AddClause posts the disjunction of the literals.
	AddClause(lits ...BoolVar)
	// AddBoolSumRange bounds the number of true literals: lo <= Σ lits <= hi.
	AddBoolSumRange(lits []BoolVar, lo, hi int)
	// AddBoolLinearRange bounds a weighted literal sum: lo <= Σ w_i·lit_i <= hi.
	AddBoolLinearRange(terms []BoolTerm, lo, hi int)
	// AddCountEquals channels the number of true literals into total.
	AddCountEquals(lits []BoolVar, total IntVar)
	// AddLinearRange bounds a weighted integer sum: lo <= Σ c_i·x_i <= hi.
	AddLinearRange(terms []Term, lo, hi int)
	// AddLinearAtLeastIf posts Σ c_i·x_i >= min, enforced only while cond is
	// true. While cond is false the constraint has no effect.
	AddLinearAtLeastIf(cond BoolVar, terms []Term, min int)
	// AddLinearEqualsIf posts Σ c_i·x_i == value, enforced only while cond
	// is true. While cond is false the expression is unconstrained.
	AddLinearEqualsIf(cond BoolVar, terms []Term, value int)
	// AddMaxEquality posts target == max(operands).
	AddMaxEquality(target IntVar, operands []IntVar)
	// AddMinEquality posts target == min(operands).
	AddMinEquality(target IntVar, operands []IntVar)
	// AddEquivalence posts a == b.
	AddEquivalence(a, b BoolVar)
	// TightenBounds narrows an existing variable to [lo, hi].
	TightenBounds(v IntVar, lo, hi int)

	// Minimize sets the linear objective: Σ boolean terms + Σ integer terms
	// + offset. At most one objective may be set per model.
	Minimize(bools []BoolTerm, ints []Term, offset int)
	// MarkForMinimization hints that the variable should be pushed to its
	// lower bound during post-search tightening. Engines without such a pass
	// may ignore the hint; correctness never depends on it.
	MarkForMinimization(v IntVar)
}
