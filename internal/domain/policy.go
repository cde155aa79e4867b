package domain

import "fmt"

// BoundPolicy is an immutable hard/soft range over a run length or a count.
//
// Values inside [SoftMin, SoftMax] cost nothing. Values between a hard and a
// soft bound are allowed but penalized linearly per unit of deviation.
// Values outside [HardMin, HardMax] are forbidden outright.
// A penalty of zero disables the soft band at that boundary, so the soft
// bound collapses into the hard one.
type BoundPolicy struct {
	HardMin    int
	SoftMin    int
	MinPenalty int
	SoftMax    int
	HardMax    int
	MaxPenalty int
}

// Validate checks the ordering invariant hardMin <= softMin <= softMax <= hardMax
// and that penalties are non-negative.
func (p BoundPolicy) Validate() error {
	if p.HardMin < 0 {
		return fmt.Errorf("bound policy: hard_min %d must be non-negative", p.HardMin)
	}
	if p.HardMin > p.SoftMin {
		return fmt.Errorf("bound policy: hard_min %d exceeds soft_min %d", p.HardMin, p.SoftMin)
	}
	if p.SoftMin > p.SoftMax {
		return fmt.Errorf("bound policy: soft_min %d exceeds soft_max %d", p.SoftMin, p.SoftMax)
	}
	if p.SoftMax > p.HardMax {
		return fmt.Errorf("bound policy: soft_max %d exceeds hard_max %d", p.SoftMax, p.HardMax)
	}
	if p.MinPenalty < 0 || p.MaxPenalty < 0 {
		return fmt.Errorf("bound policy: penalties must be non-negative (min=%d max=%d)", p.MinPenalty, p.MaxPenalty)
	}
	return nil
}
