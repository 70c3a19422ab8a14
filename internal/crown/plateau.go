package crown

import (
	"fmt"
	"math"
)

// Tolerance is the largest absolute difference for which two values still
// count as the same plateau height.
const Tolerance = 1e-5

// discover returns the arena index of the plateau that start belongs to.
//
// Growing from start either completes a new plateau or hands off to another
// pixel: a strictly higher one (a shelf leading up), or, when the flood ends
// without meeting one, an equal pixel already mapped to a plateau. Hand-offs
// are followed in a loop, and every unmapped pixel collected along the way is
// memoized to the plateau the chain ends in.
func (r *run) discover(start int) (int, error) {
	var pending []int
	cur := start
	for hops := 0; ; hops++ {
		if p := r.memo[cur]; p >= 0 {
			return r.settle(pending, p), nil
		}
		if hops > r.opts.MaxChainDepth {
			return -1, fmt.Errorf("%w: more than %d shelves above row %d, col %d",
				ErrChainDepthExceeded, r.opts.MaxChainDepth, start/r.width, start%r.width)
		}

		members, next, err := r.grow(cur)
		if err != nil {
			return -1, err
		}
		if next < 0 {
			p := len(r.plateaus)
			r.plateaus = append(r.plateaus, members)
			r.labelOf = append(r.labelOf, 0)
			r.settle(members, p)
			return r.settle(pending, p), nil
		}
		pending = append(pending, members...)
		cur = next
	}
}

// settle maps every unmapped pixel in members to plateau p.
func (r *run) settle(members []int, p int) int {
	for _, m := range members {
		if r.memo[m] < 0 {
			r.memo[m] = p
		}
	}
	return p
}

// grow floods outward from start in breadth-first rounds, collecting pixels
// whose values equal the start value within Tolerance. A pixel is collected
// once and expanded once, as part of the frontier that added it.
//
// next is the first strictly higher pixel met, which stops the flood. Equal
// pixels that already belong to a plateau are collected like any other; if
// the flood completes without meeting a higher pixel, next is the first of
// them, or -1 when there was none. members is what had been collected by then.
func (r *run) grow(start int) (members []int, next int, err error) {
	base, err := r.value(start)
	if err != nil {
		return nil, -1, err
	}

	r.stamp++
	r.seen[start] = r.stamp
	members = []int{start}
	frontier := []int{start}
	mapped := -1

	for len(frontier) > 0 {
		var added []int
		for _, idx := range frontier {
			y0, y1, x0, x1 := r.window(idx, r.opts.PlateauRadius)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					n := y*r.width + x
					v, err := r.value(n)
					if err != nil {
						return nil, -1, err
					}
					if v > base {
						return members, n, nil
					}
					if r.seen[n] == r.stamp || math.Abs(base-v) >= Tolerance {
						continue
					}
					if mapped < 0 && r.memo[n] >= 0 {
						mapped = n
					}
					r.seen[n] = r.stamp
					members = append(members, n)
					added = append(added, n)
				}
			}
		}
		frontier = added
	}
	return members, mapped, nil
}
