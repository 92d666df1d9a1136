package mathhelp

import "golang.org/x/exp/constraints"

// BetweenInc reports whether f lies between p and q (inclusive), in either order.
// NaN is never between anything.
func BetweenInc[T constraints.Ordered](f, p, q T) bool {
	if p <= q {
		return p <= f && f <= q
	}
	return q <= f && f <= p
}

func Bool2int(b bool) int {
	if b {
		return 1
	}
	return 0
}
