package slope

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) == 0.
func GCD(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// XGCD returns (g, s, t) with g = GCD(a, b) >= 0 and s·a + t·b == g.
func XGCD(a, b int64) (g, s, t int64) {
	oldR, r := a, b
	oldS, s1 := int64(1), int64(0)
	oldT, t1 := int64(0), int64(1)
	for r != 0 {
		q := oldR / r
		oldR, r = r, oldR-q*r
		oldS, s1 = s1, oldS-q*s1
		oldT, t1 = t1, oldT-q*t1
	}
	if oldR < 0 {
		return -oldR, -oldS, -oldT
	}

	return oldR, oldS, oldT
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}

	return x
}
