package slope

import "sort"

// ConeSpanning returns the set of slopes of the positive cone spanned by
// vectors. Zero vectors are ignored.
//
//   - If the vectors lie in an open half-plane the result is the arc
//     between the two extreme rays.
//   - If they span a closed half-plane the result is the complement of the
//     boundary slope.
//
// Returns ErrWholePlane when the positive cone is R², and ErrLineCone when
// it is contained in a line.
func ConeSpanning(vectors [][2]int64) (Set, error) {
	// 1) Drop zero vectors and sort the rest counter-clockwise from +x.
	dirs := make([][2]int64, 0, len(vectors))
	for _, v := range vectors {
		if v != [2]int64{} {
			dirs = append(dirs, v)
		}
	}
	sort.SliceStable(dirs, func(i, j int) bool { return angleLess(dirs[i], dirs[j]) })

	// 2) Collapse vectors pointing the same way.
	uniq := dirs[:0]
	for _, v := range dirs {
		if n := len(uniq); n > 0 && sameDirection(uniq[n-1], v) {
			continue
		}
		uniq = append(uniq, v)
	}

	// 3) Line or point cones are degenerate.
	collinear := true
	for _, v := range uniq {
		if cross(uniq[0], v) != 0 {
			collinear = false
			break
		}
	}
	if collinear {
		return Set{}, ErrLineCone
	}

	// 4) Classify the angular gap between neighbors.
	half := -1
	for i, a := range uniq {
		b := uniq[(i+1)%len(uniq)]
		switch c := cross(a, b); {
		case c < 0:
			// Gap wider than π: the cone runs from b round to a.
			sum := [2]int64{a[0] + b[0], a[1] + b[1]}

			return NewCone(Of(b), Of(a), WithContains(Of(sum)))
		case c == 0:
			half = i
		}
	}
	if half >= 0 {
		return PointComplement(Of(uniq[half])), nil
	}

	return Set{}, ErrWholePlane
}

func cross(a, b [2]int64) int64 { return a[0]*b[1] - a[1]*b[0] }

// upper reports whether v lies in the half-open upper half-plane [0, π).
func upper(v [2]int64) bool {
	return v[1] > 0 || (v[1] == 0 && v[0] > 0)
}

func angleLess(a, b [2]int64) bool {
	ua, ub := upper(a), upper(b)
	if ua != ub {
		return ua
	}

	return cross(a, b) > 0
}

func sameDirection(a, b [2]int64) bool {
	return cross(a, b) == 0 && a[0]*b[0]+a[1]*b[1] > 0
}
