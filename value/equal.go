package value

// Equal reports whether two values are structurally equal. Object comparison
// is key-order independent; array comparison is positional.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.a) != len(b.a) {
			return false
		}
		for i := range a.a {
			if !Equal(a.a[i], b.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.o) != len(b.o) {
			return false
		}
		for k, av := range a.o {
			bv, ok := b.o[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Contains reports whether target appears in the array value arr by
// structural equality. It returns false when arr is not an array.
func Contains(arr, target Value) bool {
	elems, ok := arr.AsArray()
	if !ok {
		return false
	}
	for _, e := range elems {
		if Equal(e, target) {
			return true
		}
	}
	return false
}
