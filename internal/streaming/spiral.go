package streaming

// column is a chunk column in x/z
type column struct {
	X, Z int
}

// spiral lists the columns within radius of (cx, cz) ring by ring, nearest first.
// Each ring is walked along z0, down x1, back along z1 and up x0.
func spiral(cx, cz, radius int) []column {
	out := make([]column, 0, (2*radius+1)*(2*radius+1))
	out = append(out, column{cx, cz})
	for r := 1; r <= radius; r++ {
		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r
		for x := x0; x <= x1; x++ {
			out = append(out, column{x, z0})
		}
		for z := z0 + 1; z <= z1-1; z++ {
			out = append(out, column{x1, z})
		}
		for x := x1; x >= x0; x-- {
			out = append(out, column{x, z1})
		}
		for z := z1 - 1; z >= z0+1; z-- {
			out = append(out, column{x0, z})
		}
	}
	return out
}

// reversed returns the spiral outermost first, the order a LIFO must be fed in
// for the innermost column to come out first.
func reversed(cols []column) []column {
	out := make([]column, len(cols))
	for i, c := range cols {
		out[len(cols)-1-i] = c
	}
	return out
}
