package internal

// ceilingGuard remembers the largest size the pool was seen to reach when
// asked for more. Once set, requests above it are capped to it until the
// mark is cleared explicitly.
type ceilingGuard struct {
	mark  int
	isSet bool
}

func (g *ceilingGuard) Cap(size int) int {
	if g.isSet && size > g.mark {
		return g.mark
	}

	return size
}

func (g *ceilingGuard) Set(size int) {
	g.mark, g.isSet = size, true
}

func (g *ceilingGuard) Clear() {
	g.mark, g.isSet = 0, false
}

func (g *ceilingGuard) Mark() (int, bool) {
	return g.mark, g.isSet
}
