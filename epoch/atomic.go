package epoch

// The guard argument only certifies that the caller is pinned; the returned
// pointer must not be used after the guard is unpinned.

func (a *Atomic[T]) Load(g *Guard) *T {
	g.check()
	return a.p.Load()
}

func (a *Atomic[T]) Store(p *T, g *Guard) {
	g.check()
	a.p.Store(p)
}

func (a *Atomic[T]) Swap(p *T, g *Guard) *T {
	g.check()
	return a.p.Swap(p)
}

func (a *Atomic[T]) CompareAndSwap(old, new *T, g *Guard) bool {
	g.check()
	return a.p.CompareAndSwap(old, new)
}
