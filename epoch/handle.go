package epoch

import (
	"github.com/infinivision/lfstack/constant"
	"github.com/infinivision/lfstack/errmsg"
)

// Unprotected returns a guard bound to no collector. Functions deferred
// through it run immediately, so it is only safe when no other goroutine can
// reach the memory being retired.
func Unprotected() *Guard {
	return &Guard{raw: true}
}

// Pin marks the handle active in the current global epoch. Pins nest; only
// the outermost guard's Unpin makes the handle inactive again.
func (h *Handle) Pin() *Guard {
	if h.released {
		panic(errmsg.HandleReleased)
	}
	if h.guards++; h.guards == 1 {
		h.epoch.Store(h.c.epoch.Load()<<1 | constant.Pinned)
		if h.pins++; h.pins%h.c.pinCnt == 0 {
			h.c.Collect()
		}
	}
	return &Guard{h: h}
}

func (h *Handle) IsPinned() bool {
	return h.guards > 0
}

// Release seals pending deferred functions and removes the handle from its
// collector.
func (h *Handle) Release() error {
	switch {
	case h.released:
		return errmsg.HandleReleased
	case h.guards > 0:
		return errmsg.HandlePinned
	}
	h.released = true
	h.seal()
	h.c.unregister(h)
	return nil
}

func (h *Handle) seal() {
	if len(h.fns) == 0 {
		return
	}
	b := &bag{epoch: h.c.epoch.Load(), fns: h.fns}
	h.fns = make([]func(), 0, h.c.bagCap)
	h.c.pending.Add(int64(len(b.fns)))
	h.c.push(b)
}

func (h *Handle) unpin() {
	if h.guards--; h.guards > 0 {
		return
	}
	h.epoch.Store(h.epoch.Load() &^ constant.Pinned)
	if h.borrowed {
		h.seal()
		h.c.giveBack(h)
	}
}

// Unpin releases the guard. It is a no-op on an already unpinned guard.
func (g *Guard) Unpin() {
	if h := g.h; h != nil {
		g.h = nil
		h.unpin()
	}
}

// Defer schedules fn to run once no guard that could observe memory
// retired before this call is still pinned.
func (g *Guard) Defer(fn func()) {
	if g.check() {
		fn()
		return
	}
	h := g.h
	if h.fns = append(h.fns, fn); len(h.fns) >= h.c.bagCap {
		h.seal()
	}
}

// Flush seals the handle's deferred functions and runs a collection.
func (g *Guard) Flush() {
	if g.check() {
		return
	}
	g.h.seal()
	g.h.c.Collect()
}

// Epoch returns the global epoch the guard was pinned in, 0 for an
// unprotected guard.
func (g *Guard) Epoch() uint64 {
	if g.check() {
		return 0
	}
	return g.h.epoch.Load() >> 1
}

// check panics on an unpinned guard and reports whether g is unprotected.
func (g *Guard) check() bool {
	switch {
	case g == nil:
		panic(errmsg.GuardUnpinned)
	case g.raw:
		return true
	case g.h == nil:
		panic(errmsg.GuardUnpinned)
	}
	return false
}
