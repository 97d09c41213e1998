package pool

import "sync/atomic"

func New[T any](fn func() T) *pool[T] {
	return &pool[T]{fn: fn}
}

func (p *pool[T]) Get() T {
	v := p.p.Get()
	if v == nil {
		return p.fn()
	}
	atomic.AddInt64(&p.count, -1)
	return v.(T)
}

func (p *pool[T]) Put(v T) {
	p.p.Put(v)
	atomic.AddInt64(&p.count, 1)
}

// Count may overstate the idle values once the runtime has dropped some.
func (p *pool[T]) Count() int64 {
	return atomic.LoadInt64(&p.count)
}
