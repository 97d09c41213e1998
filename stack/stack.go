package stack

import (
	"runtime"

	"github.com/infinivision/lfstack/constant"
	"github.com/infinivision/lfstack/epoch"
	"github.com/infinivision/lfstack/pool"
)

func New[T any]() *stack[T] {
	return &stack[T]{
		nodes: pool.New(func() *node[T] { return new(node[T]) }),
	}
}

func (s *stack[T]) IsEmpty(g *epoch.Guard) bool {
	return s.head.Load(g) == nil
}

func (s *stack[T]) Peek(g *epoch.Guard) *T {
	if n := s.head.Load(g); n != nil {
		return &n.item
	}
	return nil
}

func (s *stack[T]) Push(item T, g *epoch.Guard) {
	n := s.nodes.Get()
	n.item = item
	for i := 0; ; i = backoff(i) {
		head := s.head.Load(g)
		n.next = head
		if s.head.CompareAndSwap(head, n, g) {
			return
		}
	}
}

// Pop unlinks the head node and hands it to g for recycling. It returns nil
// when the stack is empty.
func (s *stack[T]) Pop(g *epoch.Guard) *T {
	for i := 0; ; i = backoff(i) {
		head := s.head.Load(g)
		if head == nil {
			return nil
		}
		if s.head.CompareAndSwap(head, head.next, g) {
			g.Defer(func() { s.reclaim(head) })
			return &head.item
		}
	}
}

// Clear unlinks every node at once and hands each to g, returning how many
// were removed. With epoch.Unprotected the nodes are recycled immediately.
func (s *stack[T]) Clear(g *epoch.Guard) int {
	n := 0
	for head := s.head.Swap(nil, g); head != nil; n++ {
		next, x := head.next, head
		g.Defer(func() { s.reclaim(x) })
		head = next
	}
	return n
}

func (s *stack[T]) reclaim(n *node[T]) {
	var zero T

	n.item, n.next = zero, nil
	s.freed.Add(1)
	s.nodes.Put(n)
}

// backoff spins 2^i times, yielding the processor once spinning stops
// paying off.
func backoff(i int) int {
	if i < constant.SpinLimit {
		for j := 0; j < 1<<i; j++ {
		}
	} else {
		runtime.Gosched()
	}
	if i < constant.YieldLimit {
		i++
	}
	return i
}
