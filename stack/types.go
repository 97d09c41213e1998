package stack

import (
	"sync/atomic"

	"github.com/infinivision/lfstack/epoch"
	"github.com/infinivision/lfstack/pool"
	"golang.org/x/sys/cpu"
)

/*
Stack is a lock-free LIFO stack. Every operation takes a pinned guard;
pointers returned by Pop and Peek alias the node's item and stay valid only
until that guard is unpinned.
*/
type Stack[T any] interface {
	IsEmpty(*epoch.Guard) bool
	Push(T, *epoch.Guard)
	Pop(*epoch.Guard) *T
	Peek(*epoch.Guard) *T
	Clear(*epoch.Guard) int
}

type node[T any] struct {
	item T
	next *node[T]
}

type stack[T any] struct {
	_     cpu.CacheLinePad
	head  epoch.Atomic[node[T]]
	_     cpu.CacheLinePad
	freed atomic.Uint64 // reclaimed nodes
	nodes pool.Pool[*node[T]]
}
