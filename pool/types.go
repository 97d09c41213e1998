package pool

import "sync"

type Pool[T any] interface {
	Get() T
	Put(T)
	Count() int64
}

type pool[T any] struct {
	count int64 // idle values, approximate
	fn    func() T
	p     sync.Pool
}
