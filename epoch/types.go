package epoch

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nnsgmsone/damrey/logger"
	"golang.org/x/sys/cpu"
)

/*
Collector is the reclamation service shared by every structure whose nodes
it retires. A goroutine pins a guard before touching shared memory; functions
deferred through that guard run only after every guard pinned at the time of
the defer has been unpinned. Collector is thread-safe, Handle and Guard are
owned by a single goroutine.
*/
type Collector interface {
	Run()
	Stop() error
	Collect() int
	Epoch() uint64
	Pending() int
	Pin() *Guard
	Register() *Handle
}

type Config struct {
	BagCapacity        int // deferred functions sealed together
	PinsBetweenCollect int
	LogWriter          io.Writer
	CollectCycle       time.Duration
}

// Handle is one participant of a collector.
type Handle struct {
	epoch    atomic.Uint64 // epoch<<1 | pinned
	guards   int           // nesting depth
	pins     int
	borrowed bool // handed out by collector.Pin
	released bool
	fns      []func()
	c        *collector
}

// Guard keeps its handle pinned until Unpin.
type Guard struct {
	raw bool // unprotected, deferred functions run at once
	h   *Handle
}

// Atomic is a pointer slot whose loads and updates must happen under a
// pinned guard.
type Atomic[T any] struct {
	p atomic.Pointer[T]
}

type bag struct {
	epoch uint64 // global epoch when sealed
	fns   []func()
	next  *bag
}

const (
	stateIdle = iota
	stateRunning
	stateStopped
)

type collector struct {
	_       cpu.CacheLinePad
	epoch   atomic.Uint64 // global epoch
	_       cpu.CacheLinePad
	pending atomic.Int64
	state   atomic.Int32
	bagCap  int
	pinCnt  int
	cycle   time.Duration
	garbage atomic.Pointer[bag]
	hs      atomic.Pointer[[]*Handle]
	mu      sync.Mutex // registry writes and idle
	idle    []*Handle
	ch      chan struct{}
	log     logger.Log
}
