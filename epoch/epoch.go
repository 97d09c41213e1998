package epoch

import (
	"os"
	"time"

	"github.com/infinivision/lfstack/constant"
	"github.com/infinivision/lfstack/errmsg"
	"github.com/nnsgmsone/damrey/logger"
)

func DefaultConfig() Config {
	return Config{
		LogWriter:          os.Stderr,
		CollectCycle:       constant.CollectCycle,
		BagCapacity:        constant.BagCapacity,
		PinsBetweenCollect: constant.PinsBetweenCollect,
	}
}

func New(cfg Config) *collector {
	if cfg.BagCapacity <= 0 {
		cfg.BagCapacity = constant.BagCapacity
	}
	if cfg.PinsBetweenCollect <= 0 {
		cfg.PinsBetweenCollect = constant.PinsBetweenCollect
	}
	if cfg.CollectCycle <= 0 {
		cfg.CollectCycle = constant.CollectCycle
	}
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	log := logger.New(cfg.LogWriter, "lfstack")
	log.SetLevel(logger.ERROR)
	c := &collector{
		bagCap: cfg.BagCapacity,
		pinCnt: cfg.PinsBetweenCollect,
		cycle:  cfg.CollectCycle,
		ch:     make(chan struct{}),
		log:    log,
	}
	c.hs.Store(&[]*Handle{})
	return c
}

// Run collects garbage every cycle until Stop is called. It returns at once
// if the collector is already running or stopped.
func (c *collector) Run() {
	if !c.state.CompareAndSwap(stateIdle, stateRunning) {
		return
	}
	ticker := time.NewTicker(c.cycle)
	defer ticker.Stop()
	for {
		select {
		case <-c.ch:
			c.ch <- struct{}{}
			return
		case <-ticker.C:
			c.Collect()
		}
	}
}

// Stop ends the Run loop if one is running. A collector never run is only
// marked stopped.
func (c *collector) Stop() error {
	for {
		switch st := c.state.Load(); st {
		case stateStopped:
			return errmsg.CollectorStopped
		default:
			if !c.state.CompareAndSwap(st, stateStopped) {
				continue
			}
			if st == stateRunning {
				c.ch <- struct{}{}
				<-c.ch
			}
			return nil
		}
	}
}

func (c *collector) Epoch() uint64 {
	return c.epoch.Load()
}

// Pending returns the number of sealed deferred functions not yet run.
func (c *collector) Pending() int {
	return int(c.pending.Load())
}

func (c *collector) Register() *Handle {
	h := &Handle{c: c, fns: make([]func(), 0, c.bagCap)}
	c.mu.Lock()
	defer c.mu.Unlock()
	hs := *c.hs.Load()
	xs := make([]*Handle, len(hs), len(hs)+1)
	copy(xs, hs)
	xs = append(xs, h)
	c.hs.Store(&xs)
	return h
}

// Pin pins an idle handle owned by the collector, registering a new one if
// none is idle. The handle goes back to the idle list on the outermost Unpin.
func (c *collector) Pin() *Guard {
	var h *Handle

	c.mu.Lock()
	if n := len(c.idle); n > 0 {
		h = c.idle[n-1]
		c.idle = c.idle[:n-1]
	}
	c.mu.Unlock()
	if h == nil {
		h = c.Register()
		h.borrowed = true
	}
	return h.Pin()
}

// Collect tries to advance the global epoch and runs every sealed bag that
// is at least two epochs old. It returns the number of functions run.
func (c *collector) Collect() int {
	n := 0
	global := c.tryAdvance()
	for b := c.garbage.Swap(nil); b != nil; {
		next := b.next
		if global >= b.epoch+2 {
			n += c.destroy(b)
		} else {
			c.push(b)
		}
		b = next
	}
	return n
}

// tryAdvance moves the global epoch from e to e+1 if every pinned handle
// is at e.
func (c *collector) tryAdvance() uint64 {
	global := c.epoch.Load()
	for _, h := range *c.hs.Load() {
		if e := h.epoch.Load(); e&constant.Pinned != 0 && e>>1 != global {
			return global
		}
	}
	if c.epoch.CompareAndSwap(global, global+1) {
		return global + 1
	}
	return c.epoch.Load()
}

func (c *collector) push(b *bag) {
	for {
		head := c.garbage.Load()
		b.next = head
		if c.garbage.CompareAndSwap(head, b) {
			return
		}
	}
}

func (c *collector) destroy(b *bag) int {
	for _, fn := range b.fns {
		c.call(fn)
	}
	c.pending.Add(-int64(len(b.fns)))
	return len(b.fns)
}

func (c *collector) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("collector - deferred function panicked: %v\n", r)
		}
	}()
	fn()
}

func (c *collector) unregister(h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hs := *c.hs.Load()
	xs := make([]*Handle, 0, len(hs))
	for _, x := range hs {
		if x != h {
			xs = append(xs, x)
		}
	}
	c.hs.Store(&xs)
}

func (c *collector) giveBack(h *Handle) {
	c.mu.Lock()
	c.idle = append(c.idle, h)
	c.mu.Unlock()
}
