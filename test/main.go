package main

import (
	"flag"
	"os"
	"sync"
	"sync/atomic"

	"github.com/infinivision/lfstack/epoch"
	"github.com/infinivision/lfstack/errmsg"
	"github.com/infinivision/lfstack/stack"
	"github.com/nnsgmsone/damrey/logger"
)

func main() {
	m := flag.Int("m", 1000, "number of readers and of writers")
	n := flag.Int("n", 1000, "items pushed by each writer")
	flag.Parse()

	log := logger.New(os.Stderr, "lfstack")
	log.SetLevel(logger.PANIC)
	c := epoch.New(epoch.DefaultConfig())
	go c.Run()
	defer c.Stop()
	if err := run(c, stack.New[int](), *m, *n); err != nil {
		log.Fatalf("%v\n", err)
	}
}

// run starts m writers pushing n ones each and m readers popping until each
// has summed n, then checks every value was accounted for and s is empty.
func run(c epoch.Collector, s stack.Stack[int], m, n int) error {
	var wg sync.WaitGroup
	var total int64

	for i := 0; i < m; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g := c.Pin()
			defer g.Unpin()
			sum := 0
			for sum < n {
				if v := s.Pop(g); v != nil {
					sum += *v
				}
			}
			atomic.AddInt64(&total, int64(sum))
		}()
		go func() {
			defer wg.Done()
			g := c.Pin()
			defer g.Unpin()
			for j := 0; j < n; j++ {
				s.Push(1, g)
			}
		}()
	}
	wg.Wait()
	return check(c, s, int64(m)*int64(n), atomic.LoadInt64(&total))
}

func check(c epoch.Collector, s stack.Stack[int], want, got int64) error {
	if got != want {
		return errmsg.SumMismatch
	}
	g := c.Pin()
	defer g.Unpin()
	if v := s.Pop(g); v != nil {
		return errmsg.StackNotEmpty
	}
	return nil
}
