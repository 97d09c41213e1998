package main

import (
	"io"
	"testing"

	"github.com/infinivision/lfstack/epoch"
	"github.com/infinivision/lfstack/errmsg"
	"github.com/infinivision/lfstack/stack"
)

func newCollector() epoch.Collector {
	cfg := epoch.DefaultConfig()
	cfg.LogWriter = io.Discard
	return epoch.New(cfg)
}

func TestRun(t *testing.T) {
	if err := run(newCollector(), stack.New[int](), 16, 500); err != nil {
		t.Fatal(err)
	}
}

func TestCheckNotEmpty(t *testing.T) {
	c := newCollector()
	s := stack.New[int]()
	g := c.Pin()
	s.Push(1, g)
	g.Unpin()
	if err := check(c, s, 0, 0); err != errmsg.StackNotEmpty {
		t.Fatalf("expected %v, got %v", errmsg.StackNotEmpty, err)
	}
}

func TestCheckSumMismatch(t *testing.T) {
	if err := check(newCollector(), stack.New[int](), 2000, 1999); err != errmsg.SumMismatch {
		t.Fatalf("expected %v, got %v", errmsg.SumMismatch, err)
	}
}
