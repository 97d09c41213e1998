package constant

import "time"

var (
	CollectCycle = 100 * time.Millisecond
)

const (
	BagCapacity        = 64  // deferred functions per local bag
	PinsBetweenCollect = 128 // pins on one handle between collection attempts
)

const (
	SpinLimit  = 6 // 2^6 spins before yielding
	YieldLimit = 10
)

const (
	Pinned = uint64(1)
)
