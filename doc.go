/*
Package lfstack implements a lock-free LIFO stack in pure Go. Nodes removed
from the stack are recycled through an epoch-based reclamation service, so a
node is only reused once no goroutine pinned at the time of its removal can
still be reading it.
*/
package lfstack
