// Package batch fans independent Encode calls out across a
// caller-supplied goroutine pool: each encode call stays single-
// threaded and synchronous, while callers may run many encodings in
// parallel at the call-site level.
package batch

import (
	"sync/atomic"

	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"
	concpool "github.com/sourcegraph/conc/pool"
)

// Pool is the common submission interface every supported goroutine
// pool library is adapted to: a single Go(f) method lets EncodeMany
// stay agnostic to which concurrency primitive actually runs the
// task.
type Pool interface {
	Go(f func())
}

type funcPool func(f func())

func (p funcPool) Go(f func()) { p(f) }

var currentDefault atomic.Value

func init() {
	currentDefault.Store(Unbounded())
}

// DefaultPool returns the pool EncodeMany falls back to when the
// caller passes nil.
func DefaultPool() Pool {
	return currentDefault.Load().(Pool)
}

// SetDefaultPool replaces the package-level default pool. A nil pool
// is ignored.
func SetDefaultPool(pool Pool) {
	if pool != nil {
		currentDefault.Store(pool)
	}
}

// Unbounded launches one goroutine per submission with no concurrency
// cap, recovering from any panic in the submitted function so one bad
// encode can't take down the caller's process.
func Unbounded() Pool {
	return funcPool(func(f func()) {
		go func() {
			defer func() { recover() }()
			f()
		}()
	})
}

// FromWorkerpool adapts a github.com/gammazero/workerpool.WorkerPool,
// whose fixed goroutine count bounds how many encodes run at once.
func FromWorkerpool(wp *workerpool.WorkerPool) Pool {
	if wp == nil {
		panic("batch: workerpool.WorkerPool is nil")
	}
	return funcPool(func(f func()) { wp.Submit(f) })
}

// FromAnts adapts a github.com/panjf2000/ants/v2.Pool.
func FromAnts(p *ants.Pool) Pool {
	if p == nil {
		panic("batch: ants.Pool is nil")
	}
	return funcPool(func(f func()) { _ = p.Submit(f) })
}

// FromConc adapts a github.com/sourcegraph/conc/pool.Pool.
func FromConc(p *concpool.Pool) Pool {
	if p == nil {
		panic("batch: conc/pool.Pool is nil")
	}
	return funcPool(func(f func()) { p.Go(f) })
}
