// Package pool runs the engine's data-parallel work on one process-wide set
// of worker goroutines.
package pool

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"pkg.jsn.cam/zipfkeys/pkg/zipfkeys"
)

// Pool is a fixed set of worker goroutines fed from a task queue.
type Pool struct {
	tasks chan func()
	size  int
}

var (
	defaultPool *Pool
	defaultSize int
	once        sync.Once
	sizeMu      sync.Mutex
)

// Init sets the worker count of the process-wide pool and starts it. It
// returns false when the pool was already running, in which case the
// existing size is kept. workers <= 0 means GOMAXPROCS.
func Init(workers int) bool {
	sizeMu.Lock()
	defaultSize = workers
	sizeMu.Unlock()

	started := false
	once.Do(func() {
		start()
		started = true
	})
	return started
}

// Default returns the process-wide pool, starting it on first use.
func Default() *Pool {
	once.Do(start)
	return defaultPool
}

func start() {
	sizeMu.Lock()
	n := defaultSize
	sizeMu.Unlock()
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	defaultPool = New(n)
	zipfkeys.Logger().Debug("worker pool started", zap.Int("workers", n))
}

// New starts a pool with n workers. Pools are never stopped; the engine
// keeps exactly one for the life of the process.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		tasks: make(chan func(), n),
		size:  n,
	}
	for range n {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for task := range p.tasks {
		task()
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Run calls fn(i) for every i in [0, n) on the workers and returns once all
// calls have finished. If any call panics, Run panics on the calling
// goroutine with the first recovered value after the rest have finished.
//
// fn must not call Run on the same pool.
func (p *Pool) Run(n int, fn func(i int)) {
	switch {
	case n <= 0:
		return
	case n == 1:
		fn(0)
		return
	}

	var (
		wg       sync.WaitGroup
		panicMu  sync.Mutex
		panicked any
	)
	wg.Add(n)
	for i := range n {
		p.tasks <- func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					panicMu.Lock()
					if panicked == nil {
						panicked = v
					}
					panicMu.Unlock()
				}
			}()
			fn(i)
		}
	}
	wg.Wait()

	if panicked != nil {
		panic(fmt.Sprintf("pool task panicked: %v", panicked))
	}
}

// Run executes fn over [0, n) on the process-wide pool.
func Run(n int, fn func(i int)) {
	Default().Run(n, fn)
}

// Chunks splits a length into consecutive [start, end) ranges of at most
// size elements.
func Chunks(length, size int) [][2]int {
	if size < 1 {
		size = 1
	}
	out := make([][2]int, 0, (length+size-1)/size)
	for start := 0; start < length; start += size {
		out = append(out, [2]int{start, min(start+size, length)})
	}
	return out
}
