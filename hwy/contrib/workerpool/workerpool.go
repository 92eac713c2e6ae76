// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the persistent worker pool that capnhook
// kernels split large buffers across. A Pool is created once, owned by an
// engine, and reused by every call, so no goroutines are spawned per
// operation.
//
// Two scheduling shapes are offered:
//
//   - ParallelFor hands each worker one contiguous range; used by
//     elementwise kernels where positions are independent.
//   - ParallelChunks cuts [0, n) into chunks whose boundaries depend only on
//     n and the chunk size, never on the worker count or on scheduling.
//     Reductions store one partial per chunk and merge them in chunk order,
//     which keeps floating-point results reproducible run to run.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	partials := make([]float64, workerpool.NumChunks(n, chunk))
//	pool.ParallelChunks(n, chunk, func(c, start, end int) {
//	    partials[c] = sum(data[start:end])
//	})
//
// A nil *Pool is valid and runs everything on the calling goroutine.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu is held shared while a call is handing work to workers and
	// exclusively by Close, so workC is never closed under a sender.
	mu     sync.RWMutex
	closed bool
}

// workItem represents a single unit of work handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool, 1 for a nil pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the worker pool. It waits for calls already handing out
// work; calls made afterwards run on the calling goroutine. Calling Close
// multiple times is safe.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.workC)
	}
}

// acquire reports whether work may be handed to the workers. On true the
// caller must release once every item it sent has completed.
func (p *Pool) acquire() bool {
	if p == nil || p.numWorkers <= 1 {
		return false
	}
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return false
	}
	return true
}

func (p *Pool) release() { p.mu.RUnlock() }

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker. Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.NumWorkers(), n)
	if workers == 1 || !p.acquire() {
		fn(0, n)
		return
	}
	defer p.release()

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// NumChunks returns how many chunks ParallelChunks cuts n items into.
func NumChunks(n, chunkSize int) int {
	if n <= 0 {
		return 0
	}
	if chunkSize <= 0 {
		return 1
	}
	return (n + chunkSize - 1) / chunkSize
}

// ParallelChunks executes fn once per fixed-size chunk of [0, n). Chunk c
// covers [c*chunkSize, min((c+1)*chunkSize, n)). Workers grab chunks with an
// atomic counter, so the chunk-to-worker mapping varies but the chunk
// boundaries never do. Blocks until all chunks complete.
func (p *Pool) ParallelChunks(n, chunkSize int, fn func(chunk, start, end int)) {
	numChunks := NumChunks(n, chunkSize)
	if numChunks == 0 {
		return
	}
	if chunkSize <= 0 {
		chunkSize = n
	}

	workers := min(p.NumWorkers(), numChunks)
	if workers == 1 || !p.acquire() {
		for c := range numChunks {
			start := c * chunkSize
			fn(c, start, min(start+chunkSize, n))
		}
		return
	}
	defer p.release()

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					c := int(next.Add(1)) - 1
					if c >= numChunks {
						return
					}
					start := c * chunkSize
					fn(c, start, min(start+chunkSize, n))
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This balances load when work per item varies, as with the rows
// of an upper-triangular covariance matrix.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	p.ParallelChunks(n, 1, func(c, _, _ int) { fn(c) })
}
