// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine is the validated entry point to the capnhook kernels.
//
// Callers wrap their slices in Buffer descriptors and call methods on an
// Engine:
//
//	e, err := engine.New(engine.DefaultConfig())
//	if err != nil { ... }
//	defer e.Close()
//
//	sum, err := e.Add(engine.Float32s(a), engine.Float32s(b))
//	mean, err := e.Mean(engine.Float64s(x))
//
// Every precondition (dtype, rank, length, output size) is checked before a
// kernel runs, and a violation is reported as an *OpError without touching
// any output. Kernels in hwy/contrib assume validated input and panic
// otherwise; the engine never lets user input reach those panics.
//
// An Engine holds only its Config and worker pool, so it is safe for
// concurrent use on disjoint output buffers.
package engine

import "github.com/capnhook/capnhook/hwy/contrib/workerpool"

// Engine dispatches operations to the kernels.
type Engine struct {
	cfg  Config
	pool *workerpool.Pool
}

// New validates cfg and starts the worker pool.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	if cfg.Workers > 1 {
		e.pool = workerpool.New(cfg.Workers)
	}
	return e, nil
}

// Close stops the worker pool once in-flight operations have handed out
// their work. Operations called after Close still work, sequentially. Close
// is idempotent.
func (e *Engine) Close() {
	e.pool.Close()
}

// Config returns the configuration the Engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// poolFor returns the pool for an operation touching n elements, or nil to
// run on the calling goroutine.
func (e *Engine) poolFor(n int) *workerpool.Pool {
	if n < e.cfg.ParallelThreshold {
		return nil
	}
	return e.pool
}
