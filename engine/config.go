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

package engine

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvWorkers           = "CAPNHOOK_WORKERS"
	EnvParallelThreshold = "CAPNHOOK_PARALLEL_THRESHOLD"
	EnvReductionChunk    = "CAPNHOOK_REDUCTION_CHUNK"
)

const (
	// DefaultParallelThreshold is the element count at which operations
	// start using the worker pool.
	DefaultParallelThreshold = 1 << 15

	// DefaultReductionChunk is the number of elements each partial of a
	// chunked reduction covers.
	DefaultReductionChunk = 1 << 14
)

// Config is the execution configuration of an Engine. It is copied into the
// Engine by New and never changes afterwards.
type Config struct {
	// Workers is the size of the worker pool. 1 disables parallelism.
	Workers int

	// ParallelThreshold is the minimum number of elements an operation
	// must touch before it is split across the pool.
	ParallelThreshold int

	// ReductionChunk fixes the chunk boundaries of every reduction. Results
	// are bit-reproducible for a given input and ReductionChunk, whatever
	// the worker count.
	ReductionChunk int
}

// DefaultConfig returns a Config using every available CPU.
func DefaultConfig() Config {
	return Config{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: DefaultParallelThreshold,
		ReductionChunk:    DefaultReductionChunk,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the CAPNHOOK_*
// environment variables. Unset or empty variables keep their default.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvWorkers, &cfg.Workers},
		{EnvParallelThreshold, &cfg.ParallelThreshold},
		{EnvReductionChunk, &cfg.ReductionChunk},
	} {
		val := os.Getenv(v.name)
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, v.name, val, err)
		}
		*v.dst = n
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first field out of range.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: Workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	case c.ParallelThreshold < 1:
		return fmt.Errorf("%w: ParallelThreshold must be >= 1, got %d", ErrInvalidConfig, c.ParallelThreshold)
	case c.ReductionChunk < 1:
		return fmt.Errorf("%w: ReductionChunk must be >= 1, got %d", ErrInvalidConfig, c.ReductionChunk)
	}
	return nil
}
