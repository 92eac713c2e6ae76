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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, DefaultParallelThreshold, cfg.ParallelThreshold)
	assert.Equal(t, DefaultReductionChunk, cfg.ReductionChunk)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvParallelThreshold, "4096")
	t.Setenv(EnvReductionChunk, "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{Workers: 3, ParallelThreshold: 4096, ReductionChunk: DefaultReductionChunk}, cfg)
}

func TestConfigFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name, env, value string
	}{
		{"not a number", EnvWorkers, "many"},
		{"zero workers", EnvWorkers, "0"},
		{"negative threshold", EnvParallelThreshold, "-1"},
		{"zero chunk", EnvReductionChunk, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := ConfigFromEnv()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("names the variable", func(t *testing.T) {
		t.Setenv(EnvReductionChunk, "1k")
		_, err := ConfigFromEnv()
		assert.ErrorContains(t, err, EnvReductionChunk)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Workers: 1, ParallelThreshold: 1, ReductionChunk: 1}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Config){
		"workers":   func(c *Config) { c.Workers = 0 },
		"threshold": func(c *Config) { c.ParallelThreshold = 0 },
		"chunk":     func(c *Config) { c.ReductionChunk = -5 },
	} {
		cfg := valid
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
}
