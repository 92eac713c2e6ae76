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
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by an Engine operation wraps exactly
// one of these in an *OpError; test with errors.Is.
var (
	// ErrShapeMismatch indicates operands whose lengths or shapes differ.
	ErrShapeMismatch = errors.New("engine: shape mismatch")

	// ErrDimensionMismatch indicates incompatible matrix dimensions: the
	// inner dimensions of a product, a non-square trace operand or an output
	// matrix of the wrong size.
	ErrDimensionMismatch = errors.New("engine: dimension mismatch")

	// ErrInvalidBuffer indicates a zero or ill-formed descriptor, a buffer of
	// the wrong rank, an unsized output or invalid histogram edges.
	ErrInvalidBuffer = errors.New("engine: invalid buffer")

	// ErrEmptyBuffer indicates an empty input where at least one element is
	// required.
	ErrEmptyBuffer = errors.New("engine: empty buffer")

	// ErrDTypeMismatch indicates operands of different element types.
	ErrDTypeMismatch = errors.New("engine: dtype mismatch")

	// ErrUnsupportedDType indicates an element type the operation does not
	// implement.
	ErrUnsupportedDType = errors.New("engine: unsupported dtype")

	// ErrUnsupportedOperation indicates an unknown operation name.
	ErrUnsupportedOperation = errors.New("engine: unsupported operation")

	// ErrInvalidConfig indicates a Config field out of range.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

// OpError records a failed operation and the precondition it violated.
type OpError struct {
	Op     string // operation name, as listed by Operations
	Err    error  // one of the sentinels above
	Detail string // human-readable context, may be empty
}

func (e *OpError) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error() + ": " + e.Detail
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, err error, format string, args ...any) error {
	return &OpError{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)}
}
