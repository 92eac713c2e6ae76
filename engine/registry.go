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
	"slices"

	"github.com/samber/lo"
)

// ResultKind says which field of a Result carries the output.
type ResultKind int

const (
	// ResultNone marks operations that write into a caller buffer.
	ResultNone ResultKind = iota
	// ResultScalar marks reductions and statistics.
	ResultScalar
	// ResultBuffer marks operations returning a new buffer.
	ResultBuffer
)

func (k ResultKind) String() string {
	switch k {
	case ResultScalar:
		return "scalar"
	case ResultBuffer:
		return "buffer"
	default:
		return "in-place"
	}
}

// Result is the output of Call.
type Result struct {
	Kind   ResultKind
	Scalar float64
	Buffer Buffer
}

// OpInfo describes a registered operation.
type OpInfo struct {
	Name string
	// Arity is the number of Buffer arguments Call expects, or -1 for
	// covMatrix and corrMatrix, which take an output followed by one or
	// more vectors.
	Arity  int
	DTypes []DType
	Result ResultKind
}

type operation struct {
	info OpInfo
	call func(e *Engine, args []Buffer) (Result, error)
}

var registry = map[string]operation{
	opAdd:            bufferOp2(numericTypes, (*Engine).Add),
	opSub:            bufferOp2(numericTypes, (*Engine).Sub),
	opMul:            bufferOp2(numericTypes, (*Engine).Mul),
	opDiv:            bufferOp2(numericTypes, (*Engine).Div),
	opExp:            bufferOp1(floatTypes, (*Engine).Exp),
	opLog:            bufferOp1(floatTypes, (*Engine).Log),
	opSqrt:           bufferOp1(floatTypes, (*Engine).Sqrt),
	opSin:            bufferOp1(floatTypes, (*Engine).Sin),
	opCos:            bufferOp1(floatTypes, (*Engine).Cos),
	opReLU:           bufferOp1(floatTypes, (*Engine).ReLU),
	opSoftmax:        bufferOp1(floatTypes, (*Engine).Softmax),
	opLogSoftmax:     bufferOp1(floatTypes, (*Engine).LogSoftmax),
	opSoftmaxRows:    bufferOp1(floatTypes, (*Engine).SoftmaxRows),
	opSum:            scalarOp1(numericTypes, (*Engine).Sum),
	opMean:           scalarOp1(numericTypes, (*Engine).Mean),
	opMax:            scalarOp1(numericTypes, (*Engine).Max),
	opMin:            scalarOp1(numericTypes, (*Engine).Min),
	opMedian:         scalarOp1(numericTypes, (*Engine).Median),
	opMode:           scalarOp1(numericTypes, (*Engine).Mode),
	opVariance:       scalarOp1(numericTypes, (*Engine).Variance),
	opStdDev:         scalarOp1(numericTypes, (*Engine).StdDev),
	opDot:            scalarOp2(numericTypes, (*Engine).Dot),
	opMatMul:         bufferOp2(numericTypes, (*Engine).MatMul),
	opNorm:           scalarOp1(numericTypes, (*Engine).Norm),
	opTrace:          scalarOp1(numericTypes, (*Engine).Trace),
	opTranspose:      bufferOp1(numericTypes, (*Engine).Transpose),
	opCovariance:     scalarOp2(numericTypes, (*Engine).Covariance),
	opCorrelation:    scalarOp2(numericTypes, (*Engine).Correlation),
	opCovMatrix:      matrixOp(numericTypes, (*Engine).CovMatrix),
	opCorrMatrix:     matrixOp(numericTypes, (*Engine).CorrMatrix),
	opHistogram:      inPlaceOp3(numericTypes, (*Engine).Histogram),
	opHistogramExact: inPlaceOp3(numericTypes, (*Engine).HistogramExact),
}

func bufferOp1(dts dtypeSet, fn func(*Engine, Buffer) (Buffer, error)) operation {
	return operation{
		info: OpInfo{Arity: 1, DTypes: dts.list(), Result: ResultBuffer},
		call: func(e *Engine, args []Buffer) (Result, error) {
			out, err := fn(e, args[0])
			return Result{Kind: ResultBuffer, Buffer: out}, err
		},
	}
}

func bufferOp2(dts dtypeSet, fn func(*Engine, Buffer, Buffer) (Buffer, error)) operation {
	return operation{
		info: OpInfo{Arity: 2, DTypes: dts.list(), Result: ResultBuffer},
		call: func(e *Engine, args []Buffer) (Result, error) {
			out, err := fn(e, args[0], args[1])
			return Result{Kind: ResultBuffer, Buffer: out}, err
		},
	}
}

func scalarOp1(dts dtypeSet, fn func(*Engine, Buffer) (float64, error)) operation {
	return operation{
		info: OpInfo{Arity: 1, DTypes: dts.list(), Result: ResultScalar},
		call: func(e *Engine, args []Buffer) (Result, error) {
			v, err := fn(e, args[0])
			return Result{Kind: ResultScalar, Scalar: v}, err
		},
	}
}

func scalarOp2(dts dtypeSet, fn func(*Engine, Buffer, Buffer) (float64, error)) operation {
	return operation{
		info: OpInfo{Arity: 2, DTypes: dts.list(), Result: ResultScalar},
		call: func(e *Engine, args []Buffer) (Result, error) {
			v, err := fn(e, args[0], args[1])
			return Result{Kind: ResultScalar, Scalar: v}, err
		},
	}
}

func inPlaceOp3(dts dtypeSet, fn func(*Engine, Buffer, Buffer, Buffer) error) operation {
	return operation{
		info: OpInfo{Arity: 3, DTypes: dts.list(), Result: ResultNone},
		call: func(e *Engine, args []Buffer) (Result, error) {
			return Result{}, fn(e, args[0], args[1], args[2])
		},
	}
}

func matrixOp(dts dtypeSet, fn func(*Engine, Buffer, ...Buffer) error) operation {
	return operation{
		info: OpInfo{Arity: -1, DTypes: dts.list(), Result: ResultNone},
		call: func(e *Engine, args []Buffer) (Result, error) {
			return Result{}, fn(e, args[0], args[1:]...)
		},
	}
}

// list returns the members of s in dtype order.
func (s dtypeSet) list() []DType {
	return lo.Filter([]DType{Float32, Float64, Int32, Uint}, func(dt DType, _ int) bool {
		return s.has(dt)
	})
}

// Operations returns the names accepted by Call, sorted.
func Operations() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// Describe returns the signature of the named operation.
func Describe(name string) (OpInfo, bool) {
	op, ok := registry[name]
	if !ok {
		return OpInfo{}, false
	}
	info := op.info
	info.Name = name
	info.DTypes = slices.Clone(info.DTypes)
	return info, true
}

// Supports reports whether Call accepts name.
func (e *Engine) Supports(name string) bool {
	_, ok := registry[name]
	return ok
}

// Call runs the named operation on args, in the order of the corresponding
// method's parameters. Unknown names return ErrUnsupportedOperation.
func (e *Engine) Call(name string, args ...Buffer) (Result, error) {
	op, ok := registry[name]
	if !ok {
		return Result{}, opError(name, ErrUnsupportedOperation, "no operation named %q", name)
	}
	switch arity := op.info.Arity; {
	case arity < 0 && len(args) < 2:
		return Result{}, opError(name, ErrInvalidBuffer, "want an output and at least one vector, got %d operands", len(args))
	case arity >= 0 && len(args) != arity:
		return Result{}, opError(name, ErrInvalidBuffer, "want %d operands, got %d", arity, len(args))
	}
	return op.call(e, args)
}
