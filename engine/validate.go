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

// Operation names, as accepted by Call.
const (
	opAdd            = "add"
	opSub            = "sub"
	opMul            = "mul"
	opDiv            = "div"
	opExp            = "exp"
	opLog            = "log"
	opSqrt           = "sqrt"
	opSin            = "sin"
	opCos            = "cos"
	opReLU           = "relu"
	opSoftmax        = "softmax"
	opLogSoftmax     = "logsoftmax"
	opSoftmaxRows    = "softmaxRows"
	opSum            = "sum"
	opMean           = "mean"
	opMax            = "max"
	opMin            = "min"
	opMedian         = "median"
	opMode           = "mode"
	opVariance       = "variance"
	opStdDev         = "stddev"
	opDot            = "dot"
	opMatMul         = "matmul"
	opNorm           = "norm"
	opTrace          = "trace"
	opTranspose      = "transpose"
	opCovariance     = "covariance"
	opCorrelation    = "correlation"
	opCovMatrix      = "covMatrix"
	opCorrMatrix     = "corrMatrix"
	opHistogram      = "histogram"
	opHistogramExact = "histogramExact"
)

// checkValid rejects zero descriptors.
func checkValid(op string, bufs ...Buffer) error {
	for i, b := range bufs {
		if b.IsZero() {
			return opError(op, ErrInvalidBuffer, "operand %d is not a valid buffer", i)
		}
	}
	return nil
}

// checkDType rejects a dtype outside allowed.
func checkDType(op string, b Buffer, allowed dtypeSet) error {
	if !allowed.has(b.dtype) {
		return opError(op, ErrUnsupportedDType, "%s", b.dtype)
	}
	return nil
}

// checkSameDType rejects operands whose dtype differs from the first.
func checkSameDType(op string, bufs ...Buffer) error {
	for _, b := range bufs[1:] {
		if b.dtype != bufs[0].dtype {
			return opError(op, ErrDTypeMismatch, "%s vs %s", bufs[0].dtype, b.dtype)
		}
	}
	return nil
}

// checkSameLen rejects operands whose length differs from the first.
func checkSameLen(op string, bufs ...Buffer) error {
	for _, b := range bufs[1:] {
		if b.Len() != bufs[0].Len() {
			return opError(op, ErrShapeMismatch, "%s vs %s", bufs[0], b)
		}
	}
	return nil
}

func checkNonEmpty(op string, b Buffer) error {
	if b.Len() == 0 {
		return opError(op, ErrEmptyBuffer, "%s", b)
	}
	return nil
}

// checkOperands runs the checks shared by every operation over same-typed
// inputs: valid descriptors, one dtype, an allowed dtype and equal lengths.
func checkOperands(op string, allowed dtypeSet, bufs ...Buffer) error {
	if err := checkValid(op, bufs...); err != nil {
		return err
	}
	if err := checkSameDType(op, bufs...); err != nil {
		return err
	}
	if err := checkDType(op, bufs[0], allowed); err != nil {
		return err
	}
	return checkSameLen(op, bufs...)
}

// checkOutput validates a caller-provided output for an operation whose
// result has src's dtype and length.
func checkOutput(op string, out, src Buffer) error {
	if out.IsZero() {
		return opError(op, ErrInvalidBuffer, "output is not a valid buffer")
	}
	if out.dtype != src.dtype {
		return opError(op, ErrDTypeMismatch, "output %s, operand %s", out.dtype, src.dtype)
	}
	if out.Len() != src.Len() {
		return opError(op, ErrShapeMismatch, "output %s, operand %s", out, src)
	}
	return nil
}
