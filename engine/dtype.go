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

// DType identifies the element type of a Buffer.
type DType int

const (
	// Invalid is the dtype of the zero Buffer.
	Invalid DType = iota
	// Float32 is a 32-bit IEEE float.
	Float32
	// Float64 is a 64-bit IEEE float.
	Float64
	// Int32 is a 32-bit signed integer.
	Int32
	// Uint is the platform unsigned integer, used for histogram counts.
	Uint
)

// Size returns the size of one element in bytes.
func (dt DType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	case Uint:
		return uintSize
	default:
		return 0
	}
}

// String returns the lowercase dtype name.
func (dt DType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Uint:
		return "uint"
	default:
		return "invalid"
	}
}

// IsFloat reports whether dt is Float32 or Float64.
func (dt DType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

const uintSize = 4 << (^uint(0) >> 63)

// dtypeSet is a small bitset of dtypes an operation accepts.
type dtypeSet uint8

func dtypes(dts ...DType) dtypeSet {
	var s dtypeSet
	for _, dt := range dts {
		s |= 1 << dt
	}
	return s
}

func (s dtypeSet) has(dt DType) bool {
	return s&(1<<dt) != 0
}

var (
	floatTypes   = dtypes(Float32, Float64)
	numericTypes = dtypes(Float32, Float64, Int32)
)
