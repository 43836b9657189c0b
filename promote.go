// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import "golang.org/x/exp/constraints"

// promoteNumeric widens a decoded writer-side value to the in-memory
// type its reader schema calls for (spec §4.4's int→long→float→double
// ladder). One generic function covers every permitted (From, To) pair
// instead of a function per pair.
func promoteNumeric[From constraints.Integer | constraints.Float, To constraints.Integer | constraints.Float](v From) To {
	return To(v)
}

// promoteByReaderType converts a decoded numeric value to the concrete
// Go type matching the reader schema's numeric type tag.
func promoteByReaderType(v int64, readerType Type) interface{} {
	switch readerType {
	case TypeLong:
		return v
	case TypeFloat:
		return promoteNumeric[int64, float32](v)
	case TypeDouble:
		return promoteNumeric[int64, float64](v)
	default:
		return int32(v)
	}
}
