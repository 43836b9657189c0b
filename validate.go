// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import (
	"math"
	"reflect"

	"golang.org/x/exp/slices"
)

// Validate is the pure structural conformance predicate of spec §4.2. It
// has no side effects and never mutates schema or datum.
func Validate(schema Schema, datum interface{}) bool {
	switch schema.Type() {
	case TypeNull:
		return datum == nil
	case TypeBoolean:
		_, ok := datum.(bool)
		return ok
	case TypeString:
		_, ok := datum.(string)
		return ok
	case TypeBytes:
		_, ok := datum.([]byte)
		return ok
	case TypeInt:
		n, ok := asInt64(datum)
		return ok && n >= math.MinInt32 && n <= math.MaxInt32
	case TypeLong:
		_, ok := asInt64(datum)
		return ok
	case TypeFloat, TypeDouble:
		_, ok := asFloat64(datum)
		return ok
	case TypeFixed:
		fs := schema.(*FixedSchema)
		b, ok := datum.([]byte)
		return ok && len(b) == fs.Size
	case TypeEnum:
		es := schema.(*EnumSchema)
		s, ok := datum.(string)
		return ok && slices.Contains(es.Symbols, s)
	case TypeArray:
		as := schema.(*ArraySchema)
		items, ok := datum.([]interface{})
		if !ok {
			return false
		}
		for _, it := range items {
			if !Validate(as.Items, it) {
				return false
			}
		}
		return true
	case TypeMap:
		ms := schema.(*MapSchema)
		m, ok := datum.(map[string]interface{})
		if !ok {
			return false
		}
		for _, v := range m {
			if !Validate(ms.Values, v) {
				return false
			}
		}
		return true
	case TypeUnion, TypeErrorUnion:
		us := schema.(*UnionSchema)
		for _, b := range us.Schemas {
			if validateUnionBranch(b, datum) {
				return true
			}
		}
		return false
	case TypeRecord, TypeError, TypeRequest:
		rs := schema.(*RecordSchema)
		m, ok := datum.(map[string]interface{})
		if !ok {
			return false
		}
		for _, f := range rs.Fields {
			v, present := m[f.Name]
			if !present {
				v = nil
			}
			if !Validate(f.Type, v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// validateUnionBranch accepts both the raw value (for unambiguous
// branches) and the {branchName: value} wrapping the Writer Engine uses
// to disambiguate structurally similar branches.
func validateUnionBranch(branch Schema, datum interface{}) bool {
	if m, ok := datum.(map[string]interface{}); ok && len(m) == 1 {
		for name, v := range m {
			if name == branch.FullName() {
				return Validate(branch, v)
			}
		}
	}
	return Validate(branch, datum)
}

// asInt64 accepts any Go integer kind, matching the teacher's tolerance
// for int32/int64/etc. interchangeably (union_test.go
// TestUnionWillCoerceTypeIfPossible).
func asInt64(datum interface{}) (int64, bool) {
	v := reflect.ValueOf(datum)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(v.Uint()), true
	case reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// asFloat64 accepts any Go numeric kind, since float/double datums
// permit integer promotion (spec §4.2).
func asFloat64(datum interface{}) (float64, bool) {
	if n, ok := asInt64(datum); ok {
		return float64(n), true
	}
	v := reflect.ValueOf(datum)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
