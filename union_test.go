// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import "testing"

func TestUnionDuplicateBranchRejected(t *testing.T) {
	u := NewUnionSchema(NewEnumSchema("e1", []string{"alpha", "bravo"}), NewEnumSchema("e1", []string{"alpha", "bravo"}))
	_, err := makeUnionBranches(u)
	ensureError(t, err, "union item 2 ought to be unique type")
}

func TestUnionNullAndInt(t *testing.T) {
	u := NewUnionSchema(Null, Int)
	testBinaryCodecPass(t, u, nil, []byte("\x00"))
	testBinaryCodecPass(t, u, map[string]interface{}{"int": int32(3)}, []byte("\x02\x06"))
}

func TestUnionS4StringBranch(t *testing.T) {
	// S4: schema union[null, string], datum "hi", wire 0x02 0x04 0x68 0x69.
	u := NewUnionSchema(Null, String)
	testBinaryCodecPass(t, u, map[string]interface{}{"string": "hi"}, []byte{0x02, 0x04, 0x68, 0x69})
}

func TestUnionEnumBranch(t *testing.T) {
	colors := NewEnumSchema("colors", []string{"red", "green", "blue"})
	u := NewUnionSchema(Null, colors)
	testBinaryCodecPass(t, u, map[string]interface{}{"colors": "green"}, []byte{0x02, 0x02})
}

func TestUnionEncodeFailsOnUnknownSymbol(t *testing.T) {
	colors := NewEnumSchema("colors", []string{"red", "green", "blue"})
	u := NewUnionSchema(Null, colors)
	testBinaryEncodeFail(t, u, map[string]interface{}{"colors": "brown"}, "colors")
}

func TestUnionRejectsUnknownBranchName(t *testing.T) {
	u := NewUnionSchema(Null, Int)
	testBinaryEncodeFail(t, u, map[string]interface{}{"string": "nope"}, "no member schema types support datum")
}

func TestUnionSelectsFirstMatchingBranchUnwrapped(t *testing.T) {
	// Scalar values not wrapped in {branchName: value} select the first
	// validating branch, per spec §4.5/§8 property 6.
	u := NewUnionSchema(Int, Long)
	testBinaryEncodePass(t, u, int32(5), []byte{0x00, 0x0a})
}

func TestUnionDecodeOutOfRangeIndexFails(t *testing.T) {
	u := NewUnionSchema(Null, Int)
	testBinaryDecodeFail(t, u, []byte{0x04}, "union index out of range")
}

func TestUnionWithArray(t *testing.T) {
	arr := NewArraySchema(Int)
	u := NewUnionSchema(Null, arr)
	testBinaryCodecPass(t, u, nil, []byte("\x00"))
	testBinaryEncodePass(t, u, []interface{}{}, []byte{0x02, 0x00})
}
