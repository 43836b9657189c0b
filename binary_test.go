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
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/mohae/deepcopy"
)

// This file carries the shared test scaffolding every other _test.go in
// this package builds on, adapted from the teacher's binary_test.go
// helpers (testBinaryEncodePass/testBinaryDecodePass/testBinaryCodecPass)
// to this package's schema-object API in place of JSON schema text.

func testBinaryEncodePass(t *testing.T, schema Schema, datum interface{}, expected []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := NewDatumWriter(schema)
	if err := w.Write(datum, NewEncoder(&buf)); err != nil {
		t.Fatalf("schema: %s; Datum: %v; %s", describeSchema(schema), datum, err)
	}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("schema: %s; Datum: %v; Actual: %#v; Expected: %#v", describeSchema(schema), datum, buf.Bytes(), expected)
	}
}

func testBinaryDecodePass(t *testing.T, schema Schema, datum interface{}, encoded []byte) {
	t.Helper()
	r := NewDatumReader(schema, schema)
	value, err := r.Read(NewDecoder(bytes.NewReader(encoded)))
	if err != nil {
		t.Fatalf("schema: %s; %s", describeSchema(schema), err)
	}

	datumCopy := deepcopy.Copy(datum)
	if !reflect.DeepEqual(value, datumCopy) {
		t.Errorf("schema: %s; Actual: %#v; Expected: %#v", describeSchema(schema), value, datumCopy)
	}
}

// testBinaryCodecPass does a bi-directional codec check: decoding buf
// yields datum, and encoding datum yields buf.
func testBinaryCodecPass(t *testing.T, schema Schema, datum interface{}, buf []byte) {
	t.Helper()
	testBinaryDecodePass(t, schema, datum, buf)
	testBinaryEncodePass(t, schema, datum, buf)
}

func testBinaryEncodeFail(t *testing.T, schema Schema, datum interface{}, errorSubstring string) {
	t.Helper()
	w := NewDatumWriter(schema)
	_, err := wrapBuf(w, datum)
	ensureError(t, err, errorSubstring)
}

func wrapBuf(w *DatumWriter, datum interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := w.Write(datum, NewEncoder(&buf))
	return buf.Bytes(), err
}

func testBinaryDecodeFail(t *testing.T, schema Schema, buf []byte, errorSubstring string) {
	t.Helper()
	r := NewDatumReader(schema, schema)
	value, err := r.Read(NewDecoder(bytes.NewReader(buf)))
	ensureError(t, err, errorSubstring)
	if value != nil {
		t.Errorf("GOT: %v; WANT: %v", value, nil)
	}
}

func ensureError(t *testing.T, err error, substring string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q; got nil", substring)
	}
	if substring != "" && !strings.Contains(err.Error(), substring) {
		t.Errorf("GOT: %s; WANT substring: %s", err.Error(), substring)
	}
}
