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
	"testing"
)

func TestPromotionIntToLongFloatDouble(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteInt(7); err != nil {
		t.Fatal(err)
	}
	encoded := buf.Bytes()

	r := NewDatumReader(Int, Long)
	v, err := r.Read(NewDecoder(bytes.NewReader(encoded)))
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 7 {
		t.Errorf("GOT %#v WANT int64(7)", v)
	}

	r = NewDatumReader(Int, Float)
	v, err = r.Read(NewDecoder(bytes.NewReader(encoded)))
	if err != nil {
		t.Fatal(err)
	}
	if v.(float32) != 7 {
		t.Errorf("GOT %#v WANT float32(7)", v)
	}

	r = NewDatumReader(Int, Double)
	v, err = r.Read(NewDecoder(bytes.NewReader(encoded)))
	if err != nil {
		t.Fatal(err)
	}
	if v.(float64) != 7 {
		t.Errorf("GOT %#v WANT float64(7)", v)
	}
}

func TestSchemaResolutionRejectsIncompatibleSchemas(t *testing.T) {
	r := NewDatumReader(String, Int)
	_, err := r.Read(NewDecoder(bytes.NewReader([]byte{0x00})))
	if _, ok := err.(*SchemaResolutionError); !ok {
		t.Errorf("GOT %T WANT *SchemaResolutionError", err)
	}
}

func TestRecordResolutionS5DefaultInjected(t *testing.T) {
	// S5: writer record{a:int}, reader record{a:int, b:string default="x"}.
	writer := NewRecordSchema("R", []*Field{{Name: "a", Type: Int}})
	reader := NewRecordSchema("R", []*Field{
		{Name: "a", Type: Int},
		{Name: "b", Type: String, HasDefault: true, Default: "x"},
	})

	var buf bytes.Buffer
	w := NewDatumWriter(writer)
	if err := w.Write(map[string]interface{}{"a": int32(7)}, NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x0e}) {
		t.Errorf("GOT %#v WANT %#v", buf.Bytes(), []byte{0x0e})
	}

	r := NewDatumReader(writer, reader)
	got, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	m := got.(map[string]interface{})
	if m["a"] != int32(7) || m["b"] != "x" {
		t.Errorf("GOT %#v", m)
	}
}

func TestRecordResolutionMissingFieldNoDefaultFails(t *testing.T) {
	writer := NewRecordSchema("R", []*Field{{Name: "a", Type: Int}})
	reader := NewRecordSchema("R", []*Field{
		{Name: "a", Type: Int},
		{Name: "b", Type: String},
	})

	var buf bytes.Buffer
	w := NewDatumWriter(writer)
	if err := w.Write(map[string]interface{}{"a": int32(7)}, NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}

	r := NewDatumReader(writer, reader)
	_, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if _, ok := err.(*SchemaResolutionError); !ok {
		t.Errorf("GOT %T WANT *SchemaResolutionError", err)
	}
}

func TestRecordResolutionSkipsUnknownWriterField(t *testing.T) {
	writer := NewRecordSchema("R", []*Field{
		{Name: "a", Type: Int},
		{Name: "extra", Type: String},
		{Name: "b", Type: Int},
	})
	reader := NewRecordSchema("R", []*Field{
		{Name: "a", Type: Int},
		{Name: "b", Type: Int},
	})

	var buf bytes.Buffer
	w := NewDatumWriter(writer)
	datum := map[string]interface{}{"a": int32(1), "extra": "skip me", "b": int32(2)}
	if err := w.Write(datum, NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}

	r := NewDatumReader(writer, reader)
	got, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	m := got.(map[string]interface{})
	if m["a"] != int32(1) || m["b"] != int32(2) {
		t.Errorf("GOT %#v", m)
	}
	if _, present := m["extra"]; present {
		t.Errorf("unknown writer field ought not to appear in the decoded record")
	}
}

func TestEnumResolutionS6Fails(t *testing.T) {
	// S6: writer symbols [A,B,C], reader symbols [A,C]. Encoding of "B" is
	// 0x02; decoding fails SchemaResolution.
	writer := NewEnumSchema("e", []string{"A", "B", "C"})
	reader := NewEnumSchema("e", []string{"A", "C"})

	var buf bytes.Buffer
	if err := NewDatumWriter(writer).Write("B", NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x02}) {
		t.Errorf("GOT %#v WANT %#v", buf.Bytes(), []byte{0x02})
	}

	r := NewDatumReader(writer, reader)
	_, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if _, ok := err.(*SchemaResolutionError); !ok {
		t.Errorf("GOT %T WANT *SchemaResolutionError", err)
	}
}

func TestEnumResolutionSucceedsWhenSymbolShared(t *testing.T) {
	writer := NewEnumSchema("e", []string{"A", "B", "C"})
	reader := NewEnumSchema("e", []string{"A", "C"})

	var buf bytes.Buffer
	if err := NewDatumWriter(writer).Write("C", NewEncoder(&buf)); err != nil {
		t.Fatal(err)
	}

	r := NewDatumReader(writer, reader)
	got, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if got != "C" {
		t.Errorf("GOT %#v WANT \"C\"", got)
	}
}

func TestReaderDefaultsToWritersSchemaWhenUnset(t *testing.T) {
	r := NewDatumReader(Int, nil)
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteInt(42); err != nil {
		t.Fatal(err)
	}
	got, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if got.(int32) != 42 {
		t.Errorf("GOT %#v WANT int32(42)", got)
	}
}

func TestBlockFramingNegativeCountWithByteSize(t *testing.T) {
	arr := NewArraySchema(Int)
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	// One block of 2 items, negative count with explicit byte size, then
	// terminator.
	if err := e.WriteLong(-2); err != nil {
		t.Fatal(err)
	}
	var items bytes.Buffer
	ie := NewEncoder(&items)
	if err := ie.WriteInt(1); err != nil {
		t.Fatal(err)
	}
	if err := ie.WriteInt(2); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteLong(int64(items.Len())); err != nil {
		t.Fatal(err)
	}
	if err := e.Write(items.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := e.WriteLong(0); err != nil {
		t.Fatal(err)
	}

	r := NewDatumReader(arr, arr)
	got, err := r.Read(NewDecoder(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	items2 := got.([]interface{})
	if len(items2) != 2 || items2[0] != int32(1) || items2[1] != int32(2) {
		t.Errorf("GOT %#v", items2)
	}
}
