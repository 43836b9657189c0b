// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import "math"

// DatumWriter is the Writer Engine of spec §4.5: a recursive,
// schema-directed encoder that serializes a value tree against a single
// writer schema. Writers never consult a reader's schema.
type DatumWriter struct {
	WritersSchema Schema
}

// NewDatumWriter returns a DatumWriter bound to writersSchema. Passing
// nil defers binding until WritersSchema is set directly, mirroring the
// reference implementation's mutable writers_schema attribute.
func NewDatumWriter(writersSchema Schema) *DatumWriter {
	return &DatumWriter{WritersSchema: writersSchema}
}

// Write validates datum against dw.WritersSchema and serializes it to e.
func (dw *DatumWriter) Write(datum interface{}, e *Encoder) error {
	return writeSchema(dw.WritersSchema, datum, e)
}

func writeSchema(schema Schema, datum interface{}, e *Encoder) error {
	switch schema.Type() {
	case TypeNull:
		if datum != nil {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected null"}
		}
		return e.WriteNull()

	case TypeBoolean:
		v, ok := datum.(bool)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected boolean"}
		}
		return e.WriteBoolean(v)

	case TypeInt:
		n, ok := asInt64(datum)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected int in 32-bit range"}
		}
		return e.WriteInt(int32(n))

	case TypeLong:
		n, ok := asInt64(datum)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected long"}
		}
		return e.WriteLong(n)

	case TypeFloat:
		f, ok := asFloat64(datum)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected float"}
		}
		return e.WriteFloat(float32(f))

	case TypeDouble:
		f, ok := asFloat64(datum)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected double"}
		}
		return e.WriteDouble(f)

	case TypeBytes:
		b, ok := datum.([]byte)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected bytes"}
		}
		return e.WriteBytes(b)

	case TypeString:
		s, ok := datum.(string)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected string"}
		}
		return e.WriteUTF8(s)

	case TypeFixed:
		fs := schema.(*FixedSchema)
		b, ok := datum.([]byte)
		if !ok || len(b) != fs.Size {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected fixed-length bytes"}
		}
		return e.Write(b)

	case TypeEnum:
		es := schema.(*EnumSchema)
		s, ok := datum.(string)
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected enum symbol"}
		}
		idx := indexOfSymbol(es.Symbols, s)
		if idx < 0 {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "value ought to be member of symbols: " + joinSymbols(es.Symbols)}
		}
		return e.WriteLong(int64(idx))

	case TypeArray:
		as := schema.(*ArraySchema)
		items, ok := datum.([]interface{})
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected array"}
		}
		if len(items) > 0 {
			if err := e.WriteLong(int64(len(items))); err != nil {
				return err
			}
			for _, it := range items {
				if err := writeSchema(as.Items, it, e); err != nil {
					return err
				}
			}
		}
		return e.WriteLong(0)

	case TypeMap:
		ms := schema.(*MapSchema)
		m, ok := datum.(map[string]interface{})
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected map"}
		}
		if len(m) > 0 {
			if err := e.WriteLong(int64(len(m))); err != nil {
				return err
			}
			for k, v := range m {
				if err := e.WriteUTF8(k); err != nil {
					return err
				}
				if err := writeSchema(ms.Values, v, e); err != nil {
					return err
				}
			}
		}
		return e.WriteLong(0)

	case TypeUnion, TypeErrorUnion:
		us := schema.(*UnionSchema)
		branches, err := makeUnionBranches(us)
		if err != nil {
			return err
		}
		index, branch, value, err := branches.selectWriteBranch(datum)
		if err != nil {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: err.Error()}
		}
		if err := e.WriteLong(int64(index)); err != nil {
			return err
		}
		return writeSchema(branch, value, e)

	case TypeRecord, TypeError, TypeRequest:
		rs := schema.(*RecordSchema)
		m, ok := datum.(map[string]interface{})
		if !ok {
			return &AvroTypeError{Schema: schema, Datum: datum, Reason: "expected record"}
		}
		for _, f := range rs.Fields {
			v, present := m[f.Name]
			if !present {
				v = nil
			}
			if err := writeSchema(f.Type, v, e); err != nil {
				return err
			}
		}
		return nil

	default:
		return &UnknownTypeError{TypeTag: string(schema.Type())}
	}
}

func indexOfSymbol(symbols []string, s string) int {
	for i, sym := range symbols {
		if sym == s {
			return i
		}
	}
	return -1
}

func joinSymbols(symbols []string) string {
	out := "["
	for i, s := range symbols {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out + "]"
}
