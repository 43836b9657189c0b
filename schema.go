// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

// Type is the closed set of Avro schema type tags.
type Type string

const (
	TypeNull        Type = "null"
	TypeBoolean     Type = "boolean"
	TypeInt         Type = "int"
	TypeLong        Type = "long"
	TypeFloat       Type = "float"
	TypeDouble      Type = "double"
	TypeBytes       Type = "bytes"
	TypeString      Type = "string"
	TypeFixed       Type = "fixed"
	TypeEnum        Type = "enum"
	TypeArray       Type = "array"
	TypeMap         Type = "map"
	TypeUnion       Type = "union"
	TypeErrorUnion  Type = "error_union"
	TypeRecord      Type = "record"
	TypeError       Type = "error"
	TypeRequest     Type = "request"
)

// Schema is the external collaborator this package is built against: a
// tagged variant over the Avro type set. Schema parsing from JSON text is
// out of scope here — callers construct Schema values with the
// constructors below (or their own equivalent type satisfying this
// interface) and share pointers so that identity comparison ("is" in the
// reference implementation) is meaningful: two Schema values obtained
// from the same call share Go pointer identity, which Match and the
// Reader Engine rely on to skip resolution work for the common
// writer-equals-reader case.
type Schema interface {
	// Type returns this schema's type tag.
	Type() Type
	// FullName returns the namespaced name for named types (fixed, enum,
	// record, error, request) and the bare type tag for primitives. It
	// returns "" for array, map, union, and error_union, which have no
	// name of their own.
	FullName() string
}

// PrimitiveSchema is a Schema for one of the eight Avro primitive types.
type PrimitiveSchema struct {
	typ Type
}

var (
	Null    Schema = &PrimitiveSchema{TypeNull}
	Boolean Schema = &PrimitiveSchema{TypeBoolean}
	Int     Schema = &PrimitiveSchema{TypeInt}
	Long    Schema = &PrimitiveSchema{TypeLong}
	Float   Schema = &PrimitiveSchema{TypeFloat}
	Double  Schema = &PrimitiveSchema{TypeDouble}
	Bytes   Schema = &PrimitiveSchema{TypeBytes}
	String  Schema = &PrimitiveSchema{TypeString}
)

func (s *PrimitiveSchema) Type() Type { return s.typ }
func (s *PrimitiveSchema) FullName() string { return string(s.typ) }

// FixedSchema is a Schema for a named fixed-size byte sequence.
type FixedSchema struct {
	Name string
	Size int
}

func NewFixedSchema(fullname string, size int) *FixedSchema {
	return &FixedSchema{Name: fullname, Size: size}
}

func (s *FixedSchema) Type() Type { return TypeFixed }
func (s *FixedSchema) FullName() string { return s.Name }

// EnumSchema is a Schema for a named, ordered set of symbol names.
type EnumSchema struct {
	Name    string
	Symbols []string
}

func NewEnumSchema(fullname string, symbols []string) *EnumSchema {
	return &EnumSchema{Name: fullname, Symbols: symbols}
}

func (s *EnumSchema) Type() Type { return TypeEnum }
func (s *EnumSchema) FullName() string { return s.Name }

// ArraySchema is a Schema for a homogeneous ordered sequence.
type ArraySchema struct {
	Items Schema
}

func NewArraySchema(items Schema) *ArraySchema { return &ArraySchema{Items: items} }

func (s *ArraySchema) Type() Type { return TypeArray }
func (s *ArraySchema) FullName() string { return "" }

// MapSchema is a Schema for a string-keyed mapping to a homogeneous value
// type.
type MapSchema struct {
	Values Schema
}

func NewMapSchema(values Schema) *MapSchema { return &MapSchema{Values: values} }

func (s *MapSchema) Type() Type { return TypeMap }
func (s *MapSchema) FullName() string { return "" }

// UnionSchema is a Schema for an ordered sequence of member schemas. When
// IsError is set, Type reports error_union, which is identical to union
// at the wire and resolution level (spec §3).
type UnionSchema struct {
	Schemas []Schema
	IsError bool
}

func NewUnionSchema(members ...Schema) *UnionSchema { return &UnionSchema{Schemas: members} }

func NewErrorUnionSchema(members ...Schema) *UnionSchema {
	return &UnionSchema{Schemas: members, IsError: true}
}

func (s *UnionSchema) Type() Type {
	if s.IsError {
		return TypeErrorUnion
	}
	return TypeUnion
}

func (s *UnionSchema) FullName() string { return "" }

// RecordKind distinguishes the three named, field-carrying schema tags
// that otherwise share the same shape.
type RecordKind int

const (
	KindRecord RecordKind = iota
	KindError
	KindRequest
)

// RecordSchema is a Schema for a named, ordered sequence of Fields, with
// a by-name index built once at construction (fields_dict in spec §6).
type RecordSchema struct {
	Name        string
	Kind        RecordKind
	Fields      []*Field
	fieldsByName map[string]*Field
}

func NewRecordSchema(fullname string, fields []*Field) *RecordSchema {
	return newNamedRecordSchema(fullname, KindRecord, fields)
}

func NewErrorSchema(fullname string, fields []*Field) *RecordSchema {
	return newNamedRecordSchema(fullname, KindError, fields)
}

func NewRequestSchema(fields []*Field) *RecordSchema {
	return newNamedRecordSchema("", KindRequest, fields)
}

func newNamedRecordSchema(fullname string, kind RecordKind, fields []*Field) *RecordSchema {
	byName := make(map[string]*Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}
	return &RecordSchema{Name: fullname, Kind: kind, Fields: fields, fieldsByName: byName}
}

// FieldsByName returns the by-name field index built at construction
// (fields_dict in spec §6).
func (s *RecordSchema) FieldsByName() map[string]*Field { return s.fieldsByName }

func (s *RecordSchema) Type() Type {
	switch s.Kind {
	case KindError:
		return TypeError
	case KindRequest:
		return TypeRequest
	default:
		return TypeRecord
	}
}

func (s *RecordSchema) FullName() string { return s.Name }
