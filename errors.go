// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

import "fmt"

// AvroTypeError reports that a datum does not conform to its schema at
// write time.
type AvroTypeError struct {
	Schema Schema
	Datum  interface{}
	Reason string
}

func (e *AvroTypeError) Error() string {
	return fmt.Sprintf("cannot encode binary %s: %s; received: %#v", describeSchema(e.Schema), e.Reason, e.Datum)
}

// SchemaResolutionError reports that a writer's schema and a reader's
// schema cannot be reconciled while decoding.
type SchemaResolutionError struct {
	Writer Schema
	Reader Schema
	Reason string
}

func (e *SchemaResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve schemas: %s; writer: %s; reader: %s", e.Reason, describeSchema(e.Writer), describeSchema(e.Reader))
}

// UnknownTypeError reports a schema type tag outside the closed Avro set.
type UnknownTypeError struct {
	TypeTag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %q", e.TypeTag)
}

// TruncatedError reports that the byte source ended before a primitive
// value could be fully read.
type TruncatedError struct {
	Reason string
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("short buffer: %s", e.Reason)
}

// EncodingError reports that bytes read as a string failed UTF-8
// validation.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot decode textual string: %s", e.Reason)
}

// ChecksumMismatchError reports that a CRC-32 check failed.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %08x, got %08x", e.Expected, e.Actual)
}

func describeSchema(s Schema) string {
	if s == nil {
		return "<nil schema>"
	}
	if n := s.FullName(); n != "" {
		return fmt.Sprintf("%s %q", s.Type(), n)
	}
	return string(s.Type())
}
