// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

// MaxBlockCount bounds the item count of one array/map block that a
// reader will honor before failing, guarding against a corrupt or hostile
// writer claiming an absurd block (spec §7: any error on an untrusted
// source is terminal for that stream). MaxBlockSize is the matching bound
// on a block's byte size; the reader reads a negative-count block's byte
// size but does not check it against MaxBlockSize.
const (
	MaxBlockCount = 1 << 32
	MaxBlockSize  = 1 << 32
)

// DatumReader is the Reader Engine of spec §4.4: a recursive,
// schema-directed decoder that materializes a value tree, performing
// schema resolution when WritersSchema and ReadersSchema differ.
type DatumReader struct {
	WritersSchema Schema
	ReadersSchema Schema
	Cache         *MatchCache
}

// NewDatumReader returns a DatumReader bound to writersSchema and
// readersSchema. Passing nil for readersSchema defers it to
// writersSchema at Read time (spec §6).
func NewDatumReader(writersSchema, readersSchema Schema) *DatumReader {
	return &DatumReader{WritersSchema: writersSchema, ReadersSchema: readersSchema, Cache: DefaultMatchCache}
}

// Read decodes one datum from d under dr.WritersSchema, resolved against
// dr.ReadersSchema (or dr.WritersSchema, if unset).
func (dr *DatumReader) Read(d *Decoder) (interface{}, error) {
	readers := dr.ReadersSchema
	if readers == nil {
		readers = dr.WritersSchema
	}
	cache := dr.Cache
	if cache == nil {
		cache = DefaultMatchCache
	}
	return readResolved(dr.WritersSchema, readers, d, cache)
}

// readResolved implements the top-level read dispatch of spec §4.4.
func readResolved(w, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	if w == r {
		return readDatum(w, w, d, cache)
	}
	if !cache.Match(w, r) {
		return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "schemas do not match"}
	}
	if isUnionType(r.Type()) && !isUnionType(w.Type()) {
		us := r.(*UnionSchema)
		for _, b := range us.Schemas {
			if cache.Match(w, b) {
				return readDatum(w, b, d, cache)
			}
		}
		return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "no reader union branch matches writer schema"}
	}
	return readDatum(w, r, d, cache)
}

// readDatum dispatches on the writer schema's type tag, per spec §4.4's
// table. r is the already-matched reader-side counterpart (never a
// union unless w is also a union, by the time this is called).
func readDatum(w, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	switch w.Type() {
	case TypeNull:
		return nil, d.ReadNull()

	case TypeBoolean:
		return d.ReadBoolean()

	case TypeInt, TypeLong:
		n, err := d.ReadLong()
		if err != nil {
			return nil, err
		}
		return promoteByReaderType(n, r.Type()), nil

	case TypeFloat:
		if r.Type() == TypeDouble {
			f, err := d.ReadFloat()
			if err != nil {
				return nil, err
			}
			return float64(f), nil
		}
		return d.ReadFloat()

	case TypeDouble:
		return d.ReadDouble()

	case TypeBytes:
		return d.ReadBytes()

	case TypeString:
		return d.ReadUTF8()

	case TypeFixed:
		fs := w.(*FixedSchema)
		return d.Read(fs.Size)

	case TypeEnum:
		return readEnum(w.(*EnumSchema), r, d)

	case TypeArray:
		return readArray(w.(*ArraySchema), r, d, cache)

	case TypeMap:
		return readMap(w.(*MapSchema), r, d, cache)

	case TypeUnion, TypeErrorUnion:
		return readUnion(w.(*UnionSchema), r, d, cache)

	case TypeRecord, TypeError, TypeRequest:
		return readRecord(w.(*RecordSchema), r, d, cache)

	default:
		return nil, &UnknownTypeError{TypeTag: string(w.Type())}
	}
}

func readEnum(w *EnumSchema, r Schema, d *Decoder) (interface{}, error) {
	idx, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	if idx < 0 || int(idx) >= len(w.Symbols) {
		return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "enum index out of range"}
	}
	symbol := w.Symbols[idx]

	rs, ok := r.(*EnumSchema)
	if !ok {
		return symbol, nil
	}
	if indexOfSymbol(rs.Symbols, symbol) < 0 {
		return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "symbol " + symbol + " not in reader's symbol list"}
	}
	return symbol, nil
}

func readArray(w *ArraySchema, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	rs, ok := r.(*ArraySchema)
	if !ok {
		rs = w
	}
	var result []interface{}
	for {
		count, err := d.ReadLong()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
		if count < 0 {
			if _, err := d.ReadLong(); err != nil { // block byte size, unused on a full read
				return nil, err
			}
			count = -count
		}
		if count > MaxBlockCount {
			return nil, &TruncatedError{Reason: "array block count exceeds maximum"}
		}
		for i := int64(0); i < count; i++ {
			item, err := readResolved(w.Items, rs.Items, d, cache)
			if err != nil {
				return nil, err
			}
			result = append(result, item)
		}
	}
	if result == nil {
		result = []interface{}{}
	}
	return result, nil
}

func readMap(w *MapSchema, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	rs, ok := r.(*MapSchema)
	if !ok {
		rs = w
	}
	result := make(map[string]interface{})
	for {
		count, err := d.ReadLong()
		if err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
		if count < 0 {
			if _, err := d.ReadLong(); err != nil {
				return nil, err
			}
			count = -count
		}
		if count > MaxBlockCount {
			return nil, &TruncatedError{Reason: "map block count exceeds maximum"}
		}
		for i := int64(0); i < count; i++ {
			key, err := d.ReadUTF8()
			if err != nil {
				return nil, err
			}
			val, err := readResolved(w.Values, rs.Values, d, cache)
			if err != nil {
				return nil, err
			}
			result[key] = val
		}
	}
	return result, nil
}

func readUnion(w *UnionSchema, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	branches, err := makeUnionBranches(w)
	if err != nil {
		return nil, err
	}
	idx, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	branch, ok := branches.branchAt(idx)
	if !ok {
		return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "union index out of range"}
	}
	value, err := readResolved(branch, r, d, cache)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return map[string]interface{}{branch.FullName(): value}, nil
}

func readRecord(w *RecordSchema, r Schema, d *Decoder, cache *MatchCache) (interface{}, error) {
	rs, ok := r.(*RecordSchema)
	if !ok {
		rs = w
	}
	result := make(map[string]interface{}, len(rs.Fields))
	filled := make(map[string]bool, len(w.Fields))

	for _, wf := range w.Fields {
		rf, ok := rs.FieldsByName()[wf.Name]
		if !ok {
			if err := skipData(wf.Type, d); err != nil {
				return nil, err
			}
			continue
		}
		v, err := readResolved(wf.Type, rf.Type, d, cache)
		if err != nil {
			return nil, err
		}
		result[wf.Name] = v
		filled[wf.Name] = true
	}

	for _, rf := range rs.Fields {
		if filled[rf.Name] {
			continue
		}
		if !rf.HasDefault {
			return nil, &SchemaResolutionError{Writer: w, Reader: r, Reason: "no default value for field " + rf.Name}
		}
		v, err := ReadDefaultValue(rf.Type, rf.Default)
		if err != nil {
			return nil, err
		}
		result[rf.Name] = v
	}

	return result, nil
}
