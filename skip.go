// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

// skipData mirrors the read dispatch of readDatum but consumes bytes
// without materializing a value (spec §4.4's skip path). It is called
// only for a writer field absent from the reader's schema, where no
// reader-side counterpart exists to resolve against — unlike the
// reference implementation's skip_union, there is no second schema
// available to omit from a resolution error here (spec §9).
func skipData(w Schema, d *Decoder) error {
	switch w.Type() {
	case TypeNull:
		return d.SkipNull()

	case TypeBoolean:
		_, err := d.ReadBoolean()
		return err

	case TypeInt, TypeLong:
		_, err := d.ReadLong()
		return err

	case TypeFloat:
		_, err := d.ReadFloat()
		return err

	case TypeDouble:
		_, err := d.ReadDouble()
		return err

	case TypeBytes:
		n, err := d.ReadLong()
		if err != nil {
			return err
		}
		return d.Skip(n)

	case TypeString:
		n, err := d.ReadLong()
		if err != nil {
			return err
		}
		return d.Skip(n)

	case TypeFixed:
		fs := w.(*FixedSchema)
		return d.Skip(int64(fs.Size))

	case TypeEnum:
		_, err := d.ReadLong()
		return err

	case TypeArray:
		return skipArray(w.(*ArraySchema), d)

	case TypeMap:
		return skipMap(w.(*MapSchema), d)

	case TypeUnion, TypeErrorUnion:
		return skipUnion(w.(*UnionSchema), d)

	case TypeRecord, TypeError, TypeRequest:
		return skipRecord(w.(*RecordSchema), d)

	default:
		return &UnknownTypeError{TypeTag: string(w.Type())}
	}
}

func skipArray(w *ArraySchema, d *Decoder) error {
	for {
		count, err := d.ReadLong()
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if count < 0 {
			size, err := d.ReadLong()
			if err != nil {
				return err
			}
			if err := d.Skip(size); err != nil {
				return err
			}
			continue
		}
		for i := int64(0); i < count; i++ {
			if err := skipData(w.Items, d); err != nil {
				return err
			}
		}
	}
}

func skipMap(w *MapSchema, d *Decoder) error {
	for {
		count, err := d.ReadLong()
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if count < 0 {
			size, err := d.ReadLong()
			if err != nil {
				return err
			}
			if err := d.Skip(size); err != nil {
				return err
			}
			continue
		}
		for i := int64(0); i < count; i++ {
			if _, err := d.ReadUTF8(); err != nil {
				return err
			}
			if err := skipData(w.Values, d); err != nil {
				return err
			}
		}
	}
}

func skipUnion(w *UnionSchema, d *Decoder) error {
	branches, err := makeUnionBranches(w)
	if err != nil {
		return err
	}
	idx, err := d.ReadLong()
	if err != nil {
		return err
	}
	branch, ok := branches.branchAt(idx)
	if !ok {
		return &SchemaResolutionError{Writer: w, Reader: w, Reason: "union index out of range while skipping"}
	}
	return skipData(branch, d)
}

func skipRecord(w *RecordSchema, d *Decoder) error {
	for _, f := range w.Fields {
		if err := skipData(f.Type, d); err != nil {
			return err
		}
	}
	return nil
}
