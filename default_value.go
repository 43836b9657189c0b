// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

// ReadDefaultValue is the Default-Value Reifier of spec §4.6: it maps
// the JSON-shaped representation attached to a reader field's default
// into a Datum matching that field's schema. jsonValue holds the shapes
// encoding/json.Unmarshal produces into an interface{} (float64 for any
// JSON number, map[string]interface{}, []interface{}, string, bool,
// nil) — defaults are JSON-shaped, not Avro-binary (spec §9).
func ReadDefaultValue(schema Schema, jsonValue interface{}) (interface{}, error) {
	switch schema.Type() {
	case TypeNull:
		return nil, nil

	case TypeBoolean:
		b, ok := jsonValue.(bool)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "boolean default"}
		}
		return b, nil

	case TypeInt:
		n, ok := jsonNumber(jsonValue)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "int default"}
		}
		return int32(n), nil

	case TypeLong:
		n, ok := jsonNumber(jsonValue)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "long default"}
		}
		return int64(n), nil

	case TypeFloat:
		n, ok := jsonNumber(jsonValue)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "float default"}
		}
		return float32(n), nil

	case TypeDouble:
		n, ok := jsonNumber(jsonValue)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "double default"}
		}
		return n, nil

	case TypeBytes, TypeFixed:
		s, ok := jsonValue.(string)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "bytes/fixed default"}
		}
		return []byte(s), nil

	case TypeString, TypeEnum:
		s, ok := jsonValue.(string)
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "string/enum default"}
		}
		return s, nil

	case TypeArray:
		as := schema.(*ArraySchema)
		items, ok := jsonValue.([]interface{})
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "array default"}
		}
		result := make([]interface{}, len(items))
		for i, it := range items {
			v, err := ReadDefaultValue(as.Items, it)
			if err != nil {
				return nil, err
			}
			result[i] = v
		}
		return result, nil

	case TypeMap:
		ms := schema.(*MapSchema)
		m, ok := jsonValue.(map[string]interface{})
		if !ok {
			return nil, &UnknownTypeError{TypeTag: "map default"}
		}
		result := make(map[string]interface{}, len(m))
		for k, v := range m {
			rv, err := ReadDefaultValue(ms.Values, v)
			if err != nil {
				return nil, err
			}
			result[k] = rv
		}
		return result, nil

	case TypeUnion, TypeErrorUnion:
		us := schema.(*UnionSchema)
		if len(us.Schemas) == 0 {
			return nil, &UnknownTypeError{TypeTag: "empty union default"}
		}
		first := us.Schemas[0]
		v, err := ReadDefaultValue(first, jsonValue)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return map[string]interface{}{first.FullName(): v}, nil

	case TypeRecord, TypeError, TypeRequest:
		rs := schema.(*RecordSchema)
		m, _ := jsonValue.(map[string]interface{})
		result := make(map[string]interface{}, len(rs.Fields))
		for _, f := range rs.Fields {
			fv, present := m[f.Name]
			if !present {
				if !f.HasDefault {
					return nil, &UnknownTypeError{TypeTag: "missing default for field " + f.Name}
				}
				fv = f.Default
			}
			v, err := ReadDefaultValue(f.Type, fv)
			if err != nil {
				return nil, err
			}
			result[f.Name] = v
		}
		return result, nil

	default:
		return nil, &UnknownTypeError{TypeTag: string(schema.Type())}
	}
}

// jsonNumber accepts both the float64 encoding/json.Unmarshal normally
// produces and any Go integer kind a caller builds defaults with
// directly.
func jsonNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
