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

// unionBranches is a set of quick lookups over a union schema's member
// list: index-by-name for the Writer Engine's {branchName: value}
// disambiguation (spec §4.5) and a by-index slice for the Reader
// Engine's index-tagged decode (spec §4.4).
type unionBranches struct {
	schemaFromIndex []Schema
	indexFromName   map[string]int
}

// makeUnionBranches builds the lookup indices for a union's member
// schemas, failing if two members share a full name (Avro forbids
// duplicate branch types).
func makeUnionBranches(u *UnionSchema) (*unionBranches, error) {
	schemaFromIndex := make([]Schema, len(u.Schemas))
	indexFromName := make(map[string]int, len(u.Schemas))

	for i, member := range u.Schemas {
		name := member.FullName()
		if _, ok := indexFromName[name]; ok {
			return nil, fmt.Errorf("union item %d ought to be unique type: %s", i+1, name)
		}
		schemaFromIndex[i] = member
		indexFromName[name] = i
	}

	return &unionBranches{schemaFromIndex: schemaFromIndex, indexFromName: indexFromName}, nil
}

// selectWriteBranch picks the union member that datum will be written
// against and unwraps any {branchName: value} tagging the Writer Engine
// convention uses for disambiguation. It returns the branch index, the
// branch schema, and the raw value to encode.
func (ub *unionBranches) selectWriteBranch(datum interface{}) (int, Schema, interface{}, error) {
	if datum == nil {
		if i, ok := ub.indexFromName[string(TypeNull)]; ok {
			return i, ub.schemaFromIndex[i], nil, nil
		}
		return 0, nil, nil, fmt.Errorf("no member schema types support datum: allowed types: %v; received: nil", ub.names())
	}

	if m, ok := datum.(map[string]interface{}); ok && len(m) == 1 {
		for name, val := range m {
			i, ok := ub.indexFromName[name]
			if !ok {
				break // not a branch tag: fall back to first-match below
			}
			branch := ub.schemaFromIndex[i]
			if !Validate(branch, val) {
				return 0, nil, nil, fmt.Errorf("value for branch %q does not validate", name)
			}
			return i, branch, val, nil
		}
	}

	for i, branch := range ub.schemaFromIndex {
		if Validate(branch, datum) {
			return i, branch, datum, nil
		}
	}
	return 0, nil, nil, fmt.Errorf("no member schema types support datum: allowed types: %v; received: %#v", ub.names(), datum)
}

func (ub *unionBranches) names() []string {
	names := make([]string, len(ub.schemaFromIndex))
	for i, s := range ub.schemaFromIndex {
		names[i] = s.FullName()
	}
	return names
}

func (ub *unionBranches) branchAt(index int64) (Schema, bool) {
	if index < 0 || index >= int64(len(ub.schemaFromIndex)) {
		return nil, false
	}
	return ub.schemaFromIndex[index], true
}
