// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

package avrocore

// Field is one member of a record, error, or request schema. Default is
// the JSON-shaped representation attached to the field's declaration
// (present iff HasDefault); it is reified into a Datum matching Type by
// ReadDefaultValue, not used directly as a Datum.
type Field struct {
	Name       string
	Type       Schema
	HasDefault bool
	Default    interface{}
}
