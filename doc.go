// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package avrocore implements the binary-framing core of Avro
// serialization: the primitive byte codec, schema-directed datum reader
// and writer, the schema compatibility matcher used during resolution,
// and the default-value reifier. Schema parsing from JSON text, object
// container files, and RPC framing are not part of this package; callers
// construct Schema values programmatically and supply them to a
// DatumReader or DatumWriter.
package avrocore
