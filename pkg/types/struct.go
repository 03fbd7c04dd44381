// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package types

import "github.com/zkc-lang/zkc/pkg/ids"

// StructField is one named, typed field of a struct definition. Order here
// is authoritative: it determines the positional layout constructor
// arguments are normalised into (see Constructor checking in pkg/typecheck).
type StructField struct {
	Name string
	Type Type
}

// StructDefinition is the shared, interned definition a Struct type points
// to. Multiple Struct values (of possibly different visibilities) may point
// at the same *StructDefinition; the type checker compares structs for
// equality by definition identity, not by structural field comparison.
type StructDefinition struct {
	Name    string
	Fields  []StructField
	Methods map[string]ids.FuncId
}

// FieldIndex returns the declared index of a named field, or -1 if absent.
func (d *StructDefinition) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// Method looks up a method by name on this struct's method table.
func (d *StructDefinition) Method(name string) (ids.FuncId, bool) {
	id, ok := d.Methods[name]
	return id, ok
}
