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

// Package crate loads the on-disk JSON representation of an already
// name-resolved crate (the output of the lexing/parsing/name-resolution
// pipeline that sits upstream of this module's scope) into a
// hir.NodeInterner ready for pkg/typecheck. There is no lexer or parser in
// this module: spec.md scopes this project to the type-check phase alone,
// taking a NodeInterner as its input, so the boundary this package sits at
// is a serialised stand-in for that upstream pipeline.
package crate

import (
	"fmt"
	"io"
	"math/big"

	"github.com/segmentio/encoding/json"

	"github.com/zkc-lang/zkc/pkg/diagnostics"
	"github.com/zkc-lang/zkc/pkg/hir"
	"github.com/zkc-lang/zkc/pkg/ids"
	"github.com/zkc-lang/zkc/pkg/types"
)

// Crate is the wire format of a whole compilation unit: a flat table of
// expressions and statements addressed by their position in the JSON
// arrays (which become their ExprId/StmtId in the resulting interner), plus
// the function table referencing into those tables.
type Crate struct {
	Structs   []jsonStruct   `json:"structs"`
	Functions []jsonFunction `json:"functions"`
	Exprs     []jsonExpr     `json:"exprs"`
	Stmts     []jsonStmt     `json:"stmts"`
	Defs      []jsonDef      `json:"defs"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s jsonSpan) toSpan() diagnostics.Span { return diagnostics.NewSpan(s.Start, s.End) }

type jsonStruct struct {
	Name    string            `json:"name"`
	Fields  []jsonField       `json:"fields"`
	Methods map[string]uint32 `json:"methods"`
}

type jsonField struct {
	Name string   `json:"name"`
	Type jsonType `json:"type"`
}

type jsonDef struct {
	Span jsonSpan `json:"span"`
}

type jsonFunction struct {
	Parameters []jsonParam `json:"parameters"`
	ReturnType jsonType    `json:"returnType"`
	Body       *uint32     `json:"body"`
}

type jsonParam struct {
	Name uint32   `json:"name"`
	Type jsonType `json:"type"`
}

// jsonType mirrors types.Type as a tagged union over JSON, named the way
// the spec's own glossary names each type constructor.
type jsonType struct {
	Kind   string     `json:"kind"`
	Vis    string     `json:"vis,omitempty"`
	Signed bool       `json:"signed,omitempty"`
	Width  uint8      `json:"width,omitempty"`
	Size   *uint      `json:"size,omitempty"`
	Elem   *jsonType  `json:"elem,omitempty"`
	Elems  []jsonType `json:"elems,omitempty"`
	Struct string     `json:"struct,omitempty"`
}

type jsonExpr struct {
	Kind string   `json:"kind"`
	Span jsonSpan `json:"span"`

	Def         *uint32                `json:"def,omitempty"`
	Contents    []uint32               `json:"contents,omitempty"`
	Bool        bool                   `json:"bool,omitempty"`
	Int         string                 `json:"int,omitempty"`
	Str         string                 `json:"str,omitempty"`
	Lhs         *uint32                `json:"lhs,omitempty"`
	Rhs         *uint32                `json:"rhs,omitempty"`
	Op          string                 `json:"op,omitempty"`
	Collection  *uint32                `json:"collection,omitempty"`
	Index       *uint32                `json:"index,omitempty"`
	Func        *uint32                `json:"func,omitempty"`
	Args        []uint32               `json:"args,omitempty"`
	Object      *uint32                `json:"object,omitempty"`
	Method      string                 `json:"method,omitempty"`
	Type        *jsonType              `json:"type,omitempty"`
	Identifier  *uint32                `json:"identifier,omitempty"`
	StartRange  *uint32                `json:"startRange,omitempty"`
	EndRange    *uint32                `json:"endRange,omitempty"`
	Block       *uint32                `json:"block,omitempty"`
	Statements  []uint32               `json:"statements,omitempty"`
	Condition   *uint32                `json:"condition,omitempty"`
	Consequence *uint32                `json:"consequence,omitempty"`
	Alternative *uint32                `json:"alternative,omitempty"`
	StructName  string                 `json:"structName,omitempty"`
	Fields      []jsonConstructorField `json:"fields,omitempty"`
	Field       string                 `json:"field,omitempty"`
}

type jsonConstructorField struct {
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

type jsonStmt struct {
	Kind       string    `json:"kind"`
	Target     *uint32   `json:"target,omitempty"`
	Expression *uint32   `json:"expression,omitempty"`
	Type       *jsonType `json:"type,omitempty"`
}

// Load decodes r as a Crate and populates a fresh hir.NodeInterner,
// returning it along with the list of FuncIds to pass to
// typecheck.CheckCrate.
func Load(r io.Reader) (*hir.NodeInterner, []ids.FuncId, error) {
	var doc Crate

	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding crate: %w", err)
	}

	interner := hir.NewNodeInterner()

	structs := make([]*types.StructDefinition, len(doc.Structs))
	for i := range doc.Structs {
		structs[i] = &types.StructDefinition{Name: doc.Structs[i].Name}
	}

	for i, s := range doc.Structs {
		fields := make([]types.StructField, len(s.Fields))
		for j, f := range s.Fields {
			fields[j] = types.StructField{Name: f.Name, Type: toType(f.Type, structs)}
		}

		methods := make(map[string]ids.FuncId, len(s.Methods))
		for name, fn := range s.Methods {
			methods[name] = ids.FuncId(fn)
		}

		structs[i].Fields = fields
		structs[i].Methods = methods
	}

	for _, d := range doc.Defs {
		interner.PushDef(d.Span.toSpan())
	}

	for _, e := range doc.Exprs {
		interner.PushExpr(toExpr(e, structs), e.Span.toSpan())
	}

	for _, s := range doc.Stmts {
		interner.PushStmt(toStmt(s, structs))
	}

	funcIds := make([]ids.FuncId, len(doc.Functions))

	for i, f := range doc.Functions {
		params := make([]hir.Param, len(f.Parameters))
		for j, p := range f.Parameters {
			params[j] = hir.Param{Name: ids.DefId(p.Name), Type: toType(p.Type, structs)}
		}

		meta := hir.FunctionMeta{Parameters: params, ReturnType: toType(f.ReturnType, structs)}
		if f.Body != nil {
			meta.HasBody = true
			meta.Body = ids.ExprId(*f.Body)
		}

		funcIds[i] = interner.DefineFunction(meta)
	}

	// Parameter definitions carry their declared type immediately, matching
	// how name resolution would have bound them before the checker ever
	// runs.
	for _, f := range doc.Functions {
		for _, p := range f.Parameters {
			interner.PushDefinitionType(ids.DefId(p.Name), toType(p.Type, structs))
		}
	}

	return interner, funcIds, nil
}

func toType(t jsonType, structs []*types.StructDefinition) types.Type {
	vis := parseVisibility(t.Vis)

	switch t.Kind {
	case "field":
		return types.FieldElementType{Vis: vis}
	case "int":
		return types.IntegerType{Vis: vis, Signed: t.Signed, Width: t.Width}
	case "bool":
		return types.BoolType{}
	case "array":
		size := types.VariableSize
		if t.Size != nil {
			size = types.FixedSize(*t.Size)
		}

		return types.ArrayType{Vis: vis, Size: size, Elem: toType(*t.Elem, structs)}
	case "tuple":
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = toType(e, structs)
		}

		return types.TupleType{Elems: elems}
	case "struct":
		for _, d := range structs {
			if d.Name == t.Struct {
				return types.StructType{Vis: vis, Def: d}
			}
		}

		panic(fmt.Sprintf("unknown struct %q", t.Struct))
	case "unit":
		return types.UnitType{}
	case "unspecified":
		return types.UnspecifiedType{}
	case "error":
		return types.ErrorType{}
	default:
		panic(fmt.Sprintf("unknown type kind %q", t.Kind))
	}
}

func parseVisibility(v string) types.Visibility {
	switch v {
	case "public":
		return types.Public
	case "constant":
		return types.Constant
	default:
		return types.Private
	}
}

var binaryOps = map[string]hir.BinaryOp{
	"+": hir.Add, "-": hir.Sub, "*": hir.Mul, "/": hir.Div, "%": hir.Mod,
	"==": hir.Equal, "!=": hir.NotEqual, "<": hir.Less, "<=": hir.LessEqual,
	">": hir.Greater, ">=": hir.GreaterEqual,
	"&": hir.BitAnd, "|": hir.BitOr, "^": hir.BitXor, "<<": hir.Shl, ">>": hir.Shr,
}

func toExprIds(raw []uint32) []ids.ExprId {
	out := make([]ids.ExprId, len(raw))
	for i, v := range raw {
		out[i] = ids.ExprId(v)
	}

	return out
}

func toExpr(e jsonExpr, structs []*types.StructDefinition) hir.HirExpression {
	switch e.Kind {
	case "ident":
		return hir.HirIdent{Def: ids.DefId(*e.Def)}
	case "array":
		return hir.HirArrayLiteral{Contents: toExprIds(e.Contents)}
	case "bool":
		return hir.HirBoolLiteral{Value: e.Bool}
	case "int":
		v := new(big.Int)
		if _, ok := v.SetString(e.Int, 10); !ok {
			panic(fmt.Sprintf("invalid integer literal %q", e.Int))
		}

		return hir.HirIntegerLiteral{Value: v}
	case "str":
		return hir.HirStrLiteral{Value: e.Str}
	case "infix":
		op, ok := binaryOps[e.Op]
		if !ok {
			panic(fmt.Sprintf("unknown binary operator %q", e.Op))
		}

		return hir.HirInfix{Lhs: ids.ExprId(*e.Lhs), Operator: op, Rhs: ids.ExprId(*e.Rhs)}
	case "index":
		return hir.HirIndex{Collection: ids.ExprId(*e.Collection), Index: ids.ExprId(*e.Index)}
	case "call":
		return hir.HirCall{Func: ids.FuncId(*e.Func), Args: toExprIds(e.Args)}
	case "methodCall":
		return hir.HirMethodCall{Object: ids.ExprId(*e.Object), MethodName: e.Method, Args: toExprIds(e.Args)}
	case "cast":
		return hir.HirCast{Lhs: ids.ExprId(*e.Lhs), Type: toType(*e.Type, structs)}
	case "for":
		return hir.HirFor{
			Identifier: ids.DefId(*e.Identifier),
			StartRange: ids.ExprId(*e.StartRange),
			EndRange:   ids.ExprId(*e.EndRange),
			Block:      ids.ExprId(*e.Block),
		}
	case "block":
		stmts := make([]ids.StmtId, len(e.Statements))
		for i, s := range e.Statements {
			stmts[i] = ids.StmtId(s)
		}

		return hir.HirBlock{Statements: stmts}
	case "prefix":
		op := hir.Negate
		if e.Op == "!" {
			op = hir.Not
		}

		return hir.HirPrefix{Operator: op, Rhs: ids.ExprId(*e.Rhs)}
	case "if":
		var alt *ids.ExprId

		if e.Alternative != nil {
			v := ids.ExprId(*e.Alternative)
			alt = &v
		}

		return hir.HirIf{Condition: ids.ExprId(*e.Condition), Consequence: ids.ExprId(*e.Consequence), Alternative: alt}
	case "constructor":
		var def *types.StructDefinition

		for _, d := range structs {
			if d.Name == e.StructName {
				def = d
			}
		}

		if def == nil {
			panic(fmt.Sprintf("unknown struct %q", e.StructName))
		}

		fields := make([]hir.HirConstructorField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = hir.HirConstructorField{Name: f.Name, Value: ids.ExprId(f.Value)}
		}

		return hir.HirConstructor{StructDef: def, Fields: fields}
	case "memberAccess":
		return hir.HirMemberAccess{Lhs: ids.ExprId(*e.Lhs), RhsFieldName: e.Field}
	case "tuple":
		return hir.HirTuple{Fields: toExprIds(e.Contents)}
	case "error":
		return hir.HirErrorExpression{}
	default:
		panic(fmt.Sprintf("unknown expression kind %q", e.Kind))
	}
}

func toStmt(s jsonStmt, structs []*types.StructDefinition) hir.HirStatement {
	switch s.Kind {
	case "let":
		let := hir.HirLet{Target: ids.DefId(*s.Target), Expression: ids.ExprId(*s.Expression)}
		if s.Type != nil {
			let.Type = toType(*s.Type, structs)
		}

		return let
	case "constrain":
		return hir.HirConstrain{Expression: ids.ExprId(*s.Expression)}
	case "expr":
		return hir.HirExpressionStatement{Expression: ids.ExprId(*s.Expression)}
	case "error":
		return hir.HirErrorStatement{}
	default:
		panic(fmt.Sprintf("unknown statement kind %q", s.Kind))
	}
}
