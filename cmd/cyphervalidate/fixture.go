// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/cypherql/cyphervalidate/ast"
)

// fixtureNode is the wire shape of one AST fixture node: a discriminated
// union keyed by "kind", with every other field interpreted according to
// that kind. The validator itself never sees this shape — decodeNode
// translates it into the concrete ast.Node types the parser would hand the
// validator in a real deployment (spec.md §6 treats the parser as an
// external collaborator; a fixture file stands in for one here).
type fixtureNode struct {
	Kind string `json:"kind"`

	Name       string          `json:"name,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Identifier string          `json:"identifier,omitempty"`
	Alias      string          `json:"alias,omitempty"`

	Labels    []string `json:"labels,omitempty"`
	RelTypes  []string `json:"relTypes,omitempty"`
	Direction string   `json:"direction,omitempty"`

	Optional  bool             `json:"optional,omitempty"`
	Detach    bool             `json:"detach,omitempty"`
	Distinct  bool             `json:"distinct,omitempty"`
	Single    bool             `json:"single,omitempty"`
	Star      bool             `json:"star,omitempty"`
	All       bool             `json:"all,omitempty"`
	Aggregate bool             `json:"aggregate,omitempty"`

	FuncName string `json:"funcName,omitempty"`
	ProcName string `json:"procName,omitempty"`
	Variable string `json:"variable,omitempty"`
	Property string `json:"property,omitempty"`
	Op       string `json:"op,omitempty"`

	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`

	Keys []string `json:"keys,omitempty"`

	Options     []*fixtureNode `json:"options,omitempty"`
	Body        *fixtureNode   `json:"body,omitempty"`
	Clauses     []*fixtureNode `json:"clauses,omitempty"`
	Pattern     *fixtureNode   `json:"pattern,omitempty"`
	Paths       []*fixtureNode `json:"paths,omitempty"`
	Elements    []*fixtureNode `json:"elements,omitempty"`
	Path        *fixtureNode   `json:"path,omitempty"`
	Predicate   *fixtureNode   `json:"predicate,omitempty"`
	Properties  *fixtureNode   `json:"properties,omitempty"`
	Projections []*fixtureNode `json:"projections,omitempty"`
	OrderBy     *fixtureNode   `json:"orderBy,omitempty"`
	Items       []*fixtureNode `json:"items,omitempty"`
	Expression  *fixtureNode   `json:"expression,omitempty"`
	Skip        *fixtureNode   `json:"skip,omitempty"`
	Limit       *fixtureNode   `json:"limit,omitempty"`
	List        *fixtureNode   `json:"list,omitempty"`
	Arguments   []*fixtureNode `json:"arguments,omitempty"`
	Args        []*fixtureNode `json:"args,omitempty"`
	Expressions []*fixtureNode `json:"expressions,omitempty"`
	Target      *fixtureNode   `json:"target,omitempty"`
	Init        *fixtureNode   `json:"init,omitempty"`
	Eval        *fixtureNode   `json:"eval,omitempty"`
	Accumulator string         `json:"accumulator,omitempty"`
	Left        *fixtureNode   `json:"left,omitempty"`
	Right       *fixtureNode   `json:"right,omitempty"`
	Index       *fixtureNode   `json:"index,omitempty"`
	OnCreate    []*fixtureNode `json:"onCreate,omitempty"`
	OnMatch     []*fixtureNode `json:"onMatch,omitempty"`
	Values      []*fixtureNode `json:"values,omitempty"`
	Query       *fixtureNode   `json:"query,omitempty"`
	VarLength   *fixtureNode   `json:"varLength,omitempty"`
	ValueNode   *fixtureNode   `json:"valueNode,omitempty"`
}

var directionByName = map[string]ast.Direction{
	"right": ast.DirectionRight,
	"left":  ast.DirectionLeft,
	"both":  ast.DirectionBidirectional,
}

var binaryOpByName = map[string]ast.BinaryOperatorKind{
	"subscript":     ast.OperatorSubscript,
	"mapProjection": ast.OperatorMapProjection,
	"regex":         ast.OperatorRegex,
}

var quantifierByKind = map[string]ast.ComprehensionQuantifier{
	"ANY":    ast.QuantifierAny,
	"ALL":    ast.QuantifierAll,
	"NONE":   ast.QuantifierNone,
	"SINGLE": ast.QuantifierSingle,
}

// kindByUnsupportedName maps each explicitly-unsupported kind's wire name
// (spec.md §6) back to its ast.Kind, so a fixture can name one directly
// (e.g. `{"kind": "LOAD_CSV"}`) to exercise the unsupported-kind path.
var kindByUnsupportedName = func() map[string]ast.Kind {
	m := make(map[string]ast.Kind, len(ast.UnsupportedKinds))
	for k := range ast.UnsupportedKinds {
		m[k.String()] = k
	}
	return m
}()

// decodeNode translates one fixture node into its concrete ast.Node. Kinds
// outside this dialect's real AST (anything in ast.UnsupportedKinds, plus
// comments) decode to a bare ast.Unsupported/comment wrapper — their whole
// purpose in a fixture is to exercise the unsupported-kind / root-skipping
// paths, not to carry payload.
func decodeNode(n *fixtureNode) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case "STATEMENT":
		body, err := decodeNode(n.Body)
		if err != nil {
			return nil, err
		}
		opts, err := decodeNodes(n.Options)
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(body, opts...), nil

	case "QUERY":
		clauses, err := decodeNodes(n.Clauses)
		if err != nil {
			return nil, err
		}
		return ast.NewQuery(clauses...), nil

	case "IDENTIFIER":
		return ast.NewIdentifier(n.Name), nil

	case "LITERAL":
		var v interface{}
		if len(n.Value) > 0 {
			if err := json.Unmarshal(n.Value, &v); err != nil {
				return nil, fmt.Errorf("decoding literal value: %w", err)
			}
		}
		return ast.NewLiteral(v), nil

	case "PARAMETER":
		return ast.NewParameter(n.Name), nil

	case "RANGE":
		return ast.NewRange(n.Start, n.End), nil

	case "MAP":
		values, err := decodeNodes(n.Values)
		if err != nil {
			return nil, err
		}
		return ast.NewMap(n.Keys, values), nil

	case "NODE_PATTERN":
		props, err := decodeMap(n.Properties)
		if err != nil {
			return nil, err
		}
		return ast.NewNodePattern(n.Identifier, n.Labels, props), nil

	case "REL_PATTERN":
		props, err := decodeMap(n.Properties)
		if err != nil {
			return nil, err
		}
		var varLength *ast.Range
		if n.VarLength != nil {
			r, err := decodeNode(n.VarLength)
			if err != nil {
				return nil, err
			}
			varLength, _ = r.(*ast.Range)
		}
		dir := ast.DirectionRight
		if d, ok := directionByName[n.Direction]; ok {
			dir = d
		}
		return ast.NewRelPattern(n.Identifier, n.RelTypes, dir, varLength, props), nil

	case "PATTERN_PATH":
		elements, err := decodeNodes(n.Elements)
		if err != nil {
			return nil, err
		}
		return ast.NewPatternPath(elements...), nil

	case "NAMED_PATH":
		pathNode, err := decodeNode(n.Path)
		if err != nil {
			return nil, err
		}
		path, _ := pathNode.(*ast.PatternPath)
		return ast.NewNamedPath(n.Identifier, path), nil

	case "SHORTEST_PATH":
		pathNode, err := decodeNode(n.Path)
		if err != nil {
			return nil, err
		}
		path, _ := pathNode.(*ast.PatternPath)
		return ast.NewShortestPath(n.Single, path), nil

	case "PATTERN":
		paths, err := decodeNodes(n.Paths)
		if err != nil {
			return nil, err
		}
		return ast.NewPattern(paths...), nil

	case "PROJECTION":
		expr, err := decodeNode(n.Expression)
		if err != nil {
			return nil, err
		}
		return ast.NewProjection(expr, n.Alias), nil

	case "SORT_ITEM":
		expr, err := decodeNode(n.Expression)
		if err != nil {
			return nil, err
		}
		return ast.NewSortItem(expr, n.Direction == "desc"), nil

	case "ORDER_BY":
		items, err := decodeSortItems(n.Items)
		if err != nil {
			return nil, err
		}
		return ast.NewOrderBy(items...), nil

	case "MATCH":
		patternNode, err := decodeNode(n.Pattern)
		if err != nil {
			return nil, err
		}
		pattern, _ := patternNode.(*ast.Pattern)
		predicate, err := decodeNode(n.Predicate)
		if err != nil {
			return nil, err
		}
		return ast.NewMatch(n.Optional, pattern, predicate), nil

	case "CREATE":
		patternNode, err := decodeNode(n.Pattern)
		if err != nil {
			return nil, err
		}
		pattern, _ := patternNode.(*ast.Pattern)
		return ast.NewCreate(pattern), nil

	case "ON_CREATE":
		items, err := decodeNodes(n.Items)
		if err != nil {
			return nil, err
		}
		return ast.NewOnCreate(items...), nil

	case "ON_MATCH":
		items, err := decodeNodes(n.Items)
		if err != nil {
			return nil, err
		}
		return ast.NewOnMatch(items...), nil

	case "MERGE":
		path, err := decodeNode(n.Path)
		if err != nil {
			return nil, err
		}
		var onCreate *ast.OnCreate
		if len(n.OnCreate) > 0 {
			items, err := decodeNodes(n.OnCreate)
			if err != nil {
				return nil, err
			}
			onCreate = ast.NewOnCreate(items...)
		}
		var onMatch *ast.OnMatch
		if len(n.OnMatch) > 0 {
			items, err := decodeNodes(n.OnMatch)
			if err != nil {
				return nil, err
			}
			onMatch = ast.NewOnMatch(items...)
		}
		return ast.NewMerge(path, onCreate, onMatch), nil

	case "WITH":
		projections, err := decodeProjections(n.Projections)
		if err != nil {
			return nil, err
		}
		predicate, err := decodeNode(n.Predicate)
		if err != nil {
			return nil, err
		}
		orderBy, err := decodeOrderBy(n.OrderBy)
		if err != nil {
			return nil, err
		}
		skip, err := decodeNode(n.Skip)
		if err != nil {
			return nil, err
		}
		limit, err := decodeNode(n.Limit)
		if err != nil {
			return nil, err
		}
		return ast.NewWith(n.Star, projections, predicate, orderBy, skip, limit), nil

	case "RETURN":
		projections, err := decodeProjections(n.Projections)
		if err != nil {
			return nil, err
		}
		orderBy, err := decodeOrderBy(n.OrderBy)
		if err != nil {
			return nil, err
		}
		skip, err := decodeNode(n.Skip)
		if err != nil {
			return nil, err
		}
		limit, err := decodeNode(n.Limit)
		if err != nil {
			return nil, err
		}
		return ast.NewReturn(n.Star, projections, orderBy, skip, limit), nil

	case "UNWIND":
		list, err := decodeNode(n.List)
		if err != nil {
			return nil, err
		}
		return ast.NewUnwind(list, n.Variable), nil

	case "CALL":
		args, err := decodeNodes(n.Arguments)
		if err != nil {
			return nil, err
		}
		projections, err := decodeProjections(n.Projections)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(n.ProcName, args, projections), nil

	case "DELETE":
		exprs, err := decodeNodes(n.Expressions)
		if err != nil {
			return nil, err
		}
		return ast.NewDelete(n.Detach, exprs...), nil

	case "SET_PROPERTY":
		target, err := decodeNode(n.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeNode(n.ValueNode)
		if err != nil {
			return nil, err
		}
		return ast.NewSetProperty(target, value), nil

	case "SET":
		items := make([]*ast.SetProperty, 0, len(n.Items))
		for _, it := range n.Items {
			node, err := decodeNode(it)
			if err != nil {
				return nil, err
			}
			sp, ok := node.(*ast.SetProperty)
			if !ok {
				return nil, fmt.Errorf("SET item must decode to SET_PROPERTY, got %T", node)
			}
			items = append(items, sp)
		}
		return ast.NewSet(items...), nil

	case "FOREACH":
		list, err := decodeNode(n.List)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeNodes(n.Clauses)
		if err != nil {
			return nil, err
		}
		return ast.NewForeach(n.Variable, list, clauses...), nil

	case "UNION":
		query, err := decodeNode(n.Query)
		if err != nil {
			return nil, err
		}
		return ast.NewUnion(n.All, query), nil

	case "APPLY_OPERATOR":
		args, err := decodeNodes(n.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewApplyOperator(n.FuncName, n.Distinct, args...), nil

	case "APPLY_ALL_OPERATOR":
		return ast.NewApplyAllOperator(n.FuncName, n.Distinct), nil

	case "REDUCE":
		init, err := decodeNode(n.Init)
		if err != nil {
			return nil, err
		}
		list, err := decodeNode(n.List)
		if err != nil {
			return nil, err
		}
		eval, err := decodeNode(n.Eval)
		if err != nil {
			return nil, err
		}
		return ast.NewReduce(n.Accumulator, init, n.Variable, list, eval), nil

	case "LIST_COMPREHENSION", "ANY", "ALL", "NONE", "SINGLE":
		list, err := decodeNode(n.List)
		if err != nil {
			return nil, err
		}
		predicate, err := decodeNode(n.Predicate)
		if err != nil {
			return nil, err
		}
		eval, err := decodeNode(n.Eval)
		if err != nil {
			return nil, err
		}
		q := ast.QuantifierPlain
		if qq, ok := quantifierByKind[n.Kind]; ok {
			q = qq
		}
		return ast.NewListComprehension(q, n.Variable, list, predicate, eval), nil

	case "PATTERN_COMPREHENSION":
		patternNode, err := decodeNode(n.Pattern)
		if err != nil {
			return nil, err
		}
		pattern, _ := patternNode.(*ast.PatternPath)
		predicate, err := decodeNode(n.Predicate)
		if err != nil {
			return nil, err
		}
		eval, err := decodeNode(n.Eval)
		if err != nil {
			return nil, err
		}
		return ast.NewPatternComprehension(n.Identifier, pattern, predicate, eval), nil

	case "BINARY_OPERATOR":
		left, err := decodeNode(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(n.Right)
		if err != nil {
			return nil, err
		}
		op := ast.OperatorOther
		if o, ok := binaryOpByName[n.Op]; ok {
			op = o
		}
		return ast.NewBinaryOperator(op, left, right), nil

	case "PROPERTY_OPERATOR":
		target, err := decodeNode(n.Target)
		if err != nil {
			return nil, err
		}
		return ast.NewPropertyOperator(target, n.Property), nil

	case "SUBSCRIPT_OPERATOR":
		target, err := decodeNode(n.Target)
		if err != nil {
			return nil, err
		}
		index, err := decodeNode(n.Index)
		if err != nil {
			return nil, err
		}
		return ast.NewSubscriptOperator(target, index), nil

	case "CREATE_PATTERN_PROPS_INDEX":
		return ast.NewCreateIndex(n.Identifier, labelOf(n), n.Keys...), nil

	case "DROP_PATTERN_PROPS_INDEX":
		return ast.NewDropIndex(labelOf(n), n.Keys...), nil

	case "LINE_COMMENT":
		return ast.NewLineComment(), nil
	case "BLOCK_COMMENT":
		return ast.NewBlockComment(), nil

	default:
		if k, ok := kindByUnsupportedName[n.Kind]; ok {
			return ast.NewUnsupported(k), nil
		}
		return nil, fmt.Errorf("unrecognized fixture kind %q", n.Kind)
	}
}

// labelOf reads the single label a CREATE/DROP INDEX fixture names — stored
// in Labels[0] for symmetry with node-pattern fixtures.
func labelOf(n *fixtureNode) string {
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return ""
}

func decodeNodes(ns []*fixtureNode) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(ns))
	for _, n := range ns {
		d, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeProjections(ns []*fixtureNode) ([]*ast.Projection, error) {
	out := make([]*ast.Projection, 0, len(ns))
	for _, n := range ns {
		d, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		p, ok := d.(*ast.Projection)
		if !ok {
			return nil, fmt.Errorf("expected PROJECTION, got %T", d)
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeSortItems(ns []*fixtureNode) ([]*ast.SortItem, error) {
	out := make([]*ast.SortItem, 0, len(ns))
	for _, n := range ns {
		d, err := decodeNode(n)
		if err != nil {
			return nil, err
		}
		s, ok := d.(*ast.SortItem)
		if !ok {
			return nil, fmt.Errorf("expected SORT_ITEM, got %T", d)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeOrderBy(n *fixtureNode) (*ast.OrderBy, error) {
	if n == nil {
		return nil, nil
	}
	d, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	o, _ := d.(*ast.OrderBy)
	return o, nil
}

func decodeMap(n *fixtureNode) (*ast.MapLiteral, error) {
	if n == nil {
		return nil, nil
	}
	d, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	m, _ := d.(*ast.MapLiteral)
	return m, nil
}

// parseRoots decodes a fixture file's top-level "roots" array — a parser
// normally hands the validator one or more parse-tree roots (comments plus
// exactly one statement); the fixture format mirrors that directly.
func parseRoots(raw []byte) ([]ast.Node, error) {
	var doc struct {
		Roots []*fixtureNode `json:"roots"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	return decodeNodes(doc.Roots)
}
