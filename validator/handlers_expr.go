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

package validator

import (
	"github.com/cypherql/cyphervalidate/ast"
	"github.com/cypherql/cyphervalidate/env"
	"github.com/cypherql/cyphervalidate/internal/similartext"
)

// handleIdentifier requires the referenced name to be bound, and rejects a
// reference to a name still under creation in the same pattern (spec.md
// §4.5: "CREATE (a {v:0}), ()-[:R {k:toJSON(a)}]->()" is invalid — a is not
// yet fully created when the second path references it).
func handleIdentifier(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	id := n.(*ast.Identifier)
	if dec := validateReferredIdentifier(ctx, id.Name); dec == Break {
		return Break
	}
	return Recurse
}

func validateReferredIdentifier(ctx *Context, name string) Decision {
	if !ctx.Defined.Contains(name) {
		return ctx.Fail(ErrNotDefined.New(name))
	}
	if ctx.Intermediate.Contains(name) {
		return ctx.Fail(ErrNotDefined.New(name))
	}
	return Recurse
}

// handleMap visits every value in an inline map literal; keys are plain
// strings and need no validation.
func handleMap(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	m := n.(*ast.MapLiteral)
	for _, v := range m.Values {
		if defaultDriver.Visit(ctx, v) == Break {
			return Break
		}
	}
	return Continue
}

// handleProjection visits only the projected expression — the alias is a
// plain name, never a reference to validate.
func handleProjection(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	p := n.(*ast.Projection)
	if defaultDriver.Visit(ctx, p.Expression) == Break {
		return Break
	}
	return Continue
}

// handleApplyOperator checks the called function exists and, unless the
// current clause allows aggregation, rejects aggregate functions.
func handleApplyOperator(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	a := n.(*ast.ApplyOperator)

	if dec := validateFunctionCall(ctx, a.FuncName, includeAggregates(ctx.Clause)); dec == Break {
		return Break
	}
	return Recurse
}

// includeAggregates reports whether the enclosing clause permits aggregate
// functions. ClauseApplyOperator never occurs in practice (nothing sets
// Clause to it) but is checked for fidelity (spec.md §9).
func includeAggregates(c Clause) bool {
	return c == ClauseWith || c == ClauseReturn || c == ClauseApplyOperator
}

func validateFunctionCall(ctx *Context, name string, includeAggregates bool) Decision {
	if !ctx.Functions.Exists(name) {
		return ctx.Fail(ErrUnknownFunction.New(name, similartext.Find(ctx.Functions.Names(), name)))
	}
	if !includeAggregates && ctx.Functions.IsAggregate(name) {
		return ctx.Fail(ErrAggregateMisuse.New(name))
	}
	return Recurse
}

// handleApplyAllOperator validates `F(*)` — only COUNT(*) is legal, and
// DISTINCT can never be combined with it.
func handleApplyAllOperator(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	a := n.(*ast.ApplyAllOperator)

	if !strEqualFold(a.FuncName, "COUNT") {
		return ctx.Fail(ErrCountOnlyStarFunc.New())
	}
	if a.Distinct {
		return ctx.Fail(ErrApplyAllDistinct.New())
	}
	return Recurse
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// handleReduce threads reduce(acc = init, v IN list | eval)'s scope: the
// accumulator and loop variable are introduced only if not already bound,
// and removed again once eval has been validated (spec.md §4.6).
func handleReduce(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	r := n.(*ast.Reduce)

	origClause := ctx.Clause
	ctx.Clause = ClauseReduce

	if id, ok := r.Init.(*ast.Identifier); ok {
		if !ctx.Defined.Contains(id.Name) {
			ctx.Clause = origClause
			return ctx.Fail(ErrNotDefined.New(id.Name))
		}
	} else if defaultDriver.Visit(ctx, r.Init) == Break {
		ctx.Clause = origClause
		return Break
	}

	if id, ok := r.List.(*ast.Identifier); ok {
		if !ctx.Defined.Contains(id.Name) {
			ctx.Clause = origClause
			return ctx.Fail(ErrNotDefined.New(id.Name))
		}
	}
	if defaultDriver.Visit(ctx, r.List) == Break {
		ctx.Clause = origClause
		return Break
	}

	if r.Eval == nil {
		ctx.Clause = origClause
		return ctx.Fail(ErrReduceNoEval.New())
	}

	introduceAccum := !ctx.Defined.Contains(r.Accumulator)
	if introduceAccum {
		ctx.Defined.Insert(r.Accumulator, env.Untyped)
	}
	introduceVar := !ctx.Defined.Contains(r.Variable)
	if introduceVar {
		ctx.Defined.Insert(r.Variable, env.Untyped)
	}

	dec := defaultDriver.Visit(ctx, r.Eval)

	ctx.Clause = origClause
	if introduceAccum {
		ctx.Defined.Remove(r.Accumulator)
	}
	if introduceVar {
		ctx.Defined.Remove(r.Variable)
	}

	if dec == Break {
		return Break
	}
	return Continue
}

// handleListComprehension covers `[x IN xs WHERE p | e]` and the quantifier
// forms (ANY/ALL/NONE/SINGLE), which all scope their loop variable to a
// clone of Defined discarded once the comprehension has been validated.
func handleListComprehension(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	l := n.(*ast.ListComprehension)

	orig := ctx.Defined
	ctx.Defined = orig.Clone()
	ctx.Defined.Insert(l.Variable, env.Untyped)

	dec := Recurse
	if l.List != nil && defaultDriver.Visit(ctx, l.List) == Break {
		dec = Break
	}
	if dec != Break && l.Predicate != nil && defaultDriver.Visit(ctx, l.Predicate) == Break {
		dec = Break
	}
	if dec != Break && l.Eval != nil && defaultDriver.Visit(ctx, l.Eval) == Break {
		dec = Break
	}

	ctx.Defined = orig
	if dec == Break {
		return Break
	}
	return Continue
}

// handlePatternComprehension covers `[p = (a)-[e]->(f) WHERE ... | f]`: the
// path variable and any names the pattern introduces are scoped to a clone
// of Defined, and the pattern is validated under ClausePatternComprehension
// so its node/rel handlers register aliases without triggering the
// referred-identifier checks a MATCH clause would apply.
func handlePatternComprehension(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	p := n.(*ast.PatternComprehension)

	orig := ctx.Defined
	ctx.Defined = orig.Clone()
	if p.PathVariable != "" {
		ctx.Defined.Insert(p.PathVariable, env.Path)
	}

	origClause := ctx.Clause
	ctx.Clause = ClausePatternComprehension
	dec := defaultDriver.Visit(ctx, p.Pattern)
	ctx.Clause = origClause

	if dec != Break && p.Predicate != nil && defaultDriver.Visit(ctx, p.Predicate) == Break {
		dec = Break
	}
	if dec != Break && p.Eval != nil && defaultDriver.Visit(ctx, p.Eval) == Break {
		dec = Break
	}

	ctx.Defined = orig
	if dec == Break {
		return Break
	}
	return Continue
}

// handleBinaryOperator rejects the three operator kinds this validator
// never supports, accepting everything else for recursive descent.
func handleBinaryOperator(ctx *Context, n ast.Node, start bool) Decision {
	if !start {
		return Continue
	}
	b := n.(*ast.BinaryOperator)
	switch b.Op {
	case ast.OperatorSubscript:
		return ctx.Fail(ErrUnsupportedASTNode.New("subscript operator"))
	case ast.OperatorMapProjection:
		return ctx.Fail(ErrUnsupportedASTNode.New("map projection operator"))
	case ast.OperatorRegex:
		return ctx.Fail(ErrUnsupportedASTNode.New("regex operator"))
	}
	return Recurse
}

// validateInlineProperties walks a node/rel pattern's inline property map
// (spec.md §4.5). props is nil when the pattern has no inline properties.
func validateInlineProperties(ctx *Context, props *ast.MapLiteral, alias string) Decision {
	if props == nil {
		return Recurse
	}

	for _, val := range props.Values {
		switch v := val.(type) {
		case *ast.PatternPath:
			return ctx.Fail(ErrInlinePropertyUnhandled.New())

		case *ast.Identifier:
			kind, ok := ctx.Defined.Find(v.Name)
			if !ok {
				return ctx.Fail(ErrNotDefined.New(v.Name))
			}
			if ctx.Intermediate.Contains(v.Name) {
				return ctx.Fail(ErrNotDefined.New(v.Name))
			}
			if kind == env.Node || kind == env.Edge {
				return ctx.Fail(ErrInlinePropertyNotPrimitive.New())
			}

		case *ast.PropertyOperator:
			if id, ok := v.Target.(*ast.Identifier); ok {
				if ctx.Clause != ClauseMatch && alias != "" && alias == id.Name {
					return ctx.Fail(ErrNotDefined.New(id.Name))
				}
				if ctx.Intermediate.Contains(id.Name) {
					return ctx.Fail(ErrNotDefined.New(id.Name))
				}
			}

		case *ast.SubscriptOperator:
			if id, ok := v.Target.(*ast.Identifier); ok {
				if !ctx.Defined.Contains(id.Name) {
					return ctx.Fail(ErrNotDefined.New(id.Name))
				}
			}

		default:
			if defaultDriver.Visit(ctx, val) == Break {
				return Break
			}
		}
	}

	return Recurse
}
