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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherql/cyphervalidate/ast"
	"github.com/cypherql/cyphervalidate/env"
)

func TestHandleIdentifierRejectsUndefinedName(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	dec := defaultDriver.Visit(ctx, ast.NewIdentifier("missing"))
	require.Equal(Break, dec)
	require.True(ErrNotDefined.Is(ctx.Err))
}

func TestHandleIdentifierRejectsIntermediateShadow(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("a", env.Node)
	ctx.Intermediate.Insert("a", env.Node)

	defaultDriver.Visit(ctx, ast.NewIdentifier("a"))
	require.Error(ctx.Err)
	require.True(ErrNotDefined.Is(ctx.Err))
}

func TestHandleMapVisitsEveryValue(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	m := ast.NewMap([]string{"k"}, []ast.Node{ast.NewIdentifier("missing")})
	defaultDriver.Visit(ctx, m)
	require.Error(ctx.Err)
	require.True(ErrNotDefined.Is(ctx.Err))
}

func TestApplyOperatorRejectsUnknownFunction(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	call := ast.NewApplyOperator("bogus", false, ast.NewLiteral(1))
	defaultDriver.Visit(ctx, call)
	require.Error(ctx.Err)
	require.True(ErrUnknownFunction.Is(ctx.Err))
}

func TestApplyOperatorRejectsAggregateOutsideWithOrReturn(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Clause = ClauseMatch

	call := ast.NewApplyOperator("count", false, ast.NewLiteral(1))
	defaultDriver.Visit(ctx, call)
	require.Error(ctx.Err)
	require.True(ErrAggregateMisuse.Is(ctx.Err))
}

func TestApplyOperatorAllowsAggregateUnderReturn(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Clause = ClauseReturn

	call := ast.NewApplyOperator("count", false, ast.NewLiteral(1))
	dec := defaultDriver.Visit(ctx, call)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)
}

func TestApplyAllOperatorRejectsNonCount(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	a := ast.NewApplyAllOperator("sum", false)
	defaultDriver.Visit(ctx, a)
	require.Error(ctx.Err)
	require.True(ErrCountOnlyStarFunc.Is(ctx.Err))
}

func TestApplyAllOperatorRejectsDistinct(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	a := ast.NewApplyAllOperator("COUNT", true)
	defaultDriver.Visit(ctx, a)
	require.Error(ctx.Err)
	require.True(ErrApplyAllDistinct.Is(ctx.Err))
}

func TestApplyAllOperatorAcceptsPlainCountStar(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	a := ast.NewApplyAllOperator("count", false)
	dec := defaultDriver.Visit(ctx, a)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)
}

func TestReduceRejectsMissingEval(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("xs", env.Untyped)

	r := ast.NewReduce("acc", ast.NewLiteral(0), "x", ast.NewIdentifier("xs"), nil)
	defaultDriver.Visit(ctx, r)
	require.Error(ctx.Err)
	require.True(ErrReduceNoEval.Is(ctx.Err))
}

func TestReduceIntroducesAndRemovesLoopVariables(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("xs", env.Untyped)

	r := ast.NewReduce("acc", ast.NewLiteral(0), "x", ast.NewIdentifier("xs"), ast.NewIdentifier("acc"))
	dec := defaultDriver.Visit(ctx, r)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)

	_, hasAcc := ctx.Defined.Find("acc")
	require.False(hasAcc)
	_, hasX := ctx.Defined.Find("x")
	require.False(hasX)
}

func TestReduceDoesNotRemoveAlreadyBoundAccumulator(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("xs", env.Untyped)
	ctx.Defined.Insert("acc", env.Node)

	r := ast.NewReduce("acc", ast.NewIdentifier("acc"), "x", ast.NewIdentifier("xs"), ast.NewIdentifier("acc"))
	defaultDriver.Visit(ctx, r)
	require.NoError(ctx.Err)

	kind, ok := ctx.Defined.Find("acc")
	require.True(ok)
	require.Equal(env.Node, kind)
}

func TestListComprehensionScopesLoopVariableToClone(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("xs", env.Untyped)

	l := ast.NewListComprehension(ast.QuantifierNone, "x", ast.NewIdentifier("xs"), nil, ast.NewIdentifier("x"))
	dec := defaultDriver.Visit(ctx, l)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)

	_, ok := ctx.Defined.Find("x")
	require.False(ok)
}

func TestPatternComprehensionScopesPathVariable(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	pc := ast.NewPatternComprehension("p", path, nil, ast.NewIdentifier("p"))

	dec := defaultDriver.Visit(ctx, pc)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)

	_, ok := ctx.Defined.Find("p")
	require.False(ok)
}

func TestBinaryOperatorRejectsSubscript(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	b := ast.NewBinaryOperator(ast.OperatorSubscript, ast.NewLiteral(1), ast.NewLiteral(2))
	defaultDriver.Visit(ctx, b)
	require.Error(ctx.Err)
	require.True(ErrUnsupportedASTNode.Is(ctx.Err))
}

func TestBinaryOperatorAcceptsOrdinaryOperator(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	b := ast.NewBinaryOperator(ast.OperatorOther, ast.NewLiteral(1), ast.NewLiteral(2))
	dec := defaultDriver.Visit(ctx, b)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)
}
