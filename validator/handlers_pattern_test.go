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

func node(id string, labels ...string) *ast.NodePattern {
	return ast.NewNodePattern(id, labels, nil)
}

func rel(id string, dir ast.Direction, relTypes ...string) *ast.RelPattern {
	return ast.NewRelPattern(id, relTypes, dir, nil, nil)
}

func TestMatchAllowsSameNodeTwiceInOnePath(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("a"))
	match := ast.NewMatch(false, ast.NewPattern(path), nil)

	dec := defaultDriver.Visit(ctx, match)
	require.Equal(Continue, dec)
	require.NoError(ctx.Err)
}

func TestMatchRejectsDuplicateRelVariable(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(
		node("a"), rel("r", ast.DirectionRight, "R"),
		node("b"), rel("r", ast.DirectionRight, "R"),
		node("c"),
	)
	match := ast.NewMatch(false, ast.NewPattern(path), nil)

	defaultDriver.Visit(ctx, match)
	require.Error(ctx.Err)
	require.True(ErrDuplicateRelVariable.Is(ctx.Err))
}

func TestMatchRejectsAliasNodeRelConflictAcrossClauses(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("x", env.Edge)

	path := ast.NewPatternPath(node("x"))
	match := ast.NewMatch(false, ast.NewPattern(path), nil)

	defaultDriver.Visit(ctx, match)
	require.Error(ctx.Err)
	require.True(ErrAliasNodeRelConflict.Is(ctx.Err))
}

func TestCreateRejectsRedeclaredBareNode(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("a", env.Node)

	path := ast.NewPatternPath(node("a"))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.Error(ctx.Err)
	require.True(ErrCreateRedeclared.Is(ctx.Err))
}

func TestCreateAllowsBoundNodeAsAnchorInLongerPath(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("a", env.Node)

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("", "B"))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.NoError(ctx.Err)
}

func TestCreateRejectsUndirectedRelationship(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(node(""), rel("", ast.DirectionBidirectional, "R"), node(""))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.Error(ctx.Err)
	require.True(ErrCreateDirected.Is(ctx.Err))
}

func TestCreateRejectsMultipleRelTypes(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(node(""), rel("", ast.DirectionRight, "R1", "R2"), node(""))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.Error(ctx.Err)
	require.True(ErrCreateRelTypeCount.Is(ctx.Err))
}

func TestCreateRejectsVariableLengthRelationship(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	r := ast.NewRelPattern("", []string{"R"}, ast.DirectionRight, ast.NewRange(nil, nil), nil)
	path := ast.NewPatternPath(node(""), r, node(""))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.Error(ctx.Err)
	require.True(ErrCreateVarLength.Is(ctx.Err))
}

func TestMergeRejectsRedeclaredBoundNodeWithLabels(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("a", env.Node)

	path := ast.NewPatternPath(node("a", "Person"))
	merge := ast.NewMerge(path, nil, nil)

	defaultDriver.Visit(ctx, merge)
	require.Error(ctx.Err)
	require.True(ErrMergeRedeclaredNode.Is(ctx.Err))
}

func TestMergeRejectsVariableLengthRelationship(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	r := ast.NewRelPattern("", []string{"R"}, ast.DirectionRight, ast.NewRange(nil, nil), nil)
	path := ast.NewPatternPath(node(""), r, node(""))
	merge := ast.NewMerge(path, nil, nil)

	defaultDriver.Visit(ctx, merge)
	require.Error(ctx.Err)
	require.True(ErrMergeVarLength.Is(ctx.Err))
}

func TestVarLengthRangeRejectsMaxBelowMin(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	min, max := 5, 2
	r := ast.NewRelPattern("", []string{"R"}, ast.DirectionRight, ast.NewRange(&min, &max), nil)
	path := ast.NewPatternPath(node("a"), r, node("b"))
	match := ast.NewMatch(false, ast.NewPattern(path), nil)

	defaultDriver.Visit(ctx, match)
	require.Error(ctx.Err)
	require.True(ErrVarLengthRange.Is(ctx.Err))
}

func TestShortestPathRequiresBoundEndpoints(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	sp := ast.NewShortestPath(true, path)
	match := ast.NewMatch(false, ast.NewPattern(sp), nil)

	defaultDriver.Visit(ctx, match)
	require.Error(ctx.Err)
	require.True(ErrShortestPathBoundNodes.Is(ctx.Err))
}

func TestShortestPathAcceptsBoundEndpoints(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("a", env.Node)
	ctx.Defined.Insert("b", env.Node)

	path := ast.NewPatternPath(node("a"), rel("", ast.DirectionRight, "R"), node("b"))
	sp := ast.NewShortestPath(true, path)
	match := ast.NewMatch(false, ast.NewPattern(sp), nil)

	defaultDriver.Visit(ctx, match)
	require.NoError(ctx.Err)
}

func TestAllShortestPathsRejectsNonDefaultMinLength(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()

	min := 2
	r := ast.NewRelPattern("", []string{"R"}, ast.DirectionRight, ast.NewRange(&min, nil), nil)
	path := ast.NewPatternPath(node("a"), r, node("b"))
	sp := ast.NewShortestPath(false, path)
	match := ast.NewMatch(false, ast.NewPattern(sp), nil)

	defaultDriver.Visit(ctx, match)
	require.Error(ctx.Err)
	require.True(ErrAllShortestPathsMinLength.Is(ctx.Err))
}

func TestInlinePropertiesRejectNodeOrEdgeValuedReference(t *testing.T) {
	require := require.New(t)
	ctx := newTestContext()
	ctx.Defined.Insert("n", env.Node)

	props := ast.NewMap([]string{"k"}, []ast.Node{ast.NewIdentifier("n")})
	path := ast.NewPatternPath(ast.NewNodePattern("a", nil, props))
	create := ast.NewCreate(ast.NewPattern(path))

	defaultDriver.Visit(ctx, create)
	require.Error(ctx.Err)
	require.True(ErrInlinePropertyNotPrimitive.Is(ctx.Err))
}
