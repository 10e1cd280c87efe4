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
	"gopkg.in/src-d/go-errors.v1"
)

// Error-kind vocabulary (spec.md §4, §7). Every diagnostic the validator can
// raise is declared here, once, in the same shape as dolthub-go-mysql-server's
// fixed error table in auth/native.go (ErrParseUserFile, ErrUnknownPermission,
// ErrDuplicateUser) and auth/auth.go (ErrNotAuthorized, ErrNoPermission):
// a package-level errors.Kind, instantiated with .New(args...) at the fault
// site. Message text is stable across releases since callers parse it.
var (
	ErrEmptyQuery = errors.NewKind("Error: empty query")
	ErrNotStatement = errors.NewKind("Query must contain a statement")
	ErrUnsupportedQueryType = errors.NewKind("Encountered unsupported query type '%s'")
	ErrUnexpectedClauseAfterReturn = errors.NewKind("Unexpected clause following RETURN")

	ErrUnsupportedASTNode = errors.NewKind("Unsupported AST node: %s")

	ErrNotDefined = errors.NewKind("'%s' not defined")

	ErrAliasNodeRelConflict = errors.NewKind("The alias '%s' was specified for both a node and a relationship")
	ErrAliasPathNodeConflict = errors.NewKind("The alias '%s' was specified for both a path and a node")
	ErrAliasPathRelConflict = errors.NewKind("The alias '%s' was specified for both a path and a relationship")
	ErrDuplicateRelVariable = errors.NewKind("Cannot use the same relationship variable '%s'")

	ErrCreateRedeclared = errors.NewKind("The bound variable '%s' can't be redeclared in a CREATE clause")
	ErrCreateRelTypeCount = errors.NewKind("Exactly one relationship type must be specified for CREATE")
	ErrCreateVarLength = errors.NewKind("Variable length relationships cannot be used in CREATE")
	ErrCreateDirected = errors.NewKind("Only directed relationships are supported in CREATE")

	ErrMergeRedeclaredVariable = errors.NewKind("The bound variable '%s' can't be redeclared in a MERGE clause")
	ErrMergeRedeclaredNode = errors.NewKind("The bound node '%s' can't be redeclared in a MERGE clause")
	ErrMergeVarLength = errors.NewKind("Variable length relationships cannot be used in MERGE")
	ErrMergeRelTypeCount = errors.NewKind("Exactly one relationship type must be specified for each relation in a MERGE pattern")

	ErrVarLengthRange = errors.NewKind("Variable length path, maximum number of hops must be greater or equal to minimum number of hops")

	ErrShortestPathBoundNodes = errors.NewKind("A shortestPath requires bound nodes")
	ErrAllShortestPathsMinLength = errors.NewKind("allShortestPaths(...) does not support a minimal length different from 1")
	ErrAllShortestPathsPlacement = errors.NewKind("allShortestPaths is only supported within a MATCH clause")
	ErrShortestPathPlacement = errors.NewKind("shortestPath is only supported within a WITH or RETURN clause")

	ErrWithProjectionAlias = errors.NewKind("WITH clause projections must be aliased")
	ErrDuplicateColumns = errors.NewKind("Multiple result columns with the same name are not supported")

	ErrProcedureNotRegistered = errors.NewKind("Procedure `%s` is not registered%s")
	ErrProcedureArgCount = errors.NewKind("Procedure `%s` requires %d arguments, got %d")
	ErrProcedureUnknownOutput = errors.NewKind("Procedure `%s` does not yield output `%s`")
	ErrVariableAlreadyDeclared = errors.NewKind("Variable `%s` already declared")

	ErrDeleteUnsupportedExpr = errors.NewKind("DELETE can only be called on nodes, paths and relationships")

	ErrSetNonAliasLHS = errors.NewKind("does not currently support non-alias references on the left-hand side of SET expressions")

	ErrForeachOnlyUpdating = errors.NewKind("Only updating clauses may reside in FOREACH")

	ErrLimitInvalidType = errors.NewKind("LIMIT specified value of invalid type, must be a positive integer")
	ErrSkipInvalidType = errors.NewKind("SKIP specified value of invalid type, must be a positive integer")

	ErrUnionMixed = errors.NewKind("Invalid combination of UNION and UNION ALL")
	ErrUnionColumnMismatch = errors.NewKind("All sub queries in a UNION must have the same column names")
	ErrUnionCountMismatch = errors.NewKind("Found %d UNION clauses but only %d RETURN clauses")

	ErrReduceNoEval = errors.NewKind("No eval expression given in reduce")

	ErrUnknownFunction = errors.NewKind("Unknown function '%s'%s")
	ErrAggregateMisuse = errors.NewKind("Invalid use of aggregating function '%s'")
	ErrCountOnlyStarFunc = errors.NewKind("COUNT is the only function which can accept * as an argument")
	ErrApplyAllDistinct = errors.NewKind("Cannot specify both DISTINCT and * in COUNT(DISTINCT *)")

	ErrInlinePropertyUnhandled = errors.NewKind("Encountered unhandled type in inlined properties")
	ErrInlinePropertyNotPrimitive = errors.NewKind("Property values can only be of primitive types or arrays of primitive types")

	ErrQueryConclusion = errors.NewKind("Query cannot conclude with %s (must be RETURN or an update clause)")
	ErrQueryBeginWithStar = errors.NewKind("Query cannot begin with '%s *'")
	ErrWithRequiredAfterUpdate = errors.NewKind("A WITH clause is required to introduce %s after an updating clause")
	ErrWithRequiredAfterOptionalMatch = errors.NewKind("A WITH clause is required to introduce a MATCH clause after an OPTIONAL MATCH")

	ErrUnsupportedOption = errors.NewKind("EXPLAIN and PROFILE options are not supported in this context")
	ErrDuplicateParameter = errors.NewKind("Duplicated parameter: %s")
)
