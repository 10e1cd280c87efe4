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

// Package ast defines the query-AST contract the validator consumes.
//
// The parser that produces this tree is an external collaborator (spec.md
// §6) — this package only fixes the shape callers must hand the validator:
// a discriminated Kind, an ordered child list, and kind-specific fields on
// each concrete node type.
package ast

// Kind discriminates the AST node variants the parser can emit. The full
// vocabulary mirrors the ~114 node kinds of the language this validator was
// distilled from (original_source/src/ast/ast_validations.c); kinds with no
// validator-specific behavior still need a stable identity for the handler
// table's lookup and for the explicit unsupported-kind list in §6.
type Kind int

const (
	KindUnknown Kind = iota

	// structural
	KindStatement
	KindQuery

	// clauses
	KindMatch
	KindCreate
	KindMerge
	KindWith
	KindReturn
	KindUnwind
	KindCall
	KindDelete
	KindSet
	KindRemove
	KindForeach
	KindUnion
	KindOnCreate
	KindOnMatch
	KindCreateIndex
	KindDropIndex

	// patterns
	KindPattern
	KindPatternPath
	KindNodePattern
	KindRelPattern
	KindNamedPath
	KindShortestPath
	KindRange

	// projections / expressions
	KindProjection
	KindIdentifier
	KindMap
	KindApplyOperator
	KindApplyAllOperator
	KindReduce
	KindListComprehension
	KindPatternComprehension
	KindAny
	KindAll
	KindNone
	KindSingle
	KindBinaryOperator
	KindPropertyOperator
	KindSubscriptOperator
	KindSetProperty
	KindLiteral
	KindParameter
	KindOrderBy
	KindSortItem

	// comments, skipped by the root check
	KindLineComment
	KindBlockComment
	KindComment

	// explicitly unsupported AST kinds (spec.md §6) — handler always BREAKs
	KindStart
	KindFilter
	KindExtract
	KindCommand
	KindLoadCSV
	KindMatchHint
	KindUsingJoin
	KindUsingScan
	KindIndexName
	KindRelIDLookup
	KindAllRelsScan
	KindUsingIndex
	KindStartPoint
	KindRemoveItem
	KindQueryOption
	KindRelIndexQuery
	KindExplainOption
	KindProfileOption
	KindSchemaCommand
	KindNodeIDLookup
	KindAllNodesScan
	KindRelIndexLookup
	KindNodeIndexQuery
	KindNodeIndexLookup
	KindUsingPeriodicCommit
	KindDropRelPropConstraint
	KindDropNodePropConstraint
	KindCreateRelPropConstraint
	KindCreateNodePropConstraint
)

var kindNames = map[Kind]string{
	KindUnknown:              "UNKNOWN",
	KindStatement:            "STATEMENT",
	KindQuery:                "QUERY",
	KindMatch:                "MATCH",
	KindCreate:               "CREATE",
	KindMerge:                "MERGE",
	KindWith:                 "WITH",
	KindReturn:               "RETURN",
	KindUnwind:               "UNWIND",
	KindCall:                 "CALL",
	KindDelete:               "DELETE",
	KindSet:                  "SET",
	KindRemove:               "REMOVE",
	KindForeach:              "FOREACH",
	KindUnion:                "UNION",
	KindOnCreate:             "ON_CREATE",
	KindOnMatch:              "ON_MATCH",
	KindCreateIndex:          "CREATE_PATTERN_PROPS_INDEX",
	KindDropIndex:            "DROP_PATTERN_PROPS_INDEX",
	KindPattern:              "PATTERN",
	KindPatternPath:          "PATTERN_PATH",
	KindNodePattern:          "NODE_PATTERN",
	KindRelPattern:           "REL_PATTERN",
	KindNamedPath:            "NAMED_PATH",
	KindShortestPath:         "SHORTEST_PATH",
	KindRange:                "RANGE",
	KindProjection:           "PROJECTION",
	KindIdentifier:           "IDENTIFIER",
	KindMap:                  "MAP",
	KindApplyOperator:        "APPLY_OPERATOR",
	KindApplyAllOperator:     "APPLY_ALL_OPERATOR",
	KindReduce:               "REDUCE",
	KindListComprehension:    "LIST_COMPREHENSION",
	KindPatternComprehension: "PATTERN_COMPREHENSION",
	KindAny:                  "ANY",
	KindAll:                  "ALL",
	KindNone:                 "NONE",
	KindSingle:               "SINGLE",
	KindBinaryOperator:       "BINARY_OPERATOR",
	KindPropertyOperator:     "PROPERTY_OPERATOR",
	KindSubscriptOperator:    "SUBSCRIPT_OPERATOR",
	KindSetProperty:          "SET_PROPERTY",
	KindLiteral:              "LITERAL",
	KindParameter:            "PARAMETER",
	KindOrderBy:              "ORDER_BY",
	KindSortItem:             "SORT_ITEM",
	KindLineComment:          "LINE_COMMENT",
	KindBlockComment:         "BLOCK_COMMENT",
	KindComment:              "COMMENT",
}

// String renders the kind's wire name, used verbatim in diagnostics such as
// "Unsupported AST node: <kind>".
func (k Kind) String() string {
	if k == 0 {
		return "UNKNOWN"
	}
	if n, ok := kindNames[k]; ok {
		return n
	}
	if n, ok := unsupportedKindNames[k]; ok {
		return n
	}
	return "UNKNOWN"
}

var unsupportedKindNames = map[Kind]string{
	KindStart:                   "START",
	KindFilter:                  "FILTER",
	KindExtract:                 "EXTRACT",
	KindCommand:                 "COMMAND",
	KindLoadCSV:                 "LOAD_CSV",
	KindMatchHint:               "MATCH_HINT",
	KindUsingJoin:               "USING_JOIN",
	KindUsingScan:               "USING_SCAN",
	KindIndexName:               "INDEX_NAME",
	KindRelIDLookup:             "REL_ID_LOOKUP",
	KindAllRelsScan:             "ALL_RELS_SCAN",
	KindUsingIndex:              "USING_INDEX",
	KindStartPoint:              "START_POINT",
	KindRemoveItem:              "REMOVE_ITEM",
	KindQueryOption:             "QUERY_OPTION",
	KindRelIndexQuery:           "REL_INDEX_QUERY",
	KindExplainOption:           "EXPLAIN_OPTION",
	KindProfileOption:           "PROFILE_OPTION",
	KindSchemaCommand:           "SCHEMA_COMMAND",
	KindNodeIDLookup:            "NODE_ID_LOOKUP",
	KindAllNodesScan:            "ALL_NODES_SCAN",
	KindRelIndexLookup:          "REL_INDEX_LOOKUP",
	KindNodeIndexQuery:          "NODE_INDEX_QUERY",
	KindNodeIndexLookup:         "NODE_INDEX_LOOKUP",
	KindUsingPeriodicCommit:     "USING_PERIODIC_COMMIT",
	KindDropRelPropConstraint:   "DROP_REL_PROP_CONSTRAINT",
	KindDropNodePropConstraint:  "DROP_NODE_PROP_CONSTRAINT",
	KindCreateRelPropConstraint: "CREATE_REL_PROP_CONSTRAINT",
	KindCreateNodePropConstraint: "CREATE_NODE_PROP_CONSTRAINT",
}

// UnsupportedKinds is the fixed set of AST kinds this dialect never
// accepts, regardless of handler-table registration (spec.md §6).
var UnsupportedKinds = func() map[Kind]bool {
	m := make(map[Kind]bool, len(unsupportedKindNames))
	for k := range unsupportedKindNames {
		m[k] = true
	}
	return m
}()
