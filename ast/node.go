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

package ast

// Direction is a relationship pattern's arrow direction.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionLeft
	DirectionBidirectional
)

// Node is the contract every AST node satisfies. Concrete node types below
// additionally expose kind-specific exported fields (e.g. RelPattern.Identifier)
// the way the C original exposes kind-specific getters.
type Node interface {
	Kind() Kind
	Children() []Node
}

// base is embedded by every concrete node to avoid repeating Children() for
// leaf nodes; non-leaf nodes override it.
type base struct {
	kind Kind
}

func (b base) Kind() Kind        { return b.kind }
func (b base) Children() []Node  { return nil }

// Statement wraps the root clause sequence of a single query body.
type Statement struct {
	base
	Options []Node // e.g. EXPLAIN_OPTION / PROFILE_OPTION — unsupported, rejected by C8
	Body    Node   // *Query, or an index-creation/drop node
}

func NewStatement(body Node, options ...Node) *Statement {
	return &Statement{base: base{KindStatement}, Body: body, Options: options}
}
func (s *Statement) Children() []Node {
	out := append([]Node{}, s.Options...)
	if s.Body != nil {
		out = append(out, s.Body)
	}
	return out
}

// Query is an ordered clause sequence, e.g. [MATCH, WITH, RETURN].
type Query struct {
	base
	Clauses []Node
}

func NewQuery(clauses ...Node) *Query { return &Query{base: base{KindQuery}, Clauses: clauses} }
func (q *Query) Children() []Node     { return q.Clauses }

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{base: base{KindIdentifier}, Name: name}
}

// Literal is any constant value irrelevant to semantic validation.
type Literal struct {
	base
	Value interface{}
}

func NewLiteral(v interface{}) *Literal { return &Literal{base: base{KindLiteral}, Value: v} }

// Parameter is a `$name` query parameter reference.
type Parameter struct {
	base
	Name string
}

func NewParameter(name string) *Parameter { return &Parameter{base: base{KindParameter}, Name: name} }

// Range is a variable-length-path bound, `*min..max`. Start/End are nil when
// the bound was omitted in source text.
type Range struct {
	base
	Start *int
	End   *int
}

func NewRange(start, end *int) *Range { return &Range{base: base{KindRange}, Start: start, End: end} }

// MapLiteral is an inline property map; keys are literal property names and
// are never visited, only values are.
type MapLiteral struct {
	base
	Keys   []string
	Values []Node
}

func NewMap(keys []string, values []Node) *MapLiteral {
	return &MapLiteral{base: base{KindMap}, Keys: keys, Values: values}
}
func (m *MapLiteral) Children() []Node { return m.Values }

// NodePattern is `(alias:Label1:Label2 {props})`.
type NodePattern struct {
	base
	Identifier string // "" if unaliased
	Labels     []string
	Properties *MapLiteral // nil if absent
}

func NewNodePattern(identifier string, labels []string, props *MapLiteral) *NodePattern {
	return &NodePattern{base: base{KindNodePattern}, Identifier: identifier, Labels: labels, Properties: props}
}
func (n *NodePattern) Children() []Node {
	if n.Properties != nil {
		return []Node{n.Properties}
	}
	return nil
}

// RelPattern is `-[alias:TYPE*min..max {props}]->`.
type RelPattern struct {
	base
	Identifier string
	RelTypes   []string
	Direction  Direction
	VarLength  *Range
	Properties *MapLiteral
}

func NewRelPattern(identifier string, relTypes []string, dir Direction, varLength *Range, props *MapLiteral) *RelPattern {
	return &RelPattern{base: base{KindRelPattern}, Identifier: identifier, RelTypes: relTypes, Direction: dir, VarLength: varLength, Properties: props}
}
func (r *RelPattern) Children() []Node {
	var out []Node
	if r.VarLength != nil {
		out = append(out, r.VarLength)
	}
	if r.Properties != nil {
		out = append(out, r.Properties)
	}
	return out
}

// PatternPath is a flat element sequence: node, rel, node, rel, ..., node.
// Elements at even indices are *NodePattern, odd indices are *RelPattern.
type PatternPath struct {
	base
	Elements []Node
}

func NewPatternPath(elements ...Node) *PatternPath {
	return &PatternPath{base: base{KindPatternPath}, Elements: elements}
}
func (p *PatternPath) Children() []Node { return p.Elements }

// NamedPath is `p = <pattern-path>`.
type NamedPath struct {
	base
	Identifier string
	Path       *PatternPath
}

func NewNamedPath(identifier string, path *PatternPath) *NamedPath {
	return &NamedPath{base: base{KindNamedPath}, Identifier: identifier, Path: path}
}
func (n *NamedPath) Children() []Node { return []Node{n.Path} }

// ShortestPath wraps `shortestPath(...)` (Single=true) or
// `allShortestPaths(...)` (Single=false).
type ShortestPath struct {
	base
	Single bool
	Path   *PatternPath
}

func NewShortestPath(single bool, path *PatternPath) *ShortestPath {
	return &ShortestPath{base: base{KindShortestPath}, Single: single, Path: path}
}
func (s *ShortestPath) Children() []Node { return []Node{s.Path} }

// Pattern is a comma-separated list of pattern-paths / named-paths /
// shortest-path nodes, as found in a MATCH or CREATE clause.
type Pattern struct {
	base
	Paths []Node // *PatternPath | *NamedPath | *ShortestPath
}

func NewPattern(paths ...Node) *Pattern { return &Pattern{base: base{KindPattern}, Paths: paths} }
func (p *Pattern) Children() []Node     { return p.Paths }

// Projection is one WITH/RETURN/YIELD item, optionally aliased.
type Projection struct {
	base
	Expression Node
	Alias      string // "" if unaliased
}

func NewProjection(expr Node, alias string) *Projection {
	return &Projection{base: base{KindProjection}, Expression: expr, Alias: alias}
}
func (p *Projection) Children() []Node { return []Node{p.Expression} }

// SortItem is one ORDER BY term.
type SortItem struct {
	base
	Expression Node
	Descending bool
}

func NewSortItem(expr Node, desc bool) *SortItem {
	return &SortItem{base: base{KindSortItem}, Expression: expr, Descending: desc}
}
func (s *SortItem) Children() []Node { return []Node{s.Expression} }

// OrderBy is an ordered list of sort items.
type OrderBy struct {
	base
	Items []*SortItem
}

func NewOrderBy(items ...*SortItem) *OrderBy { return &OrderBy{base: base{KindOrderBy}, Items: items} }
func (o *OrderBy) Children() []Node {
	out := make([]Node, len(o.Items))
	for i, it := range o.Items {
		out[i] = it
	}
	return out
}

// LimitSkipKind classifies what a LIMIT/SKIP modifier holds — only the
// syntactic kind is validated (spec.md §1 Non-goals).
type LimitSkipKind int

const (
	LimitSkipInteger LimitSkipKind = iota
	LimitSkipParameter
	LimitSkipOther // anything else is rejected
)

// Match is the MATCH clause.
type Match struct {
	base
	Optional  bool
	Pattern   *Pattern
	Predicate Node // nil if absent
}

func NewMatch(optional bool, pattern *Pattern, predicate Node) *Match {
	return &Match{base: base{KindMatch}, Optional: optional, Pattern: pattern, Predicate: predicate}
}
func (m *Match) Children() []Node {
	out := []Node{m.Pattern}
	if m.Predicate != nil {
		out = append(out, m.Predicate)
	}
	return out
}

// Create is the CREATE clause.
type Create struct {
	base
	Pattern *Pattern
}

func NewCreate(pattern *Pattern) *Create { return &Create{base: base{KindCreate}, Pattern: pattern} }
func (c *Create) Children() []Node       { return []Node{c.Pattern} }

// OnCreate / OnMatch are MERGE sub-clauses holding SET items.
type OnCreate struct {
	base
	SetItems []Node
}

func NewOnCreate(items ...Node) *OnCreate { return &OnCreate{base: base{KindOnCreate}, SetItems: items} }
func (o *OnCreate) Children() []Node      { return o.SetItems }

type OnMatch struct {
	base
	SetItems []Node
}

func NewOnMatch(items ...Node) *OnMatch { return &OnMatch{base: base{KindOnMatch}, SetItems: items} }
func (o *OnMatch) Children() []Node     { return o.SetItems }

// Merge is the MERGE clause.
type Merge struct {
	base
	Path     Node // *PatternPath | *NamedPath
	OnCreate *OnCreate
	OnMatch  *OnMatch
}

func NewMerge(path Node, onCreate *OnCreate, onMatch *OnMatch) *Merge {
	return &Merge{base: base{KindMerge}, Path: path, OnCreate: onCreate, OnMatch: onMatch}
}
func (m *Merge) Children() []Node {
	out := []Node{m.Path}
	if m.OnCreate != nil {
		out = append(out, m.OnCreate)
	}
	if m.OnMatch != nil {
		out = append(out, m.OnMatch)
	}
	return out
}

// With is the WITH clause.
type With struct {
	base
	Star        bool
	Projections []*Projection
	Predicate   Node
	OrderBy     *OrderBy
	Skip        Node
	Limit       Node
}

func NewWith(star bool, projections []*Projection, predicate Node, orderBy *OrderBy, skip, limit Node) *With {
	return &With{base: base{KindWith}, Star: star, Projections: projections, Predicate: predicate, OrderBy: orderBy, Skip: skip, Limit: limit}
}
func (w *With) Children() []Node {
	var out []Node
	for _, p := range w.Projections {
		out = append(out, p)
	}
	if w.Predicate != nil {
		out = append(out, w.Predicate)
	}
	if w.OrderBy != nil {
		out = append(out, w.OrderBy)
	}
	if w.Skip != nil {
		out = append(out, w.Skip)
	}
	if w.Limit != nil {
		out = append(out, w.Limit)
	}
	return out
}

// Return is the RETURN clause.
type Return struct {
	base
	Star        bool
	Projections []*Projection
	OrderBy     *OrderBy
	Skip        Node
	Limit       Node
}

func NewReturn(star bool, projections []*Projection, orderBy *OrderBy, skip, limit Node) *Return {
	return &Return{base: base{KindReturn}, Star: star, Projections: projections, OrderBy: orderBy, Skip: skip, Limit: limit}
}
func (r *Return) Children() []Node {
	var out []Node
	for _, p := range r.Projections {
		out = append(out, p)
	}
	if r.OrderBy != nil {
		out = append(out, r.OrderBy)
	}
	if r.Skip != nil {
		out = append(out, r.Skip)
	}
	if r.Limit != nil {
		out = append(out, r.Limit)
	}
	return out
}

// Unwind is the UNWIND clause: `UNWIND list AS var`.
type Unwind struct {
	base
	List     Node
	Variable string
}

func NewUnwind(list Node, variable string) *Unwind {
	return &Unwind{base: base{KindUnwind}, List: list, Variable: variable}
}
func (u *Unwind) Children() []Node { return []Node{u.List} }

// Call is the CALL clause.
type Call struct {
	base
	ProcName    string
	Arguments   []Node
	Projections []*Projection // YIELD list, nil if absent
}

func NewCall(procName string, args []Node, projections []*Projection) *Call {
	return &Call{base: base{KindCall}, ProcName: procName, Arguments: args, Projections: projections}
}
func (c *Call) Children() []Node {
	out := append([]Node{}, c.Arguments...)
	for _, p := range c.Projections {
		out = append(out, p)
	}
	return out
}

// Delete is the DELETE clause.
type Delete struct {
	base
	Detach      bool
	Expressions []Node
}

func NewDelete(detach bool, exprs ...Node) *Delete {
	return &Delete{base: base{KindDelete}, Detach: detach, Expressions: exprs}
}
func (d *Delete) Children() []Node { return d.Expressions }

// SetProperty is one `x.prop = expr` (or `x += {..}`) item inside SET.
type SetProperty struct {
	base
	Target Node
	Value  Node
}

func NewSetProperty(target, value Node) *SetProperty {
	return &SetProperty{base: base{KindSetProperty}, Target: target, Value: value}
}
func (s *SetProperty) Children() []Node { return []Node{s.Target, s.Value} }

// Set is the SET clause.
type Set struct {
	base
	Items []*SetProperty
}

func NewSet(items ...*SetProperty) *Set { return &Set{base: base{KindSet}, Items: items} }
func (s *Set) Children() []Node {
	out := make([]Node, len(s.Items))
	for i, it := range s.Items {
		out[i] = it
	}
	return out
}

// RemoveItem is one item inside REMOVE (label removal or property removal).
type RemoveItem struct {
	base
	Target Node
}

// Remove is the REMOVE clause — an updating clause but otherwise
// unconstrained by this validator (no bespoke rule in spec.md §4).
type Remove struct {
	base
	Items []*RemoveItem
}

func NewRemove(items ...*RemoveItem) *Remove { return &Remove{base: base{KindRemove}, Items: items} }
func (r *Remove) Children() []Node {
	out := make([]Node, len(r.Items))
	for i, it := range r.Items {
		out[i] = it
	}
	return out
}

// Foreach is the FOREACH clause.
type Foreach struct {
	base
	Variable string
	List     Node
	Clauses  []Node
}

func NewForeach(variable string, list Node, clauses ...Node) *Foreach {
	return &Foreach{base: base{KindForeach}, Variable: variable, List: list, Clauses: clauses}
}
func (f *Foreach) Children() []Node { return append([]Node{f.List}, f.Clauses...) }

// Union is one `UNION [ALL] <query>` branch joint; Query is the branch
// statement that follows this union marker in the clause sequence.
type Union struct {
	base
	All   bool
	Query Node
}

func NewUnion(all bool, query Node) *Union { return &Union{base: base{KindUnion}, All: all, Query: query} }
func (u *Union) Children() []Node {
	if u.Query != nil {
		return []Node{u.Query}
	}
	return nil
}

// ApplyOperator is a function call `F(args...)`.
type ApplyOperator struct {
	base
	FuncName string
	Distinct bool
	Args     []Node
}

func NewApplyOperator(funcName string, distinct bool, args ...Node) *ApplyOperator {
	return &ApplyOperator{base: base{KindApplyOperator}, FuncName: funcName, Distinct: distinct, Args: args}
}
func (a *ApplyOperator) Children() []Node { return a.Args }

// ApplyAllOperator is `F(*)`.
type ApplyAllOperator struct {
	base
	FuncName string
	Distinct bool
}

func NewApplyAllOperator(funcName string, distinct bool) *ApplyAllOperator {
	return &ApplyAllOperator{base: base{KindApplyAllOperator}, FuncName: funcName, Distinct: distinct}
}

// Reduce is `reduce(acc = init, v IN list | expr)`.
type Reduce struct {
	base
	Accumulator string
	Init        Node
	Variable    string
	List        Node
	Eval        Node // may be nil — validator rejects that
}

func NewReduce(acc string, init Node, variable string, list Node, eval Node) *Reduce {
	return &Reduce{base: base{KindReduce}, Accumulator: acc, Init: init, Variable: variable, List: list, Eval: eval}
}
func (r *Reduce) Children() []Node {
	out := []Node{r.Init, r.List}
	if r.Eval != nil {
		out = append(out, r.Eval)
	}
	return out
}

// ComprehensionQuantifier distinguishes list-comprehension-family nodes.
type ComprehensionQuantifier int

const (
	QuantifierPlain ComprehensionQuantifier = iota // `[x IN xs WHERE p | e]`
	QuantifierAny
	QuantifierAll
	QuantifierNone
	QuantifierSingle
)

func (q ComprehensionQuantifier) Kind() Kind {
	switch q {
	case QuantifierAny:
		return KindAny
	case QuantifierAll:
		return KindAll
	case QuantifierNone:
		return KindNone
	case QuantifierSingle:
		return KindSingle
	default:
		return KindListComprehension
	}
}

// ListComprehension covers `[x IN xs WHERE p | e]` and the ANY/ALL/NONE/SINGLE
// quantifier forms, which share identical scoping rules (spec.md §4.6).
type ListComprehension struct {
	kind       Kind
	Variable   string
	List       Node
	Predicate  Node // nil if absent
	Eval       Node // nil for quantifier forms with no explicit eval
}

func NewListComprehension(q ComprehensionQuantifier, variable string, list, predicate, eval Node) *ListComprehension {
	return &ListComprehension{kind: q.Kind(), Variable: variable, List: list, Predicate: predicate, Eval: eval}
}
func (l *ListComprehension) Kind() Kind { return l.kind }
func (l *ListComprehension) Children() []Node {
	out := []Node{l.List}
	if l.Predicate != nil {
		out = append(out, l.Predicate)
	}
	if l.Eval != nil {
		out = append(out, l.Eval)
	}
	return out
}

// PatternComprehension is `[p = (a)-[r]->(b) WHERE ... | e]`.
type PatternComprehension struct {
	base
	PathVariable string // "" if the path is unnamed
	Pattern      *PatternPath
	Predicate    Node
	Eval         Node
}

func NewPatternComprehension(pathVar string, pattern *PatternPath, predicate, eval Node) *PatternComprehension {
	return &PatternComprehension{base: base{KindPatternComprehension}, PathVariable: pathVar, Pattern: pattern, Predicate: predicate, Eval: eval}
}
func (p *PatternComprehension) Children() []Node {
	out := []Node{p.Pattern}
	if p.Predicate != nil {
		out = append(out, p.Predicate)
	}
	if p.Eval != nil {
		out = append(out, p.Eval)
	}
	return out
}

// BinaryOperatorKind names the operator of a BinaryOperator node. Only the
// three rejected operators need named constants; everything else is
// represented by OperatorOther and accepted.
type BinaryOperatorKind int

const (
	OperatorOther BinaryOperatorKind = iota
	OperatorSubscript
	OperatorMapProjection
	OperatorRegex
)

// BinaryOperator is any two-operand expression; most operators are
// accepted, three are explicitly unsupported (spec.md §4.6).
type BinaryOperator struct {
	base
	Op    BinaryOperatorKind
	Left  Node
	Right Node
}

func NewBinaryOperator(op BinaryOperatorKind, left, right Node) *BinaryOperator {
	return &BinaryOperator{base: base{KindBinaryOperator}, Op: op, Left: left, Right: right}
}
func (b *BinaryOperator) Children() []Node { return []Node{b.Left, b.Right} }

// PropertyOperator is `id.prop`.
type PropertyOperator struct {
	base
	Target   Node
	Property string
}

func NewPropertyOperator(target Node, property string) *PropertyOperator {
	return &PropertyOperator{base: base{KindPropertyOperator}, Target: target, Property: property}
}
func (p *PropertyOperator) Children() []Node { return []Node{p.Target} }

// SubscriptOperator is `id[expr]` or `id[a..b]`.
type SubscriptOperator struct {
	base
	Target Node
	Index  Node
}

func NewSubscriptOperator(target, index Node) *SubscriptOperator {
	return &SubscriptOperator{base: base{KindSubscriptOperator}, Target: target, Index: index}
}
func (s *SubscriptOperator) Children() []Node { return []Node{s.Target, s.Index} }

// CreateIndex / DropIndex are index-management statement bodies. Per
// spec.md §4.7 these skip the structural passes and run only the visitor.
type CreateIndex struct {
	base
	Identifier string
	Label      string
	Properties []string
}

func NewCreateIndex(identifier, label string, properties ...string) *CreateIndex {
	return &CreateIndex{base: base{KindCreateIndex}, Identifier: identifier, Label: label, Properties: properties}
}

type DropIndex struct {
	base
	Label      string
	Properties []string
}

func NewDropIndex(label string, properties ...string) *DropIndex {
	return &DropIndex{base: base{KindDropIndex}, Label: label, Properties: properties}
}

// Comment nodes are skipped by the parse-result root check (spec.md §4.7.1).
type Comment struct {
	base
}

func NewLineComment() *Comment  { return &Comment{base: base{KindLineComment}} }
func NewBlockComment() *Comment { return &Comment{base: base{KindBlockComment}} }

// Unsupported wraps any of the explicitly-unsupported kinds from §6 so test
// fixtures can construct one without a dedicated type per kind.
type Unsupported struct {
	base
}

func NewUnsupported(kind Kind) *Unsupported { return &Unsupported{base: base{kind}} }
