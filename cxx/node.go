// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cxx is the in-memory form of a C++ translation unit as handed
// over by an external frontend: a resolved syntax tree with types and
// source locations.
//
// The shape follows clang's JSON AST dump, reduced to what a field
// rewriter needs. Nodes are generic; accessors give typed views.
package cxx

import "fmt"

// A Kind names the syntactic class of a Node.
type Kind string

const (
	TranslationUnitDecl                    Kind = "TranslationUnitDecl"
	NamespaceDecl                          Kind = "NamespaceDecl"
	LinkageSpecDecl                        Kind = "LinkageSpecDecl"
	RecordDecl                             Kind = "RecordDecl"
	CXXRecordDecl                          Kind = "CXXRecordDecl"
	ClassTemplateSpecializationDecl        Kind = "ClassTemplateSpecializationDecl"
	ClassTemplatePartialSpecializationDecl Kind = "ClassTemplatePartialSpecializationDecl"
	FieldDecl                              Kind = "FieldDecl"
	FunctionDecl                           Kind = "FunctionDecl"
	CXXMethodDecl                          Kind = "CXXMethodDecl"
	VarDecl                                Kind = "VarDecl"
	ParmVarDecl                            Kind = "ParmVarDecl"
	TypedefDecl                            Kind = "TypedefDecl"

	CompoundStmt Kind = "CompoundStmt"
	DeclStmt     Kind = "DeclStmt"
	ReturnStmt   Kind = "ReturnStmt"

	MemberExpr             Kind = "MemberExpr"
	ImplicitCastExpr       Kind = "ImplicitCastExpr"
	CallExpr               Kind = "CallExpr"
	CXXMemberCallExpr      Kind = "CXXMemberCallExpr"
	CXXConstCastExpr       Kind = "CXXConstCastExpr"
	CXXReinterpretCastExpr Kind = "CXXReinterpretCastExpr"
	CXXStaticCastExpr      Kind = "CXXStaticCastExpr"
	CStyleCastExpr         Kind = "CStyleCastExpr"
	ConditionalOperator    Kind = "ConditionalOperator"
	InitListExpr           Kind = "InitListExpr"
	ParenExpr              Kind = "ParenExpr"
	DeclRefExpr            Kind = "DeclRefExpr"
)

// A Node is one node of the tree.
type Node struct {
	ID       string `json:"id,omitempty" msgpack:"id,omitempty"`
	Kind     Kind   `json:"kind" msgpack:"kind"`
	Name     string `json:"name,omitempty" msgpack:"name,omitempty"`
	QualName string `json:"qualName,omitempty" msgpack:"qualName,omitempty"`
	Type     *Type  `json:"type,omitempty" msgpack:"type,omitempty"`

	// Begin is where the node's source range starts. For a declaration
	// that is the start of its declaration specifiers.
	Begin *Loc `json:"begin,omitempty" msgpack:"begin,omitempty"`
	// Loc is the name token: the declared name for declarations,
	// the member name for member expressions.
	Loc *Loc `json:"loc,omitempty" msgpack:"loc,omitempty"`
	// TypeLoc is where the written type of a declarator starts.
	TypeLoc *Loc `json:"typeLoc,omitempty" msgpack:"typeLoc,omitempty"`

	Mutable  bool `json:"mutable,omitempty" msgpack:"mutable,omitempty"`
	Implicit bool `json:"implicit,omitempty" msgpack:"implicit,omitempty"`
	Variadic bool `json:"variadic,omitempty" msgpack:"variadic,omitempty"`
	Lambda   bool `json:"lambda,omitempty" msgpack:"lambda,omitempty"`

	// Specialization is "implicit" or "explicit" for class template
	// specializations.
	Specialization string `json:"specialization,omitempty" msgpack:"specialization,omitempty"`

	// Language is the linkage of a LinkageSpecDecl: "C" or "C++".
	Language string `json:"language,omitempty" msgpack:"language,omitempty"`

	// Ref is the id of the referenced declaration: the field of a
	// MemberExpr, the callee of a CallExpr.
	Ref string `json:"ref,omitempty" msgpack:"ref,omitempty"`

	Inner []*Node `json:"inner,omitempty" msgpack:"inner,omitempty"`
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	s := string(n.Kind)
	if n.QualName != "" {
		s += " " + n.QualName
	} else if n.Name != "" {
		s += " " + n.Name
	}
	if n.Begin != nil {
		s += " at " + n.Begin.String()
	}
	return s
}

// IsRecord reports whether n declares a class, struct or union.
// C units declare records as RecordDecl.
func (n *Node) IsRecord() bool {
	switch n.Kind {
	case RecordDecl, CXXRecordDecl, ClassTemplateSpecializationDecl, ClassTemplatePartialSpecializationDecl:
		return true
	}
	return false
}

// IsImplicitSpecialization reports whether n is a class template
// specialization produced by implicit instantiation.
func (n *Node) IsImplicitSpecialization() bool {
	return n.Kind == ClassTemplateSpecializationDecl && n.Specialization != "explicit"
}

// IsExternC reports whether n is an extern "C" block.
func (n *Node) IsExternC() bool {
	return n.Kind == LinkageSpecDecl && n.Language == "C"
}

// CallParts returns the callee expression and the arguments of a call.
func (n *Node) CallParts() (callee *Node, args []*Node) {
	if len(n.Inner) == 0 {
		return nil, nil
	}
	return n.Inner[0], n.Inner[1:]
}

// CondParts returns the branches of a conditional operator.
func (n *Node) CondParts() (cond, then, els *Node) {
	if len(n.Inner) != 3 {
		panic(fmt.Sprintf("malformed %v: %d operands", n, len(n.Inner)))
	}
	return n.Inner[0], n.Inner[1], n.Inner[2]
}
