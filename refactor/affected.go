// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"rsc.io/rawptr/cxx"
)

// Once a field is rewritten, every member expression naming it has the
// wrapper type instead of a raw pointer. Implicit conversions make that
// invisible almost everywhere. The contexts below are the exceptions;
// there the accessor is inserted right after the member name:
//
//	MyPrintf("%p", s.ptr)          variadic argument
//	const_cast<T*>(s.ptr)          const_cast operand
//	reinterpret_cast<uintptr_t>(s.ptr)
//	cond ? s.ptr : other           conditional branch
//	auto* v = s.ptr;               deduced pointer variable
//
// An explicit call around the access, as in MyPrintf("%d", F(s.ptr)),
// converts through F's parameter type and needs nothing.

// affectedUses returns the member expressions that n uses in a
// context needing the accessor. Whether each one's field is rewritten
// is decided later, once every field of the unit has been seen.
func (p *Pass) affectedUses(n *cxx.Node) []*cxx.Node {
	var uses []*cxx.Node
	use := func(e *cxx.Node) {
		if m := memberAccess(e); m != nil {
			uses = append(uses, m)
		}
	}
	switch n.Kind {
	case cxx.CallExpr, cxx.CXXMemberCallExpr:
		if p.isVariadicCall(n) {
			_, args := n.CallParts()
			for _, a := range args {
				use(a)
			}
		}
	case cxx.CXXConstCastExpr, cxx.CXXReinterpretCastExpr:
		if len(n.Inner) > 0 {
			use(n.Inner[0])
		}
	case cxx.ConditionalOperator:
		_, then, els := n.CondParts()
		use(then)
		use(els)
	case cxx.VarDecl:
		if isDeducedPointer(n.Type) {
			use(initializer(n))
		}
	}
	return uses
}

// memberAccess returns the member expression e reads, looking through
// at most two implicit conversions (const auto* v = s.ptr has two), or
// nil.
func memberAccess(e *cxx.Node) *cxx.Node {
	for range 3 {
		switch {
		case e == nil:
			return nil
		case e.Kind == cxx.MemberExpr:
			return e
		case e.Kind == cxx.ImplicitCastExpr && len(e.Inner) == 1:
			e = e.Inner[0]
		default:
			return nil
		}
	}
	return nil
}

// isVariadicCall reports whether the callee of call is declared with
// an ellipsis. Calls through function pointers have no callee
// declaration and are not variadic here.
func (p *Pass) isVariadicCall(call *cxx.Node) bool {
	if call.Variadic {
		return true
	}
	if call.Ref == "" {
		return false
	}
	fn := p.Unit.Lookup(call.Ref)
	return fn != nil && fn.Variadic
}

// isDeducedPointer reports whether t is auto* with any qualifiers.
func isDeducedPointer(t *cxx.Type) bool {
	pointee := t.Pointee()
	return pointee != nil && pointee.Kind == cxx.TypeAuto
}

// initializer returns the initializing expression of a variable,
// descending into the first element of a brace initializer.
func initializer(v *cxx.Node) *cxx.Node {
	if len(v.Inner) == 0 {
		return nil
	}
	init := v.Inner[len(v.Inner)-1]
	if init.Kind == cxx.InitListExpr {
		if len(init.Inner) == 0 {
			return nil
		}
		return init.Inner[0]
	}
	return init
}

// rewriteUses queues the accessor insertion for each pending use
// whose field was accepted.
func (p *Pass) rewriteUses() {
	for _, m := range p.uses {
		if m.Ref == "" {
			internalError("%v has no member declaration", m)
		}
		field := p.Unit.Lookup(m.Ref)
		if field == nil || !p.Accepted(field) {
			continue
		}
		if m.Loc == nil {
			internalError("%v has no member location", m)
		}
		if !m.Loc.IsFile() {
			p.r.Log.Debug("skipping use in macro expansion", "field", qualName(field), "at", m.Loc.String())
			continue
		}
		p.add(Replacement{
			File:   m.Loc.File,
			Offset: m.Loc.Offset + len(field.Name),
			Text:   p.r.Config.Accessor,
		})
	}
}
