// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

// Inspect traverses the unit in depth-first order, calling f for each
// node with the chain of its ancestors, innermost last. If f returns
// false, Inspect skips the node's children.
//
// The stack slice is reused between calls; f must copy it to keep it.
func Inspect(u *Unit, f func(n *Node, stack []*Node) bool) {
	var stack []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || !f(n, stack) {
			return
		}
		stack = append(stack, n)
		for _, c := range n.Inner {
			walk(c)
		}
		stack = stack[:len(stack)-1]
	}
	for _, n := range u.Inner {
		walk(n)
	}
}

// Parent returns the innermost element of stack, or nil.
func Parent(stack []*Node) *Node {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
