package ast

import (
	"fmt"
	"io"
	"strings"
)

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the children of that node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 1, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children() {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n Node) int {
	total := 0
	Walk(n, func(Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the length of the longest root-to-leaf path, a leaf being 1.
func Depth(n Node) int {
	deepest := 0
	Walk(n, func(_ Node, d int) bool {
		if d > deepest {
			deepest = d
		}
		return true
	})
	return deepest
}

// FindAll returns every node in the subtree whose label is label.
func FindAll(n Node, label string) []Node {
	var found []Node
	Walk(n, func(c Node, _ int) bool {
		if c.Label() == label {
			found = append(found, c)
		}
		return true
	})
	return found
}

// BinaryOps returns every BinaryOp node in evaluation order.
func BinaryOps(n Node) []*BinaryOp {
	var ops []*BinaryOp
	var post func(Node)
	post = func(n Node) {
		for _, c := range n.Children() {
			post(c)
		}
		if b, ok := n.(*BinaryOp); ok {
			ops = append(ops, b)
		}
	}
	post(n)
	return ops
}

// Describe renders a node as "label [type: T, val: V]".
func Describe(n Node) string {
	a := n.Attr()
	var attrs []string
	if a.Type.Known() {
		attrs = append(attrs, "type: "+a.Type.String())
	}
	if a.Value.Known() {
		attrs = append(attrs, "val: "+a.Value.String())
	}
	if len(attrs) == 0 {
		return n.Label()
	}
	return fmt.Sprintf("%s [%s]", n.Label(), strings.Join(attrs, ", "))
}

// Print writes the decorated tree with box-drawing branches.
func Print(w io.Writer, n Node) {
	printNode(w, n, "", true)
}

func printNode(w io.Writer, n Node, prefix string, last bool) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}
	fmt.Fprintln(w, prefix+branch+Describe(n))
	children := n.Children()
	for i, c := range children {
		printNode(w, c, prefix+next, i == len(children)-1)
	}
}
