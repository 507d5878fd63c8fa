// Package page models the host screen a picker is embedded in: a tree of
// elements, some of which scroll.
package page

import (
	"errors"

	"datepick/internal/picker"
)

// ErrDetached is returned when scrolling is toggled on a node that was
// removed from the page.
var ErrDetached = errors.New("page node is detached")

// Node is one element of the page tree. Only scrollable nodes react to
// SetScrollEnabled; the others report scrolling as disabled.
type Node struct {
	Name       string
	parent     *Node
	children   []*Node
	scrollable bool
	enabled    bool
	detached   bool
}

// NewRoot returns the top of a page tree.
func NewRoot(name string, scrollable bool) *Node {
	return &Node{Name: name, scrollable: scrollable, enabled: scrollable}
}

// Child appends a new element under n.
func (n *Node) Child(name string, scrollable bool) *Node {
	c := &Node{Name: name, parent: n, scrollable: scrollable, enabled: scrollable}
	n.children = append(n.children, c)
	return c
}

// Remove detaches n from its parent. Toggling scroll on it afterwards fails.
func (n *Node) Remove() {
	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	n.detached = true
}

func (n *Node) Scrollable() bool { return n.scrollable }

func (n *Node) ScrollParent() picker.Scroller {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ScrollEnabled() bool { return n.scrollable && n.enabled }

func (n *Node) SetScrollEnabled(enabled bool) error {
	if n.detached {
		return ErrDetached
	}
	if n.scrollable {
		n.enabled = enabled
	}
	return nil
}
