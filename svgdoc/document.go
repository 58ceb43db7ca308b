// Package svgdoc loads seatplan markup into a tree and answers the
// structural questions the seatplan parser asks about it: which groups
// are rows, which anchors are seats, which shape and labels belong to a
// seat.
package svgdoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

var ErrParse = errors.New("seatplan markup is not well-formed")

const (
	tagRow    = "g"
	tagSeat   = "a"
	tagShape  = "rect"
	tagLabel  = "text"
	tagCanvas = "svg"
)

// Document owns the parsed tree for its whole lifetime.
type Document struct {
	tree *etree.Document
}

// Node is a read-only view over one element of a Document.
type Node struct {
	el *etree.Element
}

func Parse(markup []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(markup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return &Document{tree: tree}, nil
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return &Node{el: d.tree.Root()}
}

// RowGroups returns the <g> children of the <svg> root in document order.
// A root that is not <svg> has no rows.
func (d *Document) RowGroups() []*Node {
	root := d.Root()
	if root.Tag() != tagCanvas {
		return nil
	}
	return wrap(root.el.SelectElements(tagRow))
}

// String serializes the tree back to markup.
func (d *Document) String() (string, error) {
	s, err := d.tree.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize seatplan: %w", err)
	}
	return s, nil
}

func (n *Node) Tag() string {
	return n.el.Tag
}

// FirstLabel reports the first <text> child, if any.
func (n *Node) FirstLabel() (*Node, bool) {
	return n.child(tagLabel)
}

func (n *Node) SeatAnchors() []*Node {
	return wrap(n.el.SelectElements(tagSeat))
}

// Shape reports the first <rect> child, if any.
func (n *Node) Shape() (*Node, bool) {
	return n.child(tagShape)
}

func (n *Node) Labels() []*Node {
	return wrap(n.el.SelectElements(tagLabel))
}

func (n *Node) Attr(name string) (string, bool) {
	attr := n.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Text is the element's character data with surrounding space removed.
func (n *Node) Text() string {
	return strings.TrimSpace(n.el.Text())
}

func (n *Node) child(tag string) (*Node, bool) {
	el := n.el.SelectElement(tag)
	if el == nil {
		return nil, false
	}
	return &Node{el: el}, true
}

func wrap(elements []*etree.Element) []*Node {
	nodes := make([]*Node, len(elements))
	for i, el := range elements {
		nodes[i] = &Node{el: el}
	}
	return nodes
}
