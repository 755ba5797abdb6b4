// Package xmltree provides a navigable, namespace-aware XML element tree.
// It wraps the xmlquery library so that element and attribute lookups are
// qualified by namespace URI rather than by prefix string, which is not
// guaranteed stable across producers. Namespace resolution is centralized
// here; callers never compare prefixes.
package xmltree

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element node.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	reader := bytes.NewReader(data)
	root, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document, or nil if the document
// has no element content.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	// Compile the expression to check for errors
	_, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node,
// or nil if nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	_, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Name returns the element's local name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Namespace returns the element's resolved namespace URI.
func (n *Node) Namespace() string {
	if n.node == nil {
		return ""
	}
	return n.node.NamespaceURI
}

// Text returns all text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Children returns all child element nodes in document order.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// ChildrenNS returns the child elements with the given namespace URI and
// local name, in document order. Elements in other namespaces are skipped.
func (n *Node) ChildrenNS(ns, local string) []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == local && child.NamespaceURI == ns {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Child returns the first child element with the given namespace URI and
// local name, or nil if absent. Lookups outside the namespace return nil,
// never an error.
func (n *Node) Child(ns, local string) *Node {
	if n.node == nil {
		return nil
	}

	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == local && child.NamespaceURI == ns {
			return &Node{node: child}
		}
	}
	return nil
}

// Attr returns the value of the attribute with the given namespace URI and
// local name. The second return value reports whether the attribute exists.
// An unprefixed attribute carries no namespace, so a local-name match with
// an empty attribute namespace is also accepted; producers differ on
// whether they qualify attributes.
func (n *Node) Attr(ns, local string) (string, bool) {
	if n.node == nil {
		return "", false
	}

	for _, attr := range n.node.Attr {
		if attr.Name.Local != local {
			continue
		}
		if attr.NamespaceURI == ns {
			return attr.Value, true
		}
		if attr.NamespaceURI == "" && attr.Name.Space == "" {
			return attr.Value, true
		}
	}
	return "", false
}
