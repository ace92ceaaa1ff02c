package mermaid

import (
	"strings"
	"unicode"
)

// Node is one box or subgraph in a flowchart. SafeID is the sanitized form
// of ID used in the emitted text; two ids that differ only in stripped
// characters collide silently, which is a known limitation.
type Node struct {
	ID       string
	SafeID   string
	Name     string
	ParentID string

	children []*Node
}

// Children returns the node's children as of the last Generate or Forest
// call, in first-seen order.
func (n *Node) Children() []*Node { return n.children }

// Link is a directed edge between two nodes, referenced by their original
// (unsanitized) ids.
type Link struct {
	SourceID string
	TargetID string
	Label    string
}

// Flowchart is a graph of nodes with optional parent grouping, rendered as
// a Mermaid flowchart where grouped nodes become named nested subgraphs.
type Flowchart struct {
	Name string

	ids   []string
	nodes map[string]*Node
	links []Link
}

// NewFlowchart creates an empty flowchart.
func NewFlowchart(name string) *Flowchart {
	return &Flowchart{
		Name:  name,
		nodes: make(map[string]*Node),
	}
}

// AddNode adds a node. The id is sanitized to alphanumerics and underscore
// for the emitted text; quotes in the name are escaped to their HTML
// entity. Adding an existing id replaces the node in place.
func (f *Flowchart) AddNode(id, name, parentID string) {
	if _, ok := f.nodes[id]; !ok {
		f.ids = append(f.ids, id)
	}
	f.nodes[id] = &Node{
		ID:       id,
		SafeID:   SafeID(id),
		Name:     escapeName(name),
		ParentID: parentID,
	}
}

// HasNode reports whether id has been added.
func (f *Flowchart) HasNode(id string) bool {
	_, ok := f.nodes[id]
	return ok
}

// Node returns the node for id, or nil.
func (f *Flowchart) Node(id string) *Node { return f.nodes[id] }

// AddLink records a directed edge. Endpoints are validated at render time:
// a link whose source or target never became a node is simply not emitted.
func (f *Flowchart) AddLink(sourceID, targetID, label string) {
	f.links = append(f.links, Link{SourceID: sourceID, TargetID: targetID, Label: label})
}

// Links returns the recorded links in insertion order.
func (f *Flowchart) Links() []Link { return f.links }

// NodeCount returns the number of nodes.
func (f *Flowchart) NodeCount() int { return len(f.nodes) }

// Forest rebuilds the parent/child structure from the flat parent pointers
// and returns the roots in first-seen order. A node whose parent id was
// never added is a root. Children lists are reset on every call, so the
// result does not accumulate across calls.
func (f *Flowchart) Forest() []*Node {
	for _, n := range f.nodes {
		n.children = nil
	}

	var roots []*Node
	for _, id := range f.ids {
		n := f.nodes[id]
		if parent, ok := f.nodes[n.ParentID]; ok && n.ParentID != "" {
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots
}

// Generate renders the flowchart as Mermaid text. Rendering twice yields
// byte-identical output.
func (f *Flowchart) Generate() string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for _, root := range f.Forest() {
		writeNode(&b, root, 1)
	}

	for _, link := range f.links {
		source, sok := f.nodes[link.SourceID]
		target, tok := f.nodes[link.TargetID]
		if !sok || !tok {
			continue
		}
		b.WriteString("\t")
		b.WriteString(source.SafeID)
		if link.Label != "" {
			b.WriteString(" -->|")
			b.WriteString(link.Label)
			b.WriteString("| ")
		} else {
			b.WriteString(" --> ")
		}
		b.WriteString(target.SafeID)
		b.WriteString("\n")
	}

	return b.String()
}

func writeNode(b *strings.Builder, n *Node, indent int) {
	tab := strings.Repeat("\t", indent)
	if len(n.children) > 0 {
		b.WriteString(tab)
		b.WriteString("subgraph ")
		b.WriteString(n.SafeID)
		b.WriteString(" [\"")
		b.WriteString(n.Name)
		b.WriteString("\"]\n")
		for _, child := range n.children {
			writeNode(b, child, indent+1)
		}
		b.WriteString(tab)
		b.WriteString("end\n")
		return
	}
	b.WriteString(tab)
	b.WriteString(n.SafeID)
	b.WriteString("[\"")
	b.WriteString(n.Name)
	b.WriteString("\"]\n")
}

// SafeID strips a raw id down to letters, digits and underscore.
func SafeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeName(name string) string {
	return strings.ReplaceAll(name, `"`, "&quot;")
}
