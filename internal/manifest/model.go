package manifest

import (
	"fmt"

	"github.com/outline-labs/opc/internal/issue"
)

// FindWidget returns the index of the widget with the given identifier.
func (m *Manifest) FindWidget(id string) (int, bool) {
	for i, w := range m.Widgets {
		if w.WidgetID == id {
			return i, true
		}
	}
	return -1, false
}

// FindNode returns the index of the node with the given identifier.
func (m *Manifest) FindNode(id string) (int, bool) {
	for i, n := range m.Nodes {
		if n.NodeID == id {
			return i, true
		}
	}
	return -1, false
}

// AddWidget appends w, rejecting a duplicate identifier.
func (m *Manifest) AddWidget(w WidgetDescriptor) error {
	if _, ok := m.FindWidget(w.WidgetID); ok {
		return issue.New(issue.ElementAlreadyExists, "widget already declared in manifest").WithElement(w.WidgetID)
	}
	m.Widgets = append(m.Widgets, w)
	return nil
}

// AddNode appends n, rejecting a duplicate identifier.
func (m *Manifest) AddNode(n NodeDescriptor) error {
	if _, ok := m.FindNode(n.NodeID); ok {
		return issue.New(issue.ElementAlreadyExists, "node already declared in manifest").WithElement(n.NodeID)
	}
	m.Nodes = append(m.Nodes, n)
	return nil
}

// RemoveWidget deletes the widget descriptor with the given identifier.
// It does not touch the filesystem.
func (m *Manifest) RemoveWidget(id string) error {
	i, ok := m.FindWidget(id)
	if !ok {
		return issue.New(issue.ElementNotFound, "no widget with this ID").WithElement(id)
	}
	m.Widgets = append(m.Widgets[:i], m.Widgets[i+1:]...)
	return nil
}

// RemoveNode deletes the node descriptor with the given identifier.
// It does not touch the filesystem.
func (m *Manifest) RemoveNode(id string) error {
	i, ok := m.FindNode(id)
	if !ok {
		return issue.New(issue.ElementNotFound, "no node with this ID").WithElement(id)
	}
	m.Nodes = append(m.Nodes[:i], m.Nodes[i+1:]...)
	return nil
}

// Check verifies the manifest invariants: widget identifiers are unique,
// node identifiers are unique, and every identifier, the plugin's included,
// names a single path segment. The lowerCamelCase rule is only enforced for new identifiers
// (see ValidateIdentifier), so older projects keep bundling.
func (m *Manifest) Check() error {
	if err := CheckSegment(m.PluginID); err != nil {
		return malformed("pluginID", err)
	}

	seen := make(map[string]bool, len(m.Widgets))
	for i, w := range m.Widgets {
		if err := CheckSegment(w.WidgetID); err != nil {
			return malformed(fmt.Sprintf("widgets[%d]", i), err)
		}
		if seen[w.WidgetID] {
			return malformed(fmt.Sprintf("widgets[%d]", i), fmt.Errorf("duplicate widgetID %q", w.WidgetID))
		}
		seen[w.WidgetID] = true
	}

	seen = make(map[string]bool, len(m.Nodes))
	for i, n := range m.Nodes {
		if err := CheckSegment(n.NodeID); err != nil {
			return malformed(fmt.Sprintf("nodes[%d]", i), err)
		}
		if seen[n.NodeID] {
			return malformed(fmt.Sprintf("nodes[%d]", i), fmt.Errorf("duplicate nodeID %q", n.NodeID))
		}
		seen[n.NodeID] = true
	}
	return nil
}

func malformed(where string, cause error) *issue.Error {
	return &issue.Error{Kind: issue.MalformedManifest, Reason: where, Cause: cause}
}
