package element

import (
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
)

// Status reports which conventional files of a declared element exist.
type Status struct {
	Kind    layout.Kind `json:"kind"`
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Present []string    `json:"present"`
	Missing []string    `json:"missing,omitempty"`
}

// Complete reports whether every file of the element exists.
func (s Status) Complete() bool {
	return len(s.Missing) == 0
}

// Listing is the file status of every declared element in manifest order.
type Listing struct {
	PluginID string   `json:"pluginID"`
	Widgets  []Status `json:"widgets"`
	Nodes    []Status `json:"nodes"`
	Icon     bool     `json:"icon"`
}

// Complete reports whether the project would bundle without missing files.
func (l *Listing) Complete() bool {
	if !l.Icon {
		return false
	}
	for _, s := range l.Widgets {
		if !s.Complete() {
			return false
		}
	}
	for _, s := range l.Nodes {
		if !s.Complete() {
			return false
		}
	}
	return true
}

// List loads the manifest and checks each declared element's files.
func (m *Manager) List() (*Listing, error) {
	man, err := manifest.Load(m.Root)
	if err != nil {
		return nil, err
	}

	l := &Listing{PluginID: man.PluginID}
	for _, w := range man.Widgets {
		l.Widgets = append(l.Widgets, m.status(layout.KindWidget, w.WidgetID, w.WidgetName))
	}
	for _, n := range man.Nodes {
		l.Nodes = append(l.Nodes, m.status(layout.KindNode, n.NodeID, n.NodeName))
	}
	l.Icon, _ = platform.Exists(m.path(layout.IconFile))
	return l, nil
}

func (m *Manager) status(kind layout.Kind, id, name string) Status {
	s := Status{Kind: kind, ID: id, Name: name}
	for _, rel := range layout.ResolvePaths(kind, id) {
		if ok, _ := platform.Exists(m.path(rel)); ok {
			s.Present = append(s.Present, rel)
		} else {
			s.Missing = append(s.Missing, rel)
		}
	}
	return s
}
