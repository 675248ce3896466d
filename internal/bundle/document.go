package bundle

import "github.com/outline-labs/opc/internal/manifest"

// Document is the .opb bundle: manifest identity, fully inlined elements,
// and the project icon.
type Document struct {
	PluginName          string       `json:"pluginName"`
	PluginID            string       `json:"pluginID"`
	PluginDescription   string       `json:"pluginDescription"`
	PluginVersion       string       `json:"pluginVersion"`
	PluginAuthor        string       `json:"pluginAuthor"`
	PluginCategoryLabel string       `json:"pluginCategoryLabel"`
	Widgets             []FullWidget `json:"widgets"`
	Nodes               []FullNode   `json:"nodes"`
	Icon                IconFiles    `json:"icon"`
}

// FullWidget is a widget descriptor carrying its four files.
type FullWidget struct {
	manifest.WidgetDescriptor
	FileContents WidgetFiles `json:"fileContents"`
}

// WidgetFiles holds the inlined contents of a widget directory.
type WidgetFiles struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
	SVG  string `json:"svg"`
}

// FullNode is a node descriptor carrying its script.
type FullNode struct {
	manifest.NodeDescriptor
	FileContents NodeFiles `json:"fileContents"`
}

// NodeFiles holds the inlined node script.
type NodeFiles struct {
	JS string `json:"js"`
}

// IconFiles holds the inlined project icon.
type IconFiles struct {
	SVG string `json:"svg"`
}

// Reduce strips file contents from d, returning the manifest it was
// bundled from.
func Reduce(d *Document) *manifest.Manifest {
	m := &manifest.Manifest{
		PluginName:          d.PluginName,
		PluginID:            d.PluginID,
		PluginDescription:   d.PluginDescription,
		PluginVersion:       d.PluginVersion,
		PluginAuthor:        d.PluginAuthor,
		PluginCategoryLabel: d.PluginCategoryLabel,
		Widgets:             make([]manifest.WidgetDescriptor, 0, len(d.Widgets)),
		Nodes:               make([]manifest.NodeDescriptor, 0, len(d.Nodes)),
	}
	for _, w := range d.Widgets {
		m.Widgets = append(m.Widgets, w.WidgetDescriptor)
	}
	for _, n := range d.Nodes {
		m.Nodes = append(m.Nodes, n.NodeDescriptor)
	}
	return m
}

// normalize replaces nil sequences with empty ones so they encode as [].
func (d *Document) normalize() {
	if d.Widgets == nil {
		d.Widgets = []FullWidget{}
	}
	if d.Nodes == nil {
		d.Nodes = []FullNode{}
	}
	for i := range d.Widgets {
		if d.Widgets[i].Prototype.SizeBounds == nil {
			d.Widgets[i].Prototype.SizeBounds = []manifest.Range{}
		}
	}
}
