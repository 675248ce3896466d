package manifest

import (
	"encoding/json"
	"fmt"
)

// Manifest is the plugin.json document: plugin identity plus the ordered
// widget and node declarations. It references element files by convention
// and owns no file contents.
type Manifest struct {
	PluginName          string             `json:"pluginName"`
	PluginID            string             `json:"pluginID"`
	PluginDescription   string             `json:"pluginDescription"`
	PluginVersion       string             `json:"pluginVersion"`
	PluginAuthor        string             `json:"pluginAuthor"`
	PluginCategoryLabel string             `json:"pluginCategoryLabel"`
	Widgets             []WidgetDescriptor `json:"widgets"`
	Nodes               []NodeDescriptor   `json:"nodes"`
}

// WidgetDescriptor declares a widget backed by the directory WidgetID/.
type WidgetDescriptor struct {
	WidgetName string    `json:"widgetName"`
	WidgetID   string    `json:"widgetID"`
	Prototype  Prototype `json:"prototype"`
}

// NodeDescriptor declares a node backed by NodeID.js.
type NodeDescriptor struct {
	NodeName string `json:"nodeName"`
	NodeID   string `json:"nodeID"`
}

// Prototype is the initial layout and behaviour of a placed widget.
type Prototype struct {
	PosX       Coord   `json:"posX"`
	PosY       Coord   `json:"posY"`
	SizeX      Coord   `json:"sizeX"`
	SizeY      Coord   `json:"sizeY"`
	SimX       Coord   `json:"simX"`
	SimY       Coord   `json:"simY"`
	SimResizeX Coord   `json:"simResizeX"`
	SimResizeY Coord   `json:"simResizeY"`
	SizeBounds []Range `json:"sizeBounds"`
	Params     Value   `json:"params"`
}

// Coord is a prototype number held as its JSON literal, so 8.0 is written
// back as 8.0 and not 8. The zero Coord encodes as 0.
type Coord string

// MarshalJSON writes the literal unchanged.
func (c Coord) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("0"), nil
	}
	b := []byte(c)
	if !isNumberLiteral(b) {
		return nil, fmt.Errorf("invalid number literal %q", string(c))
	}
	return b, nil
}

// UnmarshalJSON accepts a JSON number only; quoted numbers are rejected.
func (c *Coord) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if !isNumberLiteral(data) {
		return fmt.Errorf("expected a number, got %s", data)
	}
	*c = Coord(data)
	return nil
}

func isNumberLiteral(b []byte) bool {
	if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
		return false
	}
	return json.Valid(b)
}

// Range is an inclusive [min, max] pair, one per resizable axis.
type Range [2]Coord

// Min returns the lower bound.
func (r Range) Min() Coord { return r[0] }

// Max returns the upper bound.
func (r Range) Max() Coord { return r[1] }

// UnmarshalJSON requires exactly two numbers; encoding/json would otherwise
// silently drop or zero-fill elements of a fixed-size array.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []Coord
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("size bound must be a [min, max] pair, got %d values", len(pair))
	}
	r[0], r[1] = pair[0], pair[1]
	return nil
}

// Defaults for scaffolded manifests.
const (
	DefaultVersion       = "1.0.0"
	DefaultDescription   = "Plugin Description"
	DefaultAuthor        = "Plugin Author"
	DefaultCategoryLabel = "Category Label"
)

// DefaultPrototype returns the geometry given to newly added widgets.
func DefaultPrototype() Prototype {
	return Prototype{
		PosX:       "0",
		PosY:       "0",
		SizeX:      "8",
		SizeY:      "8",
		SimX:       "0",
		SimY:       "0",
		SimResizeX: "0",
		SimResizeY: "0",
		SizeBounds: []Range{},
		Params:     Object(),
	}
}

// Identity holds the plugin-level metadata fields.
type Identity struct {
	Description   string
	Version       string
	Author        string
	CategoryLabel string
}

// New returns an empty manifest for pluginID with a display name derived
// from the identifier. Empty identity fields fall back to the package
// defaults.
func New(pluginID string, id Identity) *Manifest {
	m := &Manifest{
		PluginName:          DisplayName(pluginID),
		PluginID:            pluginID,
		PluginDescription:   orDefault(id.Description, DefaultDescription),
		PluginVersion:       orDefault(id.Version, DefaultVersion),
		PluginAuthor:        orDefault(id.Author, DefaultAuthor),
		PluginCategoryLabel: orDefault(id.CategoryLabel, DefaultCategoryLabel),
		Widgets:             []WidgetDescriptor{},
		Nodes:               []NodeDescriptor{},
	}
	return m
}

// NewWidget returns a descriptor for id with a derived display name and the
// default prototype.
func NewWidget(id string) WidgetDescriptor {
	return WidgetDescriptor{
		WidgetName: DisplayName(id),
		WidgetID:   id,
		Prototype:  DefaultPrototype(),
	}
}

// NewNode returns a descriptor for id with a derived display name.
func NewNode(id string) NodeDescriptor {
	return NodeDescriptor{
		NodeName: DisplayName(id),
		NodeID:   id,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
