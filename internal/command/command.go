package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/outline-labs/opc/internal/layout"
)

// Command is one resolved invocation.
type Command interface {
	Name() string
}

// Element names a widget or node.
type Element struct {
	Kind layout.Kind
	ID   string
}

func (e Element) String() string {
	return e.Kind.String() + " " + e.ID
}

// Create scaffolds a new plugin project named Plugin in the working directory.
type Create struct {
	Plugin string
	Blank  bool
}

// Add creates an element and declares it in the manifest.
type Add struct {
	Element Element
}

// Remove drops an element from the manifest and deletes its files.
type Remove struct {
	Element Element
}

// Bundle writes the project's .opb file. An empty Output uses the
// configured or default location. Watch keeps re-bundling on changes.
type Bundle struct {
	Output string
	Watch  bool
}

// Extract recreates a project from the bundle at Source. An empty Dest
// extracts into a directory named after the plugin.
type Extract struct {
	Source string
	Dest   string
}

// Validate checks the manifest and the element files without bundling.
type Validate struct{}

// List reports each declared element and the state of its files.
type List struct{}

// Version prints build information.
type Version struct{}

// Help prints the manual, or usage for Topic.
type Help struct {
	Topic string
}

func (Create) Name() string   { return "create" }
func (Add) Name() string      { return "add" }
func (Remove) Name() string   { return "remove" }
func (Bundle) Name() string   { return "bundle" }
func (Extract) Name() string  { return "extract" }
func (Validate) Name() string { return "validate" }
func (List) Name() string     { return "list" }
func (Version) Name() string  { return "version" }
func (Help) Name() string     { return "help" }

// ErrUsage is wrapped by every Parse error.
var ErrUsage = errors.New("usage")

// aliases maps the single-letter shortcuts to command names.
var aliases = map[string]string{
	"c": "create",
	"a": "add",
	"r": "remove",
	"b": "bundle",
	"e": "extract",
	"v": "validate",
	"l": "list",
	"h": "help",
}

// Parse resolves positional arguments, without the program name, into a
// Command. No arguments means Version.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Version{}, nil
	}

	name := args[0]
	if full, ok := aliases[name]; ok {
		name = full
	}
	rest := args[1:]

	switch name {
	case "create":
		return parseCreate(rest)
	case "add":
		el, err := parseElement(rest)
		if err != nil {
			return nil, err
		}
		return Add{Element: el}, nil
	case "remove":
		el, err := parseElement(rest)
		if err != nil {
			return nil, err
		}
		return Remove{Element: el}, nil
	case "bundle":
		return only(Bundle{}, rest)
	case "extract":
		if len(rest) == 0 {
			return nil, usage("missing path of .opb")
		}
		if len(rest) > 2 {
			return nil, usage(fmt.Sprintf("unexpected argument %q", rest[2]))
		}
		c := Extract{Source: rest[0]}
		if len(rest) == 2 {
			c.Dest = rest[1]
		}
		return c, nil
	case "validate":
		return only(Validate{}, rest)
	case "list":
		return only(List{}, rest)
	case "version":
		return only(Version{}, rest)
	case "help":
		if len(rest) == 0 {
			return Help{}, nil
		}
		topic := rest[0]
		if full, ok := aliases[topic]; ok {
			topic = full
		}
		return Help{Topic: topic}, nil
	default:
		return nil, usage(fmt.Sprintf("invalid command %q", args[0]))
	}
}

func parseCreate(args []string) (Command, error) {
	c := Create{}
	for _, a := range args {
		switch {
		case a == "-blank" || a == "--blank":
			c.Blank = true
		case strings.HasPrefix(a, "-"):
			return nil, usage(fmt.Sprintf("invalid option %q", a))
		case c.Plugin == "":
			c.Plugin = a
		default:
			return nil, usage(fmt.Sprintf("unexpected argument %q", a))
		}
	}
	if c.Plugin == "" {
		return nil, usage("missing plugin name")
	}
	return c, nil
}

func parseElement(args []string) (Element, error) {
	if len(args) == 0 {
		return Element{}, usage("missing element type")
	}
	kind, err := layout.ParseKind(args[0])
	if err != nil {
		return Element{}, usage(err.Error())
	}
	if len(args) == 1 {
		return Element{}, usage("missing element name")
	}
	if len(args) > 2 {
		return Element{}, usage(fmt.Sprintf("unexpected argument %q", args[2]))
	}
	return Element{Kind: kind, ID: args[1]}, nil
}

// only returns c if it was given no arguments.
func only(c Command, args []string) (Command, error) {
	if len(args) > 0 {
		return nil, usage(fmt.Sprintf("%s: unexpected argument %q", c.Name(), args[0]))
	}
	return c, nil
}

func usage(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}
