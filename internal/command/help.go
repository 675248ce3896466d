package command

import "github.com/outline-labs/opc/internal/branding"

// Manual returns the overview printed by "opc help".
func Manual() string {
	name := branding.CLIName()
	return branding.DisplayName() + `

Usage: ` + name + ` [COMMAND] [ARGUMENTS] [OPTIONS]

Commands:
    create, c       Create the basic file tree for a new plugin
    add, a          Add a new widget or node to the plugin
    remove, r       Remove a widget or node from the plugin
    bundle, b       Bundle the plugin to a .opb file
    extract, e      Recreate a plugin project from a .opb file
    validate, v     Check plugin.json and the element files
    list, l         List declared elements and their files
    version         Print version information

Running ` + name + ` without any arguments prints version info and exits.

See '` + name + ` help <command>' for more information on a specific command.
`
}

// Usage returns the usage text for one command, or "" if unknown.
func Usage(topic string) string {
	name := branding.CLIName()
	switch topic {
	case "create":
		return name + " create <name> [-blank]\n\nCreate ./<name> with plugin.json and icon.svg. Unless -blank is given,\na sample widget and a sample node are added."
	case "add":
		return name + " add widget|node <id>\n\nCreate the element's files from the stub templates and declare it in\nplugin.json. Identifiers are lowerCamelCase."
	case "remove":
		return name + " remove widget|node <id>\n\nDrop the element from plugin.json, then delete its files."
	case "bundle":
		return name + " bundle [--output <file>] [--watch]\n\nWrite <pluginID>.opb next to the project directory."
	case "extract":
		return name + " extract <file.opb> [dest]\n\nRecreate the project in dest, which must not exist."
	case "validate":
		return name + " validate\n\nCheck plugin.json against its schema and report missing element files."
	case "list":
		return name + " list\n\nList the widgets and nodes declared in plugin.json."
	case "version":
		return name + " version\n\nPrint version information."
	default:
		return ""
	}
}
