package issue

import (
	"errors"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	Unknown Kind = iota
	NotAPluginProject
	MalformedManifest
	InvalidIdentifier
	ElementAlreadyExists
	ElementNotFound
	MissingElementFile
	MissingIcon
	DestinationExists
	WriteFailure
	ExtractionFailed
	MalformedBundle
	OrphanedFilesWarning
)

var kindNames = map[Kind]string{
	Unknown:              "unknown",
	NotAPluginProject:    "not a plugin project",
	MalformedManifest:    "malformed manifest",
	InvalidIdentifier:    "invalid identifier",
	ElementAlreadyExists: "element already exists",
	ElementNotFound:      "element not found",
	MissingElementFile:   "missing element file",
	MissingIcon:          "missing icon",
	DestinationExists:    "destination exists",
	WriteFailure:         "write failure",
	ExtractionFailed:     "extraction failed",
	MalformedBundle:      "malformed bundle",
	OrphanedFilesWarning: "orphaned files",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Unknown]
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrNotAPluginProject    = &Error{Kind: NotAPluginProject}
	ErrMalformedManifest    = &Error{Kind: MalformedManifest}
	ErrInvalidIdentifier    = &Error{Kind: InvalidIdentifier}
	ErrElementAlreadyExists = &Error{Kind: ElementAlreadyExists}
	ErrElementNotFound      = &Error{Kind: ElementNotFound}
	ErrMissingElementFile   = &Error{Kind: MissingElementFile}
	ErrMissingIcon          = &Error{Kind: MissingIcon}
	ErrDestinationExists    = &Error{Kind: DestinationExists}
	ErrWriteFailure         = &Error{Kind: WriteFailure}
	ErrExtractionFailed     = &Error{Kind: ExtractionFailed}
	ErrMalformedBundle      = &Error{Kind: MalformedBundle}
	ErrOrphanedFiles        = &Error{Kind: OrphanedFilesWarning}
)

// Error is a classified opc failure.
type Error struct {
	Kind Kind

	// Element is the widget or node identifier involved, if any.
	Element string

	// Path is the offending file or directory, if any. Element file paths
	// are project-relative and slash-separated.
	Path string

	// Reason is a short human-readable explanation.
	Reason string

	Cause error
}

// New returns an Error of the given kind.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Wrap classifies cause under kind. A nil cause yields nil.
func Wrap(kind Kind, cause error, reason string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Reason: reason, Cause: cause}
}

// MissingFile reports an element whose conventional file could not be read.
func MissingFile(element, path string, cause error) *Error {
	return &Error{Kind: MissingElementFile, Element: element, Path: path, Cause: cause}
}

// Extraction reports a failed extract step.
func Extraction(element, reason string, cause error) *Error {
	return &Error{Kind: ExtractionFailed, Element: element, Reason: reason, Cause: cause}
}

// Orphaned reports element files that survived a manifest removal.
func Orphaned(element, path string, cause error) *Error {
	return &Error{
		Kind:    OrphanedFilesWarning,
		Element: element,
		Path:    path,
		Reason:  "manifest entry removed but files could not be deleted",
		Cause:   cause,
	}
}

// WithElement sets the element identifier and returns e.
func (e *Error) WithElement(id string) *Error {
	e.Element = id
	return e
}

// WithPath sets the path and returns e.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// Error formats as "<kind>: <element> (<path>): <reason>: <cause>",
// omitting empty parts.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Element != "" {
		b.WriteString(": ")
		b.WriteString(e.Element)
	}
	if e.Path != "" {
		if e.Element != "" {
			b.WriteString(" (")
			b.WriteString(e.Path)
			b.WriteString(")")
		} else {
			b.WriteString(": ")
			b.WriteString(e.Path)
		}
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsWarning reports whether err is a non-fatal issue.
func IsWarning(err error) bool {
	return KindOf(err) == OrphanedFilesWarning
}

// Suggestion returns a one-line hint for the given kind, or "".
func Suggestion(kind Kind) string {
	switch kind {
	case NotAPluginProject:
		return "Run this command inside a plugin project, or pass --project <dir>."
	case MalformedManifest:
		return "Fix plugin.json by hand; 'opc validate' lists schema issues."
	case InvalidIdentifier:
		return "Use lowerCamelCase: start with a lowercase letter, no '_' or '-'."
	case ElementAlreadyExists:
		return "Pick another identifier or remove the existing files first."
	case ElementNotFound:
		return "Run 'opc list' to see the elements declared in plugin.json."
	case MissingElementFile:
		return "Restore the file or remove the element from plugin.json."
	case MissingIcon:
		return "Add an icon.svg at the project root."
	case DestinationExists:
		return "Choose another destination; extraction never overwrites a directory."
	case ExtractionFailed:
		return "Partially written output is not rolled back; delete it before retrying."
	case MalformedBundle:
		return "The .opb file is not a valid plugin bundle."
	case OrphanedFilesWarning:
		return "Delete the leftover files by hand."
	default:
		return ""
	}
}
