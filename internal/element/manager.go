package element

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
)

// Manager performs element operations on the project rooted at Root.
type Manager struct {
	Root   string
	Logger *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.Logger = l
		}
	}
}

// NewManager returns a Manager for the project at root.
func NewManager(root string, opts ...Option) *Manager {
	m := &Manager{Root: root, Logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result describes a completed add or remove.
type Result struct {
	Kind layout.Kind
	ID   string

	// Files are the slash-separated project-relative paths written or
	// deleted.
	Files []string

	// Warnings are non-fatal issues, such as files left behind by a remove.
	Warnings []*issue.Error
}

// Add dispatches to AddWidget or AddNode.
func (m *Manager) Add(ctx context.Context, kind layout.Kind, id string) (*Result, error) {
	switch kind {
	case layout.KindWidget:
		return m.AddWidget(ctx, id)
	case layout.KindNode:
		return m.AddNode(ctx, id)
	default:
		return nil, unknownKind(kind)
	}
}

// Remove dispatches to RemoveWidget or RemoveNode.
func (m *Manager) Remove(ctx context.Context, kind layout.Kind, id string) (*Result, error) {
	switch kind {
	case layout.KindWidget:
		return m.RemoveWidget(ctx, id)
	case layout.KindNode:
		return m.RemoveNode(ctx, id)
	default:
		return nil, unknownKind(kind)
	}
}

func unknownKind(kind layout.Kind) error {
	return fmt.Errorf("unknown element kind %d", int(kind))
}
