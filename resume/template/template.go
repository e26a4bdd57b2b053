// Package template renders structured resumes into textual formats.
//
// A Template is a pair of pure render functions bound to an identifier.
// Calling a render function twice on identical input yields byte-identical
// output; export-then-compare tests depend on that.
package template

import (
	"errors"
	"fmt"

	"jobtrack-backend/resume/model"
)

// Format selects one of the structurally renderable outputs. PDF and DOCX are
// downstream encodings handled by the export service, not by templates.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoTemplates       = errors.New("no templates registered")
)

// Template is a named, described renderer. Implementations must be stateless
// and side-effect free.
type Template interface {
	ID() string
	Name() string
	Description() string
	RenderMarkdown(resume model.StructuredResume) string
	RenderHTML(resume model.StructuredResume) string
}

// Registry maps template identifiers to renderers. It is constructed once at
// startup and passed to consumers; there is no package-level registry.
type Registry struct {
	templates map[string]Template
	order     []string
	defaultID string
}

// NewRegistry builds a registry with the built-in modern template registered
// as the default.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	modern := NewModernTemplate()
	r.Register(modern)
	r.defaultID = modern.ID()
	return r
}

// Register inserts or replaces the entry for the template's id. Re-registering
// an id is legal and overwrites silently; registration order is preserved for
// List.
func (r *Registry) Register(t Template) {
	if _, exists := r.templates[t.ID()]; !exists {
		r.order = append(r.order, t.ID())
	}
	r.templates[t.ID()] = t
}

// Get looks up a template by exact id.
func (r *Registry) Get(id string) (Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return t, nil
}

// List returns templates in registration order.
func (r *Registry) List() []Template {
	out := make([]Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// Default returns the template reserved for the built-in modern experience.
func (r *Registry) Default() (Template, error) {
	if len(r.templates) == 0 {
		return nil, ErrNoTemplates
	}
	return r.Get(r.defaultID)
}

// Render resolves the template and dispatches to the requested format.
func (r *Registry) Render(resume model.StructuredResume, templateID string, format Format) (string, error) {
	t, err := r.Get(templateID)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatMarkdown:
		return t.RenderMarkdown(resume), nil
	case FormatHTML:
		return t.RenderHTML(resume), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
