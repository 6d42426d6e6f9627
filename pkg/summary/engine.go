package summary

import (
	"embed"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

//go:embed templates
var templateFS embed.FS

// EngineOption configures the template engine. WithGoTemplateOptions exists
// for callers migrating from go-template based pipelines and is currently a
// no-op.
type EngineOption func(*engine)

// WithGoTemplateOptions accepts go-template options for API compatibility.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) EngineOption {
	return func(*engine) {}
}

type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(options ...EngineOption) *engine {
	e := &engine{
		set:       pongo2.NewSet("summary", pongo2.NewFSLoader(templateFS)),
		templates: make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

func (e *engine) render(name string, data map[string]any) ([]byte, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return nil, err
	}
	out, err := tmpl.ExecuteBytes(pongo2.Context(data))
	if err != nil {
		return nil, fmt.Errorf("summary: execute template %q: %w", name, err)
	}
	return out, nil
}

func (e *engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("summary: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}
