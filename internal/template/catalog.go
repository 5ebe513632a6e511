// Package template holds the catalog of peula templates offered in the
// questionnaire.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tzofim/peula/internal/domain"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Catalog is an immutable id -> Template lookup preserving load order.
type Catalog struct {
	order []string
	byID  map[string]Template
}

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	return parse(builtinCatalog, "builtin catalog")
}

// Load returns the embedded catalog extended by every *.yaml file in dir.
// A template in dir replaces a built-in one with the same id. An empty dir
// means built-ins only.
func Load(dir string) (*Catalog, error) {
	cat, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return cat, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing templates in %s: %w", dir, err)
	}
	sort.Strings(paths)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		extra, err := parse(data, p)
		if err != nil {
			return nil, err
		}
		for _, id := range extra.order {
			cat.put(extra.byID[id])
		}
	}
	return cat, nil
}

func parse(data []byte, source string) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if errs := ValidateCatalog(file.Templates); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s: %w", source, errors.Join(errs...))
	}
	cat := &Catalog{byID: make(map[string]Template, len(file.Templates))}
	for _, t := range file.Templates {
		cat.put(t)
	}
	return cat, nil
}

func (c *Catalog) put(t Template) {
	if _, exists := c.byID[t.ID]; !exists {
		c.order = append(c.order, t.ID)
	}
	c.byID[t.ID] = t
}

// Get looks up a template by id.
func (c *Catalog) Get(id string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	t, ok := c.byID[id]
	return t, ok
}

// Resolve returns the template to mention in a generation prompt. It reports
// false for "custom", an empty id and unknown ids alike.
func (c *Catalog) Resolve(id string) (Template, bool) {
	if id == "" || id == domain.CustomTemplateID {
		return Template{}, false
	}
	return c.Get(id)
}

// List returns the templates in catalog order.
func (c *Catalog) List() []Template {
	if c == nil {
		return nil
	}
	out := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
