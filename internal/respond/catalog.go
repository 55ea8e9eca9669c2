// Package respond turns a classified intent into a reply: one handler
// per intent, composing knowledge-store relations with templates from
// the catalog, then stage-based styling passes.
package respond

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

// Chooser is the injectable random source; *rand.Rand satisfies it.
// Tests substitute a fixed chooser to pin template choice and the
// personality/suggestion coin flips.
type Chooser interface {
	Float64() float64
	Intn(n int) int
}

// Catalog maps a response category to its templates. Immutable after
// load.
type Catalog map[string][]string

// ParseCatalog decodes and validates a YAML template catalog.
func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for category, templates := range c {
		if len(templates) == 0 {
			return nil, fmt.Errorf("template category %q is empty", category)
		}
	}
	return c, nil
}

// LoadCatalog reads a template catalog from a file.
func LoadCatalog(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

// DefaultCatalog returns the embedded catalog. The embedded document is
// validated by tests, so a parse failure here is a build defect.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultTemplatesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Pick selects a random template from a category and formats it.
// Unknown categories yield "".
func (c Catalog) Pick(rng Chooser, category string, args map[string]string) string {
	templates := c[category]
	if len(templates) == 0 {
		return ""
	}
	return render(templates[rng.Intn(len(templates))], args)
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// render substitutes {name} placeholders. If any placeholder has no
// argument the template is returned unformatted rather than failing the
// turn.
func render(tmpl string, args map[string]string) string {
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if _, ok := args[m[1]]; !ok {
			return tmpl
		}
	}
	out := tmpl
	for name, val := range args {
		out = strings.ReplaceAll(out, "{"+name+"}", val)
	}
	return out
}
