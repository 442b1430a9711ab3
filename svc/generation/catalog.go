package generation

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultCatalog []byte

// Prompt is the provider input for one template.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type promptDefaults struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type templateSpec struct {
	System      string  `yaml:"system"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Scaffold    string  `yaml:"scaffold"`
}

type catalogFile struct {
	Persona   string                  `yaml:"persona"`
	Defaults  promptDefaults          `yaml:"defaults"`
	Templates map[string]templateSpec `yaml:"templates"`
}

type compiled struct {
	spec     templateSpec
	scaffold *template.Template
}

// Catalog holds the persona and per-template prompt definitions.
type Catalog struct {
	persona   string
	defaults  promptDefaults
	templates map[Template]compiled
}

// DefaultCatalog parses the embedded prompts.yaml.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses a YAML catalog. Every supported template must be defined.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if strings.TrimSpace(f.Persona) == "" {
		return nil, fmt.Errorf("%w: persona is empty", ErrInvalidCatalog)
	}

	c := &Catalog{
		persona:   strings.TrimSpace(f.Persona),
		defaults:  f.Defaults,
		templates: make(map[Template]compiled, len(templates)),
	}
	for _, t := range templates {
		spec, ok := f.Templates[string(t)]
		if !ok {
			return nil, fmt.Errorf("%w: template %q is missing", ErrInvalidCatalog, t)
		}
		tmpl, err := template.New(string(t)).Option("missingkey=zero").Parse(spec.Scaffold)
		if err != nil {
			return nil, fmt.Errorf("%w: template %q: %v", ErrInvalidCatalog, t, err)
		}
		c.templates[t] = compiled{spec: spec, scaffold: tmpl}
	}

	return c, nil
}

// Basic returns the persona prompt with the user text passed through as is.
func (c *Catalog) Basic(prompt string) Prompt {
	return Prompt{
		System:      c.persona,
		User:        prompt,
		Temperature: c.defaults.Temperature,
		MaxTokens:   c.defaults.MaxTokens,
	}
}

// Enhanced renders the template scaffold around prompt, substituting
// values from context.
func (c *Catalog) Enhanced(t Template, prompt string, context map[string]any) (Prompt, error) {
	ct, ok := c.templates[t]
	if !ok {
		return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	if context == nil {
		context = map[string]any{}
	}

	var b strings.Builder
	if err := ct.scaffold.Execute(&b, struct {
		Prompt  string
		Context map[string]any
	}{Prompt: prompt, Context: context}); err != nil {
		return Prompt{}, fmt.Errorf("render %q scaffold: %w", t, err)
	}

	p := Prompt{
		System:      strings.TrimSpace(ct.spec.System),
		User:        strings.TrimSpace(b.String()),
		Temperature: c.defaults.Temperature,
		MaxTokens:   c.defaults.MaxTokens,
	}
	if p.System == "" {
		p.System = c.persona
	}
	if ct.spec.Temperature > 0 {
		p.Temperature = ct.spec.Temperature
	}
	if ct.spec.MaxTokens > 0 {
		p.MaxTokens = ct.spec.MaxTokens
	}
	return p, nil
}
