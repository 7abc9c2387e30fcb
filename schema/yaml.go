package schema

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/entitykit/entitykit/validation"
)

// Registry holds entity types by name
type Registry map[string]*Schema

// Lookup returns the entity type registered under name
func (r Registry) Lookup(name string) (*Schema, error) {
	if s, ok := r[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
}

// Names returns registered type names, sorted
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type yamlDocument struct {
	Schemas []yamlSchema `yaml:"schemas"`
}

type yamlSchema struct {
	Name              string                 `yaml:"name"`
	PrimaryKey        string                 `yaml:"primary_key"`
	DefaultAttributes map[string]interface{} `yaml:"default_attributes"`
	BelongsTo         []yamlRelation         `yaml:"belongs_to"`
	HasMany           []yamlRelation         `yaml:"has_many"`
	AttributeNames    map[string]string      `yaml:"attribute_names"`
	Validates         []yamlValidation       `yaml:"validates"`
}

type yamlRelation struct {
	Name   string `yaml:"name"`
	Schema string `yaml:"schema"`
}

type yamlValidation struct {
	Field string     `yaml:"field"`
	Rules []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Rule    string        `yaml:"rule"`
	Message string        `yaml:"message"`
	Min     int           `yaml:"min"`
	Max     int           `yaml:"max"`
	Pattern string        `yaml:"pattern"`
	In      []interface{} `yaml:"in"`
}

// UnmarshalYAML accepts both the bare rule name and the mapping form
func (r *yamlRule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&r.Rule)
	}

	type plain yamlRule
	return node.Decode((*plain)(r))
}

// LoadYAML reads entity type declarations:
//
//	schemas:
//	  - name: Car
//	    default_attributes: {name: "", price: 0}
//	  - name: Person
//	    default_attributes: {name: "", age: 0}
//	    has_many:
//	      - {name: cars, schema: Car}
//	    validates:
//	      - field: name
//	        rules: [required, {rule: length, min: 2}]
//
// Relations may reference types declared later in the same document. A
// relation without name is named after its target, pluralized for has_many.
func LoadYAML(r io.Reader) (Registry, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	registry := Registry{}
	for _, decl := range doc.Schemas {
		if decl.Name == "" {
			return nil, fmt.Errorf("%w: schema without name", ErrInvalidSchema)
		}
		if _, ok := registry[decl.Name]; ok {
			return nil, fmt.Errorf("%w: %s declared twice", ErrInvalidSchema, decl.Name)
		}
		registry[decl.Name] = &Schema{
			Name:              decl.Name,
			PrimaryKey:        decl.PrimaryKey,
			DefaultAttributes: decl.DefaultAttributes,
			AttributeNames:    decl.AttributeNames,
		}
	}

	for _, decl := range doc.Schemas {
		s := registry[decl.Name]

		var err error
		if s.BelongsTo, err = registry.relations(decl.BelongsTo, BelongsTo); err != nil {
			return nil, fmt.Errorf("%s: %w", decl.Name, err)
		}
		if s.HasMany, err = registry.relations(decl.HasMany, HasMany); err != nil {
			return nil, fmt.Errorf("%s: %w", decl.Name, err)
		}

		for _, v := range decl.Validates {
			rules := make([]validation.Rule, 0, len(v.Rules))
			for _, r := range v.Rules {
				rule, err := r.build()
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", decl.Name, v.Field, err)
				}
				rules = append(rules, rule)
			}
			s.Validates = append(s.Validates, Validation{Field: v.Field, Rules: rules})
		}
	}

	for _, name := range registry.Names() {
		if _, err := Parse(registry[name]); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func (r Registry) relations(decls []yamlRelation, kind RelationshipType) ([]Relation, error) {
	relations := make([]Relation, 0, len(decls))
	for _, decl := range decls {
		target, err := r.Lookup(decl.Schema)
		if err != nil {
			return nil, err
		}

		name := decl.Name
		if name == "" {
			if kind == HasMany {
				name = target.PluralName()
			} else {
				name = target.ParamName()
			}
		}
		relations = append(relations, Relation{Name: name, Schema: target})
	}
	return relations, nil
}

func (r yamlRule) build() (validation.Rule, error) {
	var rule validation.Rule
	switch r.Rule {
	case "required":
		rule = validation.Required()
	case "length":
		rule = validation.Length(r.Min, r.Max)
	case "count":
		rule = validation.Count(r.Min, r.Max)
	case "inclusion":
		rule = validation.Inclusion(r.In...)
	case "format":
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: format pattern %q: %v", ErrInvalidSchema, r.Pattern, err)
		}
		rule = validation.Format(re)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, r.Rule)
	}
	return validation.WithMessage(rule, r.Message), nil
}
