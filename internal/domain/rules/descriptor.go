// Package rules compiles the declarative icon database into matchers and
// indexes them for lookup.
package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the decoded rule source. Group order is preserved so that the
// declaration order of every descriptor is known to the compiler.
type Config struct {
	Files       Groups `yaml:"files"`
	Directories Groups `yaml:"directories"`
}

// Groups is an ordered mapping of rule-group name to its descriptors.
type Groups []Group

// Group is one named entry of the rule source.
type Group struct {
	Name        string
	Descriptors []Descriptor
}

// Descriptor describes one icon rule, or a family of variants when Match
// holds several entries.
type Descriptor struct {
	Icon        string   `yaml:"icon"`
	Match       Match    `yaml:"match"`
	Colour      Colour   `yaml:"colour"`
	Priority    *int     `yaml:"priority"`
	Alias       Patterns `yaml:"alias"`
	Scope       Patterns `yaml:"scope"`
	Interpreter Patterns `yaml:"interpreter"`
	Signature   Patterns `yaml:"signature"`
	MatchPath   bool     `yaml:"matchPath"`
	NoFuzz      bool     `yaml:"noFuzz"`
	NoSuffix    bool     `yaml:"noSuffix"`
	Generic     bool     `yaml:"generic"`
}

// Overrides replaces selected descriptor fields for one match variant.
type Overrides struct {
	Icon        string   `yaml:"icon"`
	Colour      Colour   `yaml:"colour"`
	Priority    *int     `yaml:"priority"`
	Alias       Patterns `yaml:"alias"`
	Scope       Patterns `yaml:"scope"`
	Interpreter Patterns `yaml:"interpreter"`
	Signature   Patterns `yaml:"signature"`
	MatchPath   *bool    `yaml:"matchPath"`
	NoFuzz      *bool    `yaml:"noFuzz"`
	NoSuffix    *bool    `yaml:"noSuffix"`
}

// Match is either a single pattern or a list of variants.
type Match struct {
	Pattern  string
	Variants []Variant
}

// Variant is one `[pattern, colour?, overrides?]` entry of a match list.
type Variant struct {
	Pattern   string
	Colour    Colour
	Overrides *Overrides
}

// Patterns accepts a scalar or a list of pattern strings.
type Patterns []string

// Colour accepts a single colour token or a `[dark, light]` pair.
type Colour []string

// Parse decodes a YAML rule source.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode rule source: %w", err)
	}

	return cfg, nil
}

// UnmarshalYAML keeps the mapping order of rule groups.
func (g *Groups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rule groups must be a mapping", node.Line)
	}

	groups := make(Groups, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]

		var descriptors []Descriptor

		switch value.Kind {
		case yaml.MappingNode:
			var d Descriptor
			if err := value.Decode(&d); err != nil {
				return fmt.Errorf("rule group %q: %w", name, err)
			}

			descriptors = append(descriptors, d)
		case yaml.SequenceNode:
			if err := value.Decode(&descriptors); err != nil {
				return fmt.Errorf("rule group %q: %w", name, err)
			}
		default:
			return fmt.Errorf("rule group %q: line %d: expected a descriptor or a list of descriptors", name, value.Line)
		}

		groups = append(groups, Group{Name: name, Descriptors: descriptors})
	}

	*g = groups

	return nil
}

// UnmarshalYAML accepts a scalar pattern or a sequence of variants.
func (m *Match) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		m.Pattern = node.Value
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			v, err := decodeVariant(item)
			if err != nil {
				return err
			}

			m.Variants = append(m.Variants, v)
		}

		return nil
	default:
		return fmt.Errorf("line %d: match must be a pattern or a list of variants", node.Line)
	}
}

func decodeVariant(node *yaml.Node) (Variant, error) {
	if node.Kind == yaml.ScalarNode {
		return Variant{Pattern: node.Value}, nil
	}

	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return Variant{}, fmt.Errorf("line %d: variant must be a pattern or [pattern, colour, overrides]", node.Line)
	}

	v := Variant{Pattern: node.Content[0].Value}

	for _, field := range node.Content[1:] {
		switch field.Kind {
		case yaml.MappingNode:
			var o Overrides
			if err := field.Decode(&o); err != nil {
				return Variant{}, err
			}

			v.Overrides = &o
		default:
			var c Colour
			if err := field.Decode(&c); err != nil {
				return Variant{}, err
			}

			v.Colour = c
		}
	}

	return v, nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	list, err := scalarOrList(node)
	if err != nil {
		return err
	}

	*p = list

	return nil
}

// UnmarshalYAML accepts a colour token or a pair of tokens.
func (c *Colour) UnmarshalYAML(node *yaml.Node) error {
	list, err := scalarOrList(node)
	if err != nil {
		return err
	}

	if len(list) > 2 {
		return fmt.Errorf("line %d: colour takes at most two tokens", node.Line)
	}

	*c = list

	return nil
}

func scalarOrList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil, nil
		}

		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil, err
		}

		return list, nil
	default:
		return nil, fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}
