package rules

import (
	_ "embed"
	"fmt"
)

//go:embed defaults/icons.yaml
var defaultSource []byte

// Default compiles the embedded icon database.
func Default() (*Table, error) {
	return LoadSource(defaultSource)
}

// LoadSource parses, compiles and indexes a YAML rule source.
func LoadSource(data []byte) (*Table, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	icons, err := Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	return Load(icons), nil
}
