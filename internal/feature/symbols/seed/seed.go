// Package seed loads the default symbol mapping table from YAML.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"crypto_dashboard/internal/feature/symbols/domain/entity"
)

//go:embed symbols.yaml
var defaultSymbols []byte

type file struct {
	Symbols []entity.Symbol `yaml:"symbols"`
}

// Load reads symbols from path, or from the embedded default table when path is empty.
func Load(path string) ([]entity.Symbol, error) {
	data := defaultSymbols
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read symbols file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a symbols YAML document and validates every row.
func Parse(data []byte) ([]entity.Symbol, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse symbols: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Symbols))
	for i := range f.Symbols {
		s := &f.Symbols[i]
		s.Ticker = strings.ToUpper(strings.TrimSpace(s.Ticker))
		if s.Ticker == "" {
			return nil, fmt.Errorf("symbols[%d]: ticker is required", i)
		}
		if _, dup := seen[s.Ticker]; dup {
			return nil, fmt.Errorf("symbols[%d]: duplicate ticker %q", i, s.Ticker)
		}
		seen[s.Ticker] = struct{}{}
		if s.Name == "" {
			s.Name = s.Ticker
		}
	}
	return f.Symbols, nil
}
