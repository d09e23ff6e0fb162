package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/assureops/api/pkg/domain/attribution"
)

// attributionRulesFile is the on-disk shape of the attribution rules file.
type attributionRulesFile struct {
	Rules []attribution.Rule `yaml:"rules"`
}

// LoadAttributionRules reads the ordered rule list from a YAML file.
// An empty path yields an empty rule list, not an error.
func LoadAttributionRules(path string) ([]attribution.Rule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attribution rules: %w", err)
	}

	var file attributionRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse attribution rules: %w", err)
	}

	return file.Rules, nil
}
