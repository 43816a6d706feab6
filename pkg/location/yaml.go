package location

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agroscore/pkg/recommend/types"
)

// tableFile is the on-disk layout of a location table:
//
//	default:
//	  region: General
//	entries:
//	  - pattern: nashik
//	    profile:
//	      region: Nashik
//	      preferred: [{crop: onion, priority: 1}]
type tableFile struct {
	Default types.LocationProfile `yaml:"default"`
	Entries []struct {
		Pattern string                `yaml:"pattern"`
		Profile types.LocationProfile `yaml:"profile"`
	} `yaml:"entries"`
}

// LoadYAML builds a resolver from a YAML table. Entry order in the file is
// the match order.
func LoadYAML(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	entries := make([]Entry, 0, len(tf.Entries))
	for _, e := range tf.Entries {
		entries = append(entries, Entry{Pattern: e.Pattern, Profile: e.Profile})
	}
	if tf.Default.Region == "" {
		tf.Default = DefaultProfile
	}
	return NewResolver(entries, tf.Default)
}
