package cluster

import (
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(filepath string) (*Config, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// Unmarshal parses YAML into Config.
//
// Fields not given in the YAML keep the Default() value,
// so a partial config file names only what it changes.
func Unmarshal(conf []byte) (*Config, error) {
	out := Default()
	if err := yaml.Unmarshal(conf, out); err != nil {
		return nil, err
	}
	return out, nil
}
