package config

import "gopkg.in/yaml.v3"

// File represents the structure of the experiment.yaml config file.
// Params stays a yaml.Node so the declaration order of parameters is
// preserved when building the config record.
type File struct {
	Version string    `yaml:"version"`
	Name    string    `yaml:"name"`
	Params  yaml.Node `yaml:"params"`
	Reuse   string    `yaml:"reuse"`
	Result  string    `yaml:"result"`
}
