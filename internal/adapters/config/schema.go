package config

import "gopkg.in/yaml.v3"

// Planfile represents the structure of the saga.yaml pipeline file.
type Planfile struct {
	Version string     `yaml:"version"`
	SagaCmd string     `yaml:"saga_cmd"`
	Flag    string     `yaml:"flag"`
	Steps   []*StepDTO `yaml:"steps"`
}

// StepDTO represents one step definition in the pipeline file. Params is
// kept as a raw node so the file's key order survives decoding; Extra holds
// additional -NAME=value tokens in shell syntax.
type StepDTO struct {
	Name    string    `yaml:"name"`
	Library string    `yaml:"library"`
	Tool    string    `yaml:"tool"`
	Params  yaml.Node `yaml:"params"`
	Extra   string    `yaml:"extra"`
}
