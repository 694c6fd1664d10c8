// Package config loads the optional .wisprc.yaml file that overrides the
// VM's default resource limits (spec §5's resource discipline names fixed
// defaults; this file lets a host driver raise or lower them without a
// rebuild).
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mna/wisp/lang/machine"
)

// File is the on-disk shape of .wisprc.yaml. Zero values mean "use the
// built-in default" for every field.
type File struct {
	StackSlots int `yaml:"stack_slots"`
	Frames     int `yaml:"frames"`
}

// Load reads path and merges it over machine.DefaultLimits. A missing file
// is not an error: it just means every default applies.
func Load(path string) (machine.Limits, error) {
	limits := machine.DefaultLimits()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return limits, nil
		}
		return limits, err
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return limits, err
	}
	if f.StackSlots > 0 {
		limits.StackSlots = f.StackSlots
	}
	if f.Frames > 0 {
		limits.Frames = f.Frames
	}
	return limits, nil
}
