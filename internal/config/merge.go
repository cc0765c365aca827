package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlaySection returns a decoder that applies a YAML section on top of a
// copy of *dst. Keys the overlay omits keep the target's value, and *dst is
// only written when the whole section decodes.
func overlaySection[T any](dst *T) func(*yaml.Node) error {
	return func(node *yaml.Node) error {
		v := *dst
		if err := node.Decode(&v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// sectionDecoders maps each top-level YAML key to the Config field it updates.
func sectionDecoders(c *Config) map[string]func(*yaml.Node) error {
	return map[string]func(*yaml.Node) error{
		"output":   overlaySection(&c.Output),
		"logging":  overlaySection(&c.Logging),
		"store":    overlaySection(&c.Store),
		"defaults": overlaySection(&c.Defaults),
	}
}

// ShallowMergeYAML applies the top-level sections of the YAML file at
// overlayPath onto target. Keys set in an overlay section override the
// matching target fields; absent keys, absent sections and unknown
// sections are left alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	decoders := sectionDecoders(target)
	for key, node := range overlay {
		decode, ok := decoders[key]
		if !ok {
			continue
		}
		if err = decode(&node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}
