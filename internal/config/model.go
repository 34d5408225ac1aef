package config

import "github.com/vk/respoolgo/internal/capability"

// Model is the unified representation of the entire loaded configuration.
type Model struct {
	Categories map[string]*CategoryDefinition
	Pool       *Pool
}

// CategoryDefinition is the manifest-declared half of a resource category:
// the capability schema the paired Go implementation must agree with.
type CategoryDefinition struct {
	Type         string
	Description  string
	Capabilities []*CapabilityDefinition
}

// Schema renders the manifest fields as a capability.Schema, preserving
// declaration order.
func (d *CategoryDefinition) Schema() capability.Schema {
	s := make(capability.Schema, 0, len(d.Capabilities))
	for _, c := range d.Capabilities {
		s = append(s, capability.Field{
			Name:        c.Name,
			Kind:        c.Kind,
			Description: c.Description,
			Required:    c.Required,
		})
	}
	return s
}

// CapabilityDefinition declares one capability field in a manifest.
type CapabilityDefinition struct {
	Name        string
	Kind        capability.Kind
	Description string
	Required    bool
}

// Pool is the user's declaration of instances to provision at startup.
type Pool struct {
	Instances []*InstanceDefinition
}

// InstanceDefinition declares one instance: its category, a human-readable
// name for logs, and native capability values.
type InstanceDefinition struct {
	CategoryType string
	Name         string
	Capabilities map[string]any
}
