package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/respoolgo/internal/config"
	"github.com/vk/respoolgo/internal/resource"
)

// Module is the interface that all core modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered category implementations and manifest
// definitions for a single application instance.
type Registry struct {
	CategoryRegistry   map[string]resource.Type
	DefinitionRegistry map[string]*config.CategoryDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		CategoryRegistry:   make(map[string]resource.Type),
		DefinitionRegistry: make(map[string]*config.CategoryDefinition),
	}
}

// RegisterCategory registers a Go category implementation under its own
// name.
func (r *Registry) RegisterCategory(t resource.Type) {
	if _, exists := r.CategoryRegistry[t.Name()]; exists {
		panic(fmt.Sprintf("resource category with name '%s' already registered", t.Name()))
	}
	slog.Debug("Registering resource category.", "name", t.Name())
	r.CategoryRegistry[t.Name()] = t
}

// Category looks a registered category up by name.
func (r *Registry) Category(name string) (resource.Type, bool) {
	t, ok := r.CategoryRegistry[name]
	return t, ok
}

// CategoryNames returns the sorted names of all registered categories.
func (r *Registry) CategoryNames() []string {
	names := make([]string, 0, len(r.CategoryRegistry))
	for name := range r.CategoryRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PopulateDefinitionsFromModel copies the loaded manifest definitions from
// the config model into the registry for easy access during validation.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Categories {
		r.DefinitionRegistry[key] = val
	}
}

// BuildManager creates a resource manager with every registered category
// already in its type registry.
func (r *Registry) BuildManager() *resource.Manager {
	mgr := resource.NewManager()
	for _, name := range r.CategoryNames() {
		mgr.RegisterResourceType(r.CategoryRegistry[name])
	}
	return mgr
}
