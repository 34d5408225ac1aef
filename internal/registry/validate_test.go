package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/respoolgo/internal/capability"
	"github.com/vk/respoolgo/internal/config"
	"github.com/vk/respoolgo/internal/registry"
	"github.com/vk/respoolgo/internal/resource"
	"github.com/vk/respoolgo/modules/slot"
)

func slotManifest() *config.CategoryDefinition {
	return &config.CategoryDefinition{
		Type: "slot",
		Capabilities: []*config.CapabilityDefinition{
			{Name: "capacity", Kind: capability.KindNumber, Required: true},
			{Name: "pool", Kind: capability.KindString},
			{Name: "tags", Kind: capability.KindList},
		},
	}
}

func TestValidateRegistry_Parity(t *testing.T) {
	r := registry.New()
	r.RegisterCategory(slot.New())
	r.DefinitionRegistry["slot"] = slotManifest()

	require.NoError(t, r.ValidateRegistry(context.Background()))
}

func TestValidateRegistry_MissingImplementation(t *testing.T) {
	r := registry.New()
	r.DefinitionRegistry["slot"] = slotManifest()

	err := r.ValidateRegistry(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go implementation is registered")
}

func TestValidateRegistry_AggregatesSchemaDrift(t *testing.T) {
	r := registry.New()
	r.RegisterCategory(slot.New())
	r.DefinitionRegistry["slot"] = &config.CategoryDefinition{
		Type: "slot",
		Capabilities: []*config.CapabilityDefinition{
			{Name: "capacity", Kind: capability.KindString, Required: false},
			{Name: "rack", Kind: capability.KindString},
		},
	}

	err := r.ValidateRegistry(context.Background())
	require.Error(t, err)
	// kind mismatch + required mismatch + manifest-only field + two
	// Go-only fields, all in one report.
	assert.Contains(t, err.Error(), "kind mismatch")
	assert.Contains(t, err.Error(), "required flag mismatch")
	assert.Contains(t, err.Error(), "capability 'rack' which is not in the Go schema")
	assert.Contains(t, err.Error(), "capability 'pool' which is not in the manifest")
	assert.Contains(t, err.Error(), "capability 'tags' which is not in the manifest")
}

func TestRegisterCategory_DuplicatePanics(t *testing.T) {
	r := registry.New()
	r.RegisterCategory(slot.New())

	assert.Panics(t, func() { r.RegisterCategory(slot.New()) })
}

func TestBuildManager(t *testing.T) {
	r := registry.New()
	r.RegisterCategory(slot.New())

	mgr := r.BuildManager()
	assert.Equal(t, []string{"slot"}, mgr.RegisteredResourceTypes())

	var _ *resource.Manager = mgr
}
