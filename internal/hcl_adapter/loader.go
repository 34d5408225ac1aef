package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/respoolgo/internal/config"
	"github.com/vk/respoolgo/internal/ctxlog"
	"github.com/vk/respoolgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes all possible top-level blocks from any file; manifests
// and pool declarations may be mixed freely across files.
type fileRoot struct {
	Categories []*categoryBlock `hcl:"category,block"`
	Instances  []*instanceBlock `hcl:"instance,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

// categoryBlock is the raw HCL shape of a category manifest.
type categoryBlock struct {
	Type         string             `hcl:"type,label"`
	Description  string             `hcl:"description,optional"`
	Capabilities []*capabilityBlock `hcl:"capability,block"`
}

// capabilityBlock declares one capability field inside a manifest.
type capabilityBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Required    bool           `hcl:"required,optional"`
}

// instanceBlock is the raw HCL shape of one pool instance declaration.
type instanceBlock struct {
	CategoryType string         `hcl:"category_type,label"`
	Name         string         `hcl:"instance_name,label"`
	Capabilities hcl.Expression `hcl:"capabilities,optional"`
}

// Load orchestrates the entire HCL loading process. It is agnostic to the
// origin of the paths and accepts any valid block from any file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{
		Categories: make(map[string]*config.CategoryDefinition),
		Pool:       &config.Pool{},
	}

	var hclFiles []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to discover HCL files under %s: %w", path, err)
		}
		hclFiles = append(hclFiles, found...)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Categories {
			def, err := l.translateCategory(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			if _, dup := model.Categories[def.Type]; dup {
				return nil, fmt.Errorf("in %s: duplicate category manifest '%s'", file, def.Type)
			}
			model.Categories[def.Type] = def
		}
		for _, block := range root.Instances {
			def, err := l.translateInstance(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Pool.Instances = append(model.Pool.Instances, def)
		}
		logger.Debug("Loaded definitions from HCL file.", "file", file)
	}

	logger.Info("Configuration loaded.",
		"categories", len(model.Categories),
		"instances", len(model.Pool.Instances))
	return model, nil
}
