package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/respoolgo/internal/capability"
	"github.com/vk/respoolgo/internal/config"
	"github.com/vk/respoolgo/internal/ctxlog"
)

// translateCategory converts a raw category block into the model form.
func (l *Loader) translateCategory(ctx context.Context, block *categoryBlock) (*config.CategoryDefinition, error) {
	def := &config.CategoryDefinition{
		Type:        block.Type,
		Description: block.Description,
	}
	for _, cap := range block.Capabilities {
		kind, err := typeExprToKind(ctx, cap.Type)
		if err != nil {
			return nil, fmt.Errorf("category '%s', capability '%s': %w", block.Type, cap.Name, err)
		}
		def.Capabilities = append(def.Capabilities, &config.CapabilityDefinition{
			Name:        cap.Name,
			Kind:        kind,
			Description: cap.Description,
			Required:    cap.Required,
		})
	}
	return def, nil
}

// translateInstance converts a raw instance block into the model form,
// evaluating the capabilities expression down to native Go values.
func (l *Loader) translateInstance(ctx context.Context, block *instanceBlock) (*config.InstanceDefinition, error) {
	def := &config.InstanceDefinition{
		CategoryType: block.CategoryType,
		Name:         block.Name,
		Capabilities: map[string]any{},
	}

	if block.Capabilities == nil {
		return def, nil
	}

	val, diags := block.Capabilities.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("instance '%s.%s': failed to evaluate capabilities: %w",
			block.CategoryType, block.Name, diags)
	}
	if val.IsNull() {
		return def, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("instance '%s.%s': capabilities must be an object, got %s",
			block.CategoryType, block.Name, val.Type().FriendlyName())
	}

	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("instance '%s.%s': %w", block.CategoryType, block.Name, err)
	}
	def.Capabilities = native.(map[string]any)
	return def, nil
}

// typeExprToKind converts an HCL capability type expression (a bare keyword
// such as `number`) into a schema kind. A nil expression defaults to any.
func typeExprToKind(ctx context.Context, expr hcl.Expression) (capability.Kind, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return capability.KindAny, nil
	}

	traversal, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(traversal.Traversal) != 1 {
		return "", fmt.Errorf("type must be a bare keyword like string, number, bool, list, map, or any")
	}

	return capability.ParseKind(traversal.Traversal.RootName())
}
