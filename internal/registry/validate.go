package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/respoolgo/internal/ctxlog"
)

// ValidateRegistry performs a strict parity check between category manifests
// and Go implementations. It checks both the presence of capability fields
// and the compatibility of their declared kinds and required flags.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for categoryType, def := range r.DefinitionRegistry {
		impl, ok := r.CategoryRegistry[categoryType]
		if !ok {
			errs = append(errs, fmt.Sprintf("category '%s': manifest exists, but no Go implementation is registered", categoryType))
			continue
		}

		goSchema := impl.CapabilitySchema()
		manifestSchema := def.Schema()

		// Check for presence mismatches in both directions.
		for _, goField := range goSchema {
			if _, ok := manifestSchema.Field(goField.Name); !ok {
				errs = append(errs, fmt.Sprintf("category '%s': Go schema declares capability '%s' which is not in the manifest", categoryType, goField.Name))
			}
		}
		for _, mField := range manifestSchema {
			goField, ok := goSchema.Field(mField.Name)
			if !ok {
				errs = append(errs, fmt.Sprintf("category '%s': manifest declares capability '%s' which is not in the Go schema", categoryType, mField.Name))
				continue
			}

			if mField.Kind != goField.Kind {
				errs = append(errs, fmt.Sprintf("category '%s', capability '%s': kind mismatch. Manifest declares '%s' but Go schema declares '%s'",
					categoryType, mField.Name, mField.Kind, goField.Kind))
			}
			if mField.Required != goField.Required {
				errs = append(errs, fmt.Sprintf("category '%s', capability '%s': required flag mismatch between manifest (%t) and Go schema (%t)",
					categoryType, mField.Name, mField.Required, goField.Required))
			}
		}
	}

	for name := range r.CategoryRegistry {
		if _, ok := r.DefinitionRegistry[name]; !ok {
			logger.Warn("Registered category has no manifest; it can only be used programmatically.", "category", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
