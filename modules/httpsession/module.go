// Package httpsession implements the "http_session" resource category: a
// pooled, reusable HTTP client session. The live client object cannot be
// serialized by general means, so the category opts into recipe support and
// rebuilds a behaviorally-equivalent client from capability data instead.
package httpsession

import (
	"context"
	"crypto/tls"
	"time"

	"resty.dev/v3"

	"github.com/vk/respoolgo/internal/capability"
	"github.com/vk/respoolgo/internal/registry"
	"github.com/vk/respoolgo/internal/resource"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the category with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCategory(New())
}

// Category is the http_session category descriptor and factory.
type Category struct {
	resource.NoCustomRequirements
}

// New creates the category.
func New() *Category {
	return &Category{}
}

func (c *Category) Name() string { return "http_session" }

func (c *Category) CapabilitySchema() capability.Schema {
	return capability.Schema{
		{Name: "base_url", Kind: capability.KindString, Description: "Base URL every request on this session is resolved against.", Required: true},
		{Name: "timeout_ms", Kind: capability.KindNumber, Description: "Per-request timeout in milliseconds."},
		{Name: "insecure_skip_verify", Kind: capability.KindBool, Description: "Skip TLS certificate verification."},
	}
}

// CreateInstance validates the capabilities and builds a configured client.
// No connection is opened here; the client dials lazily on first use.
func (c *Category) CreateInstance(_ context.Context, caps map[string]any) (resource.Instance, error) {
	if err := resource.ValidateCapabilities(c.Name(), c.CapabilitySchema(), caps); err != nil {
		return nil, err
	}

	client := resty.New().SetBaseURL(caps["base_url"].(string))
	if ms, ok := capability.AsNumber(caps["timeout_ms"]); ok {
		client.SetTimeout(time.Duration(ms) * time.Millisecond)
	}
	if skip, ok := caps["insecure_skip_verify"].(bool); ok && skip {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &SessionInstance{
		Base:   resource.NewBase(c, caps, resource.CopyCapabilities),
		client: client,
	}, nil
}

// SelectBestCompatibleInstance is first-fit; sessions against the same base
// URL are interchangeable.
func (c *Category) SelectBestCompatibleInstance(candidates []resource.Instance, reqs resource.Requirements) resource.Instance {
	return resource.FirstFit(candidates, reqs)
}

// SerializeInstanceToRecipe snapshots the capability data the client was
// built from. The client itself never crosses the wire.
func (c *Category) SerializeInstanceToRecipe(inst resource.Instance) (*resource.Recipe, error) {
	si, ok := inst.(*SessionInstance)
	if !ok {
		return nil, &resource.TypeMismatchError{
			Msg: "instance '" + inst.ID() + "' is not an http_session instance",
		}
	}
	return resource.NewRecipe(c.Name(), si.Capabilities()), nil
}

// DeserializeInstanceFromRecipe rebuilds an equivalent session, delegating
// to CreateInstance so schema validation and client construction run again.
func (c *Category) DeserializeInstanceFromRecipe(ctx context.Context, r *resource.Recipe) (resource.Instance, error) {
	if err := r.CheckTypeName(c); err != nil {
		return nil, err
	}
	return c.CreateInstance(ctx, r.Capabilities)
}

// SessionInstance is one pooled HTTP session.
type SessionInstance struct {
	*resource.Base
	client *resty.Client
}

// Client returns the live HTTP client bound to this session.
func (i *SessionInstance) Client() *resty.Client { return i.client }

// CanBeReclaimed reports whether no owner holds the session.
func (i *SessionInstance) CanBeReclaimed() bool {
	_, locked := i.LockOwner()
	return !locked
}

// Cleanup closes the client and its idle connections.
func (i *SessionInstance) Cleanup() error {
	if i.client == nil {
		return nil
	}
	err := i.client.Close()
	i.client = nil
	return err
}
