// Package socketio_channel implements the "socketio_channel" resource
// category: each instance wraps a live, connected socket.io client. The
// connection is fundamentally uncopyable, so capability values are exposed
// as a live view and instances are snapshotted through recipes carrying only
// the connection parameters.
package socketio_channel

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/respoolgo/internal/capability"
	"github.com/vk/respoolgo/internal/ctxlog"
	"github.com/vk/respoolgo/internal/registry"
	"github.com/vk/respoolgo/internal/resource"
)

// connectTimeout bounds how long CreateInstance waits for the handshake.
const connectTimeout = 15 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the category with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCategory(New())
}

// Category is the socketio_channel category descriptor and factory.
type Category struct {
	resource.NoCustomRequirements
}

// New creates the category.
func New() *Category {
	return &Category{}
}

func (c *Category) Name() string { return "socketio_channel" }

func (c *Category) CapabilitySchema() capability.Schema {
	return capability.Schema{
		{Name: "url", Kind: capability.KindString, Description: "socket.io endpoint URL.", Required: true},
		{Name: "namespace", Kind: capability.KindString, Description: "Namespace to join."},
		{Name: "insecure_skip_verify", Kind: capability.KindBool, Description: "Skip TLS certificate verification."},
	}
}

// CreateInstance validates the capabilities, then dials the endpoint and
// waits for the handshake. It is the one category factory in this repo that
// talks to the network.
func (c *Category) CreateInstance(ctx context.Context, caps map[string]any) (resource.Instance, error) {
	if err := resource.ValidateCapabilities(c.Name(), c.CapabilitySchema(), caps); err != nil {
		return nil, err
	}

	rawURL := caps["url"].(string)
	logger := ctxlog.FromContext(ctx).With("category", c.Name(), "url", rawURL)
	logger.Info("Connecting new socket.io channel...")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if skip, ok := caps["insecure_skip_verify"].(bool); ok && skip {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	namespace, _ := caps["namespace"].(string)
	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- errs[0].(error)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}

	return &ChannelInstance{
		Base:   resource.NewBase(c, caps, resource.LiveCapabilities),
		socket: io,
	}, nil
}

// SelectBestCompatibleInstance is first-fit; channels to the same endpoint
// are interchangeable.
func (c *Category) SelectBestCompatibleInstance(candidates []resource.Instance, reqs resource.Requirements) resource.Instance {
	return resource.FirstFit(candidates, reqs)
}

// SerializeInstanceToRecipe snapshots the connection parameters. The live
// socket never crosses the wire; deserialization reconnects instead.
func (c *Category) SerializeInstanceToRecipe(inst resource.Instance) (*resource.Recipe, error) {
	ci, ok := inst.(*ChannelInstance)
	if !ok {
		return nil, &resource.TypeMismatchError{
			Msg: "instance '" + inst.ID() + "' is not a socketio_channel instance",
		}
	}
	return resource.NewRecipe(c.Name(), ci.Capabilities()), nil
}

// DeserializeInstanceFromRecipe re-dials the endpoint described by the
// recipe, delegating to CreateInstance so validation applies uniformly.
func (c *Category) DeserializeInstanceFromRecipe(ctx context.Context, r *resource.Recipe) (resource.Instance, error) {
	if err := r.CheckTypeName(c); err != nil {
		return nil, err
	}
	return c.CreateInstance(ctx, r.Capabilities)
}

// ChannelInstance is one live socket.io connection.
type ChannelInstance struct {
	*resource.Base
	socket *socket.Socket
}

// Socket returns the live connected socket.
func (i *ChannelInstance) Socket() *socket.Socket { return i.socket }

// CanBeReclaimed reports whether the channel is unheld or has lost its
// connection.
func (i *ChannelInstance) CanBeReclaimed() bool {
	if i.socket != nil && !i.socket.Connected() {
		return true
	}
	_, locked := i.LockOwner()
	return !locked
}

// Cleanup disconnects the channel.
func (i *ChannelInstance) Cleanup() error {
	if i.socket == nil {
		return nil
	}
	slog.Info("Disconnecting socket.io channel", "sid", i.socket.Id())
	i.socket.Disconnect()
	i.socket = nil
	return nil
}
