package app

import (
	"github.com/vk/respoolgo/internal/registry"
	"github.com/vk/respoolgo/modules/gate"
	"github.com/vk/respoolgo/modules/httpsession"
	"github.com/vk/respoolgo/modules/slot"
	"github.com/vk/respoolgo/modules/socketio_channel"
)

// coreModules is the default set of resource categories registered when the
// caller does not supply its own.
var coreModules = []registry.Module{
	&gate.Module{},
	&httpsession.Module{},
	&slot.Module{},
	&socketio_channel.Module{},
}
