// Package app wires the application together: configuration, logging, the
// category registry, the resource manager, pool provisioning, and the
// optional HTTP status server.
package app
