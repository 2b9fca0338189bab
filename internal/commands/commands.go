// Package commands is the surface the dashboard frontend drives: a thin
// façade over the Proxmox client holding at most one initialized client
// instance plus a static configuration snapshot for display.
package commands

import (
	"context"
	"sync"

	"github.com/pvedash/pvedash/internal/apperrors"
	"github.com/pvedash/pvedash/internal/proxmox"
)

// ContainerAPI is the slice of the Proxmox client the façade uses.
// Injecting it (rather than the concrete client) keeps the façade
// testable without a live node.
type ContainerAPI interface {
	ListContainers(ctx context.Context) ([]proxmox.Container, error)
	StartContainer(ctx context.Context, vmid uint32) (string, error)
	StopContainer(ctx context.Context, vmid uint32) (string, error)
	DeleteContainer(ctx context.Context, vmid uint32) (string, error)
}

// ConfigInfo is the display snapshot handed to the frontend. Informational
// only - it is not re-validated against the live client.
type ConfigInfo struct {
	Host string `json:"host"`
	Node string `json:"node"`
}

// ErrNotInitialized is returned by every delegate when client
// construction failed at startup. No I/O is attempted in that state.
var ErrNotInitialized = &proxmox.APIError{
	Code:    apperrors.ErrCodeNotInitialized,
	Message: "Proxmox client not initialized",
}

// Commands holds the optional client handle behind a mutex. The client
// slot is the only shared mutable state in the process.
type Commands struct {
	mu     sync.Mutex
	client ContainerAPI // nil when initialization failed
	info   ConfigInfo
}

// New builds the façade. client may be nil if construction of the
// Proxmox client failed; the façade then serves ErrNotInitialized
// instead of crashing.
func New(client ContainerAPI, info ConfigInfo) *Commands {
	return &Commands{
		client: client,
		info:   info,
	}
}

// acquire copies the client handle under the lock and releases it before
// the caller performs any network call. The lock must never be held
// across I/O - concurrent container operations would otherwise serialize
// behind network latency.
func (c *Commands) acquire() (ContainerAPI, error) {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return nil, ErrNotInitialized
	}
	return client, nil
}

// GetConfig returns the display snapshot. Always succeeds; no I/O.
func (c *Commands) GetConfig() ConfigInfo {
	return c.info
}

// GetContainers lists the node's containers via the client.
func (c *Commands) GetContainers(ctx context.Context) ([]proxmox.Container, error) {
	client, err := c.acquire()
	if err != nil {
		return nil, err
	}
	return client.ListContainers(ctx)
}

// StartContainer starts the container identified by vmid.
func (c *Commands) StartContainer(ctx context.Context, vmid uint32) (string, error) {
	client, err := c.acquire()
	if err != nil {
		return "", err
	}
	return client.StartContainer(ctx, vmid)
}

// StopContainer stops the container identified by vmid.
func (c *Commands) StopContainer(ctx context.Context, vmid uint32) (string, error) {
	client, err := c.acquire()
	if err != nil {
		return "", err
	}
	return client.StopContainer(ctx, vmid)
}

// DeleteContainer deletes the container identified by vmid.
func (c *Commands) DeleteContainer(ctx context.Context, vmid uint32) (string, error) {
	client, err := c.acquire()
	if err != nil {
		return "", err
	}
	return client.DeleteContainer(ctx, vmid)
}
