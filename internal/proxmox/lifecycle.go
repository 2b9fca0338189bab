package proxmox

import (
	"context"
	"fmt"
	"net/http"
)

// Proxmox runs lifecycle commands asynchronously: a success return from
// these methods means the node accepted the request, not that the
// container reached the target state. Response bodies are not inspected,
// only the HTTP status.

// StartContainer asks the node to start the container identified by vmid.
func (c *Client) StartContainer(ctx context.Context, vmid uint32) (string, error) {
	path := fmt.Sprintf("/nodes/%s/lxc/%d/status/start", c.cfg.Node, vmid)
	if err := c.execute(ctx, http.MethodPost, path, "start container"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Container %d started successfully", vmid), nil
}

// StopContainer asks the node to stop the container identified by vmid.
func (c *Client) StopContainer(ctx context.Context, vmid uint32) (string, error) {
	path := fmt.Sprintf("/nodes/%s/lxc/%d/status/stop", c.cfg.Node, vmid)
	if err := c.execute(ctx, http.MethodPost, path, "stop container"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Container %d stopped successfully", vmid), nil
}

// DeleteContainer asks the node to delete the container identified by vmid.
func (c *Client) DeleteContainer(ctx context.Context, vmid uint32) (string, error) {
	path := fmt.Sprintf("/nodes/%s/lxc/%d", c.cfg.Node, vmid)
	if err := c.execute(ctx, http.MethodDelete, path, "delete container"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Container %d deleted successfully", vmid), nil
}

// execute issues a single body-less request and checks the status code.
func (c *Client) execute(ctx context.Context, method, path, action string) error {
	req, err := c.newRequest(ctx, method, c.apiURL(path))
	if err != nil {
		return newTransportError(action, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(action, resp.StatusCode, resp.Status)
	}

	return nil
}
