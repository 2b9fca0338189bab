package proxmox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ListContainers returns the LXC containers on the configured node,
// sorted ascending by vmid. Every call is a fresh pull - the client
// keeps no container state between calls.
//
// Running containers are enriched with their IP address as a best-effort
// step: an enrichment failure of any kind is logged and leaves the
// address absent for that container without failing the listing.
func (c *Client) ListContainers(ctx context.Context) ([]Container, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apiURL(fmt.Sprintf("/nodes/%s/lxc", c.cfg.Node)))
	if err != nil {
		return nil, newTransportError("fetch containers", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError("fetch containers", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError("fetch containers", resp.StatusCode, resp.Status)
	}

	var envelope apiResponse[[]lxcStatus]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, newDecodeError("parse container list", err)
	}

	containers := make([]Container, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		ct := normalizeContainer(raw)

		if ct.Status == StatusRunning {
			ip, err := c.containerIP(ctx, ct.VMID)
			if err != nil {
				// best effort: the failure is visible in the logs but never
				// fails the listing or drops the container
				c.logger.Debug().
					Uint32("vmid", ct.VMID).
					Err(err).
					Msg("could not determine container IP")
			} else {
				ct.IPAddress = &ip
			}
		}

		containers = append(containers, ct)
	}

	sort.Slice(containers, func(i, j int) bool {
		return containers[i].VMID < containers[j].VMID
	})

	return containers, nil
}

// normalizeContainer applies the defaults for fields the node omits:
// zero for the counters, cpus 1, and a synthesized "CT-<vmid>" name.
func normalizeContainer(raw lxcStatus) Container {
	name := fmt.Sprintf("CT-%d", raw.VMID)
	if raw.Name != nil {
		name = *raw.Name
	}

	cpus := uint32(1)
	if raw.CPUs != nil {
		cpus = *raw.CPUs
	}

	return Container{
		VMID:      raw.VMID,
		Name:      name,
		Status:    raw.Status,
		Uptime:    raw.Uptime,
		Memory:    raw.Mem,
		MaxMemory: raw.MaxMem,
		CPU:       raw.CPU,
		CPUs:      cpus,
		DiskRead:  raw.DiskRead,
		DiskWrite: raw.DiskWrite,
	}
}

// containerIP returns the address of the first interface (in response
// order) that is not the loopback alias and has an inet value, with the
// CIDR prefix length stripped.
func (c *Client) containerIP(ctx context.Context, vmid uint32) (string, error) {
	url := c.apiURL(fmt.Sprintf("/nodes/%s/lxc/%d/interfaces", c.cfg.Node, vmid))
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return "", newTransportError("fetch interfaces", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newTransportError("fetch interfaces", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newStatusError("fetch interfaces", resp.StatusCode, resp.Status)
	}

	var envelope apiResponse[[]networkInterface]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", newDecodeError("parse interfaces", err)
	}

	for _, iface := range envelope.Data {
		if iface.Name == "lo" || iface.Inet == nil {
			continue
		}
		ip, _, _ := strings.Cut(*iface.Inet, "/")
		return ip, nil
	}

	return "", errNoIPFound
}
