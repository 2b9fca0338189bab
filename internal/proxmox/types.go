package proxmox

// StatusRunning is the status string Proxmox reports for a started container.
const StatusRunning = "running"

// Container is the normalized view of an LXC container returned to callers.
type Container struct {
	VMID      uint32  `json:"vmid"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Uptime    uint64  `json:"uptime"`
	Memory    uint64  `json:"memory"`
	MaxMemory uint64  `json:"max_memory"`
	CPU       float64 `json:"cpu"`
	CPUs      uint32  `json:"cpus"`
	DiskRead  uint64  `json:"disk_read"`
	DiskWrite uint64  `json:"disk_write"`
	IPAddress *string `json:"ip_address,omitempty"`
}

// apiResponse wraps the Proxmox API JSON envelope.
type apiResponse[T any] struct {
	Data T `json:"data"`
}

// lxcStatus is the raw record returned by GET /nodes/{node}/lxc.
// Everything except vmid and status is optional on the wire; pointer
// fields are the ones whose default is not the zero value.
type lxcStatus struct {
	VMID      uint32  `json:"vmid"`
	Name      *string `json:"name"`
	Status    string  `json:"status"`
	Uptime    uint64  `json:"uptime"`
	Mem       uint64  `json:"mem"`
	MaxMem    uint64  `json:"maxmem"`
	CPU       float64 `json:"cpu"`
	CPUs      *uint32 `json:"cpus"`
	DiskRead  uint64  `json:"diskread"`
	DiskWrite uint64  `json:"diskwrite"`
}

// networkInterface is one entry from GET /nodes/{node}/lxc/{vmid}/interfaces.
type networkInterface struct {
	Name string  `json:"name"`
	Inet *string `json:"inet"` // IPv4 address with CIDR suffix, e.g. "10.0.0.5/24"
}
