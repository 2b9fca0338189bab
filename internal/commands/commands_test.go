package commands

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pvedash/pvedash/internal/proxmox"
)

// spyAPI records every call so tests can assert whether the façade
// reached for the client at all.
type spyAPI struct {
	mu    sync.Mutex
	calls []string

	containers []proxmox.Container
	msg        string
	err        error
}

func (s *spyAPI) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *spyAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *spyAPI) ListContainers(ctx context.Context) ([]proxmox.Container, error) {
	s.record("list")
	return s.containers, s.err
}

func (s *spyAPI) StartContainer(ctx context.Context, vmid uint32) (string, error) {
	s.record("start")
	return s.msg, s.err
}

func (s *spyAPI) StopContainer(ctx context.Context, vmid uint32) (string, error) {
	s.record("stop")
	return s.msg, s.err
}

func (s *spyAPI) DeleteContainer(ctx context.Context, vmid uint32) (string, error) {
	s.record("delete")
	return s.msg, s.err
}

func TestNotInitialized(t *testing.T) {
	// the façade was built without a client; every delegate must fail
	// fast without touching the network
	cmds := New(nil, ConfigInfo{Host: "10.0.0.1:8006", Node: "pve1"})

	ops := map[string]func() error{
		"GetContainers":   func() error { _, err := cmds.GetContainers(context.Background()); return err },
		"StartContainer":  func() error { _, err := cmds.StartContainer(context.Background(), 101); return err },
		"StopContainer":   func() error { _, err := cmds.StopContainer(context.Background(), 101); return err },
		"DeleteContainer": func() error { _, err := cmds.DeleteContainer(context.Background(), 101); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			if !errors.Is(err, ErrNotInitialized) {
				t.Errorf("%s error = %v, want ErrNotInitialized", name, err)
			}
		})
	}
}

func TestNotInitializedIssuesNoNetworkCalls(t *testing.T) {
	// rebuild the startup failure path: client construction fails on a
	// missing credential, the façade gets nil, and a listening server
	// records that no request ever arrives
	var requests atomic.Int32
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer ts.Close()

	var api ContainerAPI
	client, err := proxmox.New(proxmox.Config{
		Host: strings.TrimPrefix(ts.URL, "https://"),
		Node: "pve1",
		// token id and secret missing
	}, nil)
	if err == nil {
		t.Fatal("proxmox.New() succeeded without credentials")
	}
	if client != nil {
		api = client
	}

	cmds := New(api, ConfigInfo{})

	if _, err := cmds.GetContainers(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("GetContainers() error = %v, want ErrNotInitialized", err)
	}
	if _, err := cmds.StartContainer(context.Background(), 101); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("StartContainer() error = %v, want ErrNotInitialized", err)
	}

	if got := requests.Load(); got != 0 {
		t.Errorf("node received %d requests, want 0", got)
	}
}

func TestGetConfigWithoutClient(t *testing.T) {
	// the display snapshot is informational and must work even when the
	// client never initialized
	info := ConfigInfo{Host: "10.0.0.1:8006", Node: "pve1"}
	cmds := New(nil, info)

	if got := cmds.GetConfig(); got != info {
		t.Errorf("GetConfig() = %+v, want %+v", got, info)
	}
}

func TestDelegation(t *testing.T) {
	ip := "10.0.0.5"
	spy := &spyAPI{
		containers: []proxmox.Container{
			{VMID: 101, Name: "CT-101", Status: "running", IPAddress: &ip},
		},
		msg: "Container 101 started successfully",
	}
	cmds := New(spy, ConfigInfo{Host: "10.0.0.1:8006", Node: "pve1"})

	containers, err := cmds.GetContainers(context.Background())
	if err != nil {
		t.Fatalf("GetContainers() failed: %v", err)
	}
	if len(containers) != 1 || containers[0].VMID != 101 {
		t.Errorf("GetContainers() = %+v, want the spy's container", containers)
	}

	msg, err := cmds.StartContainer(context.Background(), 101)
	if err != nil {
		t.Fatalf("StartContainer() failed: %v", err)
	}
	if msg != "Container 101 started successfully" {
		t.Errorf("StartContainer() = %q", msg)
	}

	if spy.callCount() != 2 {
		t.Errorf("client called %d times, want 2", spy.callCount())
	}
}

func TestErrorPassthrough(t *testing.T) {
	spy := &spyAPI{err: &proxmox.APIError{Message: "failed to stop container: 500 Internal Server Error"}}
	cmds := New(spy, ConfigInfo{})

	_, err := cmds.StopContainer(context.Background(), 101)
	if err == nil {
		t.Fatal("StopContainer() succeeded, want the client's error")
	}
	if err.Error() != "failed to stop container: 500 Internal Server Error" {
		t.Errorf("error = %q, want the client's message verbatim", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	// the handle copy is the only critical section; concurrent calls must
	// not corrupt the façade (run with -race)
	spy := &spyAPI{msg: "ok"}
	cmds := New(spy, ConfigInfo{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cmds.GetContainers(context.Background())
			_, _ = cmds.StartContainer(context.Background(), 101)
		}()
	}
	wg.Wait()

	if spy.callCount() != 32 {
		t.Errorf("client called %d times, want 32", spy.callCount())
	}
}
