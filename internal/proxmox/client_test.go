package proxmox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pvedash/pvedash/internal/apperrors"
)

// testClient builds a client pointed at a TLS test server. The test
// server uses a self-signed certificate, which also exercises the
// insecure-verify transport the client ships with.
func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	ts := httptest.NewTLSServer(handler)
	t.Cleanup(ts.Close)

	nop := zerolog.Nop()
	c, err := New(Config{
		Host:        strings.TrimPrefix(ts.URL, "https://"),
		Node:        "pve1",
		TokenID:     "dash@pve!ui",
		TokenSecret: "s3cret",
	}, &nop)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	full := Config{
		Host:        "10.0.0.1:8006",
		Node:        "pve1",
		TokenID:     "dash@pve!ui",
		TokenSecret: "s3cret",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantVar string
	}{
		{"all settings present", func(c *Config) {}, ""},
		{"missing host", func(c *Config) { c.Host = "" }, "PROXMOX_HOST"},
		{"missing node", func(c *Config) { c.Node = "" }, "PROXMOX_NODE"},
		{"missing token id", func(c *Config) { c.TokenID = "" }, "PROXMOX_TOKEN_ID"},
		{"missing token secret", func(c *Config) { c.TokenSecret = "" }, "PROXMOX_TOKEN_SECRET"},
	}

	nop := zerolog.Nop()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mutate(&cfg)

			client, err := New(cfg, &nop)

			if tt.wantVar == "" {
				if err != nil {
					t.Fatalf("New() failed: %v", err)
				}
				if client == nil {
					t.Fatal("New() returned nil client")
				}
				return
			}

			if err == nil {
				t.Fatal("New() succeeded, want missing credential error")
			}
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("New() error is %T, want *APIError", err)
			}
			if apiErr.Code != apperrors.ErrCodeMissingCredential {
				t.Errorf("error code = %q, want %q", apiErr.Code, apperrors.ErrCodeMissingCredential)
			}
			if !strings.Contains(apiErr.Message, tt.wantVar) {
				t.Errorf("error message %q does not name %s", apiErr.Message, tt.wantVar)
			}
		})
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))

	if _, err := c.ListContainers(context.Background()); err != nil {
		t.Fatalf("ListContainers() failed: %v", err)
	}

	want := "PVEAPIToken=dash@pve!ui=s3cret"
	if gotAuth != want {
		t.Errorf("Authorization header = %q, want %q", gotAuth, want)
	}
}
