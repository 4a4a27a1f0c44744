package consul

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
)

// ConsulBackend provides a simple object storage backend using HashiCorp Consul KV store.
//
// Architecture:
// - Files are stored directly in Consul KV with their key as the path
// - Directories are folder keys ending with "/", so empty directories survive
// - The modification time is kept in the KV flags
//
// Limitations:
// - Consul KV has a 512KB limit per value
// - Best suited for thumbnails and small captures
type ConsulBackend struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	// Configuration
	config *ConsulBackendConfig
}

// ConsulBackendConfig contains configuration options for the Consul backend
type ConsulBackendConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string `toml:"address"`

	// Token for Consul ACL authentication (optional)
	Token string `toml:"token"`

	// Datacenter to use (optional)
	Datacenter string `toml:"datacenter"`

	// Namespace for Consul Enterprise (optional)
	Namespace string `toml:"namespace"`

	// Prefix for all keys in Consul KV (default: "photofs")
	Prefix string `toml:"prefix"`
}

// NewConsulBackend creates a new Consul-backed object storage backend
func NewConsulBackend(config *ConsulBackendConfig) (*ConsulBackend, error) {
	if config == nil {
		config = &ConsulBackendConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "photofs"
	}

	// Create Consul client
	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulBackend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulBackend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when a root is selected.
func (cb *ConsulBackend) Open(ctx context.Context) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if _, err := cb.client.Status().Leader(); err != nil {
		return fmt.Errorf("%w: %v", data.ErrMountFailed, err)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when the root is released.
func (cb *ConsulBackend) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend
func (cb *ConsulBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityObjectStorage,
			backend.CapabilityPersistent,
			backend.CapabilityExclusiveCreate,
		},
		// Consul KV has a default limit of 512KB per value
		MaxObjectSize: 512 * 1024,
	}
}

// basePrefix returns the KV prefix of the root directory, always ending with "/"
// unless the backend is mounted at the top of the KV store.
func (cb *ConsulBackend) basePrefix() string {
	prefix := strings.Trim(cb.config.Prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// fileKey constructs the full Consul KV key of a file
func (cb *ConsulBackend) fileKey(key string) string {
	return cb.basePrefix() + key
}

// dirKey constructs the full Consul KV folder key of a directory
func (cb *ConsulBackend) dirKey(key string) string {
	if key == "" {
		return cb.basePrefix()
	}
	return cb.basePrefix() + key + "/"
}

// relativeKey strips the base prefix and any folder suffix from a KV key.
func (cb *ConsulBackend) relativeKey(consulKey string) string {
	return strings.TrimSuffix(strings.TrimPrefix(consulKey, cb.basePrefix()), "/")
}
