package rest

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages named REST clients for consumers that talk to multiple
// endpoints. Clients are keyed by their endpoint label. All operations are
// safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	clients     map[string]*Client
	defaultName string
}

// NewRegistry creates an empty client registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// Register adds a client under its endpoint label. The first registered
// client becomes the default until SetDefault chooses another.
func (r *Registry) Register(c *Client) error {
	if c == nil {
		return fmt.Errorf("rest: cannot register nil client")
	}
	name := c.Endpoint()
	if name == "" {
		return fmt.Errorf("rest: client has no endpoint label")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("rest: client %s already registered", name)
	}
	r.clients[name] = c
	if r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

// Get retrieves a client by endpoint label.
func (r *Registry) Get(name string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[name]
	return c, ok
}

// Default returns the default client, if one is set.
func (r *Registry) Default() (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[r.defaultName]
	return c, ok
}

// SetDefault marks a registered client as the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[name]; !ok {
		return fmt.Errorf("rest: client %s not registered", name)
	}
	r.defaultName = name
	return nil
}

// Names returns the registered endpoint labels in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
