package imagegen

import "fmt"

// Registry is the ordered, read-only provider table for a deployment.
type Registry struct {
	providers   []*Descriptor
	defaultName string
}

// NewRegistry validates the providers and keeps their declaration order.
// defaultName selects the fallback provider for unknown models; empty means
// the first declared provider.
func NewRegistry(providers []*Descriptor, defaultName string) (*Registry, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	seen := make(map[string]bool, len(providers))
	for _, p := range providers {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate provider %q", p.Name)
		}
		seen[p.Name] = true
	}

	if defaultName == "" {
		defaultName = providers[0].Name
	} else if !seen[defaultName] {
		return nil, fmt.Errorf("default provider %q is not configured", defaultName)
	}

	return &Registry{providers: providers, defaultName: defaultName}, nil
}

// Providers returns the providers in declaration order.
func (r *Registry) Providers() []*Descriptor {
	return r.providers
}

// Default returns the designated default provider.
func (r *Registry) Default() *Descriptor {
	return r.lookup(r.defaultName)
}

func (r *Registry) lookup(name string) *Descriptor {
	for _, p := range r.providers {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Select returns the first provider that supports model and the model it
// will be asked for. When no provider supports model, the default provider
// and its first model are returned.
func (r *Registry) Select(model string) (*Descriptor, string) {
	for _, p := range r.providers {
		if p.Supports(model) {
			return p, model
		}
	}
	d := r.Default()
	return d, d.Models[0]
}

// Candidates returns the fallback chain for model: the selected provider
// first, then every other provider in declaration order.
func (r *Registry) Candidates(model string) []*Descriptor {
	selected, _ := r.Select(model)
	chain := make([]*Descriptor, 0, len(r.providers))
	chain = append(chain, selected)
	for _, p := range r.providers {
		if p != selected {
			chain = append(chain, p)
		}
	}
	return chain
}
