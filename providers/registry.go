package providers

import (
	"sort"
	"sync"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/pkg/errors"
)

// Registry holds the known providers, keyed by provider kind.
type Registry struct {
	providers map[string]Provider
	lock      sync.RWMutex
}

func NewRegistry(provs ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range provs {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any previous one with the same ID
func (r *Registry) Register(p Provider) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.providers[p.ID()] = p
}

// ByID returns the provider registered for the given kind
func (r *Registry) ByID(id string) (Provider, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, errors.Wrapf(interrors.ErrUnknownProvider, "[Registry.ByID] %q", id)
	}
	return p, nil
}

// IDs returns the registered provider kinds in stable order
func (r *Registry) IDs() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AsChoices returns (id, name) pairs for UI selection lists
func (r *Registry) AsChoices() [][2]string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	choices := make([][2]string, 0, len(r.providers))
	for _, p := range r.providers {
		choices = append(choices, [2]string{p.ID(), p.Name()})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i][0] < choices[j][0] })
	return choices
}
