package settings

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds the live settings. Edits are serialized; runs take a
// Snapshot at start so later edits never affect a run in flight.
type Registry struct {
	mu sync.RWMutex
	s  Settings
}

// NewRegistry creates a Registry seeded with initial.
func NewRegistry(initial Settings) *Registry {
	r := &Registry{}
	r.Replace(initial)
	return r
}

// Snapshot returns a deep copy of the current settings.
func (r *Registry) Snapshot() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.Clone()
}

// Replace swaps in s wholesale, e.g. after loading from a Store.
func (r *Registry) Replace(s Settings) {
	s = s.Clone()
	s.Hosts = normalizeHosts(s.Hosts)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
}

func (r *Registry) Hosts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.s.Hosts...)
}

// AddHost appends name to the host list.
func (r *Registry) AddHost(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyHost
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.s.Hosts {
		if h == name {
			return fmt.Errorf("%w: %s", ErrDuplicateHost, name)
		}
	}
	r.s.Hosts = append(r.s.Hosts, name)
	return nil
}

// RemoveHost deletes name, keeping the order of the others.
func (r *Registry) RemoveHost(name string) error {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.s.Hosts {
		if h == name {
			r.s.Hosts = append(r.s.Hosts[:i:i], r.s.Hosts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrHostNotFound, name)
}

func (r *Registry) Substitutions() []Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Pair{}, r.s.FindReplace...)
}

// AddSubstitution appends a pair and returns its index.
func (r *Registry) AddSubstitution(find, replace string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.FindReplace = append(r.s.FindReplace, Pair{
		Find:    strings.TrimSpace(find),
		Replace: strings.TrimSpace(replace),
	})
	return len(r.s.FindReplace) - 1
}

// SetSubstitution overwrites the pair at index i.
func (r *Registry) SetSubstitution(i int, find, replace string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.s.FindReplace) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.s.FindReplace[i] = Pair{
		Find:    strings.TrimSpace(find),
		Replace: strings.TrimSpace(replace),
	}
	return nil
}

// RemoveSubstitution deletes the pair at index i.
func (r *Registry) RemoveSubstitution(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.s.FindReplace) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.s.FindReplace = append(r.s.FindReplace[:i:i], r.s.FindReplace[i+1:]...)
	return nil
}

func (r *Registry) SetAPIKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.APIKey = strings.TrimSpace(key)
}

func (r *Registry) APIKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.APIKey
}
