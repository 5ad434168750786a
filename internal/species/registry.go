// Package species resolves species codes to display names.
package species

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/erazemk/shutils/internal/model"
)

// Species is one entry of the lookup table.
type Species struct {
	ID   model.SpeciesID `json:"id"`
	Key  string          `json:"key"`
	Name string          `json:"name"`
}

// Registry maps species codes to names. The zero value is an empty registry.
type Registry struct {
	byID  map[model.SpeciesID]Species
	byKey map[string]model.SpeciesID
}

// Empty returns a registry without entries; every lookup falls back.
func Empty() *Registry {
	return &Registry{}
}

// LoadFile reads a JSON array of species from path.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading species file: %w", err)
	}
	return Parse(raw)
}

// Parse builds a registry from a JSON array of species.
func Parse(raw []byte) (*Registry, error) {
	var arr []Species
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("decoding species: %w", err)
	}

	r := &Registry{
		byID:  make(map[model.SpeciesID]Species, len(arr)),
		byKey: make(map[string]model.SpeciesID, len(arr)),
	}
	for i, sp := range arr {
		if sp.ID < 0 {
			return nil, fmt.Errorf("negative id at index %d", i)
		}
		if _, dup := r.byID[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate id %d", sp.ID)
		}
		if sp.Key == "" {
			sp.Key = strings.ToLower(sp.Name)
		}
		if sp.Key == "" {
			return nil, fmt.Errorf("missing key and name at id %d", sp.ID)
		}
		if _, dup := r.byKey[sp.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q", sp.Key)
		}
		r.byID[sp.ID] = sp
		r.byKey[sp.Key] = sp.ID
	}
	return r, nil
}

// Get returns the species with id.
func (r *Registry) Get(id model.SpeciesID) (Species, bool) {
	sp, ok := r.byID[id]
	return sp, ok
}

// Name returns the display name of id, or "#<id>" when it is unknown.
func (r *Registry) Name(id model.SpeciesID) string {
	if sp, ok := r.byID[id]; ok && sp.Name != "" {
		return sp.Name
	}
	return id.String()
}

// Lookup resolves a key, a name or a numeric code to a species id.
func (r *Registry) Lookup(s string) (model.SpeciesID, bool) {
	s = strings.TrimSpace(s)
	if id, ok := r.byKey[strings.ToLower(s)]; ok {
		return id, true
	}
	for _, sp := range r.byID {
		if strings.EqualFold(sp.Name, s) {
			return sp.ID, true
		}
	}
	if n, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64); err == nil && n >= 0 {
		return model.SpeciesID(n), true
	}
	return 0, false
}

// All returns every species ordered by id.
func (r *Registry) All() []Species {
	out := make([]Species, 0, len(r.byID))
	for _, sp := range r.byID {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of known species.
func (r *Registry) Len() int {
	return len(r.byID)
}
