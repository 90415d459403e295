package pages

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// ID identifies a documentation page.
type ID string

// Home is the landing page sentinel. It has no source location.
const Home ID = "home"

// Built-in page identifiers.
const (
	Overview       ID = "overview"
	Usage          ID = "usage"
	Internals      ID = "internals"
	MySQLSupport   ID = "mysql_support"
	MariaDBSupport ID = "mariadb_support"
	Releases       ID = "releases"
	FAQ            ID = "faq"
)

func (id ID) String() string {
	return string(id)
}

// IsHome reports whether id is the landing page sentinel.
func (id ID) IsHome() bool {
	return id == Home
}

// Registry maps page identifiers to source locations.
// Locations are slash-separated paths relative to the docs root.
type Registry struct {
	locations map[ID]string
	ids       []ID
}

// New validates entries and builds a Registry.
// The entries map is copied; later changes to it have no effect.
func New(entries map[ID]string) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}

	locations := make(map[ID]string, len(entries))
	ids := make([]ID, 0, len(entries))

	for id, loc := range entries {
		if err := validateID(id); err != nil {
			return nil, err
		}
		if err := validateLocation(loc); err != nil {
			return nil, fmt.Errorf("%w: %s", err, id)
		}
		locations[id] = loc
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return &Registry{locations: locations, ids: ids}, nil
}

// MustNew is like New but panics on error.
func MustNew(entries map[ID]string) *Registry {
	r, err := New(entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the built-in registry.
func Default() *Registry {
	return MustNew(map[ID]string{
		Overview:       "overview.md",
		Usage:          "usage.md",
		Internals:      "internals.md",
		MySQLSupport:   "mysql_support.md",
		MariaDBSupport: "mariadb_support.md",
		Releases:       "releases/index.md",
		FAQ:            "faq.md",
	})
}

// Lookup returns the source location for id.
// The second result is false if id is not registered; that is an expected
// outcome, not an error.
func (r *Registry) Lookup(id ID) (string, bool) {
	loc, ok := r.locations[id]
	return loc, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.locations[id]
	return ok
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []ID {
	return slices.Clone(r.ids)
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	return len(r.ids)
}

func validateID(id ID) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == Home:
		return fmt.Errorf("%w: %s", ErrReservedID, id)
	case strings.ContainsAny(string(id), "/\\#?"):
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	case strings.TrimSpace(string(id)) != string(id):
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// ValidLocation reports whether loc is a relative path that stays inside the
// docs root.
func ValidLocation(loc string) bool {
	return validateLocation(loc) == nil
}

func validateLocation(loc string) error {
	if loc == "" || strings.HasPrefix(loc, "/") || strings.Contains(loc, "\\") {
		return ErrInvalidLocation
	}
	clean := path.Clean(loc)
	if clean != loc || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return ErrInvalidLocation
	}
	return nil
}
