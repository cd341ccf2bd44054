package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateAlias = errors.New("duplicate alias")

// Alias maps one normalized name a user might type onto a race slug.
type Alias struct {
	Name string
	Slug string
}

// Catalog is an immutable alias -> slug table. Its zero value is empty.
type Catalog struct {
	aliases []Alias
	index   map[string]int
}

// Key normalizes a lookup key: lowercase with whitespace collapsed.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// New builds a catalog, the order of `aliases` is the definition order used for tie-breaks.
func New(aliases []Alias) (Catalog, error) {
	c := Catalog{
		aliases: make([]Alias, 0, len(aliases)),
		index:   make(map[string]int, len(aliases)),
	}
	for _, a := range aliases {
		key := Key(a.Name)
		if key == "" || a.Slug == "" {
			return Catalog{}, fmt.Errorf("catalog: empty alias or slug: %q -> %q", a.Name, a.Slug)
		}
		if _, exists := c.index[key]; exists {
			return Catalog{}, fmt.Errorf("catalog: %w: %q", ErrDuplicateAlias, key)
		}
		c.index[key] = len(c.aliases)
		c.aliases = append(c.aliases, Alias{Name: key, Slug: a.Slug})
	}
	return c, nil
}

// Lookup returns the slug for an alias.
func (c Catalog) Lookup(name string) (string, bool) {
	i, ok := c.index[Key(name)]
	if !ok {
		return "", false
	}
	return c.aliases[i].Slug, true
}

// Aliases returns a copy of every alias in definition order.
func (c Catalog) Aliases() []Alias {
	out := make([]Alias, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// Slugs returns every distinct slug in the order it was first defined.
func (c Catalog) Slugs() []string {
	seen := make(map[string]struct{}, len(c.aliases))
	var out []string
	for _, a := range c.aliases {
		if _, ok := seen[a.Slug]; ok {
			continue
		}
		seen[a.Slug] = struct{}{}
		out = append(out, a.Slug)
	}
	return out
}

// AliasesOf returns the aliases that map to `slug`, in definition order.
func (c Catalog) AliasesOf(slug string) []string {
	var out []string
	for _, a := range c.aliases {
		if a.Slug == slug {
			out = append(out, a.Name)
		}
	}
	return out
}

func (c Catalog) Len() int {
	return len(c.aliases)
}
