package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/domain"
)

var ErrNotFound = errors.New("statue not found")

// Catalog is the read-only set of statues, keyed by lowercase id.
// It keeps the order of the source document for stable tie-breaking.
// Safe for concurrent use since nothing mutates it after New.
type Catalog struct {
	statues  []*domain.Statue
	byID     map[string]*domain.Statue // id -> Statue
	loadedAt time.Time
}

// New builds a catalog. Ids are lowercased; duplicates are rejected.
func New(statues []*domain.Statue) (*Catalog, error) {
	c := &Catalog{
		statues:  make([]*domain.Statue, 0, len(statues)),
		byID:     make(map[string]*domain.Statue, len(statues)),
		loadedAt: time.Now(),
	}

	for _, s := range statues {
		if s == nil {
			continue
		}
		s.ID = domain.NormalizeID(s.ID)
		if s.ID == "" {
			return nil, fmt.Errorf("statue %q has no id", s.Name)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate statue id %q", s.ID)
		}
		c.byID[s.ID] = s
		c.statues = append(c.statues, s)
	}

	return c, nil
}

// Get looks up a statue. The id is trimmed and lowercased first.
func (c *Catalog) Get(id string) (*domain.Statue, bool) {
	s, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	return s, ok
}

// Lookup is Get with an error for handlers.
func (c *Catalog) Lookup(id string) (*domain.Statue, error) {
	s, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s, nil
}

// All returns every statue in catalog order. The slice is a copy.
func (c *Catalog) All() []*domain.Statue {
	out := make([]*domain.Statue, len(c.statues))
	copy(out, c.statues)
	return out
}

// Count returns the number of statues
func (c *Catalog) Count() int {
	return len(c.statues)
}

// LoadedAt returns when the catalog was built
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}
