package palette

import "sync"

// Cache memoizes palettes per project id. It is safe for concurrent use and
// returns exactly what Generate would.
type Cache struct {
	entries sync.Map // project id -> Palette
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(projectID string) (Palette, error) {
	if v, ok := c.entries.Load(projectID); ok {
		return v.(Palette), nil
	}
	p, err := Generate(projectID)
	if err != nil {
		return Palette{}, err
	}
	c.entries.Store(projectID, p)
	return p, nil
}

// GetOrDefault is Get with GenerateOrDefault's fallback.
func (c *Cache) GetOrDefault(projectID string) Palette {
	p, err := c.Get(projectID)
	if err != nil {
		return DefaultPalette
	}
	return p
}

// Len reports how many ids are memoized.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
