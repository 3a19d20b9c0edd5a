package store

import (
	"slices"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-memory Storage. Values never expire.
type Memory struct {
	c *cache.Cache
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, 0)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v.([]byte)), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.c.Set(key, slices.Clone(value), cache.NoExpiration)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	items := m.c.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
