package exec

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string-keyed map that preserves insertion order, used for
// every object-shaped value the executor produces. Plain Go maps do not
// preserve order (and encoding/json sorts map keys alphabetically on
// marshal), which would violate spec.md §8's result-key-ordering invariant,
// so this engine carries its own ordered map rather than the teacher's plain
// map[string]interface{} (execution/execute.go's executeObject) — the one
// place this module's result shape must diverge from the teacher's.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]interface{}{}}
}

// Has reports whether key has already been set.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set records value under key, appending key to the insertion order the
// first time it is used.
func (m *OrderedMap) Set(key string, value interface{}) {
	if !m.Has(key) {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get retrieves the value stored under key.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// MarshalJSON renders the map as a JSON object with members in insertion
// order, since encoding/json would otherwise alphabetize map keys.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
