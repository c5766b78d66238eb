package source

import (
	"slices"
	"sync"
)

type StringID uint32

const NoStringID StringID = 0

type Interner struct {
	mu    sync.RWMutex
	byID  []string            // index -> string (byID[0] == "" for NoStringID)
	index map[string]StringID // string -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts s and returns its ID, reusing the existing ID if s is
// already present. Safe for concurrent use.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	if id, ok := i.index[s]; ok {
		i.mu.RUnlock()
		return id
	}
	i.mu.RUnlock()

	// Own copy so we don't hold a reference into the caller's buffer.
	cpy := string([]byte(s))

	i.mu.Lock()
	// Another goroutine may have added it between RUnlock and Lock.
	if id, ok := i.index[cpy]; ok {
		i.mu.Unlock()
		return id
	}
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	i.mu.Unlock()
	return id
}

// InternBytes interns b without requiring the caller to allocate a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or ("", false) if id is not valid.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id, panicking if id is not valid.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id is valid.
func (i *Interner) Has(id StringID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int(id) >= 0 && int(id) < len(i.byID)
}

// Len returns the number of interned strings, including NoStringID. Never
// less than 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
