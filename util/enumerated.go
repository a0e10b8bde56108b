package util

import (
	"sync"
)

// EnumSet is a bidirectional string <-> int mapping. Ids are assigned
// consecutively starting from Start.
type EnumSet struct {
	mu     sync.RWMutex
	Enum   map[string]int
	Index  []string
	Start  int
	Frozen bool
}

func NewEnumSet(capacity int) *EnumSet {
	return NewEnumSetFrom(1, capacity)
}

// NewEnumSetFrom returns an empty set whose first id is start.
func NewEnumSetFrom(start, capacity int) *EnumSet {
	return &EnumSet{
		Enum:  make(map[string]int, capacity),
		Index: make([]string, 0, capacity),
		Start: start,
	}
}

// NewEnumSetAfter returns an empty set whose ids continue where other's end.
func NewEnumSetAfter(other *EnumSet, capacity int) *EnumSet {
	return NewEnumSetFrom(other.Next(), capacity)
}

// NewEnumSetOf rebuilds a set from its persisted form.
func NewEnumSetOf(start int, values []string) *EnumSet {
	e := NewEnumSetFrom(start, len(values))
	for _, value := range values {
		e.Add(value)
	}
	return e
}

// Add returns the id of value, assigning the next id if value is new.
// The boolean reports whether value was added.
func (e *EnumSet) Add(value string) (int, bool) {
	if e.Frozen {
		panic("Cannot add value to frozen enum set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	enum, exists := e.Enum[value]
	if exists {
		return enum, false
	}
	enum = e.Start + len(e.Index)
	e.Enum[value] = enum
	e.Index = append(e.Index, value)
	return enum, true
}

func (e *EnumSet) IndexOf(value string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	enum, exists := e.Enum[value]
	return enum, exists
}

// Lookup returns the id of value or -1. When add is set an absent value is
// added first.
func (e *EnumSet) Lookup(value string, add bool) int {
	if add {
		enum, _ := e.Add(value)
		return enum
	}
	if enum, exists := e.IndexOf(value); exists {
		return enum
	}
	return -1
}

func (e *EnumSet) ValueOf(index int) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	pos := index - e.Start
	if pos < 0 || pos >= len(e.Index) {
		return "", false
	}
	return e.Index[pos], true
}

func (e *EnumSet) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.Index)
}

// Next is the id the next added value will receive.
func (e *EnumSet) Next() int {
	return e.Start + e.Len()
}

// Values returns the values in id order.
func (e *EnumSet) Values() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	retval := make([]string, len(e.Index))
	copy(retval, e.Index)
	return retval
}

