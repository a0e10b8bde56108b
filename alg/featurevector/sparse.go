package featurevector

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Binary is a sparse vector whose present entries all have value 1.
type Binary map[int]struct{}

func NewBinary(capacity int) Binary {
	return make(Binary, capacity)
}

// NewBinaryFrom returns a vector with the given ids set.
func NewBinaryFrom(ids []int) Binary {
	vec := make(Binary, len(ids))
	for _, id := range ids {
		vec[id] = struct{}{}
	}
	return vec
}

func (v Binary) Set(id int) {
	v[id] = struct{}{}
}

func (v Binary) Has(id int) bool {
	_, exists := v[id]
	return exists
}

func (v Binary) Len() int {
	return len(v)
}

// IDs returns the set ids in ascending order.
func (v Binary) IDs() []int {
	ids := make([]int, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// String renders the vector as ascending "id:1" pairs separated by spaces.
func (v Binary) String() string {
	ids := v.IDs()
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id) + ":1"
	}
	return strings.Join(strs, " ")
}

// ParseBinary reads the output of String.
func ParseBinary(fields []string) (Binary, error) {
	vec := NewBinary(len(fields))
	for _, field := range fields {
		idStr, valStr, found := strings.Cut(field, ":")
		if !found {
			return nil, fmt.Errorf("featurevector: malformed entry %q", field)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("featurevector: malformed id in %q: %w", field, err)
		}
		if valStr != "1" {
			return nil, fmt.Errorf("featurevector: non binary value in %q", field)
		}
		vec.Set(id)
	}
	return vec, nil
}

// Sparse is a sparse real valued weight vector indexed by feature id.
type Sparse map[int]float64

func NewSparse() Sparse {
	return make(Sparse)
}

func (v Sparse) Copy() Sparse {
	copied := make(Sparse, len(v))
	for k, val := range v {
		copied[k] = val
	}
	return copied
}

// UpdateAddBinary adds amount to every weight present in f.
func (v Sparse) UpdateAddBinary(f Binary, amount float64) Sparse {
	for key := range f {
		val := v[key] + amount
		if val != 0.0 {
			v[key] = val
		} else {
			delete(v, key)
		}
	}
	return v
}

func (v Sparse) DotProductBinary(f Binary) float64 {
	var result float64
	for key := range f {
		result += v[key]
	}
	return result
}
