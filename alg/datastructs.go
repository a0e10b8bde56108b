package alg

import "fmt"

// Stack is an array backed LIFO. Index 0 is the top of the stack.
type Stack[T any] struct {
	Array []T
}

func NewStack[T any](size int) *Stack[T] {
	return &Stack[T]{make([]T, 0, size)}
}

func (s *Stack[T]) Clear() {
	s.Array = s.Array[0:0]
}

func (s *Stack[T]) Push(val T) {
	s.Array = append(s.Array, val)
}

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s.Size() == 0 {
		return zero, false
	}
	retval := s.Array[len(s.Array)-1]
	s.Array[len(s.Array)-1] = zero
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

// Index returns the element at depth index, counted from the top.
func (s *Stack[T]) Index(index int) (T, bool) {
	if index < 0 || index >= s.Size() {
		var zero T
		return zero, false
	}
	return s.Array[len(s.Array)-1-index], true
}

func (s *Stack[T]) Peek() (T, bool) {
	return s.Index(0)
}

func (s *Stack[T]) Size() int {
	return len(s.Array)
}

func (s *Stack[T]) Copy() *Stack[T] {
	newArray := make([]T, len(s.Array), cap(s.Array))
	copy(newArray, s.Array)
	return &Stack[T]{newArray}
}

func (s *Stack[T]) String() string {
	return fmt.Sprintf("%v", s.Array)
}

// Deque is an indexable double ended queue. The active elements are kept
// centered in the backing array so that both Push and AddToFront are
// amortized O(1) while Get stays O(1).
type Deque[T any] struct {
	array      []T
	start, end int // active range is array[start:end]
}

func NewDeque[T any](size int) *Deque[T] {
	if size < 2 {
		size = 2
	}
	d := &Deque[T]{array: make([]T, size)}
	d.start = size / 2
	d.end = d.start
	return d
}

// NewDequeFrom returns a deque holding vals, vals[0] at the front.
func NewDequeFrom[T any](vals []T) *Deque[T] {
	d := NewDeque[T](len(vals)*3/2 + 2)
	d.start = (len(d.array) - len(vals)) / 2
	d.end = d.start + copy(d.array[d.start:], vals)
	return d
}

func (d *Deque[T]) Size() int {
	return d.end - d.start
}

func (d *Deque[T]) Clear() {
	var zero T
	for i := d.start; i < d.end; i++ {
		d.array[i] = zero
	}
	d.start = len(d.array) / 2
	d.end = d.start
}

// recenter reallocates the backing array to 3n/2+2 slots and centers the
// active elements in it.
func (d *Deque[T]) recenter() {
	n := d.Size()
	newArray := make([]T, n*3/2+2)
	newStart := (len(newArray) - n) / 2
	copy(newArray[newStart:], d.array[d.start:d.end])
	d.array = newArray
	d.start = newStart
	d.end = newStart + n
}

// Push appends val at the back.
func (d *Deque[T]) Push(val T) {
	if d.end == len(d.array) {
		if d.Size() == 0 {
			d.start = len(d.array) / 2
			d.end = d.start
		} else {
			d.recenter()
		}
	}
	d.array[d.end] = val
	d.end++
}

// AddToFront prepends val.
func (d *Deque[T]) AddToFront(val T) {
	if d.start == 0 {
		if d.Size() == 0 {
			d.start = len(d.array) / 2
			d.end = d.start
		} else {
			d.recenter()
		}
	}
	d.start--
	d.array[d.start] = val
}

// Pop removes and returns the front element.
func (d *Deque[T]) Pop() (T, bool) {
	var zero T
	if d.Size() == 0 {
		return zero, false
	}
	retval := d.array[d.start]
	d.array[d.start] = zero
	d.start++
	return retval, true
}

// RemoveFromEnd removes and returns the back element.
func (d *Deque[T]) RemoveFromEnd() (T, bool) {
	var zero T
	if d.Size() == 0 {
		return zero, false
	}
	d.end--
	retval := d.array[d.end]
	d.array[d.end] = zero
	return retval, true
}

// Get returns the element at offset i from the front.
func (d *Deque[T]) Get(i int) (T, bool) {
	if i < 0 || i >= d.Size() {
		var zero T
		return zero, false
	}
	return d.array[d.start+i], true
}

func (d *Deque[T]) Peek() (T, bool) {
	return d.Get(0)
}

func (d *Deque[T]) Copy() *Deque[T] {
	newArray := make([]T, len(d.array))
	copy(newArray, d.array)
	return &Deque[T]{newArray, d.start, d.end}
}

func (d *Deque[T]) Slice() []T {
	retval := make([]T, d.Size())
	copy(retval, d.array[d.start:d.end])
	return retval
}

func (d *Deque[T]) String() string {
	return fmt.Sprintf("%v", d.array[d.start:d.end])
}
