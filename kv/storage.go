package kv

import (
	"iter"

	"github.com/indigo-web/compressvary/internal/strcomp"
	"github.com/indigo-web/utils/uf"
)

// DefaultSegmentSize is a number of fields, stored in a single segment.
const DefaultSegmentSize = 8

// Field is a single header entry. Removed fields are kept in place as tombstones: their
// key and value are cleared, and every iterator skips them.
type Field struct {
	Key, Value []byte
	removed    bool
}

// Removed reports whether the field was tombstoned.
func (f *Field) Removed() bool {
	return f.removed
}

type segment struct {
	fields []Field
	next   *segment
}

// Storage is an ordered collection of header fields. It acts as a map but uses linear
// search instead, which proves to be more efficient on relatively low amount of entries,
// which often enough is the case.
//
// Fields are stored in fixed-size segments, chained one after another. A segment never
// grows beyond its initial capacity, therefore pointers to fields stay valid for the whole
// lifetime of the storage, even when new fields are added during iteration. Removal never
// compacts the storage, it only marks a field as removed.
type Storage struct {
	head, tail  *segment
	segmentSize int
	live        int
}

func New() *Storage {
	return NewSegmented(DefaultSegmentSize)
}

// NewSegmented returns an instance of Storage, where each segment holds n fields.
func NewSegmented(n int) *Storage {
	if n <= 0 {
		n = DefaultSegmentSize
	}

	head := &segment{fields: make([]Field, 0, n)}

	return &Storage{
		head:        head,
		tail:        head,
		segmentSize: n,
	}
}

// Add appends a new field to the end. The passed slices are stored as is, without copying.
func (s *Storage) Add(key, value []byte) *Storage {
	if len(s.tail.fields) == cap(s.tail.fields) {
		if s.tail.next == nil {
			s.tail.next = &segment{fields: make([]Field, 0, s.segmentSize)}
		}

		s.tail = s.tail.next
	}

	s.tail.fields = append(s.tail.fields, Field{
		Key:   key,
		Value: value,
	})
	s.live++

	return s
}

// AddString is Add for string arguments. Neither key nor value are going to be mutated.
func (s *Storage) AddString(key, value string) *Storage {
	return s.Add(uf.S2B(key), uf.S2B(value))
}

// Remove tombstones the field. The field must belong to the storage.
func (s *Storage) Remove(f *Field) {
	if f.removed {
		return
	}

	f.Key, f.Value = nil, nil
	f.removed = true
	s.live--
}

// Fields iterates over all the live fields in order, allowing in-place modifications.
func (s *Storage) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for seg := s.head; seg != nil; seg = seg.next {
			for i := range seg.fields {
				if seg.fields[i].removed {
					continue
				}

				if !yield(&seg.fields[i]) {
					return
				}
			}

			if seg == s.tail {
				return
			}
		}
	}
}

// Pairs iterates over the keys and values of live fields.
func (s *Storage) Pairs() iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		for f := range s.Fields() {
			if !yield(f.Key, f.Value) {
				return
			}
		}
	}
}

// Values iterates over all values by the key.
func (s *Storage) Values(key string) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for f := range s.Fields() {
			if strcomp.EqualFoldString(f.Key, key) && !yield(f.Value) {
				return
			}
		}
	}
}

// Get returns the first value by the key and a bool, indicating whether it was found.
func (s *Storage) Get(key string) (value []byte, found bool) {
	for value = range s.Values(key) {
		return value, true
	}

	return nil, false
}

// Len returns a number of live fields.
func (s *Storage) Len() int {
	return s.live
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Segments returns a number of segments currently in use.
func (s *Storage) Segments() (n int) {
	for seg := s.head; ; seg = seg.next {
		n++

		if seg == s.tail {
			return n
		}
	}
}

// Clear all the entries. However, all the allocated segments won't be freed and will be
// reused later.
func (s *Storage) Clear() *Storage {
	for seg := s.head; seg != nil; seg = seg.next {
		clear(seg.fields)
		seg.fields = seg.fields[:0]
	}

	s.tail = s.head
	s.live = 0

	return s
}
