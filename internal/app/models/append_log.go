package models

import (
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AppendLog is an append-only sequence. Entries can be appended and read
// but never replaced or removed. Copies of a log never share writable
// backing storage, so appending to one copy leaves the others untouched.
type AppendLog[T any] struct {
	entries []T
}

func NewAppendLog[T any](entries ...T) AppendLog[T] {
	var log AppendLog[T]
	log.Append(entries...)
	return log
}

func (l *AppendLog[T]) Append(entries ...T) {
	if len(entries) == 0 {
		return
	}
	l.entries = append(l.entries[:len(l.entries):len(l.entries)], entries...)
}

func (l AppendLog[T]) Len() int {
	return len(l.entries)
}

// At returns the entry at index i, oldest first. It panics when i is out of range.
func (l AppendLog[T]) At(i int) T {
	return l.entries[i]
}

func (l AppendLog[T]) Last() (T, bool) {
	var zero T
	if len(l.entries) == 0 {
		return zero, false
	}
	return l.entries[len(l.entries)-1], true
}

// All returns a copy of the entries, oldest first.
func (l AppendLog[T]) All() []T {
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l AppendLog[T]) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

func (l *AppendLog[T]) UnmarshalJSON(data []byte) error {
	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}

func (l AppendLog[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	entries := l.entries
	if entries == nil {
		entries = []T{}
	}
	return bson.MarshalValue(entries)
}

func (l *AppendLog[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		l.entries = nil
		return nil
	}
	var entries []T
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}
