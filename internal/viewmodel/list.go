// Package viewmodel holds the per-page copy of an entity collection and the
// operations that change it.
//
// A List is built for one page view. Load fills it, Create prepends the
// server's record, and Mutate runs a confirmed change and then refetches the
// collection from the source. A failed call never touches the local copy.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrRefresh marks a Mutate whose change went through but whose refetch
// failed. The list still holds the items from before the change.
var ErrRefresh = errors.New("refresh after change failed")

// Source is the remote side of a collection.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
}

type List[T any] struct {
	src    Source[T]
	items  []T
	loaded bool
}

func NewList[T any](src Source[T]) *List[T] {
	return &List[T]{src: src}
}

// Load fetches the collection. Until it succeeds the list is empty.
func (l *List[T]) Load(ctx context.Context) error {
	items, err := l.src.List(ctx)
	if err != nil {
		return fmt.Errorf("load list: %w", err)
	}
	l.items = items
	l.loaded = true
	return nil
}

// Refresh refetches after a confirmed mutation. On failure the previous
// items are kept.
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

// Loaded reports whether a fetch has succeeded.
func (l *List[T]) Loaded() bool {
	return l.loaded
}

// Items returns a copy of the current collection.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Find returns the first item matching pred.
func (l *List[T]) Find(pred func(T) bool) (T, bool) {
	for _, it := range l.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Create sends item to the source and, on success, puts the record the
// server returned at the front of the collection.
func (l *List[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := l.src.Create(ctx, item)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create: %w", err)
	}
	l.items = append([]T{created}, l.items...)
	return created, nil
}

// Mutate runs a remote change and then refetches the collection. The local
// copy is left alone when the change fails. A failed refetch is reported
// wrapped in ErrRefresh.
func (l *List[T]) Mutate(ctx context.Context, change func(ctx context.Context) error) error {
	if err := change(ctx); err != nil {
		return err
	}
	if err := l.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}
