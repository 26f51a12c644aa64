// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "reflect"

// EntityID names an entity: a TCP endpoint, in this engine's vocabulary.
//
// EntityID is a weak identifier: records reach back to their owner through
// it (and never through a pointer), so that the kernel-visible
// [OperationRecord] never aliases the ownership graph.
type EntityID uint64

// attachHook is implemented by record types that must react when first
// attached to an entity (e.g. [ListenRecord] arming its first accept).
type attachHook interface {
	OnAttach(w *World, id EntityID)
}

// removeHook is implemented by record types that must release resources
// when detached, directly or via [DeleteEntity].
type removeHook interface {
	OnRemove(w *World, id EntityID)
}

// genericStore erases the type parameter of [componentStore] so [World] can
// hold heterogeneous stores in one map and [DeleteEntity] can remove a
// record without knowing its static type.
type genericStore interface {
	removeEntity(w *World, id EntityID) bool
}

type componentStore[T any] struct {
	data map[EntityID]*T
}

func newComponentStore[T any]() *componentStore[T] {
	return &componentStore[T]{data: make(map[EntityID]*T)}
}

func (s *componentStore[T]) removeEntity(w *World, id EntityID) bool {
	ptr, ok := s.data[id]
	if !ok {
		return false
	}
	if hook, ok := any(ptr).(removeHook); ok {
		hook.OnRemove(w, id)
	}
	delete(s.data, id)
	return true
}

// World is the minimal entity/record store this engine needs: typed record
// storage, attach/remove callbacks, and reverse-attach-order deletion.
//
// World is not safe for concurrent use; the engine's single-threaded
// cooperative tick model means it is only ever touched from one goroutine
// at a time.
type World struct {
	nextID      EntityID
	stores      map[reflect.Type]genericStore
	attachOrder map[EntityID][]reflect.Type

	// Ctx is an opaque handle to platform/engine-level shared resources
	// (the [CompletionPort], the [Config]) that attach hooks for
	// socket-owning records need but that this portable file cannot
	// reference directly (those types live in windows-only files).
	// [Engine] sets this once at construction. The completion port it
	// refers to is a single process-wide handle, read and written only by
	// the event pump.
	Ctx any
}

// NewWorld returns an empty [World].
func NewWorld() *World {
	return &World{
		nextID:      1,
		stores:      make(map[reflect.Type]genericStore),
		attachOrder: make(map[EntityID][]reflect.Type),
	}
}

func storeFor[T any](w *World) *componentStore[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.stores[key]; ok {
		return s.(*componentStore[T])
	}
	s := newComponentStore[T]()
	w.stores[key] = s
	return s
}

// NewEntity allocates and returns a fresh [EntityID].
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.attachOrder[id] = nil
	return id
}

// Add attaches a record of type T to id, running its [attachHook] if any,
// and returns a pointer to the stored value for further mutation.
//
// Invariant: the kernel holds the address of the stored value for the
// duration of an outstanding overlapped operation, so once an operation is
// outstanding against the returned pointer, do not call Add for the same
// (id, T) again before removing the prior value; doing so would replace
// the backing value while the kernel may still be writing into it.
func Add[T any](w *World, id EntityID, value T) *T {
	s := storeFor[T](w)
	ptr := new(T)
	*ptr = value
	s.data[id] = ptr

	key := reflect.TypeOf((*T)(nil)).Elem()
	w.attachOrder[id] = append(w.attachOrder[id], key)

	if hook, ok := any(ptr).(attachHook); ok {
		hook.OnAttach(w, id)
	}
	return ptr
}

// Get returns the record of type T attached to id, if any.
func Get[T any](w *World, id EntityID) (*T, bool) {
	s := storeFor[T](w)
	v, ok := s.data[id]
	return v, ok
}

// Has reports whether id carries a record of type T.
func Has[T any](w *World, id EntityID) bool {
	_, ok := Get[T](w, id)
	return ok
}

// Remove detaches the record of type T from id, running its [removeHook]
// if any. It reports whether a record was present.
func Remove[T any](w *World, id EntityID) bool {
	s := storeFor[T](w)
	if _, ok := s.data[id]; !ok {
		return false
	}
	s.removeEntity(w, id)

	key := reflect.TypeOf((*T)(nil)).Elem()
	order := w.attachOrder[id]
	for i, k := range order {
		if k == key {
			w.attachOrder[id] = append(order[:i:i], order[i+1:]...)
			break
		}
	}
	return true
}

// ForEach invokes fn for every entity currently carrying a record of type
// T. Mutating the World from within fn (other than through the *T pointer
// handed to fn) is not supported.
func ForEach[T any](w *World, fn func(id EntityID, v *T)) {
	s := storeFor[T](w)
	for id, v := range s.data {
		fn(id, v)
	}
}

// DeleteEntity removes every record attached to id, in reverse-attach
// order; each record's removal shuts down its side of the socket and
// closes its socket handle.
func DeleteEntity(w *World, id EntityID) {
	order := w.attachOrder[id]
	for i := len(order) - 1; i >= 0; i-- {
		if s, ok := w.stores[order[i]]; ok {
			s.removeEntity(w, id)
		}
	}
	delete(w.attachOrder, id)
}

// Alive reports whether id was created by [World.NewEntity] and has not
// been fully deleted via [DeleteEntity]. A partially-torn-down entity
// (mid-removal) still reports alive until [DeleteEntity] returns.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.attachOrder[id]
	return ok
}
