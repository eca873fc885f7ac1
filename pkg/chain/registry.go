package chain

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NotFound is the position reported for an item that is not registered.
const NotFound = -1

// ID identifies a registered item. Two registrations never share an ID,
// even when they use the same name.
type ID = uuid.UUID

// Named is an item with a stable name.
type Named interface {
	Name() string
}

// NewID returns a new random ID.
func NewID() ID {
	return uuid.New()
}

// Registry is an ordered collection of uniquely named items.
//
// Items live in an arena keyed by ID, the order is kept as a list of IDs.
// Reads can run concurrently, mutations are serialised.
type Registry[T Named] struct {
	mu    sync.RWMutex
	items map[ID]T
	names map[string]ID
	order []ID
}

// NewRegistry creates an empty registry.
func NewRegistry[T Named]() *Registry[T] {
	return &Registry[T]{
		items: make(map[ID]T),
		names: make(map[string]ID),
	}
}

// Add appends item at the end of the registry.
func (r *Registry[T]) Add(item T) (ID, error) {
	id := NewID()

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.insert(len(r.order), id, item)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// Insert places item at index, shifting the following items.
// index can be equal to Len to append.
func (r *Registry[T]) Insert(index int, item T) (ID, error) {
	id := NewID()

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.insert(index, id, item)
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *Registry[T]) addWithID(id ID, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(len(r.order), id, item)
}

func (r *Registry[T]) insertWithID(index int, id ID, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(index, id, item)
}

// insert must be called with the write lock held. The registry is left untouched on error.
func (r *Registry[T]) insert(index int, id ID, item T) error {
	name := item.Name()
	if _, ok := r.names[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "name %q", name)
	}

	if index < 0 || index > len(r.order) {
		return errors.Wrapf(ErrIndexOutOfRange, "insert at %d, size %d", index, len(r.order))
	}

	r.order = append(r.order, uuid.Nil)
	copy(r.order[index+1:], r.order[index:])
	r.order[index] = id

	r.items[id] = item
	r.names[name] = id

	return nil
}

// Remove removes the item registered under id. It returns false if id is not registered.
// Other items are not touched, their positions shift.
func (r *Registry[T]) Remove(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index == NotFound {
		return false
	}

	r.order = append(r.order[:index], r.order[index+1:]...)
	delete(r.names, r.items[id].Name())
	delete(r.items, id)

	return true
}

// Move moves the item registered under id to index.
func (r *Registry[T]) Move(id ID, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.indexOf(id)
	if from == NotFound {
		return errors.Wrapf(ErrStepNotFound, "id %s", id)
	}

	if index < 0 || index >= len(r.order) {
		return errors.Wrapf(ErrIndexOutOfRange, "move to %d, size %d", index, len(r.order))
	}

	r.order = append(r.order[:from], r.order[from+1:]...)
	r.order = append(r.order, uuid.Nil)
	copy(r.order[index+1:], r.order[index:])
	r.order[index] = id

	return nil
}

// IndexOf returns the current position of id, or NotFound.
func (r *Registry[T]) IndexOf(id ID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id)
}

func (r *Registry[T]) indexOf(id ID) int {
	if _, ok := r.items[id]; !ok {
		return NotFound
	}

	for i, curr := range r.order {
		if curr == id {
			return i
		}
	}

	return NotFound
}

// Get returns the item at index.
func (r *Registry[T]) Get(index int) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.get(index)
}

func (r *Registry[T]) get(index int) (T, error) {
	if index < 0 || index >= len(r.order) {
		var zero T

		return zero, errors.Wrapf(ErrIndexOutOfRange, "get %d, size %d", index, len(r.order))
	}

	return r.items[r.order[index]], nil
}

// previous returns the position of id and the item right before it.
// ok is false when id is first or not registered.
func (r *Registry[T]) previous(id ID) (prev T, index int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index = r.indexOf(id)
	if index <= 0 {
		return prev, index, false
	}

	prev, err := r.get(index - 1)
	if err != nil {
		return prev, index, false
	}

	return prev, index, true
}

// Lookup returns the item registered under name.
func (r *Registry[T]) Lookup(name string) (T, ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[name]
	if !ok {
		var zero T

		return zero, uuid.Nil, false
	}

	return r.items[id], id, true
}

// Find returns the first item matching fn and its ID.
func (r *Registry[T]) Find(fn func(T) bool) (T, ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if item := r.items[id]; fn(item) {
			return item, id, true
		}
	}

	var zero T

	return zero, uuid.Nil, false
}

func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.names[name]

	return ok
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Items returns a snapshot of the items in order.
func (r *Registry[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, len(r.order))
	for i, id := range r.order {
		items[i] = r.items[id]
	}

	return items
}

// Names returns a snapshot of the item names in order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, id := range r.order {
		names[i] = r.items[id].Name()
	}

	return names
}
