package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// blobName is the logical store this collection persists under.
const blobName = "events"

// IdentityProvider supplies the id of the signed-in user. An empty string
// means nobody is signed in; every mutation is then rejected.
type IdentityProvider interface {
	CurrentUserID() string
}

// BlobStore is the durable layer the store persists through: a named JSON
// document written whole on every mutation and read back once at startup.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) (data []byte, ok bool, err error)
}

// Store owns the authoritative event collection.
//
// All users' events live in the same collection; mutations are scoped to
// the caller's identity, reads are not (see List). Every mutation
// re-serializes the full collection to the blob store before returning, so
// durability is synchronous with respect to the caller. A mutation either
// fully succeeds or leaves the store exactly as it was.
type Store struct {
	mu       sync.Mutex
	identity IdentityProvider
	blobs    BlobStore
	events   []Event
}

// Open rehydrates the event collection from durable storage and returns a
// usable store. A missing blob means a fresh, empty calendar.
func Open(ctx context.Context, identity IdentityProvider, blobs BlobStore) (*Store, error) {
	data, ok, err := blobs.Get(ctx, blobName)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	var events []Event
	if ok {
		events, err = Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("open event store: %w", err)
		}
	}
	return &Store{identity: identity, blobs: blobs, events: events}, nil
}

// Add validates the event, stamps a fresh id and the caller's identity as
// owner, appends it, persists, and returns the created record.
func (s *Store) Add(ctx context.Context, e Event) (Event, error) {
	owner := s.identity.CurrentUserID()
	if owner == "" {
		return Event{}, ErrNoIdentity
	}
	e.Attendees = normalizeAttendees(e.Attendees)
	if err := e.Validate(); err != nil {
		return Event{}, err
	}

	e.ID = uuid.NewString()
	e.OwnerID = owner

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]Event(nil), s.events...), e)
	if err := s.persist(ctx, next); err != nil {
		return Event{}, err
	}
	s.events = next
	return e, nil
}

// Update replaces the stored record with the same id, provided the caller
// owns it. ID and OwnerID are preserved; every other field is replaced, not
// merged.
func (s *Store) Update(ctx context.Context, e Event) (Event, error) {
	owner := s.identity.CurrentUserID()
	if owner == "" {
		return Event{}, ErrNoIdentity
	}
	e.Attendees = normalizeAttendees(e.Attendees)
	if err := e.Validate(); err != nil {
		return Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(e.ID)
	if i < 0 {
		return Event{}, ErrNotFound
	}
	if s.events[i].OwnerID != owner {
		return Event{}, ErrNotOwner
	}

	e.OwnerID = owner

	next := append([]Event(nil), s.events...)
	next[i] = e
	if err := s.persist(ctx, next); err != nil {
		return Event{}, err
	}
	s.events = next
	return e, nil
}

// Delete permanently removes the record with the given id, provided the
// caller owns it.
func (s *Store) Delete(ctx context.Context, id string) error {
	owner := s.identity.CurrentUserID()
	if owner == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if s.events[i].OwnerID != owner {
		return ErrNotOwner
	}

	next := append(append([]Event(nil), s.events[:i]...), s.events[i+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// Get returns the event with the given id regardless of owner.
func (s *Store) Get(id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Event{}, false
	}
	return s.events[i], true
}

// List returns every event in the collection regardless of owner. Read
// scoping is the caller's concern; use ListOwned for an owner-filtered view.
func (s *Store) List() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// ListOwned returns the events belonging to the given owner, in insertion
// order.
func (s *Store) ListOwned(ownerID string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out
}

// indexOf returns the position of the event with the given id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id string) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the candidate collection to durable storage. The in-memory
// collection is only swapped in by the caller after persist succeeds.
func (s *Store) persist(ctx context.Context, events []Event) error {
	data, err := Marshal(events)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, blobName, data); err != nil {
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}
