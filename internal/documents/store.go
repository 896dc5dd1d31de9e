// Package documents owns the single editable resume document. All edit
// surfaces (manual editor, approved proposals, uploads, version loads) go
// through Store.Replace, which is the only way the document changes.
package documents

import (
	"sync"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// Observer is notified with the new document after each replacement.
// Observers run synchronously under the replacement, so a reader that
// follows a Replace always sees the observers' side effects. Observers must
// not call back into the store.
type Observer func(doc model.Document)

// Store holds the current document and its subscribers.
type Store struct {
	mu        sync.Mutex
	doc       model.Document
	observers map[int]Observer
	nextID    int
}

// NewStore creates a store holding an empty document.
func NewStore() *Store {
	return &Store{
		doc:       model.New(),
		observers: make(map[int]Observer),
	}
}

// Get returns a copy of the current document. Mutating the returned value
// never affects the stored document.
func (s *Store) Get() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Replace swaps in the given document atomically and notifies every
// observer with its own copy. It returns the normalized stored document.
func (s *Store) Replace(doc model.Document) model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc.Clone()
	for _, fn := range s.observers {
		fn(s.doc.Clone())
	}
	return s.doc.Clone()
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
