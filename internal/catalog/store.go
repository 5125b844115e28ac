package catalog

import "sync"

// Store is an ordered, in-memory collection of books. Listing order is
// insertion order; nothing is ever sorted.
//
// New ids are derived from the last element rather than a counter, so
// removing the tail book lets its id be handed out again.
type Store struct {
	mu    sync.RWMutex
	books []Book
}

// NewStore returns a Store holding a copy of seed, in order.
func NewStore(seed ...Book) *Store {
	s := &Store{}
	s.Reset(seed...)
	return s
}

// Reset replaces the whole collection with books.
func (s *Store) Reset(books ...Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append(make([]Book, 0, len(books)), books...)
}

// Len reports how many books are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.books)
}

// All returns every book in insertion order.
func (s *Store) All() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]Book, 0, len(s.books)), s.books...)
}

// FindByID returns the first book whose id matches.
func (s *Store) FindByID(id int) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.books[i], true
	}
	return Book{}, false
}

// Filter returns the books for which keep reports true, preserving order.
func (s *Store) Filter(keep func(Book) bool) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Book{}
	for _, b := range s.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// NextID returns the id the next appended book should receive: 0 for an
// empty store, otherwise the last book's id plus one.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nextID()
}

// Append adds book to the end of the collection as given.
func (s *Store) Append(book Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append(s.books, book)
}

// Insert assigns the next id to book and appends it in a single step.
func (s *Store) Insert(book Book) Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = s.nextID()
	s.books = append(s.books, book)
	return book
}

// ReplaceAt overwrites the book with the given id in place. The stored book
// always keeps id, whatever book.ID holds. It reports whether a book was found.
func (s *Store) ReplaceAt(id int, book Book) (Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Book{}, false
	}
	book.ID = id
	s.books[i] = book
	return book, true
}

// RemoveByID deletes the first book with the given id and reports whether
// anything was removed.
func (s *Store) RemoveByID(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return true
}

// callers hold mu
func (s *Store) nextID() int {
	if len(s.books) == 0 {
		return 0
	}
	return s.books[len(s.books)-1].ID + 1
}

// callers hold mu
func (s *Store) indexOf(id int) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
