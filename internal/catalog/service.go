package catalog

import (
	"fmt"
	"strings"

	"github.com/aoideee/book-catalog/internal/validator"
)

// Service validates catalog requests and applies them to a Store.
//
// Constraint violations are returned as *validator.ValidationError before the
// store is touched; missing books are reported with errors wrapping ErrNotFound.
type Service struct {
	store *Store
}

// NewService creates a Service backed by store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ListAll returns every book in insertion order.
func (s *Service) ListAll() []Book {
	return s.store.All()
}

// GetByID returns the book with the given id.
func (s *Service) GetByID(id int) (Book, error) {
	v := validator.New()
	v.Check(id > 0, "id", "must be greater than 0")
	if err := v.Err(); err != nil {
		return Book{}, err
	}

	book, ok := s.store.FindByID(id)
	if !ok {
		return Book{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return book, nil
}

// GetByTitle returns the first book whose title matches, ignoring case.
func (s *Service) GetByTitle(title string) (Book, error) {
	v := validator.New()
	v.Check(title != "", "title", "must be provided")
	if err := v.Err(); err != nil {
		return Book{}, err
	}

	matches := s.store.Filter(func(b Book) bool {
		return strings.EqualFold(b.Title, title)
	})
	if len(matches) == 0 {
		return Book{}, fmt.Errorf("%w: title %q", ErrNotFound, title)
	}
	return matches[0], nil
}

// GetByRating returns the books rated exactly rating. Queries accept 1-5
// even though new books may only be rated 1-4.
func (s *Service) GetByRating(rating int) ([]Book, error) {
	v := validator.New()
	v.Check(rating >= 1 && rating <= 5, "rating", "must be between 1 and 5")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.store.Filter(func(b Book) bool {
		return b.Rating == rating
	}), nil
}

// GetByPublishedDate returns the books published in year.
func (s *Service) GetByPublishedDate(year int) ([]Book, error) {
	v := validator.New()
	v.Check(year > 0, "published_date", "must be greater than 0")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.store.Filter(func(b Book) bool {
		return b.PublishedDate == year
	}), nil
}

// GetByAuthor returns the books whose author matches, ignoring case.
func (s *Service) GetByAuthor(author string) ([]Book, error) {
	v := validator.New()
	v.Check(author != "", "author", "must be provided")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.store.Filter(func(b Book) bool {
		return strings.EqualFold(b.Author, author)
	}), nil
}

// GetByCategory returns the books filed under category, ignoring case.
// Books without a category never match.
func (s *Service) GetByCategory(category string) ([]Book, error) {
	v := validator.New()
	v.Check(category != "", "category", "must be provided")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.store.Filter(func(b Book) bool {
		return strings.EqualFold(b.Category, category)
	}), nil
}

// Create validates req, assigns the next id and appends the new book.
// Any id present in req is ignored.
func (s *Service) Create(req BookRequest) (Book, error) {
	v := validator.New()
	v.Struct(req)
	if err := v.Err(); err != nil {
		return Book{}, err
	}

	return s.store.Insert(req.book()), nil
}

// Update replaces every field of the book with the given id with the values
// in req. The book keeps id regardless of req.ID.
func (s *Service) Update(id int, req BookRequest) (Book, error) {
	v := validator.New()
	v.Struct(req)
	if err := v.Err(); err != nil {
		return Book{}, err
	}

	book, ok := s.store.ReplaceAt(id, req.book())
	if !ok {
		return Book{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return book, nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(id int) error {
	v := validator.New()
	v.Check(id > 0, "id", "must be greater than 0")
	if err := v.Err(); err != nil {
		return err
	}

	if !s.store.RemoveByID(id) {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}
