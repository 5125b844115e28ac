// Package catalog holds the in-memory book catalog: an ordered Store that
// assigns identifiers and a Service that validates input before touching it.
package catalog

import "errors"

// ErrNotFound is returned when no book matches the requested id or title.
var ErrNotFound = errors.New("book not found")

// Book is a single catalog entry.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"` // year
	Category      string `json:"category,omitempty"`
}

// BookRequest is the client-supplied shape for creating or replacing a book.
// ID is accepted so clients may echo a book back, but it is always ignored.
type BookRequest struct {
	ID            *int   `json:"id,omitempty"`
	Title         string `json:"title"          validate:"required,min=3"`
	Author        string `json:"author"         validate:"required,min=1"`
	Description   string `json:"description"    validate:"required,min=1,max=100"`
	Rating        int    `json:"rating"         validate:"gt=0,lt=5"`
	PublishedDate int    `json:"published_date" validate:"gt=0"`
	Category      string `json:"category,omitempty" validate:"omitempty,max=50"`
}

func (r BookRequest) book() Book {
	return Book{
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		Rating:        r.Rating,
		PublishedDate: r.PublishedDate,
		Category:      r.Category,
	}
}

// SeedBooks returns the sample catalog loaded at startup. Seed entries are
// not subject to BookRequest validation, so several carry a rating of 5.
func SeedBooks() []Book {
	return []Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Description: "A novel set in the Roaring Twenties.", Rating: 5, PublishedDate: 1925},
		{ID: 2, Title: "1984", Author: "George Orwell", Description: "A dystopian novel about totalitarianism.", Rating: 5, PublishedDate: 1949},
		{ID: 3, Title: "To Kill a Mockingbird", Author: "Harper Lee", Description: "A novel about racial injustice in the Deep South.", Rating: 5, PublishedDate: 1960},
		{ID: 4, Title: "The Catcher in the Rye", Author: "J.D. Salinger", Description: "A story about teenage rebellion and angst.", Rating: 4, PublishedDate: 1951},
		{ID: 5, Title: "Pride and Prejudice", Author: "Jane Austen", Description: "A classic romance novel.", Rating: 5, PublishedDate: 1813},
		{ID: 6, Title: "The Hobbit", Author: "J.R.R. Tolkien", Description: "A fantasy novel about a hobbit's adventure.", Rating: 5, PublishedDate: 1937},
	}
}
