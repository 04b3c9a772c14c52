// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strings"
	"time"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/pkg/pointer"
	"github.com/taibuivan/librarium/pkg/uuidv7"
)

// # Domain Models

// Book is a single catalogue title owned by exactly one author.
type Book struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	ISBN          string     `json:"isbn"`
	PublishedYear *int       `json:"published_year"`
	Genre         *string    `json:"genre"`
	Pages         *int       `json:"pages"`
	Author        *AuthorRef `json:"author,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AuthorRef is the owning author as embedded in book listings.
type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Input is the write payload for creating or replacing a book.
type Input struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	ISBN          string  `json:"isbn"`
	PublishedYear *int    `json:"published_year"`
	Genre         *string `json:"genre"`
	Pages         *int    `json:"pages"`
	AuthorID      string  `json:"author_id"`
}

// normalize trims text fields; blank optional strings become nil.
func (input Input) normalize() Input {
	input.Title = strings.TrimSpace(input.Title)
	input.ISBN = strings.TrimSpace(input.ISBN)
	input.AuthorID = strings.TrimSpace(input.AuthorID)
	if id, ok := uuidv7.Canonical(input.AuthorID); ok {
		input.AuthorID = id
	}
	input.Description = pointer.TrimmedOrNil(input.Description)
	input.Genre = pointer.TrimmedOrNil(input.Genre)
	return input
}

// apply copies the input onto a book entity.
func (input Input) apply(book *Book) {
	book.Title = input.Title
	book.Description = input.Description
	book.ISBN = input.ISBN
	book.PublishedYear = input.PublishedYear
	book.Genre = input.Genre
	book.Pages = input.Pages
	book.AuthorID = input.AuthorID
}

// Field names used in validation errors.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldISBN          = "isbn"
	FieldPublishedYear = "published_year"
	FieldGenre         = "genre"
	FieldPages         = "pages"
	FieldAuthorID      = "author_id"
)

// Limits enforced on write payloads.
const (
	MaxTitleLen       = 300
	MaxISBNLen        = 20
	MaxDescriptionLen = 5000
	MaxGenreLen       = 100
)

// # Domain Errors

var (
	// ErrNotFound is returned for unknown or malformed book ids.
	ErrNotFound = apperr.NotFound("Book")

	// ErrDuplicateISBN is returned when another book already carries the ISBN.
	ErrDuplicateISBN = apperr.Conflict("A book with this ISBN already exists")

	// ErrUnknownAuthor is returned when author_id does not reference an existing author.
	ErrUnknownAuthor = apperr.Unprocessable("Author does not exist")
)
