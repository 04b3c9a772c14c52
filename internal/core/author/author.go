// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"strings"
	"time"

	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/pkg/pointer"
)

// Author is a writer in the catalogue. It owns zero or more books.
type Author struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Bio         *string      `json:"bio"`
	Nationality *string      `json:"nationality"`
	BirthYear   *int         `json:"birth_year"`
	BookCount   int          `json:"book_count"`
	Books       []*book.Book `json:"books,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Input is the write payload for creating or replacing an author.
type Input struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Bio         *string `json:"bio"`
	Nationality *string `json:"nationality"`
	BirthYear   *int    `json:"birth_year"`
}

func (input Input) normalize() Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Bio = pointer.TrimmedOrNil(input.Bio)
	input.Nationality = pointer.TrimmedOrNil(input.Nationality)
	return input
}

func (input Input) apply(author *Author) {
	author.Name = input.Name
	author.Email = input.Email
	author.Bio = input.Bio
	author.Nationality = input.Nationality
	author.BirthYear = input.BirthYear
}

// Filter holds the parameters for a paginated author listing.
type Filter struct {
	// Query matches name, email, bio or nationality case-insensitively.
	Query string
}

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldBio         = "bio"
	FieldNationality = "nationality"
	FieldBirthYear   = "birth_year"
)

const (
	MaxNameLen        = 200
	MaxBioLen         = 2000
	MaxNationalityLen = 100
)

var (
	// ErrNotFound is returned for unknown or malformed author ids.
	ErrNotFound = apperr.NotFound("Author")

	// ErrDuplicateEmail is returned when another author already uses the email.
	ErrDuplicateEmail = apperr.Conflict("An author with this email already exists")

	// ErrHasBooks is returned when deleting an author that still owns books.
	ErrHasBooks = apperr.Conflict("Author still has books and cannot be deleted")
)
