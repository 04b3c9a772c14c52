// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for the book catalogue.
type Repository interface {

	/*
		Count returns the number of books matching filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter (empty fields are not applied)

		Returns:
		  - int: Matching row count
		  - error: Database retrieval failures
	*/
	Count(context context.Context, filter Filter) (int, error)

	/*
		Search returns one page of books matching filter, each with its author.

		Description: Rows are ordered by sort, NULL published years last in
		both directions, then by id ascending.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - sort: Sort
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: The page, never nil
		  - error: Database retrieval failures
	*/
	Search(context context.Context, filter Filter, sort Sort, limit, offset int) ([]*Book, error)

	/*
		ListByAuthor returns every book owned by authorID.

		Description: Ordered by published year ascending (unknown years last),
		then creation time, then id.
	*/
	ListByAuthor(context context.Context, authorID string) ([]*Book, error)

	// ListGenres returns the distinct non-empty genres, sorted alphabetically.
	ListGenres(context context.Context) ([]string, error)

	// FindByID returns the book with its author, or [ErrNotFound].
	FindByID(context context.Context, id string) (*Book, error)

	/*
		Create persists a new book.

		Returns:
		  - error: [ErrDuplicateISBN], [ErrUnknownAuthor] or persistence failures
	*/
	Create(context context.Context, book *Book) error

	// Update replaces every writable column of an existing book.
	Update(context context.Context, book *Book) error

	// Delete removes a book, or returns [ErrNotFound].
	Delete(context context.Context, id string) error
}

// # Genre Cache

// GenreCache stores the catalogue's genre list between writes.
type GenreCache interface {
	// Get returns the cached list and whether it was present.
	Get(context context.Context) ([]string, bool, error)

	// Set stores the list.
	Set(context context.Context, genres []string) error

	// Invalidate drops the cached list.
	Invalidate(context context.Context) error
}

// NopGenreCache is used when no Redis URL is configured. It never hits.
type NopGenreCache struct{}

func (NopGenreCache) Get(context.Context) ([]string, bool, error) { return nil, false, nil }
func (NopGenreCache) Set(context.Context, []string) error         { return nil }
func (NopGenreCache) Invalidate(context.Context) error            { return nil }
