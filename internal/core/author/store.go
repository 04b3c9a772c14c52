// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"

	"github.com/taibuivan/librarium/internal/core/book"
)

// Repository defines the data access contract for authors.
type Repository interface {

	/*
		List returns a filtered, paginated slice of authors and the total count.

		Description: Ordered by name, then id. Each author carries BookCount.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Author: The page, never nil
		  - int: Total count matching filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error)

	// FindByID returns the author with BookCount set, or [ErrNotFound].
	FindByID(context context.Context, id string) (*Author, error)

	// BookCounts returns every author's book count ordered by name, then id.
	BookCounts(context context.Context) ([]BookCount, error)

	/*
		Create persists a new author.

		Returns:
		  - error: [ErrDuplicateEmail] or persistence failures
	*/
	Create(context context.Context, author *Author) error

	// Update replaces every writable column of an existing author.
	Update(context context.Context, author *Author) error

	/*
		Delete removes an author.

		Returns:
		  - error: [ErrNotFound], [ErrHasBooks] or persistence failures
	*/
	Delete(context context.Context, id string) error
}

// BookLister loads the books of one author in stable collection order.
// [book.Service] and the book repositories satisfy it.
type BookLister interface {
	ListByAuthor(context context.Context, authorID string) ([]*book.Book, error)
}
