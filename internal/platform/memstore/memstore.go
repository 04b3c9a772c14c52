// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is an in-process implementation of the author and book
repositories.

It mirrors the PostgreSQL stores closely enough to stand in for them: the same
unique and foreign key rules, the same ordering (NULL years last, id as the
final tie-breaker) and the same case-insensitive substring matching. It backs
STORE_DRIVER=memory and the service tests.

# Concurrency

A single RWMutex guards both tables, so a book write and the author lookup it
depends on observe one consistent state.
*/
package memstore

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/taibuivan/librarium/internal/core/author"
	"github.com/taibuivan/librarium/internal/core/book"
)

// Store holds the shared tables.
type Store struct {
	mu      sync.RWMutex
	authors map[string]*author.Author
	books   map[string]*book.Book
	now     func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		authors: make(map[string]*author.Author),
		books:   make(map[string]*book.Book),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Authors returns the author repository view of the store.
func (store *Store) Authors() *AuthorRepository {
	return &AuthorRepository{store: store}
}

// Books returns the book repository view of the store.
func (store *Store) Books() *BookRepository {
	return &BookRepository{store: store}
}

// # Helpers

// containsFold reports whether fragment occurs in text ignoring case.
// A Caser is stateful, so a fresh one is built per call.
func containsFold(text, fragment string) bool {
	return strings.Contains(cases.Fold().String(text), cases.Fold().String(fragment))
}

// bookCountLocked counts books owned by authorID. Callers hold the lock.
func (store *Store) bookCountLocked(authorID string) int {
	count := 0
	for _, stored := range store.books {
		if stored.AuthorID == authorID {
			count++
		}
	}
	return count
}

func cloneAuthor(source *author.Author) *author.Author {
	clone := *source
	clone.Books = nil
	return &clone
}

// cloneBook copies a stored book and attaches its owner reference.
func (store *Store) cloneBook(source *book.Book) *book.Book {
	clone := *source
	if owner, found := store.authors[source.AuthorID]; found {
		clone.Author = &book.AuthorRef{ID: owner.ID, Name: owner.Name}
	}
	return &clone
}
