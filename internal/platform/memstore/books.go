// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/pkg/slice"
)

// BookRepository implements [book.Repository] over a [Store].
type BookRepository struct {
	store *Store
}

var _ book.Repository = (*BookRepository)(nil)

func (repository *BookRepository) matches(filter book.Filter, candidate *book.Book) bool {
	if filter.Title != "" && !containsFold(candidate.Title, filter.Title) {
		return false
	}
	if filter.Genre != "" && (candidate.Genre == nil || *candidate.Genre != filter.Genre) {
		return false
	}
	if filter.AuthorID != "" && candidate.AuthorID != filter.AuthorID {
		return false
	}
	if filter.AuthorName != "" {
		owner, found := repository.store.authors[candidate.AuthorID]
		if !found || !containsFold(owner.Name, filter.AuthorName) {
			return false
		}
	}
	return true
}

// filterLocked returns the stored books matching filter. Callers hold the lock.
func (repository *BookRepository) filterLocked(filter book.Filter) []*book.Book {
	matched := make([]*book.Book, 0)
	for _, candidate := range repository.store.books {
		if repository.matches(filter, candidate) {
			matched = append(matched, candidate)
		}
	}
	return matched
}

// compareNullable orders nil after every value regardless of direction.
func compareNullable(x, y *int, direction book.SortDirection) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return 1
	case y == nil:
		return -1
	}

	if direction == book.Asc {
		return cmp.Compare(*x, *y)
	}
	return cmp.Compare(*y, *x)
}

// sortBooks orders books the way the PostgreSQL store does.
func sortBooks(books []*book.Book, sort book.Sort) {
	slices.SortFunc(books, func(x, y *book.Book) int {
		var result int
		switch sort.Field {
		case book.SortTitle:
			result = strings.Compare(cases.Fold().String(x.Title), cases.Fold().String(y.Title))
			if sort.Direction == book.Desc {
				result = -result
			}
		case book.SortPublishedYear:
			result = compareNullable(x.PublishedYear, y.PublishedYear, sort.Direction)
		default:
			result = x.CreatedAt.Compare(y.CreatedAt)
			if sort.Direction == book.Desc {
				result = -result
			}
		}

		if result != 0 {
			return result
		}
		return strings.Compare(x.ID, y.ID)
	})
}

func (repository *BookRepository) Count(_ context.Context, filter book.Filter) (int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	return len(repository.filterLocked(filter)), nil
}

func (repository *BookRepository) Search(_ context.Context, filter book.Filter, sort book.Sort, limit, offset int) ([]*book.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	matched := repository.filterLocked(filter)
	sortBooks(matched, sort)

	start := min(max(offset, 0), len(matched))
	end := min(start+limit, len(matched))

	return slice.Map(matched[start:end], repository.store.cloneBook), nil
}

func (repository *BookRepository) ListByAuthor(_ context.Context, authorID string) ([]*book.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	owned := repository.filterLocked(book.Filter{AuthorID: authorID})
	slices.SortFunc(owned, func(x, y *book.Book) int {
		if result := compareNullable(x.PublishedYear, y.PublishedYear, book.Asc); result != 0 {
			return result
		}
		if result := x.CreatedAt.Compare(y.CreatedAt); result != 0 {
			return result
		}
		return strings.Compare(x.ID, y.ID)
	})

	return slice.Map(owned, repository.store.cloneBook), nil
}

func (repository *BookRepository) ListGenres(_ context.Context) ([]string, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	genres := make([]string, 0)
	for _, stored := range repository.store.books {
		if stored.Genre == nil {
			continue
		}
		if genre := strings.TrimSpace(*stored.Genre); genre != "" {
			genres = append(genres, genre)
		}
	}

	slices.Sort(genres)
	return slices.Compact(genres), nil
}

func (repository *BookRepository) FindByID(_ context.Context, id string) (*book.Book, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	stored, found := repository.store.books[id]
	if !found {
		return nil, book.ErrNotFound
	}
	return repository.store.cloneBook(stored), nil
}

// checkWriteLocked enforces the ISBN uniqueness and author foreign key.
func (repository *BookRepository) checkWriteLocked(candidate *book.Book) error {
	for _, stored := range repository.store.books {
		if stored.ID != candidate.ID && stored.ISBN == candidate.ISBN {
			return book.ErrDuplicateISBN
		}
	}
	if _, found := repository.store.authors[candidate.AuthorID]; !found {
		return book.ErrUnknownAuthor
	}
	return nil
}

func (repository *BookRepository) Create(_ context.Context, candidate *book.Book) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if err := repository.checkWriteLocked(candidate); err != nil {
		return err
	}

	now := repository.store.now()
	candidate.CreatedAt, candidate.UpdatedAt = now, now

	stored := *candidate
	stored.Author = nil
	repository.store.books[stored.ID] = &stored
	return nil
}

func (repository *BookRepository) Update(_ context.Context, candidate *book.Book) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	existing, found := repository.store.books[candidate.ID]
	if !found {
		return book.ErrNotFound
	}
	if err := repository.checkWriteLocked(candidate); err != nil {
		return err
	}

	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = repository.store.now()

	stored := *candidate
	stored.Author = nil
	repository.store.books[stored.ID] = &stored
	return nil
}

func (repository *BookRepository) Delete(_ context.Context, id string) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if _, found := repository.store.books[id]; !found {
		return book.ErrNotFound
	}
	delete(repository.store.books, id)
	return nil
}
