// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/librarium/internal/core/author"
	"github.com/taibuivan/librarium/pkg/pointer"
	"github.com/taibuivan/librarium/pkg/slice"
)

// AuthorRepository implements [author.Repository] over a [Store].
type AuthorRepository struct {
	store *Store
}

var _ author.Repository = (*AuthorRepository)(nil)

func matchesAuthor(filter author.Filter, candidate *author.Author) bool {
	if filter.Query == "" {
		return true
	}

	return containsFold(candidate.Name, filter.Query) ||
		containsFold(candidate.Email, filter.Query) ||
		containsFold(pointer.Val(candidate.Bio), filter.Query) ||
		containsFold(pointer.Val(candidate.Nationality), filter.Query)
}

func compareByName(x, y *author.Author) int {
	return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID, y.ID))
}

// snapshotLocked clones an author and fills BookCount. Callers hold the lock.
func (repository *AuthorRepository) snapshotLocked(stored *author.Author) *author.Author {
	clone := cloneAuthor(stored)
	clone.BookCount = repository.store.bookCountLocked(stored.ID)
	return clone
}

func (repository *AuthorRepository) List(_ context.Context, filter author.Filter, limit, offset int) ([]*author.Author, int, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	matched := make([]*author.Author, 0)
	for _, candidate := range repository.store.authors {
		if matchesAuthor(filter, candidate) {
			matched = append(matched, candidate)
		}
	}
	slices.SortFunc(matched, compareByName)

	start := min(max(offset, 0), len(matched))
	end := min(start+limit, len(matched))

	return slice.Map(matched[start:end], repository.snapshotLocked), len(matched), nil
}

func (repository *AuthorRepository) FindByID(_ context.Context, id string) (*author.Author, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	stored, found := repository.store.authors[id]
	if !found {
		return nil, author.ErrNotFound
	}
	return repository.snapshotLocked(stored), nil
}

func (repository *AuthorRepository) BookCounts(_ context.Context) ([]author.BookCount, error) {
	repository.store.mu.RLock()
	defer repository.store.mu.RUnlock()

	all := make([]*author.Author, 0, len(repository.store.authors))
	for _, stored := range repository.store.authors {
		all = append(all, stored)
	}
	slices.SortFunc(all, compareByName)

	return slice.Map(all, func(stored *author.Author) author.BookCount {
		return author.BookCount{
			AuthorID: stored.ID,
			Name:     stored.Name,
			Books:    repository.store.bookCountLocked(stored.ID),
		}
	}), nil
}

// emailTakenLocked reports whether another author already uses email.
func (repository *AuthorRepository) emailTakenLocked(id, email string) bool {
	for _, stored := range repository.store.authors {
		if stored.ID != id && stored.Email == email {
			return true
		}
	}
	return false
}

func (repository *AuthorRepository) Create(_ context.Context, candidate *author.Author) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if repository.emailTakenLocked(candidate.ID, candidate.Email) {
		return author.ErrDuplicateEmail
	}

	now := repository.store.now()
	candidate.CreatedAt, candidate.UpdatedAt = now, now
	repository.store.authors[candidate.ID] = cloneAuthor(candidate)
	return nil
}

func (repository *AuthorRepository) Update(_ context.Context, candidate *author.Author) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	existing, found := repository.store.authors[candidate.ID]
	if !found {
		return author.ErrNotFound
	}
	if repository.emailTakenLocked(candidate.ID, candidate.Email) {
		return author.ErrDuplicateEmail
	}

	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = repository.store.now()
	repository.store.authors[candidate.ID] = cloneAuthor(candidate)
	return nil
}

func (repository *AuthorRepository) Delete(_ context.Context, id string) error {
	repository.store.mu.Lock()
	defer repository.store.mu.Unlock()

	if _, found := repository.store.authors[id]; !found {
		return author.ErrNotFound
	}
	if repository.store.bookCountLocked(id) > 0 {
		return author.ErrHasBooks
	}

	delete(repository.store.authors, id)
	return nil
}
