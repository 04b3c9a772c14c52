// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/librarium/internal/platform/validate"
	"github.com/taibuivan/librarium/pkg/pagination"
	"github.com/taibuivan/librarium/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates book search, genre lookups and catalogue writes.
type Service struct {
	repo   Repository
	cache  GenreCache
	logger *slog.Logger
	now    func() time.Time

	// genreWrites counts catalogue writes; a genre read that overlaps one is not cached.
	genreWrites atomic.Uint64
}

// NewService constructs a new [Service]. A nil cache disables genre caching.
func NewService(repo Repository, cache GenreCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopGenreCache{}
	}

	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// # Search

/*
Search runs one page of a book search.

Description: The count and the page fetch are independent reads, so they are
issued concurrently and the call waits for both. Either failing fails the
search. A filter that cannot match (see [Filter.Unsatisfiable]) yields the
empty page without touching the store.

Parameters:
  - context: context.Context
  - params: SearchParams (already normalised by [ParseSearchParams])

Returns:
  - []*Book: The requested page, never nil
  - pagination.Meta: Page, limit, total and navigation flags
  - error: Store failures
*/
func (service *Service) Search(context context.Context, params SearchParams) ([]*Book, pagination.Meta, error) {
	page := params.Page

	if params.Filter.Unsatisfiable() {
		return []*Book{}, pagination.NewMeta(page.Page, page.Limit, 0), nil
	}

	var (
		total int
		books []*Book
	)

	group, groupCtx := errgroup.WithContext(context)

	group.Go(func() error {
		var err error
		total, err = service.repo.Count(groupCtx, params.Filter)
		return err
	})

	group.Go(func() error {
		var err error
		books, err = service.repo.Search(groupCtx, params.Filter, params.Sort, page.Limit, page.Offset())
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, pagination.Meta{}, err
	}

	if books == nil {
		books = []*Book{}
	}

	return books, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Lookups

// GetBook returns a single book with its author. Malformed ids are reported as not found.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return nil, ErrNotFound
	}
	return service.repo.FindByID(context, id)
}

// ListByAuthor returns every book of one author in stable collection order.
func (service *Service) ListByAuthor(context context.Context, authorID string) ([]*Book, error) {
	return service.repo.ListByAuthor(context, authorID)
}

/*
ListGenres returns the distinct genres used across the catalogue.

Description: Served from the genre cache when possible. Cache failures are
logged and the store is queried directly; they never fail the request.

A miss refills the cache only if no write went through this service while
the store was read, so an invalidation cannot be overwritten by the list it
was meant to discard. Writes made by another process during that window are
not seen; the entry then stays stale until its TTL expires.
*/
func (service *Service) ListGenres(context context.Context) ([]string, error) {
	genres, found, err := service.cache.Get(context)
	if err != nil {
		service.logger.WarnContext(context, "genre_cache_read_failed", slog.Any("error", err))
	}
	if found {
		return genres, nil
	}

	writes := service.genreWrites.Load()

	genres, err = service.repo.ListGenres(context)
	if err != nil {
		return nil, err
	}

	if service.genreWrites.Load() != writes {
		service.logger.DebugContext(context, "genre_cache_fill_skipped")
		return genres, nil
	}

	if err := service.cache.Set(context, genres); err != nil {
		service.logger.WarnContext(context, "genre_cache_write_failed", slog.Any("error", err))
	}

	return genres, nil
}

// # Catalogue Management

/*
CreateBook validates and persists a new book.

Parameters:
  - context: context.Context
  - input: Input (write payload)

Returns:
  - *Book: The stored book, hydrated with its author
  - error: Validation, [ErrDuplicateISBN], [ErrUnknownAuthor] or persistence errors
*/
func (service *Service) CreateBook(context context.Context, input Input) (*Book, error) {
	input = input.normalize()
	if err := service.validate(input); err != nil {
		return nil, err
	}

	book := &Book{ID: uuidv7.New()}
	input.apply(book)

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.invalidateGenres(context)
	service.logger.InfoContext(context, "book_created",
		slog.String("book_id", book.ID),
		slog.String("author_id", book.AuthorID),
	)

	return service.repo.FindByID(context, book.ID)
}

// UpdateBook replaces every writable field of an existing book.
func (service *Service) UpdateBook(context context.Context, id string, input Input) (*Book, error) {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return nil, ErrNotFound
	}

	input = input.normalize()
	if err := service.validate(input); err != nil {
		return nil, err
	}

	book := &Book{ID: id}
	input.apply(book)

	if err := service.repo.Update(context, book); err != nil {
		return nil, err
	}

	service.invalidateGenres(context)
	service.logger.InfoContext(context, "book_updated", slog.String("book_id", id))

	return service.repo.FindByID(context, id)
}

// DeleteBook removes a book.
func (service *Service) DeleteBook(context context.Context, id string) error {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return ErrNotFound
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateGenres(context)
	service.logger.WarnContext(context, "book_deleted", slog.String("book_id", id))
	return nil
}

func (service *Service) validate(input Input) error {
	validator := &validate.Validator{}
	currentYear := service.now().Year()

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLen)
	validator.Required(FieldISBN, input.ISBN).MaxLen(FieldISBN, input.ISBN, MaxISBNLen)
	validator.Required(FieldAuthorID, input.AuthorID)
	if input.AuthorID != "" {
		validator.UUID(FieldAuthorID, input.AuthorID)
	}

	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, MaxDescriptionLen)
	}
	if input.Genre != nil {
		validator.MaxLen(FieldGenre, *input.Genre, MaxGenreLen)
	}
	if input.Pages != nil {
		validator.Custom(FieldPages, *input.Pages <= 0, "Must be a positive number")
	}
	if input.PublishedYear != nil {
		validator.Range(FieldPublishedYear, *input.PublishedYear, 0, currentYear+1)
	}

	return validator.Err()
}

func (service *Service) invalidateGenres(context context.Context) {
	service.genreWrites.Add(1)
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.WarnContext(context, "genre_cache_invalidate_failed", slog.Any("error", err))
	}
}
