// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/internal/platform/validate"
	"github.com/taibuivan/librarium/pkg/pagination"
	"github.com/taibuivan/librarium/pkg/uuidv7"
)

// # Service Layer

// Service manages authors and derives their statistics.
type Service struct {
	repo   Repository
	books  BookLister
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, books BookLister, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
		now:    time.Now,
	}
}

// # Author Lookups

// ListAuthors returns one page of authors with their book counts.
func (service *Service) ListAuthors(context context.Context, filter Filter, page pagination.Params) ([]*Author, pagination.Meta, error) {
	authors, total, err := service.repo.List(context, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return authors, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
GetAuthor returns an author together with all of its books.

Description: The author row and the book list are independent reads and are
fetched concurrently. Malformed ids are reported as not found.
*/
func (service *Service) GetAuthor(context context.Context, id string) (*Author, error) {
	author, books, err := service.loadWithBooks(context, id)
	if err != nil {
		return nil, err
	}

	author.Books = books
	author.BookCount = len(books)
	return author, nil
}

/*
GetStats computes the statistics of one author on read.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - Stats: See [ComputeStats]
  - error: [ErrNotFound] or store failures
*/
func (service *Service) GetStats(context context.Context, id string) (Stats, error) {
	author, books, err := service.loadWithBooks(context, id)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(author, books), nil
}

// Overview summarises the whole catalogue. See [ComputeOverview].
func (service *Service) Overview(context context.Context) (Overview, error) {
	counts, err := service.repo.BookCounts(context)
	if err != nil {
		return Overview{}, err
	}
	return ComputeOverview(counts), nil
}

func (service *Service) loadWithBooks(context context.Context, id string) (*Author, []*book.Book, error) {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return nil, nil, ErrNotFound
	}

	var (
		author *Author
		books  []*book.Book
	)

	group, groupCtx := errgroup.WithContext(context)
	group.Go(func() error {
		var err error
		author, err = service.repo.FindByID(groupCtx, id)
		return err
	})
	group.Go(func() error {
		var err error
		books, err = service.books.ListByAuthor(groupCtx, id)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	if books == nil {
		books = []*book.Book{}
	}
	return author, books, nil
}

// # Author Management

/*
CreateAuthor validates and persists a new author.

Returns:
  - *Author: The stored author
  - error: Validation, [ErrDuplicateEmail] or persistence errors
*/
func (service *Service) CreateAuthor(context context.Context, input Input) (*Author, error) {
	input = input.normalize()
	if err := service.validate(input); err != nil {
		return nil, err
	}

	author := &Author{ID: uuidv7.New()}
	input.apply(author)

	if err := service.repo.Create(context, author); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "author_created", slog.String("author_id", author.ID))
	return author, nil
}

// UpdateAuthor replaces every writable field of an existing author.
func (service *Service) UpdateAuthor(context context.Context, id string, input Input) (*Author, error) {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return nil, ErrNotFound
	}

	input = input.normalize()
	if err := service.validate(input); err != nil {
		return nil, err
	}

	author := &Author{ID: id}
	input.apply(author)

	if err := service.repo.Update(context, author); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "author_updated", slog.String("author_id", id))
	return service.repo.FindByID(context, id)
}

// DeleteAuthor removes an author that owns no books.
func (service *Service) DeleteAuthor(context context.Context, id string) error {
	id, ok := uuidv7.Canonical(id)
	if !ok {
		return ErrNotFound
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "author_deleted", slog.String("author_id", id))
	return nil
}

func (service *Service) validate(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLen)
	validator.Required(FieldEmail, input.Email)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, MaxBioLen)
	}
	if input.Nationality != nil {
		validator.MaxLen(FieldNationality, *input.Nationality, MaxNationalityLen)
	}
	if input.BirthYear != nil {
		validator.Range(FieldBirthYear, *input.BirthYear, 0, service.now().Year())
	}

	return validator.Err()
}
