// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book provides the PostgreSQL implementation of the book catalogue.

Search is split into two statements sharing one WHERE clause builder: a COUNT
for the pagination metadata and a LIMIT/OFFSET page fetch. The service runs
both concurrently. Every listing joins catalog.author so each row carries its
owner's id and name in a single round-trip.
*/
package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/librarium/internal/platform/database/schema"
	"github.com/taibuivan/librarium/internal/platform/dberr"
	"github.com/taibuivan/librarium/pkg/query"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed book store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// selectBook lists the columns read by [scanBook], book first then author.
var selectBook = fmt.Sprintf(`
	SELECT
		b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
		a.%s
	FROM %s b
	JOIN %s a ON a.%s = b.%s`,
	schema.CatalogBook.ID,
	schema.CatalogBook.AuthorID,
	schema.CatalogBook.Title,
	schema.CatalogBook.Description,
	schema.CatalogBook.ISBN,
	schema.CatalogBook.PublishedYear,
	schema.CatalogBook.Genre,
	schema.CatalogBook.Pages,
	schema.CatalogBook.CreatedAt,
	schema.CatalogBook.UpdatedAt,
	schema.CatalogAuthor.Name,
	schema.CatalogBook.Table,
	schema.CatalogAuthor.Table,
	schema.CatalogAuthor.ID,
	schema.CatalogBook.AuthorID,
)

// scanBook reads one row produced by [selectBook].
func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{Author: &AuthorRef{}}

	err := row.Scan(
		&book.ID, &book.AuthorID, &book.Title, &book.Description, &book.ISBN,
		&book.PublishedYear, &book.Genre, &book.Pages, &book.CreatedAt, &book.UpdatedAt,
		&book.Author.Name,
	)
	if err != nil {
		return nil, err
	}

	book.Author.ID = book.AuthorID
	return book, nil
}

// collectBooks drains rows into a non-nil slice.
func collectBooks(rows pgx.Rows, action string) ([]*Book, error) {
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		books = append(books, book)
	}

	return books, dberr.Wrap(rows.Err(), action)
}

// # Query Building

// whereClause renders the filter as AND-joined conditions.
// Empty filter fields contribute nothing.
func whereClause(filter Filter) *query.Where {
	where := &query.Where{}

	if filter.Title != "" {
		where.Add("b."+schema.CatalogBook.Title+" ILIKE $%d", query.Contains(filter.Title))
	}
	if filter.Genre != "" {
		where.Add("b."+schema.CatalogBook.Genre+" = $%d", filter.Genre)
	}
	if filter.AuthorID != "" {
		where.Add("b."+schema.CatalogBook.AuthorID+" = $%d", filter.AuthorID)
	}
	if filter.AuthorName != "" {
		where.Add("a."+schema.CatalogAuthor.Name+" ILIKE $%d", query.Contains(filter.AuthorName))
	}

	return where
}

// orderClause renders sort with NULLS LAST and the id tie-breaker.
func orderClause(sort Sort) string {
	column := "b." + schema.CatalogBook.CreatedAt
	switch sort.Field {
	case SortTitle:
		column = "lower(b." + schema.CatalogBook.Title + ")"
	case SortPublishedYear:
		column = "b." + schema.CatalogBook.PublishedYear
	}

	direction := "DESC"
	if sort.Direction == Asc {
		direction = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, b.%s ASC", column, direction, schema.CatalogBook.ID)
}

// # Repository Implementation

func (repository *postgresRepository) Count(context context.Context, filter Filter) (int, error) {
	where := whereClause(filter)
	statement := fmt.Sprintf(`SELECT count(*) FROM %s b JOIN %s a ON a.%s = b.%s`,
		schema.CatalogBook.Table, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
	) + where.String()

	var total int
	if err := repository.pool.QueryRow(context, statement, where.Args()...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_books")
	}
	return total, nil
}

func (repository *postgresRepository) Search(context context.Context, filter Filter, sort Sort, limit, offset int) ([]*Book, error) {
	where := whereClause(filter)
	page, args := where.Paginate(limit, offset)

	rows, err := repository.pool.Query(context, selectBook+where.String()+orderClause(sort)+page, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_books")
	}
	return collectBooks(rows, "search_books")
}

func (repository *postgresRepository) ListByAuthor(context context.Context, authorID string) ([]*Book, error) {
	statement := selectBook + fmt.Sprintf(`
		WHERE b.%s = $1
		ORDER BY b.%s ASC NULLS LAST, b.%s ASC, b.%s ASC`,
		schema.CatalogBook.AuthorID,
		schema.CatalogBook.PublishedYear, schema.CatalogBook.CreatedAt, schema.CatalogBook.ID,
	)

	rows, err := repository.pool.Query(context, statement, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books_by_author")
	}
	return collectBooks(rows, "list_books_by_author")
}

func (repository *postgresRepository) ListGenres(context context.Context) ([]string, error) {
	statement := fmt.Sprintf(`
		SELECT DISTINCT btrim(%[1]s) AS genre
		FROM %[2]s
		WHERE %[1]s IS NOT NULL AND btrim(%[1]s) <> ''
		ORDER BY genre`,
		schema.CatalogBook.Genre, schema.CatalogBook.Table,
	)

	rows, err := repository.pool.Query(context, statement)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}

	genres, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	statement := selectBook + fmt.Sprintf(" WHERE b.%s = $1", schema.CatalogBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, statement, id))
	if err != nil {
		return nil, classify(err, "find_book")
	}
	return book, nil
}

func (repository *postgresRepository) Create(context context.Context, book *Book) error {
	statement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.ID, schema.CatalogBook.AuthorID, schema.CatalogBook.Title, schema.CatalogBook.Description,
		schema.CatalogBook.ISBN, schema.CatalogBook.PublishedYear, schema.CatalogBook.Genre, schema.CatalogBook.Pages,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, statement,
		book.ID, book.AuthorID, book.Title, book.Description,
		book.ISBN, book.PublishedYear, book.Genre, book.Pages,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return classify(err, "create_book")
}

func (repository *postgresRepository) Update(context context.Context, book *Book) error {
	statement := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s`,
		schema.CatalogBook.Table,
		schema.CatalogBook.AuthorID, schema.CatalogBook.Title, schema.CatalogBook.Description, schema.CatalogBook.ISBN,
		schema.CatalogBook.PublishedYear, schema.CatalogBook.Genre, schema.CatalogBook.Pages, schema.CatalogBook.UpdatedAt,
		schema.CatalogBook.ID,
		schema.CatalogBook.CreatedAt, schema.CatalogBook.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, statement,
		book.ID, book.AuthorID, book.Title, book.Description,
		book.ISBN, book.PublishedYear, book.Genre, book.Pages,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return classify(err, "update_book")
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	statement := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogBook.Table, schema.CatalogBook.ID)

	result, err := repository.pool.Exec(context, statement, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps book-specific constraint violations before falling back to [dberr.Wrap].
func classify(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	switch dberr.Constraint(err) {
	case schema.CatalogBookISBNKey:
		return ErrDuplicateISBN.WithCause(err)
	case schema.CatalogBookAuthorIDFkey:
		return ErrUnknownAuthor.WithCause(err)
	}

	return dberr.Wrap(err, action)
}
