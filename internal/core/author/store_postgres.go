// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package author provides the PostgreSQL implementation for author records.

Listings compute each author's book count with a correlated sub-query and the
total with COUNT(*) OVER(), so one statement serves both the page and its
pagination metadata.
*/
package author

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

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed author store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// selectAuthor lists the columns read by [scanAuthor]. The caller appends a
// trailing column list starting with a comma, or nothing.
var selectAuthor = fmt.Sprintf(`
	SELECT
		a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
		(SELECT count(*) FROM %s b WHERE b.%s = a.%s) AS bookcount`,
	schema.CatalogAuthor.ID,
	schema.CatalogAuthor.Name,
	schema.CatalogAuthor.Email,
	schema.CatalogAuthor.Bio,
	schema.CatalogAuthor.Nationality,
	schema.CatalogAuthor.BirthYear,
	schema.CatalogAuthor.CreatedAt,
	schema.CatalogAuthor.UpdatedAt,
	schema.CatalogBook.Table,
	schema.CatalogBook.AuthorID,
	schema.CatalogAuthor.ID,
)

func authorFields(author *Author) []any {
	return []any{
		&author.ID, &author.Name, &author.Email, &author.Bio, &author.Nationality,
		&author.BirthYear, &author.CreatedAt, &author.UpdatedAt, &author.BookCount,
	}
}

/*
List returns a filtered, paginated slice of authors and the total count.

Description: The total comes from a window function. When the requested page
lies past the last row the window yields nothing, so the total is then read
with a separate COUNT.
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	where := &query.Where{}
	if filter.Query != "" {
		where.Add(fmt.Sprintf("(a.%s ILIKE $%%[1]d OR a.%s ILIKE $%%[1]d OR a.%s ILIKE $%%[1]d OR a.%s ILIKE $%%[1]d)",
			schema.CatalogAuthor.Name, schema.CatalogAuthor.Email, schema.CatalogAuthor.Bio, schema.CatalogAuthor.Nationality,
		), query.Contains(filter.Query))
	}

	page, args := where.Paginate(limit, offset)
	statement := selectAuthor + `, COUNT(*) OVER() AS total` +
		fmt.Sprintf(" FROM %s a", schema.CatalogAuthor.Table) + where.String() +
		fmt.Sprintf(" ORDER BY a.%s ASC, a.%s ASC", schema.CatalogAuthor.Name, schema.CatalogAuthor.ID) + page

	rows, err := repository.pool.Query(context, statement, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0)
	total := 0
	for rows.Next() {
		author := &Author{}
		if err := rows.Scan(append(authorFields(author), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}

	if len(authors) == 0 && offset > 0 {
		countStatement := fmt.Sprintf("SELECT count(*) FROM %s a", schema.CatalogAuthor.Table) + where.String()
		if err := repository.pool.QueryRow(context, countStatement, where.Args()...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_authors")
		}
	}

	return authors, total, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Author, error) {
	statement := selectAuthor + fmt.Sprintf(" FROM %s a WHERE a.%s = $1", schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	author := &Author{}
	if err := repository.pool.QueryRow(context, statement, id).Scan(authorFields(author)...); err != nil {
		return nil, classify(err, "find_author")
	}
	return author, nil
}

func (repository *postgresRepository) BookCounts(context context.Context) ([]BookCount, error) {
	statement := fmt.Sprintf(`
		SELECT a.%[1]s, a.%[2]s, count(b.%[3]s)
		FROM %[4]s a
		LEFT JOIN %[5]s b ON b.%[6]s = a.%[1]s
		GROUP BY a.%[1]s, a.%[2]s
		ORDER BY a.%[2]s ASC, a.%[1]s ASC`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogBook.ID,
		schema.CatalogAuthor.Table, schema.CatalogBook.Table, schema.CatalogBook.AuthorID,
	)

	rows, err := repository.pool.Query(context, statement)
	if err != nil {
		return nil, dberr.Wrap(err, "count_books_per_author")
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BookCount, error) {
		var count BookCount
		err := row.Scan(&count.AuthorID, &count.Name, &count.Books)
		return count, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "count_books_per_author")
	}
	return counts, nil
}

func (repository *postgresRepository) Create(context context.Context, author *Author) error {
	statement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Email,
		schema.CatalogAuthor.Bio, schema.CatalogAuthor.Nationality, schema.CatalogAuthor.BirthYear,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, statement,
		author.ID, author.Name, author.Email, author.Bio, author.Nationality, author.BirthYear,
	).Scan(&author.CreatedAt, &author.UpdatedAt)

	return classify(err, "create_author")
}

func (repository *postgresRepository) Update(context context.Context, author *Author) error {
	statement := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s`,
		schema.CatalogAuthor.Table,
		schema.CatalogAuthor.Name, schema.CatalogAuthor.Email, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.Nationality, schema.CatalogAuthor.BirthYear, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, statement,
		author.ID, author.Name, author.Email, author.Bio, author.Nationality, author.BirthYear,
	).Scan(&author.CreatedAt, &author.UpdatedAt)

	return classify(err, "update_author")
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	statement := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	result, err := repository.pool.Exec(context, statement, id)
	if err != nil {
		return classify(err, "delete_author")
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps author-specific constraint violations before falling back to [dberr.Wrap].
func classify(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	switch dberr.Constraint(err) {
	case schema.CatalogAuthorEmailKey:
		return ErrDuplicateEmail.WithCause(err)
	case schema.CatalogBookAuthorIDFkey:
		return ErrHasBooks.WithCause(err)
	}

	return dberr.Wrap(err, action)
}
