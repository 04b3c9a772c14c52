// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed loads a small demo catalogue into the PostgreSQL store.
//
// Records go through the author and book services, so the same validation and
// normalisation apply as for API writes. Existing authors (matched by email)
// and books (matched by ISBN) are left untouched, which makes the command
// safe to re-run. With -reset the schema is dropped and re-created first.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/taibuivan/librarium/internal/core/author"
	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/internal/platform/config"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/migration"
	pgstore "github.com/taibuivan/librarium/internal/platform/postgres"
	"github.com/taibuivan/librarium/pkg/pagination"
	"github.com/taibuivan/librarium/pkg/pointer"
)

type demoAuthor struct {
	input author.Input
	books []book.Input
}

var catalogue = []demoAuthor{
	{
		input: author.Input{
			Name:        "Ursula K. Le Guin",
			Email:       "ursula.leguin@librarium.test",
			Nationality: pointer.To("American"),
			BirthYear:   pointer.To(1929),
		},
		books: []book.Input{
			{Title: "A Wizard of Earthsea", ISBN: "9780547773742", PublishedYear: pointer.To(1968), Genre: pointer.To("Fantasy"), Pages: pointer.To(183)},
			{Title: "The Left Hand of Darkness", ISBN: "9780441478125", PublishedYear: pointer.To(1969), Genre: pointer.To("Science Fiction"), Pages: pointer.To(304)},
			{Title: "The Dispossessed", ISBN: "9780061054884", PublishedYear: pointer.To(1974), Genre: pointer.To("Science Fiction"), Pages: pointer.To(387)},
		},
	},
	{
		input: author.Input{
			Name:        "Chinua Achebe",
			Email:       "chinua.achebe@librarium.test",
			Nationality: pointer.To("Nigerian"),
			BirthYear:   pointer.To(1930),
		},
		books: []book.Input{
			{Title: "Things Fall Apart", ISBN: "9780385474542", PublishedYear: pointer.To(1958), Genre: pointer.To("Literary Fiction"), Pages: pointer.To(209)},
			{Title: "Arrow of God", ISBN: "9780385014809", PublishedYear: pointer.To(1964), Genre: pointer.To("Literary Fiction"), Pages: pointer.To(287)},
		},
	},
	{
		input: author.Input{
			Name:        "Jorge Luis Borges",
			Email:       "jorge.borges@librarium.test",
			Bio:         pointer.To("Argentine short-story writer, essayist and poet."),
			Nationality: pointer.To("Argentine"),
			BirthYear:   pointer.To(1899),
		},
		books: []book.Input{
			{Title: "Ficciones", ISBN: "9780802130303", PublishedYear: pointer.To(1944), Genre: pointer.To("Short Stories"), Pages: pointer.To(174)},
			{Title: "The Aleph", ISBN: "9780142437889", PublishedYear: pointer.To(1949), Genre: pointer.To("Short Stories")},
		},
	},
	{
		input: author.Input{
			Name:  "Anonymous",
			Email: "anonymous@librarium.test",
		},
	},
}

func main() {
	reset := flag.Bool("reset", false, "drop and re-create the schema before seeding")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "librarium-seed"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.StoreDriver != config.StorePostgres {
		log.Error("seed_unsupported_store", slog.String("store", cfg.StoreDriver))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer cancel()

	if *reset {
		must(log, migration.Reset(cfg.DatabaseURL, cfg.MigrationPath, log), "reset schema")
	} else {
		must(log, migration.Up(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	bookService := book.NewService(book.NewPostgresRepository(pool), nil, log)
	authorService := author.NewService(author.NewPostgresRepository(pool), bookService, log)

	var authorsCreated, booksCreated int
	for _, entry := range catalogue {
		authorID, created, err := ensureAuthor(ctx, authorService, entry.input)
		must(log, err, "seed author "+entry.input.Email)
		if created {
			authorsCreated++
		}

		for _, input := range entry.books {
			input.AuthorID = authorID

			_, err := bookService.CreateBook(ctx, input)
			switch {
			case errors.Is(err, book.ErrDuplicateISBN):
				log.Info("seed_book_exists", slog.String("isbn", input.ISBN))
			case err != nil:
				must(log, err, "seed book "+input.ISBN)
			default:
				booksCreated++
			}
		}
	}

	log.Info("seed_completed",
		slog.Int("authors_created", authorsCreated),
		slog.Int("books_created", booksCreated),
	)
}

// ensureAuthor creates the author, or returns the id of the one already using its email.
func ensureAuthor(ctx context.Context, service *author.Service, input author.Input) (string, bool, error) {
	created, err := service.CreateAuthor(ctx, input)
	if err == nil {
		return created.ID, true, nil
	}
	if !errors.Is(err, author.ErrDuplicateEmail) {
		return "", false, err
	}

	existing, _, err := service.ListAuthors(ctx, author.Filter{Query: input.Email}, pagination.New(1, pagination.MaxLimit))
	if err != nil {
		return "", false, err
	}
	for _, candidate := range existing {
		if candidate.Email == input.Email {
			return candidate.ID, false, nil
		}
	}
	return "", false, author.ErrDuplicateEmail
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
