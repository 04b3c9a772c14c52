// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/pkg/pointer"
	"github.com/taibuivan/librarium/pkg/slice"
)

// # Author Statistics

// YearMark identifies a book by title and publication year.
type YearMark struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// PageMark identifies a book by title and page count.
type PageMark struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

// Stats is the derived summary of one author's books. It is never stored.
type Stats struct {
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	TotalBooks   int       `json:"total_books"`
	FirstBook    *YearMark `json:"first_book"`
	LatestBook   *YearMark `json:"latest_book"`
	AveragePages *int      `json:"average_pages"`
	Genres       []string  `json:"genres"`
	LongestBook  *PageMark `json:"longest_book"`
	ShortestBook *PageMark `json:"shortest_book"`
}

/*
ComputeStats derives the statistics of author from books.

Description: Books without a publication year are ignored for first/latest,
books without a page count for average/longest/shortest. Each group is nil
when its subset is empty. Extremes are taken from a stable ascending sort, so
among equal values the book appearing first in books wins for "first" and
"shortest", and the one appearing last wins for "latest" and "longest".

Parameters:
  - author: *Author (identity only)
  - books: []*book.Book (in the order the store returned them)

Returns:
  - Stats: Never fails; Genres is empty rather than nil
*/
func ComputeStats(author *Author, books []*book.Book) Stats {
	stats := Stats{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		TotalBooks: len(books),
		Genres:     distinctGenres(books),
	}

	// 1. Publication timeline
	dated := slice.Filter(books, func(b *book.Book) bool { return b.PublishedYear != nil })
	if len(dated) > 0 {
		slices.SortStableFunc(dated, func(x, y *book.Book) int {
			return cmp.Compare(*x.PublishedYear, *y.PublishedYear)
		})

		first, latest := dated[0], dated[len(dated)-1]
		stats.FirstBook = &YearMark{Title: first.Title, Year: *first.PublishedYear}
		stats.LatestBook = &YearMark{Title: latest.Title, Year: *latest.PublishedYear}
	}

	// 2. Page counts
	paged := slice.Filter(books, func(b *book.Book) bool { return b.Pages != nil })
	if len(paged) > 0 {
		sum := slice.Reduce(paged, 0, func(total int, b *book.Book) int { return total + *b.Pages })
		average := int(math.Round(float64(sum) / float64(len(paged))))
		stats.AveragePages = &average

		slices.SortStableFunc(paged, func(x, y *book.Book) int {
			return cmp.Compare(*x.Pages, *y.Pages)
		})

		shortest, longest := paged[0], paged[len(paged)-1]
		stats.ShortestBook = &PageMark{Title: shortest.Title, Pages: *shortest.Pages}
		stats.LongestBook = &PageMark{Title: longest.Title, Pages: *longest.Pages}
	}

	return stats
}

// distinctGenres returns trimmed non-empty genres in order of first appearance.
func distinctGenres(books []*book.Book) []string {
	genres := slice.Map(books, func(b *book.Book) string {
		return strings.TrimSpace(pointer.Val(b.Genre))
	})
	genres = slice.Filter(genres, func(genre string) bool { return genre != "" })

	return slice.Distinct(genres)
}

// # Catalogue Overview

// BookCount is one author's number of books, as used by [ComputeOverview].
type BookCount struct {
	AuthorID string
	Name     string
	Books    int
}

// TopAuthor is the author owning the most books.
type TopAuthor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BookCount int    `json:"book_count"`
}

// Overview summarises the whole catalogue for the admin dashboard.
type Overview struct {
	TotalAuthors int        `json:"total_authors"`
	TotalBooks   int        `json:"total_books"`
	AverageBooks float64    `json:"average_books"`
	TopAuthor    *TopAuthor `json:"top_author"`
}

/*
ComputeOverview summarises per-author book counts.

Description: AverageBooks is rounded to one decimal. TopAuthor is the first
entry with the highest count, so ties resolve to the earliest author in
counts (the store orders them by name). It is nil only when there are no
authors.
*/
func ComputeOverview(counts []BookCount) Overview {
	overview := Overview{TotalAuthors: len(counts)}
	if len(counts) == 0 {
		return overview
	}

	overview.TotalBooks = slice.Reduce(counts, 0, func(total int, count BookCount) int { return total + count.Books })
	overview.AverageBooks = math.Round(float64(overview.TotalBooks)/float64(len(counts))*10) / 10

	top := counts[0]
	for _, count := range counts[1:] {
		if count.Books > top.Books {
			top = count
		}
	}
	overview.TopAuthor = &TopAuthor{ID: top.AuthorID, Name: top.Name, BookCount: top.Books}

	return overview
}
