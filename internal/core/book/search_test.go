// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/pkg/pagination"
)

/*
TestParseSearchParams_Defaults checks the parameters of a bare listing request.
*/
func TestParseSearchParams_Defaults(t *testing.T) {
	params := book.ParseSearchParams(url.Values{})

	assert.Equal(t, book.Filter{}, params.Filter)
	assert.Equal(t, book.DefaultSort, params.Sort)
	assert.Equal(t, pagination.Params{Page: 1, Limit: 10}, params.Page)
}

/*
TestParseSearchParams_Filters verifies trimming and that blank filters are dropped.
*/
func TestParseSearchParams_Filters(t *testing.T) {
	params := book.ParseSearchParams(url.Values{
		"q":           {"  dune "},
		"genre":       {"Science Fiction"},
		"author_id":   {"6BA7B810-9DAD-11D1-80B4-00C04FD430C8"},
		"author_name": {"   "},
	})

	assert.Equal(t, "dune", params.Filter.Title)
	assert.Equal(t, "Science Fiction", params.Filter.Genre)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", params.Filter.AuthorID)
	assert.Empty(t, params.Filter.AuthorName)
	assert.False(t, params.Filter.Unsatisfiable())
}

/*
TestParseSearchParams_Aliases accepts the camelCase names sent by the browser client.
*/
func TestParseSearchParams_Aliases(t *testing.T) {
	params := book.ParseSearchParams(url.Values{
		"search":     {" wizard "},
		"authorId":   {"6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		"authorName": {"guin"},
		"sortBy":     {"publishedYear"},
		"order":      {"asc"},
	})

	assert.Equal(t, book.Filter{
		Title:      "wizard",
		AuthorID:   "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		AuthorName: "guin",
	}, params.Filter)
	assert.Equal(t, book.Sort{Field: book.SortPublishedYear, Direction: book.Asc}, params.Sort)

	// The snake_case name takes precedence; a blank one falls through to the alias.
	params = book.ParseSearchParams(url.Values{
		"q":      {"dune"},
		"search": {"wizard"},
		"sort":   {"title"},
		"sortBy": {"publishedYear"},
		"dir":    {"  "},
		"order":  {"asc"},
	})

	assert.Equal(t, "dune", params.Filter.Title)
	assert.Equal(t, book.Sort{Field: book.SortTitle, Direction: book.Asc}, params.Sort)
}

/*
TestParseSort covers the allow-list and the independent fallbacks.
*/
func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		want      book.Sort
	}{
		{"empty", "", "", book.Sort{Field: book.SortCreatedAt, Direction: book.Desc}},
		{"title_asc", "title", "asc", book.Sort{Field: book.SortTitle, Direction: book.Asc}},
		{"snake_case", "published_year", "desc", book.Sort{Field: book.SortPublishedYear, Direction: book.Desc}},
		{"camel_case", "publishedYear", "ascending", book.Sort{Field: book.SortPublishedYear, Direction: book.Asc}},
		{"created_alias", "createdAt", "ASC", book.Sort{Field: book.SortCreatedAt, Direction: book.Asc}},
		{"unknown_field", "isbn", "asc", book.Sort{Field: book.SortCreatedAt, Direction: book.Asc}},
		{"unknown_direction", "title", "sideways", book.Sort{Field: book.SortTitle, Direction: book.Desc}},
		{"injection", "title; DROP TABLE book", "asc", book.Sort{Field: book.SortCreatedAt, Direction: book.Asc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, book.ParseSort(tt.field, tt.direction))
		})
	}
}

/*
TestParseSearchParams_PageClamping checks that page parameters are clamped, never rejected.
*/
func TestParseSearchParams_PageClamping(t *testing.T) {
	tests := []struct {
		page  string
		limit string
		want  pagination.Params
	}{
		{"0", "500", pagination.Params{Page: 1, Limit: 50}},
		{"-3", "0", pagination.Params{Page: 1, Limit: 1}},
		{"abc", "xyz", pagination.Params{Page: 1, Limit: 10}},
		{"4", "25", pagination.Params{Page: 4, Limit: 25}},
		{"4611686018427387904", "4", pagination.Params{Page: pagination.MaxPage, Limit: 4}},
	}

	for _, tt := range tests {
		params := book.ParseSearchParams(url.Values{"page": {tt.page}, "limit": {tt.limit}})
		assert.Equal(t, tt.want, params.Page, "page=%s limit=%s", tt.page, tt.limit)
	}
}

/*
TestFilter_Unsatisfiable flags author ids that cannot exist.
*/
func TestFilter_Unsatisfiable(t *testing.T) {
	assert.False(t, book.Filter{}.Unsatisfiable())
	assert.True(t, book.Filter{AuthorID: "42"}.Unsatisfiable())
	assert.True(t, book.ParseSearchParams(url.Values{"author_id": {"not-a-uuid"}}).Filter.Unsatisfiable())
}
