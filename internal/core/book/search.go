// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/url"
	"strings"

	"github.com/taibuivan/librarium/pkg/pagination"
	"github.com/taibuivan/librarium/pkg/uuidv7"
)

// # Sorting

// SortField is an allow-listed column a search can be ordered by.
type SortField string

const (
	SortTitle         SortField = "title"
	SortPublishedYear SortField = "published_year"
	SortCreatedAt     SortField = "created_at"
)

// SortDirection is the ordering direction of a search.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort pairs a field with a direction. Ties are always broken by id ascending.
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is used for any field or direction outside the allow-list.
var DefaultSort = Sort{Field: SortCreatedAt, Direction: Desc}

var sortFields = map[string]SortField{
	"title":          SortTitle,
	"published_year": SortPublishedYear,
	"publishedyear":  SortPublishedYear,
	"created_at":     SortCreatedAt,
	"createdat":      SortCreatedAt,
}

var sortDirections = map[string]SortDirection{
	"asc":        Asc,
	"ascending":  Asc,
	"desc":       Desc,
	"descending": Desc,
}

// ParseSort resolves raw query values. Field and direction fall back to
// [DefaultSort] independently of each other.
func ParseSort(field, direction string) Sort {
	sort := DefaultSort

	if resolved, found := sortFields[strings.ToLower(strings.TrimSpace(field))]; found {
		sort.Field = resolved
	}
	if resolved, found := sortDirections[strings.ToLower(strings.TrimSpace(direction))]; found {
		sort.Direction = resolved
	}

	return sort
}

// # Filtering

// Filter holds the optional search criteria. Empty values are not applied.
type Filter struct {
	// Title is a case-insensitive substring of the book title.
	Title string
	// Genre must equal the book genre exactly.
	Genre string
	// AuthorID must equal the owning author id exactly.
	AuthorID string
	// AuthorName is a case-insensitive substring of the owning author's name.
	AuthorName string
}

// Unsatisfiable reports whether no stored book can match the filter, which
// is the case for an author id that is not a UUID.
func (filter Filter) Unsatisfiable() bool {
	return filter.AuthorID != "" && !uuidv7.Valid(filter.AuthorID)
}

// canonicalID normalises a well-formed UUID and leaves anything else as given
// so [Filter.Unsatisfiable] can reject it.
func canonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	if id, ok := uuidv7.Canonical(raw); ok {
		return id
	}
	return raw
}

// Query parameter names accepted by the book listing.
const (
	ParamQuery      = "q"
	ParamGenre      = "genre"
	ParamAuthorID   = "author_id"
	ParamAuthorName = "author_name"
	ParamSort       = "sort"
	ParamDirection  = "dir"
)

// Alternate spellings used by the catalogue's browser client. The primary
// name wins when a request carries both.
const (
	ParamSearchAlias     = "search"
	ParamAuthorIDAlias   = "authorId"
	ParamAuthorNameAlias = "authorName"
	ParamSortAlias       = "sortBy"
	ParamDirectionAlias  = "order"
)

// firstValue returns the first non-blank value among names, trimmed.
func firstValue(values url.Values, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(values.Get(name)); value != "" {
			return value
		}
	}
	return ""
}

// # Search Parameters

// SearchParams is the complete, immutable description of one search request.
type SearchParams struct {
	Filter Filter
	Sort   Sort
	Page   pagination.Params
}

/*
ParseSearchParams builds [SearchParams] from a query string.

Description: Parsing never fails. Unknown sort keys and directions fall back to
[DefaultSort]; page and limit are clamped by [pagination.FromValues]; filter
values are trimmed and dropped when blank.
*/
func ParseSearchParams(values url.Values) SearchParams {
	return SearchParams{
		Filter: Filter{
			Title:      firstValue(values, ParamQuery, ParamSearchAlias),
			Genre:      firstValue(values, ParamGenre),
			AuthorID:   canonicalID(firstValue(values, ParamAuthorID, ParamAuthorIDAlias)),
			AuthorName: firstValue(values, ParamAuthorName, ParamAuthorNameAlias),
		},
		Sort: ParseSort(
			firstValue(values, ParamSort, ParamSortAlias),
			firstValue(values, ParamDirection, ParamDirectionAlias),
		),
		Page: pagination.FromValues(values),
	}
}
