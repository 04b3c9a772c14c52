// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table         string
	ID            string
	AuthorID      string
	Title         string
	Description   string
	ISBN          string
	PublishedYear string
	Genre         string
	Pages         string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	AuthorID:      "authorid",
	Title:         "title",
	Description:   "description",
	ISBN:          "isbn",
	PublishedYear: "publishedyear",
	Genre:         "genre",
	Pages:         "pages",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

const (
	CatalogBookISBNKey      = "book_isbn_key"
	CatalogBookAuthorIDFkey = "book_authorid_fkey"
)
