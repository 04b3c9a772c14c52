// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogAuthorTable represents the 'catalog.author' table
type CatalogAuthorTable struct {
	Table       string
	ID          string
	Name        string
	Email       string
	Bio         string
	Nationality string
	BirthYear   string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogAuthorTable{
	Table:       "catalog.author",
	ID:          "id",
	Name:        "name",
	Email:       "email",
	Bio:         "bio",
	Nationality: "nationality",
	BirthYear:   "birthyear",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Unique and foreign key constraint names declared in the migrations.
const (
	CatalogAuthorEmailKey = "author_email_key"
)
