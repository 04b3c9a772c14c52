// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is the primary key type for authors and books. Because it is
// time-sortable, inserts stay clustered-index friendly in PostgreSQL.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
//
// Identifiers arriving in URLs are checked with it before they reach a uuid
// column, where a malformed literal would otherwise be a query error.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Canonical returns the lower-case hyphenated form of s, and false when s is
// not a UUID. Stores compare ids as strings, so lookups go through it first.
func Canonical(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
