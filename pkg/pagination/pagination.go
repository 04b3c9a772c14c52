// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// # Permissive Input
//
// Malformed or out-of-range values never produce an error. Missing or
// unparseable values take the defaults; numeric values outside the allowed
// range are clamped to the nearest bound.
package pagination

import (
	"math"
	"net/http"
	"net/url"

	"github.com/taibuivan/librarium/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 50
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage is the highest page whose offset still fits in an int at [MaxLimit].
	MaxPage = math.MaxInt / MaxLimit
)

// Query parameter names.
const (
	ParamPage  = "page"
	ParamLimit = "limit"
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
// It saturates at math.MaxInt instead of wrapping negative.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is never below 1, so an empty result is still "page 1 of 1".
func NewMeta(page, limit, total int) Meta {
	totalPages := 1
	if limit > 0 && total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// New builds clamped [Params] from already-parsed integers.
func New(page, limit int) Params {
	return Params{
		Page:  min(max(page, DefaultPage), MaxPage),
		Limit: min(max(limit, 1), MaxLimit),
	}
}

// FromValues parses "page" and "limit" from a query string.
func FromValues(values url.Values) Params {
	return New(
		convert.ToIntD(values.Get(ParamPage), DefaultPage),
		convert.ToIntD(values.Get(ParamLimit), DefaultLimit),
	)
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query())
}
