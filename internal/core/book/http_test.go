// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/core/author"
	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/memstore"
	"github.com/taibuivan/librarium/pkg/pagination"
	"github.com/taibuivan/librarium/pkg/pointer"
	"github.com/taibuivan/librarium/pkg/uuidv7"
)

type bookPage struct {
	Data       []book.Book     `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type fixture struct {
	server   http.Handler
	herbert  string
	leGuin   string
	butler   string
	bookRepo book.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	fx := &fixture{herbert: uuidv7.New(), leGuin: uuidv7.New(), butler: uuidv7.New(), bookRepo: store.Books()}

	require.NoError(t, store.Authors().Create(ctx, &author.Author{ID: fx.herbert, Name: "Frank Herbert", Email: "frank@dune.test"}))
	require.NoError(t, store.Authors().Create(ctx, &author.Author{ID: fx.leGuin, Name: "Ursula K. Le Guin", Email: "ursula@earthsea.test"}))
	require.NoError(t, store.Authors().Create(ctx, &author.Author{ID: fx.butler, Name: "Octavia E. Butler", Email: "octavia@kindred.test"}))

	seed := []book.Book{
		{AuthorID: fx.herbert, Title: "Dune", ISBN: "isbn-1", PublishedYear: pointer.To(1965), Genre: pointer.To("Science Fiction"), Pages: pointer.To(412)},
		{AuthorID: fx.herbert, Title: "Dune Messiah", ISBN: "isbn-2", PublishedYear: pointer.To(1969), Genre: pointer.To("Science Fiction"), Pages: pointer.To(256)},
		{AuthorID: fx.leGuin, Title: "A Wizard of Earthsea", ISBN: "isbn-3", PublishedYear: pointer.To(1968), Genre: pointer.To("Fantasy"), Pages: pointer.To(183)},
		{AuthorID: fx.leGuin, Title: "The Dispossessed", ISBN: "isbn-4", Genre: pointer.To("Science Fiction")},
	}
	for i := range seed {
		seed[i].ID = uuidv7.New()
		require.NoError(t, store.Books().Create(ctx, &seed[i]))
	}

	service := book.NewService(store.Books(), nil, discardLogger)
	fx.server = book.NewHandler(service).Routes()
	return fx
}

func (fx *fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	recorder := httptest.NewRecorder()
	fx.server.ServeHTTP(recorder, httptest.NewRequest(method, target, &payload))
	return recorder
}

func titles(books []book.Book) []string {
	result := make([]string, 0, len(books))
	for _, b := range books {
		result = append(result, b.Title)
	}
	return result
}

/*
TestHandler_Search covers filtering, sorting and the pagination envelope.
*/
func TestHandler_Search(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name       string
		target     string
		wantTitles []string
		wantTotal  int
	}{
		{"title_fragment", "/?q=DUNE&sort=title&dir=asc", []string{"Dune", "Dune Messiah"}, 2},
		{"genre_exact", "/?genre=Fantasy", []string{"A Wizard of Earthsea"}, 1},
		{"author_name", "/search?author_name=le%20guin&sort=title&dir=asc", []string{"A Wizard of Earthsea", "The Dispossessed"}, 2},
		{"combined_and", "/?genre=Science%20Fiction&author_name=ursula", []string{"The Dispossessed"}, 1},
		{"author_id", "/?author_id=" + fx.herbert + "&sort=published_year&dir=desc", []string{"Dune Messiah", "Dune"}, 2},
		{"year_nulls_last_asc", "/?sort=publishedYear&dir=asc", []string{"Dune", "A Wizard of Earthsea", "Dune Messiah", "The Dispossessed"}, 4},
		{"year_nulls_last_desc", "/?sort=published_year&dir=desc", []string{"Dune Messiah", "A Wizard of Earthsea", "Dune", "The Dispossessed"}, 4},
		{"malformed_author_id", "/?author_id=12", []string{}, 0},
		{"client_aliases", "/?search=dune&sortBy=publishedYear&order=desc", []string{"Dune Messiah", "Dune"}, 2},
		{"author_id_alias", "/?authorId=" + fx.leGuin + "&sortBy=title", []string{"The Dispossessed", "A Wizard of Earthsea"}, 2},
		{"no_match", "/?q=zzz", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := fx.do(t, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, recorder.Code)

			var page bookPage
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))

			assert.Equal(t, tt.wantTitles, titles(page.Data))
			assert.Equal(t, tt.wantTotal, page.Pagination.Total)
			assert.GreaterOrEqual(t, page.Pagination.TotalPages, 1)
		})
	}
}

/*
TestHandler_Search_EmbedsAuthor checks the owner reference on every row.
*/
func TestHandler_Search_EmbedsAuthor(t *testing.T) {
	fx := newFixture(t)

	recorder := fx.do(t, http.MethodGet, "/?genre=Fantasy", nil)
	var page bookPage
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))

	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].Author)
	assert.Equal(t, book.AuthorRef{ID: fx.leGuin, Name: "Ursula K. Le Guin"}, *page.Data[0].Author)
}

/*
TestHandler_Search_Pagination walks the catalogue two rows at a time.
*/
func TestHandler_Search_Pagination(t *testing.T) {
	fx := newFixture(t)

	recorder := fx.do(t, http.MethodGet, "/?limit=2&page=2&sort=title&dir=asc", nil)
	var page bookPage
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))

	assert.Equal(t, []string{"Dune Messiah", "The Dispossessed"}, titles(page.Data))
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 4, TotalPages: 2, HasNext: false, HasPrev: true}, page.Pagination)

	// Oversized limits are clamped, not rejected.
	recorder = fx.do(t, http.MethodGet, "/?limit=1000&page=0", nil)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))
	assert.Equal(t, 50, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.Page)
}

/*
TestHandler_Search_PageBeyondRange serves an empty page for pages far past the end.
*/
func TestHandler_Search_PageBeyondRange(t *testing.T) {
	fx := newFixture(t)

	for _, target := range []string{
		"/?page=4611686018427387904&limit=4&sort=title&dir=asc",
		"/?page=9223372036854775807&limit=50",
		"/?page=3&limit=2",
	} {
		recorder := fx.do(t, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, recorder.Code, target)

		var page bookPage
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&page))

		assert.Empty(t, page.Data, target)
		assert.Equal(t, 4, page.Pagination.Total, target)
		assert.False(t, page.Pagination.HasNext, target)
		assert.True(t, page.Pagination.HasPrev, target)
	}
}

/*
TestHandler_Search_StoreFailure returns an opaque 500 and logs the cause server-side.
*/
func TestHandler_Search_StoreFailure(t *testing.T) {
	const cause = `relation "catalog.book" does not exist`

	tests := []struct {
		name     string
		storeErr error
	}{
		{"classified", apperr.Internal(errors.New(cause))},
		{"unclassified", errors.New(cause)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("Count", mock.Anything, mock.Anything).Return(0, tt.storeErr)
			repo.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*book.Book{}, nil).Maybe()

			server := book.NewHandler(book.NewService(repo, nil, discardLogger)).Routes()

			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))
			request := httptest.NewRequest(http.MethodGet, "/?q=dune", nil)
			request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.NotContains(t, recorder.Body.String(), "catalog.book")

			var body errorBody
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, apperr.CodeInternal, body.Code)
			assert.Equal(t, "An unexpected error occurred", body.Error)

			assert.Contains(t, logs.String(), "api_server_error")
			assert.Contains(t, logs.String(), "catalog.book")
		})
	}
}

/*
TestHandler_Genres lists distinct genres alphabetically.
*/
func TestHandler_Genres(t *testing.T) {
	fx := newFixture(t)

	recorder := fx.do(t, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, []string{"Fantasy", "Science Fiction"}, body.Data)
}

/*
TestHandler_Lifecycle creates, reads, updates and deletes a book.
*/
func TestHandler_Lifecycle(t *testing.T) {
	fx := newFixture(t)

	// 1. Create
	recorder := fx.do(t, http.MethodPost, "/", book.Input{
		Title: "Children of Dune", ISBN: "isbn-5", AuthorID: fx.herbert, Pages: pointer.To(444),
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data book.Book `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))
	assert.Equal(t, "Frank Herbert", created.Data.Author.Name)

	// 2. Read
	recorder = fx.do(t, http.MethodGet, "/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// 3. List by owner: a fresh author sees exactly the new book.
	recorder = fx.do(t, http.MethodPost, "/", book.Input{Title: "Kindred", ISBN: "isbn-6", AuthorID: fx.butler})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var kindred struct {
		Data book.Book `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&kindred))

	recorder = fx.do(t, http.MethodGet, "/?author_id="+fx.butler, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var owned bookPage
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&owned))
	require.Len(t, owned.Data, 1)
	assert.Equal(t, kindred.Data.ID, owned.Data[0].ID)
	assert.Equal(t, 1, owned.Pagination.Total)

	recorder = fx.do(t, http.MethodGet, "/?author_id="+fx.herbert+"&sort=title&dir=asc", nil)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&owned))
	assert.Equal(t, []string{"Children of Dune", "Dune", "Dune Messiah"}, titles(owned.Data))

	// 4. Update
	recorder = fx.do(t, http.MethodPut, "/"+created.Data.ID, book.Input{
		Title: "Children of Dune", ISBN: "isbn-5", AuthorID: fx.herbert, PublishedYear: pointer.To(1976),
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// 5. Delete
	recorder = fx.do(t, http.MethodDelete, "/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = fx.do(t, http.MethodGet, "/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_WriteErrors maps domain failures to status codes.
*/
func TestHandler_WriteErrors(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"duplicate_isbn", http.MethodPost, "/", book.Input{Title: "Copy", ISBN: "isbn-1", AuthorID: fx.herbert}, http.StatusConflict, "CONFLICT"},
		{"unknown_author", http.MethodPost, "/", book.Input{Title: "Orphan", ISBN: "isbn-9", AuthorID: uuidv7.New()}, http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"validation", http.MethodPost, "/", book.Input{ISBN: "isbn-9", AuthorID: fx.herbert}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown_field", http.MethodPost, "/", map[string]any{"title": "X", "rating": 5}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_book", http.MethodGet, "/" + uuidv7.New(), nil, http.StatusNotFound, "NOT_FOUND"},
		{"malformed_id", http.MethodDelete, "/not-a-uuid", nil, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := fx.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body errorBody
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}
