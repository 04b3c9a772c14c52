// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/api"
	"github.com/taibuivan/librarium/internal/core/author"
	"github.com/taibuivan/librarium/internal/core/book"
	"github.com/taibuivan/librarium/internal/platform/config"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/memstore"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := memstore.New()
	books := book.NewService(store.Books(), nil, discardLogger)
	authors := author.NewService(store.Authors(), books, discardLogger)
	liveness, readiness := api.NewHealthHandlers(deps, discardLogger)

	cfg := &config.Config{ServerPort: "0", Environment: "development", StoreDriver: config.StoreMemory}
	server := api.NewServer(ctx, cfg, discardLogger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Author:    author.NewHandler(authors),
		Book:      book.NewHandler(books),
	})
	return server.Handler()
}

func serve(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.RemoteAddr = "192.0.2.1:4000"
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Health covers the liveness and readiness probes.
*/
func TestServer_Health(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		recorder := serve(newServer(t, api.HealthDependencies{}), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
	})

	t.Run("ready_without_dependencies", func(t *testing.T) {
		recorder := serve(newServer(t, api.HealthDependencies{}), http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":{"status":"ready","checks":[]}}`, recorder.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		deps := api.HealthDependencies{
			CheckDatabase: func(context.Context) error { return nil },
			CheckCache:    func(context.Context) error { return errors.New("connection refused") },
		}

		recorder := serve(newServer(t, deps), http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.JSONEq(t, `{"data":{"status":"degraded","checks":[
			{"name":"postgres","ok":true},
			{"name":"redis","ok":false,"error":"connection refused"}
		]}}`, recorder.Body.String())
	})
}

/*
TestServer_Routes checks that both domains are mounted under the versioned prefix.
*/
func TestServer_Routes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	// 1. Create an author, then a book for it
	recorder := serve(handler, http.MethodPost, "/api/v1/authors", `{"name":"Italo Calvino","email":"italo@cities.test"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	var created struct {
		Data author.Author `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))

	recorder = serve(handler, http.MethodPost, "/api/v1/books",
		`{"title":"Invisible Cities","isbn":"9780156453806","author_id":"`+created.Data.ID+`","pages":165}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// 2. Search through both listing routes
	recorder = serve(handler, http.MethodGet, "/api/v1/books/search?q=cities", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)

	recorder = serve(handler, http.MethodGet, "/api/v1/books?author_name=calvino", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invisible Cities")

	// 3. Statistics and overview
	recorder = serve(handler, http.MethodGet, "/api/v1/authors/"+created.Data.ID+"/stats", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"average_pages":165`)

	recorder = serve(handler, http.MethodGet, "/api/v1/authors/overview", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_books":1`)

	// 4. Unknown routes
	recorder = serve(handler, http.MethodGet, "/api/v1/publishers", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
