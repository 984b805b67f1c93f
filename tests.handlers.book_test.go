package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestBookAPIHandler(repo BookStorage) *APIHandler {
	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), repo, NewNoopQueuer())
	return NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()},
		NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), bs, nil, nil, nil)
}

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api := newTestBookAPIHandler(&MockBookStorage{})
	api.Status(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	m := make(map[string]interface{})
	err = json.Unmarshal(data, &m)
	assert.NoError(t, err)

	_, ok := m["requestid"]
	assert.True(t, ok)

	v, ok := m["status"]
	assert.True(t, ok)
	assert.Equal(t, "up & running since 0 mins", v)

	v, ok = m["message"]
	assert.True(t, ok)
	assert.Equal(t, v, "Hello. Cloud bookstore api is available. Enjoy :)")
}

// TestCreateBookHandler ensures api handler can create a book.
//
//nolint:funlen
func TestCreateBookHandler(t *testing.T) {
	api := newTestBookAPIHandler(&MockBookStorage{
		AddFunc: func(ctx context.Context, id string, book Book) error {
			return nil
		},
	})

	t.Run("should pass: valid payload", func(t *testing.T) {
		book := Book{
			Title:       "Test book title",
			Description: "Test book description",
			Author:      "Jerome Amon",
			Price:       10.0,
		}
		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		_, ok := resultMap["requestid"]
		assert.True(t, ok)

		v, ok := resultMap["status"]
		assert.True(t, ok)
		assert.Equal(t, float64(http.StatusCreated), v)

		v, ok = resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "Book created successfully.", v)

		v, ok = resultMap["data"]
		assert.True(t, ok)

		bookMap, ok := v.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d", bookMap["id"])
		assert.Equal(t, "Test book title", bookMap["title"])
		assert.Equal(t, "Test book description", bookMap["description"])
		assert.Equal(t, "Jerome Amon", bookMap["author"])
		assert.Equal(t, 10.0, bookMap["price"])

		assert.NotEmpty(t, bookMap["createdAt"])
		assert.NotEmpty(t, bookMap["updatedAt"])
	})

	t.Run("should pass: creation and update stamps are identical", func(t *testing.T) {
		var stored Book
		repo := &MockBookStorage{
			AddFunc: func(ctx context.Context, id string, book Book) error {
				stored = book
				return nil
			},
		}
		clock := NewMockTickingClocker()
		bs := NewBookService(zap.NewNop(), nil, clock, repo, NewNoopQueuer())
		api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()},
			clock, NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), bs, nil, nil, nil)

		payload := []byte(`{"title":"Test book title", "description":"Test book description", "author":"Jerome Amon", "price":10.0}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "2023-07-02 00:00:00 +0000 UTC", stored.CreatedAt)
		assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	})

	t.Run("should fail: storage insertion failure", func(t *testing.T) {
		api := newTestBookAPIHandler(&MockBookStorage{
			AddFunc: func(ctx context.Context, id string, book Book) error {
				return errors.New("storage failure")
			},
		})

		book := Book{
			Title:       "Test book title",
			Description: "Test book description",
			Author:      "Jerome Amon",
			Price:       10.0,
		}

		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		v, ok := resultMap["status"]
		assert.True(t, ok)
		assert.Equal(t, float64(http.StatusInternalServerError), v)

		v, ok = resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "failed to create the book", v)

		v, ok = resultMap["data"]
		assert.True(t, ok)
		bookMap, ok := v.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "Test book title", bookMap["title"])
		assert.Equal(t, "Jerome Amon", bookMap["author"])
		assert.Equal(t, 10.0, bookMap["price"])
	})

	t.Run("should fail: required field in payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  []byte
			status   int
			expected string
		}{
			{
				name:     "empty title",
				payload:  []byte(`{"title":"", "description":"Test book description", "author":"Jerome Amon", "price":10.0}`),
				status:   http.StatusBadRequest,
				expected: `"title is required"`,
			},
			{
				name:     "missing title",
				payload:  []byte(`{"description":"Test book description", "author":"Jerome Amon", "price":10.0}`),
				status:   http.StatusBadRequest,
				expected: `"title is required"`,
			},
			{
				name:     "missing author",
				payload:  []byte(`{"title":"Test book title", "price":10.0}`),
				status:   http.StatusBadRequest,
				expected: `"author is required"`,
			},
			{
				name:     "negative price",
				payload:  []byte(`{"title":"Test book title", "author":"Jerome Amon", "price":-1.5}`),
				status:   http.StatusBadRequest,
				expected: `"price must not be negative"`,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(tc.payload))
				w := httptest.NewRecorder()
				api.CreateBook(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, tc.status, res.StatusCode)
				assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				resultMap := make(map[string]interface{})
				assert.NoError(t, json.Unmarshal(data, &resultMap))
				raw, err := json.Marshal(resultMap["data"])
				assert.NoError(t, err)
				assert.JSONEq(t, tc.expected, string(raw))
			})
		}
	})
}

// TestGetAllBooksHandler ensures catalog browsing applies search,
// genre filter, sorting and pagination on top of the storage content.
func TestGetAllBooksHandler(t *testing.T) {
	catalog := []Book{
		{ID: "b:1", Title: "Dune", Author: "Frank Herbert", Genre: "Fiction", Price: 9.99, Rating: 4.5},
		{ID: "b:2", Title: "Foundation", Author: "Isaac Asimov", Genre: "Fiction", Price: 7.50, Rating: 4.8},
		{ID: "b:3", Title: "Clean Code", Author: "Robert Martin", Genre: "Tech", Price: 30.00, Rating: 4.1},
	}
	api := newTestBookAPIHandler(&MockBookStorage{
		GetAllFunc: func(ctx context.Context) ([]Book, error) {
			return catalog, nil
		},
	})

	fetch := func(t *testing.T, target string) (int, map[string]interface{}) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		api.GetAllBooks(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		resultMap := make(map[string]interface{})
		assert.NoError(t, json.Unmarshal(data, &resultMap))
		return res.StatusCode, resultMap
	}

	books := func(m map[string]interface{}) []interface{} {
		return m["data"].([]interface{})
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		code, m := fetch(t, "/v1/books")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(3), m["total"])
		assert.Equal(t, 3, len(books(m)))
	})

	t.Run("free text search matches title and author", func(t *testing.T) {
		code, m := fetch(t, "/v1/books?q=asimov")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(1), m["total"])
		first := books(m)[0].(map[string]interface{})
		assert.Equal(t, "Foundation", first["title"])
	})

	t.Run("genre filter is case insensitive", func(t *testing.T) {
		code, m := fetch(t, "/v1/books?genre=tech")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(1), m["total"])
	})

	t.Run("sort by ascending price", func(t *testing.T) {
		_, m := fetch(t, "/v1/books?sort=price-asc")
		first := books(m)[0].(map[string]interface{})
		assert.Equal(t, "Foundation", first["title"])
	})

	t.Run("sort by rating", func(t *testing.T) {
		_, m := fetch(t, "/v1/books?sort=rating")
		first := books(m)[0].(map[string]interface{})
		assert.Equal(t, "Foundation", first["title"])
	})

	t.Run("pagination window", func(t *testing.T) {
		_, m := fetch(t, "/v1/books?page=2&limit=2")
		assert.Equal(t, float64(3), m["total"])
		assert.Equal(t, 1, len(books(m)))
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		code, m := fetch(t, "/v1/books?page=9&limit=20")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(3), m["total"])
		assert.Equal(t, 0, len(books(m)))
	})
}

func TestDeleteOneBook_MissingBook(t *testing.T) {
	api := newTestBookAPIHandler(&MockBookStorage{
		GetOneFunc: func(ctx context.Context, id string) (Book, error) {
			return Book{}, ErrBookNotFound
		},
	})

	missingBookID := "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d"
	req := httptest.NewRequest(http.MethodDelete, "/v1/books/"+missingBookID, nil)
	w := httptest.NewRecorder()
	api.DeleteOneBook(w, req, httprouter.Params{httprouter.Param{Key: "id", Value: missingBookID}})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	resultMap := make(map[string]interface{})
	assert.NoError(t, json.Unmarshal(data, &resultMap))
	assert.Equal(t, float64(http.StatusNotFound), resultMap["status"])
	assert.Equal(t, "book does not exist", resultMap["message"])
}

func TestGetOneBook_InvalidID(t *testing.T) {
	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), &MockBookStorage{}, NewNoopQueuer())
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: time.Now()},
		NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", false), bs, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/books/not-an-id", nil)
	w := httptest.NewRecorder()
	api.GetOneBook(w, req, httprouter.Params{httprouter.Param{Key: "id", Value: "not-an-id"}})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
