package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMiddlewaresAPIHandler(stats *Statistics) *APIHandler {
	return NewAPIHandler(zap.NewNop(), nil, stats,
		NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), nil, nil, nil, nil)
}

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api := newTestMiddlewaresAPIHandler(&Statistics{started: time.Now()})
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 7, len(*pub))
	assert.Equal(t, 6, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestMiddlewaresAPIHandler(&Statistics{started: time.Now(), called: 0})
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, true, called)
	assert.Equal(t, uint64(1), api.stats.called)
}

// TestRequestIDMiddleware ensures a request id lands into the context.
func TestRequestIDMiddleware(t *testing.T) {
	api := newTestMiddlewaresAPIHandler(&Statistics{started: time.Now()})
	req := httptest.NewRequest("GET", "/v1/cart", nil)
	w := httptest.NewRecorder()
	var got string
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		got = GetValueFromContext(req.Context(), ContextRequestID)
	}
	wrapped := api.RequestIDMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, "r:cb8f2136-fae4-4200-85d9-3533c7f8c70d", got)
}

// TestStatsMiddleware ensures the response status code lands into the
// per-status counters.
func TestStatsMiddleware(t *testing.T) {
	api := newTestMiddlewaresAPIHandler(&Statistics{started: time.Now()})
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusTeapot)
	}
	wrapped := api.StatsMiddleware(handler)

	wrapped(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/cart", nil), nil)
	wrapped(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/cart", nil), nil)

	api.stats.mu.RLock()
	defer api.stats.mu.RUnlock()
	assert.Equal(t, uint64(2), api.stats.status[http.StatusTeapot])
}

// TestMaintenanceMiddleware ensures public traffic is short-circuited
// with 503 while the maintenance mode is on.
func TestMaintenanceMiddleware(t *testing.T) {
	api := newTestMiddlewaresAPIHandler(&Statistics{started: time.Now()})
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.MaintenanceMiddleware(handler)

	t.Run("mode off lets the request through", func(t *testing.T) {
		w := httptest.NewRecorder()
		wrapped(w, httptest.NewRequest("GET", "/v1/cart", nil), nil)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	})

	t.Run("mode on answers 503", func(t *testing.T) {
		called = false
		api.mode.enabled.Store(true)
		w := httptest.NewRecorder()
		wrapped(w, httptest.NewRequest("GET", "/v1/cart", nil), nil)
		assert.False(t, called)
		assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
	})
}
