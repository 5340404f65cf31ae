// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-gateway/internal/logging"
	"github.com/pdiddy/catalog-gateway/pkg/types"
)

func init() {
	// No real sleeps between retries in tests.
	RetryBaseDelay = 0
}

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(types.UpstreamConfig{
		HTTPConfig:  types.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "test/0.1"},
		BaseURL:     baseURL,
		RetryBudget: retries,
	}, logging.Nop())
}

func TestDoSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 2).Do(context.Background(), NewRequest("/works", nil))

	require.Equal(t, StatusSuccess, out.Status)
	assert.JSONEq(t, `{"data": []}`, string(out.Payload))
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoSendsQueryParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 2).Do(context.Background(),
		NewRequest("/works", Params{"page": 1, "limit": 12}))
	assert.True(t, out.OK())
}

func TestDoRetriesServerErrorExactlyBudgetPlusOne(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 2).Do(context.Background(), NewRequest("/works", nil))

	assert.Equal(t, StatusServerError, out.Status)
	assert.Equal(t, 500, out.HTTPStatus)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "retryBudget=2 means exactly 3 attempts")
	assert.Equal(t, 3, out.Attempts)
}

func TestDoServerErrorThenSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 2).Do(context.Background(), NewRequest("/works", nil))

	require.True(t, out.OK())
	assert.Equal(t, 3, out.Attempts)
}

func TestDoNotFoundIsNeverRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 5).Do(context.Background(), NewRequest("/works/999", nil))

	assert.Equal(t, StatusNotFound, out.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoMalformedBodyIsNeverRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 5).Do(context.Background(), NewRequest("/works", nil))

	assert.Equal(t, StatusMalformedBody, out.Status)
	assert.Nil(t, out.Payload)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoUnexpectedStatusIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	out := newTestClient(ts.URL, 5).Do(context.Background(), NewRequest("/works", nil))

	assert.Equal(t, StatusUnexpectedFailure, out.Status)
	assert.Equal(t, 403, out.HTTPStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoTimeoutExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL, 1)
	req := NewRequest("/works", nil).WithTimeout(20 * time.Millisecond)
	out := c.Do(context.Background(), req)

	assert.Equal(t, StatusTimeout, out.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDoConnectionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // nothing listens anymore

	out := newTestClient(ts.URL, 1).Do(context.Background(), NewRequest("/works", nil))

	assert.Equal(t, StatusConnectionFailure, out.Status)
	assert.Equal(t, 2, out.Attempts)
}

func TestDoZeroRetriesMeansSingleAttempt(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	req := NewRequest("/works", nil)
	req.Retries = 0
	out := newTestClient(ts.URL, 5).Do(context.Background(), req)

	assert.Equal(t, StatusServerError, out.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
